package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRegionsCommand creates the regions command group.
func NewRegionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regions",
		Short: "Browse the region catalog",
	}

	cmd.AddCommand(newRegionsListCommand())

	return cmd
}

func newRegionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List regions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			regions, err := client.Regions().ListAll(context.Background())
			if err != nil {
				return fmt.Errorf("listing regions: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(regions)
			case OutputFormatYAML:
				return renderYAML(regions)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Slug", "Name", "Available", "Features")

				for _, region := range regions {
					_ = table.Append(region.Slug, region.Name,
						formatBool(region.Available), strings.Join(region.Features, ", "))
				}

				_ = table.Render()

				return nil
			}
		},
	}
}
