package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/oceanic-io/ocean-client/pkg/ocean"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())
	cmd.AddCommand(newProjectsDefaultCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			projects, err := client.Projects().ListAll(context.Background())
			if err != nil {
				return fmt.Errorf("listing projects: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(projects)
			case OutputFormatYAML:
				return renderYAML(projects)
			default:
				if len(projects) == 0 {
					fmt.Println("No projects found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Purpose", "Environment", "Default")

				for _, project := range projects {
					_ = table.Append(project.ID.String(), project.Name, project.Purpose,
						project.Environment, formatBool(project.IsDefault))
				}

				_ = table.Render()

				return nil
			}
		},
	}
}

func newProjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ocean.ParseProjectID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			project, err := client.Projects().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("getting project: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(project)
			default:
				return renderYAML(project)
			}
		},
	}
}

func newProjectsDefaultCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "default",
		Short: "Show the default project",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			project, err := client.Projects().GetDefault(context.Background())
			if err != nil {
				return fmt.Errorf("getting default project: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(project)
			default:
				return renderYAML(project)
			}
		},
	}
}
