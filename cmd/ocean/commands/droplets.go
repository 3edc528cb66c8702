package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/oceanic-io/ocean-client/pkg/ocean"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDropletsCommand creates the droplets command group.
func NewDropletsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "droplets",
		Aliases: []string{"droplet"},
		Short:   "Manage droplets",
		Long:    "List, create, and manage Ocean droplets",
	}

	cmd.AddCommand(newDropletsListCommand())
	cmd.AddCommand(newDropletsGetCommand())
	cmd.AddCommand(newDropletsCreateCommand())
	cmd.AddCommand(newDropletsDeleteCommand())
	cmd.AddCommand(newDropletsActionCommand())

	return cmd
}

func parseDropletID(arg string) (ocean.DropletID, error) {
	raw, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing droplet ID %q: %w", arg, err)
	}

	return ocean.NewDropletID(raw)
}

func newDropletsListCommand() *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List droplets",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := context.Background()

			var droplets []*ocean.Droplet

			if tag != "" {
				page, err := client.Droplets().ListPage(ctx, &ocean.QueryParams{Tag: tag})
				if err != nil {
					return fmt.Errorf("listing droplets: %w", err)
				}

				droplets = page.Items
			} else {
				droplets, err = client.Droplets().ListAll(ctx)
				if err != nil {
					return fmt.Errorf("listing droplets: %w", err)
				}
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(droplets)
			case OutputFormatYAML:
				return renderYAML(droplets)
			default:
				if len(droplets) == 0 {
					fmt.Println("No droplets found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Region", "Size", "Image", "Status", "Tags", "Created")

				for _, d := range droplets {
					_ = table.Append(d.ID.String(), d.Name, d.Region, d.Size, d.Image,
						string(d.Status), formatTags(d.Tags), formatTime(d.CreatedAt))
				}

				_ = table.Render()

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "filter by tag")

	return cmd
}

func newDropletsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a droplet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDropletID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			droplet, err := client.Droplets().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("getting droplet: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(droplet)
			default:
				return renderYAML(droplet)
			}
		},
	}
}

//nolint:funlen // Command setup enumerates many flags
func newDropletsCreateCommand() *cobra.Command {
	var (
		region     string
		size       string
		image      string
		tags       []string
		vpcID      string
		backups    bool
		monitoring bool
		wait       bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a droplet",
		Long:  "Create a droplet, or adopt the existing droplet when the name is already taken",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := ocean.NewDropletSpec(args[0], region, size, image)
			if err != nil {
				return err
			}

			if len(tags) > 0 {
				spec, err = spec.WithTags(tags...)
				if err != nil {
					return err
				}
			}

			if vpcID != "" {
				id, err := ocean.ParseVPCID(vpcID)
				if err != nil {
					return err
				}

				spec = spec.WithVPC(id)
			}

			spec = spec.WithBackups(backups).WithMonitoring(monitoring)

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := context.Background()

			result, err := client.Droplets().Create(ctx, spec)
			if err != nil {
				return fmt.Errorf("creating droplet: %w", err)
			}

			droplet := result.Resource()
			if result.Conflicted() {
				fmt.Printf("Droplet %q already exists (id %s)\n", droplet.Name, droplet.ID)
			} else {
				fmt.Printf("Created droplet %q (id %s)\n", droplet.Name, droplet.ID)
			}

			if wait {
				droplet, err = client.Droplets().WaitForStatus(ctx, droplet.ID, ocean.DropletStatusActive, timeout)
				if err != nil {
					return fmt.Errorf("waiting for droplet: %w", err)
				}

				fmt.Printf("Droplet %s is %s\n", droplet.ID, droplet.Status)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "region slug (required)")
	cmd.Flags().StringVar(&size, "size", "", "size slug (required)")
	cmd.Flags().StringVar(&image, "image", "", "image slug (required)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag to apply (repeatable)")
	cmd.Flags().StringVar(&vpcID, "vpc", "", "VPC ID")
	cmd.Flags().BoolVar(&backups, "backups", false, "enable automated backups")
	cmd.Flags().BoolVar(&monitoring, "monitoring", false, "enable the monitoring agent")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the droplet is active")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "wait budget")
	_ = cmd.MarkFlagRequired("region")
	_ = cmd.MarkFlagRequired("size")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func newDropletsDeleteCommand() *cobra.Command {
	var (
		wait    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a droplet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDropletID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := context.Background()

			err = client.Droplets().Delete(ctx, id)
			if err != nil {
				return fmt.Errorf("deleting droplet: %w", err)
			}

			if wait {
				err = client.Droplets().WaitForDestroy(ctx, id, timeout)
				if err != nil {
					return fmt.Errorf("waiting for destroy: %w", err)
				}
			}

			fmt.Printf("Deleted droplet %s\n", id)

			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the droplet is gone")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "wait budget")

	return cmd
}

func newDropletsActionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "action <id> <type>",
		Short:     "Submit a droplet action",
		Long:      "Submit an asynchronous action: power_on, power_off, or reboot",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"power_on", "power_off", "reboot"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDropletID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			action, err := client.Droplets().Action(context.Background(), id, &ocean.DropletActionRequest{
				Type: ocean.DropletActionType(args[1]),
			})
			if err != nil {
				return fmt.Errorf("submitting action: %w", err)
			}

			fmt.Printf("Action %d (%s) is %s\n", action.ID, action.Type, action.Status)

			return nil
		},
	}

	return cmd
}
