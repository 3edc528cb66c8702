package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/oceanic-io/ocean-client/pkg/ocean"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDatabasesCommand creates the databases command group.
func NewDatabasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "databases",
		Aliases: []string{"db", "database"},
		Short:   "Manage database clusters",
		Long:    "List, create, and manage Ocean managed database clusters",
	}

	cmd.AddCommand(newDatabasesListCommand())
	cmd.AddCommand(newDatabasesGetCommand())
	cmd.AddCommand(newDatabasesCreateCommand())
	cmd.AddCommand(newDatabasesDeleteCommand())
	cmd.AddCommand(newDatabasesResizeCommand())
	cmd.AddCommand(newDatabasesMaintenanceCommand())

	return cmd
}

// parseMaintenanceWindow parses a "day:HH:MM" flag value.
func parseMaintenanceWindow(raw string) (ocean.MaintenanceWindow, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return ocean.MaintenanceWindow{}, fmt.Errorf("%w: %q", ErrInvalidWindowSpec, raw)
	}

	start, err := time.Parse("15:04", parts[1])
	if err != nil {
		return ocean.MaintenanceWindow{}, fmt.Errorf("%w: %q", ErrInvalidWindowSpec, raw)
	}

	return ocean.NewMaintenanceWindow(parts[0], start)
}

func newDatabasesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List database clusters",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			databases, err := client.Databases().ListAll(context.Background())
			if err != nil {
				return fmt.Errorf("listing databases: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(databases)
			case OutputFormatYAML:
				return renderYAML(databases)
			default:
				if len(databases) == 0 {
					fmt.Println("No database clusters found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Engine", "Version", "Region", "Size", "Nodes", "Status")

				for _, db := range databases {
					_ = table.Append(db.ID.String(), db.Name, db.Engine, db.Version,
						db.Region, db.Size, strconv.Itoa(db.NumNodes), string(db.Status))
				}

				_ = table.Render()

				return nil
			}
		},
	}
}

func newDatabasesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a database cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ocean.ParseDatabaseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			database, err := client.Databases().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("getting database: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(database)
			default:
				return renderYAML(database)
			}
		},
	}
}

func newDatabasesCreateCommand() *cobra.Command {
	var (
		engine   string
		version  string
		region   string
		size     string
		numNodes int
		tags     []string
		wait     bool
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a database cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := ocean.NewDatabaseSpec(args[0], engine, version, region, size, numNodes)
			if err != nil {
				return err
			}

			if len(tags) > 0 {
				spec, err = spec.WithTags(tags...)
				if err != nil {
					return err
				}
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := context.Background()

			result, err := client.Databases().Create(ctx, spec)
			if err != nil {
				return fmt.Errorf("creating database: %w", err)
			}

			database := result.Resource()
			if result.Conflicted() {
				fmt.Printf("Database %q already exists (id %s)\n", database.Name, database.ID)
			} else {
				fmt.Printf("Created database %q (id %s)\n", database.Name, database.ID)
			}

			if wait {
				database, err = client.Databases().WaitForStatus(ctx, database.ID, ocean.DatabaseStatusOnline, timeout)
				if err != nil {
					return fmt.Errorf("waiting for database: %w", err)
				}

				fmt.Printf("Database %s is %s\n", database.ID, database.Status)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&engine, "engine", "", "engine slug: pg, mysql, redis, mongodb (required)")
	cmd.Flags().StringVar(&version, "engine-version", "", "engine version (required)")
	cmd.Flags().StringVar(&region, "region", "", "region slug (required)")
	cmd.Flags().StringVar(&size, "size", "", "node size slug (required)")
	cmd.Flags().IntVar(&numNodes, "nodes", 1, "node count (1-3)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag to apply (repeatable)")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the cluster is online")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "wait budget")
	_ = cmd.MarkFlagRequired("engine")
	_ = cmd.MarkFlagRequired("engine-version")
	_ = cmd.MarkFlagRequired("region")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

func newDatabasesDeleteCommand() *cobra.Command {
	var (
		wait    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a database cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ocean.ParseDatabaseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := context.Background()

			err = client.Databases().Delete(ctx, id)
			if err != nil {
				return fmt.Errorf("deleting database: %w", err)
			}

			if wait {
				err = client.Databases().WaitForDestroy(ctx, id, timeout)
				if err != nil {
					return fmt.Errorf("waiting for destroy: %w", err)
				}
			}

			fmt.Printf("Deleted database %s\n", id)

			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the cluster is gone")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "wait budget")

	return cmd
}

func newDatabasesResizeCommand() *cobra.Command {
	var (
		size     string
		numNodes int
	)

	cmd := &cobra.Command{
		Use:   "resize <id>",
		Short: "Resize a database cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ocean.ParseDatabaseID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			err = client.Databases().Resize(context.Background(), id, &ocean.DatabaseResizeRequest{
				Size:     size,
				NumNodes: numNodes,
			})
			if err != nil {
				return fmt.Errorf("resizing database: %w", err)
			}

			fmt.Printf("Resizing database %s\n", id)

			return nil
		},
	}

	cmd.Flags().StringVar(&size, "size", "", "new node size slug (required)")
	cmd.Flags().IntVar(&numNodes, "nodes", 1, "new node count (1-3)")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

func newDatabasesMaintenanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintenance <id> <day:HH:MM>",
		Short: "Set a database cluster's maintenance window",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ocean.ParseDatabaseID(args[0])
			if err != nil {
				return err
			}

			window, err := parseMaintenanceWindow(args[1])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			err = client.Databases().SetMaintenanceWindow(context.Background(), id, window)
			if err != nil {
				return fmt.Errorf("setting maintenance window: %w", err)
			}

			fmt.Printf("Maintenance window for %s set to %s %s UTC\n", id, window.Day, window.Hour)

			return nil
		},
	}

	return cmd
}
