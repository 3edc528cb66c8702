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

// NewRegistryCommand creates the registry command group.
func NewRegistryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Manage the container registry",
		Long:  "Create and manage the account's container registry",
	}

	cmd.AddCommand(newRegistryGetCommand())
	cmd.AddCommand(newRegistryCreateCommand())
	cmd.AddCommand(newRegistryDeleteCommand())
	cmd.AddCommand(newRegistryReposCommand())
	cmd.AddCommand(newRegistryGCCommand())

	return cmd
}

func newRegistryGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := ocean.ParseRegistryName(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			registry, err := client.Registry().Get(context.Background(), name)
			if err != nil {
				return fmt.Errorf("getting registry: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(registry)
			default:
				return renderYAML(registry)
			}
		},
	}
}

func newRegistryCreateCommand() *cobra.Command {
	var (
		region string
		tier   string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := ocean.NewRegistrySpec(args[0], region, tier)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			result, err := client.Registry().Create(context.Background(), spec)
			if err != nil {
				return fmt.Errorf("creating registry: %w", err)
			}

			registry := result.Resource()
			if result.Conflicted() {
				fmt.Printf("Registry %q already exists\n", registry.Name)
			} else {
				fmt.Printf("Created registry %q in %s\n", registry.Name, registry.Region)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "region slug (required)")
	cmd.Flags().StringVar(&tier, "tier", "basic", "subscription tier")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}

func newRegistryDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := ocean.ParseRegistryName(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			err = client.Registry().Delete(context.Background(), name)
			if err != nil {
				return fmt.Errorf("deleting registry: %w", err)
			}

			fmt.Printf("Deleted registry %s\n", name)

			return nil
		},
	}
}

func newRegistryReposCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repos <name>",
		Short: "List repositories in the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := ocean.ParseRegistryName(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			page, err := client.Registry().ListRepositories(context.Background(), name, &ocean.QueryParams{})
			if err != nil {
				return fmt.Errorf("listing repositories: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(page.Items)
			case OutputFormatYAML:
				return renderYAML(page.Items)
			default:
				if len(page.Items) == 0 {
					fmt.Println("No repositories found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Tags", "Manifests")

				for _, repo := range page.Items {
					_ = table.Append(repo.Name, strconv.Itoa(repo.TagCount), strconv.Itoa(repo.ManifestCount))
				}

				_ = table.Render()

				return nil
			}
		},
	}
}

func newRegistryGCCommand() *cobra.Command {
	var (
		wait    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "gc <name>",
		Short: "Run registry garbage collection",
		Long:  "Start a garbage collection run to reclaim space from untagged manifests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := ocean.ParseRegistryName(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := context.Background()

			gc, err := client.Registry().StartGarbageCollection(ctx, name)
			if err != nil {
				return fmt.Errorf("starting garbage collection: %w", err)
			}

			fmt.Printf("Garbage collection %s is %s\n", gc.UUID, gc.Status)

			if wait {
				gc, err = client.Registry().WaitForGarbageCollection(ctx, name, timeout)
				if err != nil {
					return fmt.Errorf("waiting for garbage collection: %w", err)
				}

				fmt.Printf("Garbage collection %s is %s\n", gc.UUID, gc.Status)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the run succeeds")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "wait budget")

	return cmd
}
