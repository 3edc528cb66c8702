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

// NewKubernetesCommand creates the Kubernetes command group.
func NewKubernetesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "k8s",
		Aliases: []string{"kubernetes", "clusters"},
		Short:   "Manage Kubernetes clusters",
		Long:    "List, create, and manage Ocean Kubernetes clusters",
	}

	cmd.AddCommand(newK8sListCommand())
	cmd.AddCommand(newK8sGetCommand())
	cmd.AddCommand(newK8sCreateCommand())
	cmd.AddCommand(newK8sDeleteCommand())
	cmd.AddCommand(newK8sKubeconfigCommand())

	return cmd
}

// parseNodePoolSpec parses a "name:size:count" pool flag.
func parseNodePoolSpec(raw string) (ocean.NodePoolSpec, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return ocean.NodePoolSpec{}, fmt.Errorf("%w: %q", ErrInvalidPoolSpec, raw)
	}

	count, err := strconv.Atoi(parts[2])
	if err != nil {
		return ocean.NodePoolSpec{}, fmt.Errorf("%w: %q", ErrInvalidPoolSpec, raw)
	}

	return ocean.NodePoolSpec{Name: parts[0], Size: parts[1], Count: count}, nil
}

func newK8sListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List Kubernetes clusters",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			clusters, err := client.Kubernetes().ListAll(context.Background())
			if err != nil {
				return fmt.Errorf("listing clusters: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(clusters)
			case OutputFormatYAML:
				return renderYAML(clusters)
			default:
				if len(clusters) == 0 {
					fmt.Println("No clusters found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Region", "Version", "Status", "Pools", "Created")

				for _, cluster := range clusters {
					_ = table.Append(cluster.ID.String(), cluster.Name, cluster.Region,
						cluster.Version, string(cluster.Status),
						strconv.Itoa(len(cluster.NodePools)), formatTime(cluster.CreatedAt))
				}

				_ = table.Render()

				return nil
			}
		},
	}
}

func newK8sGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a Kubernetes cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ocean.ParseClusterID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			cluster, err := client.Kubernetes().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("getting cluster: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(cluster)
			default:
				return renderYAML(cluster)
			}
		},
	}
}

func newK8sCreateCommand() *cobra.Command {
	var (
		region  string
		k8sVer  string
		pools   []string
		tags    []string
		ha      bool
		wait    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a Kubernetes cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := ocean.NewClusterSpec(args[0], region, k8sVer)
			if err != nil {
				return err
			}

			for _, raw := range pools {
				pool, err := parseNodePoolSpec(raw)
				if err != nil {
					return err
				}

				spec, err = spec.WithNodePool(pool)
				if err != nil {
					return err
				}
			}

			if len(tags) > 0 {
				spec, err = spec.WithTags(tags...)
				if err != nil {
					return err
				}
			}

			spec = spec.WithHA(ha)

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := context.Background()

			result, err := client.Kubernetes().Create(ctx, spec)
			if err != nil {
				return fmt.Errorf("creating cluster: %w", err)
			}

			cluster := result.Resource()
			if result.Conflicted() {
				fmt.Printf("Cluster %q already exists (id %s)\n", cluster.Name, cluster.ID)
			} else {
				fmt.Printf("Created cluster %q (id %s)\n", cluster.Name, cluster.ID)
			}

			if wait {
				cluster, err = client.Kubernetes().WaitForStatus(ctx, cluster.ID, ocean.ClusterStatusRunning, timeout)
				if err != nil {
					return fmt.Errorf("waiting for cluster: %w", err)
				}

				fmt.Printf("Cluster %s is %s\n", cluster.ID, cluster.Status)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "region slug (required)")
	cmd.Flags().StringVar(&k8sVer, "version", "", "Kubernetes version slug (required)")
	cmd.Flags().StringSliceVar(&pools, "pool", nil, "node pool as name:size:count (repeatable, at least one required)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag to apply (repeatable)")
	cmd.Flags().BoolVar(&ha, "ha", false, "enable the high-availability control plane")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the cluster is running")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "wait budget")
	_ = cmd.MarkFlagRequired("region")
	_ = cmd.MarkFlagRequired("version")
	_ = cmd.MarkFlagRequired("pool")

	return cmd
}

func newK8sDeleteCommand() *cobra.Command {
	var (
		dangerous bool
		wait      bool
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a Kubernetes cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ocean.ParseClusterID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := context.Background()

			if dangerous {
				err = client.Kubernetes().DeleteWithAssociatedResources(ctx, id)
			} else {
				err = client.Kubernetes().Delete(ctx, id)
			}

			if err != nil {
				return fmt.Errorf("deleting cluster: %w", err)
			}

			if wait {
				err = client.Kubernetes().WaitForDestroy(ctx, id, timeout)
				if err != nil {
					return fmt.Errorf("waiting for destroy: %w", err)
				}
			}

			fmt.Printf("Deleted cluster %s\n", id)

			return nil
		},
	}

	cmd.Flags().BoolVar(&dangerous, "dangerous", false, "also destroy associated volumes and load balancers")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the cluster is gone")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "wait budget")

	return cmd
}

func newK8sKubeconfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kubeconfig <id>",
		Short: "Print a cluster's kubeconfig",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ocean.ParseClusterID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			kubeconfig, err := client.Kubernetes().Kubeconfig(context.Background(), id)
			if err != nil {
				return fmt.Errorf("getting kubeconfig: %w", err)
			}

			_, err = os.Stdout.Write(kubeconfig)

			return err
		},
	}
}
