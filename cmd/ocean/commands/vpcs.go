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

// NewVPCsCommand creates the vpcs command group.
func NewVPCsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vpcs",
		Aliases: []string{"vpc"},
		Short:   "Manage VPCs",
		Long:    "List, create, update, and delete virtual private networks",
	}

	cmd.AddCommand(newVPCsListCommand())
	cmd.AddCommand(newVPCsGetCommand())
	cmd.AddCommand(newVPCsCreateCommand())
	cmd.AddCommand(newVPCsDeleteCommand())

	return cmd
}

func newVPCsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List VPCs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			vpcs, err := client.VPCs().ListAll(context.Background())
			if err != nil {
				return fmt.Errorf("listing VPCs: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(vpcs)
			case OutputFormatYAML:
				return renderYAML(vpcs)
			default:
				if len(vpcs) == 0 {
					fmt.Println("No VPCs found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Region", "IP Range", "Default", "Created")

				for _, vpc := range vpcs {
					_ = table.Append(vpc.ID.String(), vpc.Name, vpc.Region, vpc.IPRange,
						formatBool(vpc.Default), formatTime(vpc.CreatedAt))
				}

				_ = table.Render()

				return nil
			}
		},
	}
}

func newVPCsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a VPC",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ocean.ParseVPCID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			vpc, err := client.VPCs().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("getting VPC: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(vpc)
			default:
				return renderYAML(vpc)
			}
		},
	}
}

func newVPCsCreateCommand() *cobra.Command {
	var (
		region      string
		ipRange     string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a VPC",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			vpc, err := client.VPCs().Create(context.Background(), &ocean.VPCCreateRequest{
				Name:        args[0],
				Region:      region,
				IPRange:     ipRange,
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("creating VPC: %w", err)
			}

			fmt.Printf("Created VPC %s (%s) in %s\n", vpc.Name, vpc.ID, vpc.Region)

			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "region slug (required)")
	cmd.Flags().StringVar(&ipRange, "ip-range", "", "CIDR range, assigned by the API when omitted")
	cmd.Flags().StringVar(&description, "description", "", "free-form description")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}

func newVPCsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a VPC",
		Long:  "Delete a VPC. The VPC must have no member resources.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ocean.ParseVPCID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			err = client.VPCs().Delete(context.Background(), id)
			if err != nil {
				return fmt.Errorf("deleting VPC: %w", err)
			}

			fmt.Printf("Deleted VPC %s\n", id)

			return nil
		},
	}
}
