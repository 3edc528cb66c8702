package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/oceanic-io/ocean-client/pkg/ocean"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewSSHKeysCommand creates the ssh-keys command group.
func NewSSHKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ssh-keys",
		Aliases: []string{"keys"},
		Short:   "Manage SSH keys",
		Long:    "List, add, rename, and remove account SSH keys",
	}

	cmd.AddCommand(newSSHKeysListCommand())
	cmd.AddCommand(newSSHKeysAddCommand())
	cmd.AddCommand(newSSHKeysRenameCommand())
	cmd.AddCommand(newSSHKeysDeleteCommand())

	return cmd
}

func parseSSHKeyID(raw string) (ocean.SSHKeyID, error) {
	num, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing SSH key ID %q: %w", raw, err)
	}

	return ocean.NewSSHKeyID(num)
}

func newSSHKeysListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List SSH keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			keys, err := client.SSHKeys().ListAll(context.Background())
			if err != nil {
				return fmt.Errorf("listing SSH keys: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(keys)
			case OutputFormatYAML:
				return renderYAML(keys)
			default:
				if len(keys) == 0 {
					fmt.Println("No SSH keys found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Fingerprint")

				for _, key := range keys {
					_ = table.Append(key.ID.String(), key.Name, key.Fingerprint)
				}

				_ = table.Render()

				return nil
			}
		},
	}
}

func newSSHKeysAddCommand() *cobra.Command {
	var (
		publicKey     string
		publicKeyFile string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an SSH key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if publicKey == "" && publicKeyFile != "" {
				data, err := os.ReadFile(publicKeyFile)
				if err != nil {
					return fmt.Errorf("reading public key file: %w", err)
				}

				publicKey = strings.TrimSpace(string(data))
			}

			if publicKey == "" {
				return ErrPublicKeyRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			key, err := client.SSHKeys().Create(context.Background(), &ocean.SSHKeyCreateRequest{
				Name:      args[0],
				PublicKey: publicKey,
			})
			if err != nil {
				return fmt.Errorf("adding SSH key: %w", err)
			}

			fmt.Printf("Added SSH key %s (%s)\n", key.ID, key.Fingerprint)

			return nil
		},
	}

	cmd.Flags().StringVar(&publicKey, "public-key", "", "public key material")
	cmd.Flags().StringVar(&publicKeyFile, "public-key-file", "", "file containing the public key")

	return cmd
}

func newSSHKeysRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename an SSH key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSSHKeyID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			key, err := client.SSHKeys().Rename(context.Background(), id, args[1])
			if err != nil {
				return fmt.Errorf("renaming SSH key: %w", err)
			}

			fmt.Printf("Renamed SSH key %s to %q\n", key.ID, key.Name)

			return nil
		},
	}
}

func newSSHKeysDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an SSH key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSSHKeyID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			err = client.SSHKeys().Delete(context.Background(), id)
			if err != nil {
				return fmt.Errorf("deleting SSH key: %w", err)
			}

			fmt.Printf("Deleted SSH key %s\n", id)

			return nil
		},
	}
}
