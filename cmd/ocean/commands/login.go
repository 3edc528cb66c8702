package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/oceanic-io/ocean-client/pkg/ocean"
	"github.com/oceanic-io/ocean-client/pkg/oceanclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		token       string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to an Ocean API endpoint",
		Long:  "Verify credentials against an API endpoint and persist them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			if apiEndpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API endpoint: ")
				apiEndpoint, _ = reader.ReadString('\n')
				apiEndpoint = strings.TrimSpace(apiEndpoint)
			}

			if token == "" {
				fmt.Print("Access token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("reading token: %w", err)
				}

				token = strings.TrimSpace(string(byteToken))

				fmt.Println()
			}

			client, err := oceanclient.New(&ocean.Config{
				APIEndpoint: apiEndpoint,
				AccessToken: token,
			})
			if err != nil {
				return fmt.Errorf("creating client: %w", err)
			}
			defer func() { _ = client.Close() }()

			// Verify the credentials before persisting them
			ctx := context.Background()

			project, err := client.Projects().GetDefault(ctx)
			if err != nil {
				return fmt.Errorf("verifying credentials: %w", err)
			}

			config := loadConfig()
			config.API = apiEndpoint
			config.Token = token

			err = saveConfig(config)
			if err != nil {
				return err
			}

			fmt.Printf("Logged in to %s (default project: %s)\n", apiEndpoint, project.Name)

			return nil
		},
	}

	cmd.Flags().StringVarP(&apiEndpoint, "api", "a", "", "API endpoint URL")
	cmd.Flags().StringVarP(&token, "token", "t", "", "access token")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Token = ""

			err := saveConfig(config)
			if err != nil {
				return err
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ocean %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
