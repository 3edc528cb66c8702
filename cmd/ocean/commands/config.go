package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oceanic-io/ocean-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration.
type Config struct {
	API    string `json:"api,omitempty"   yaml:"api,omitempty"`
	Token  string `json:"token,omitempty" yaml:"token,omitempty"`
	Output string `json:"output"          yaml:"output"`
}

// loadConfig builds the effective configuration from viper.
func loadConfig() *Config {
	return &Config{
		API:    viper.GetString("api"),
		Token:  viper.GetString("token"),
		Output: viper.GetString("output"),
	}
}

// configFilePath resolves the config file location, creating the
// directory when needed.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	configDir := filepath.Join(home, ".ocean")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

// saveConfig persists the configuration as YAML.
func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and modify the persisted CLI configuration",
	}

	cmd.AddCommand(newConfigViewCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			// Never print the raw token
			display := *config
			if display.Token != "" {
				display.Token = constants.MaskedSecret
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(&display)
			default:
				return renderYAML(&display)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if value == "" {
				return ErrValueRequired
			}

			config := loadConfig()

			switch key {
			case "api":
				config.API = value
			case "token":
				config.Token = value
			case "output":
				config.Output = value
			default:
				return fmt.Errorf("%w: %s", ErrConfigKeyUnknown, key)
			}

			err := saveConfig(config)
			if err != nil {
				return err
			}

			fmt.Printf("Set %s\n", key)

			return nil
		},
	}
}
