package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oceanic-io/ocean-client/internal/constants"
	"github.com/oceanic-io/ocean-client/pkg/ocean"
	"github.com/oceanic-io/ocean-client/pkg/oceanclient"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	defaultJSONIndent = "  "
)

// Common static errors used throughout the commands package.
var (
	ErrNotLoggedIn        = errors.New("not logged in: run 'ocean login' or set --api and --token")
	ErrDropletNotFound    = errors.New("droplet not found")
	ErrClusterNotFound    = errors.New("cluster not found")
	ErrDatabaseNotFound   = errors.New("database not found")
	ErrPublicKeyRequired  = errors.New("public key is required")
	ErrInvalidPoolSpec    = errors.New("invalid node pool spec, expected name:size:count")
	ErrInvalidWindowSpec  = errors.New("invalid maintenance window, expected day:HH:MM")
	ErrConfigKeyUnknown   = errors.New("unknown configuration key")
	ErrValueRequired      = errors.New("value is required")
)

// createClient builds an API client from the effective configuration.
func createClient() (ocean.Client, error) {
	apiEndpoint := viper.GetString("api")
	token := viper.GetString("token")

	if apiEndpoint == "" || token == "" {
		return nil, ErrNotLoggedIn
	}

	config := &ocean.Config{
		APIEndpoint: apiEndpoint,
		AccessToken: token,
		Debug:       viper.GetBool("verbose"),
	}

	if viper.GetBool("verbose") {
		config.Logger = &stderrLogger{}
	}

	client, err := oceanclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// renderJSON writes v to stdout as indented JSON.
func renderJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", defaultJSONIndent)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// renderYAML writes v to stdout as YAML.
func renderYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	return encoder.Close()
}

// formatTime renders a timestamp for table output.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return t.Format("2006-01-02 15:04:05")
}

// formatTags joins tags for table output.
func formatTags(tags []string) string {
	if len(tags) == 0 {
		return constants.NotAvailable
	}

	return strings.Join(tags, ", ")
}

// formatBool renders a boolean for table output.
func formatBool(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

// stderrLogger writes structured debug output to stderr.
type stderrLogger struct{}

func (l *stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s %v\n", level, msg, fields)
}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l *stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l *stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l *stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }
