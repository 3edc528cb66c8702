package oceanclient

import (
	"fmt"
	"strings"

	"github.com/oceanic-io/ocean-client/internal/client"
	"github.com/oceanic-io/ocean-client/pkg/ocean"
)

// New creates a new Ocean API client.
func New(config *ocean.Config) (ocean.Client, error) {
	if config == nil {
		return nil, ocean.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, ocean.ErrAPIEndpointRequired
	}

	// Normalize API endpoint
	apiEndpoint := strings.TrimSuffix(config.APIEndpoint, "/")
	if !strings.HasPrefix(apiEndpoint, "http://") && !strings.HasPrefix(apiEndpoint, "https://") {
		apiEndpoint = "https://" + apiEndpoint
	}

	config.APIEndpoint = apiEndpoint

	oceanClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return oceanClient, nil
}

// NewWithToken creates a client for the given endpoint and static
// bearer token with default settings.
func NewWithToken(apiEndpoint, accessToken string) (ocean.Client, error) {
	return New(&ocean.Config{
		APIEndpoint: apiEndpoint,
		AccessToken: accessToken,
	})
}
