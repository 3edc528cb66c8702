// Package client implements the ocean.Client interface against the
// HTTP transport.
package client

import (
	"github.com/oceanic-io/ocean-client/internal/http"
	"github.com/oceanic-io/ocean-client/pkg/ocean"
)

// Client implements ocean.Client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     ocean.Logger
	waitOpts   ocean.WaitOptions

	// Resource clients
	droplets   ocean.DropletsClient
	kubernetes ocean.KubernetesClient
	databases  ocean.DatabasesClient
	registry   ocean.RegistryClient
	sshKeys    ocean.SSHKeysClient
	vpcs       ocean.VPCsClient
	regions    ocean.RegionsClient
	projects   ocean.ProjectsClient

	cache ocean.Cache
}

// createTokenSource picks the token source from config. TokenSource
// wins over a raw access token.
func createTokenSource(config *ocean.Config) (ocean.TokenSource, error) {
	if config.TokenSource != nil {
		return config.TokenSource, nil
	}

	if config.AccessToken != "" {
		return &ocean.StaticTokenSource{AccessToken: config.AccessToken}, nil
	}

	return nil, ocean.ErrAccessTokenRequired
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *ocean.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	return httpOpts
}

// New creates a new Ocean API client.
func New(config *ocean.Config) (*Client, error) {
	if config == nil {
		return nil, ocean.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, ocean.ErrAPIEndpointRequired
	}

	tokens, err := createTokenSource(config)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(config.APIEndpoint, tokens, createHTTPClientOptions(config)...)

	var cache ocean.Cache

	if config.Cache != nil {
		cache, err = ocean.NewCacheFromConfig(config.Cache)
		if err != nil {
			httpClient.Close()

			return nil, err
		}
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    config.APIEndpoint,
		logger:     config.Logger,
		waitOpts: ocean.WaitOptions{
			BaseDelay: config.WaitBaseDelay,
			MaxDelay:  config.WaitMaxDelay,
			Logger:    config.Logger,
		},
		cache: cache,
	}

	client.initializeResourceClients(config)

	return client, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients(config *ocean.Config) {
	c.droplets = NewDropletsClient(c.httpClient, c.waitOpts)
	c.kubernetes = NewKubernetesClient(c.httpClient, c.waitOpts)
	c.databases = NewDatabasesClient(c.httpClient, c.waitOpts)
	c.registry = NewRegistryClient(c.httpClient, c.waitOpts)
	c.sshKeys = NewSSHKeysClient(c.httpClient)
	c.vpcs = NewVPCsClient(c.httpClient)
	c.regions = NewRegionsClient(c.httpClient, c.cache, config.Cache.EntryTTL())
	c.projects = NewProjectsClient(c.httpClient)
}

// Droplets implements ocean.Client.Droplets.
func (c *Client) Droplets() ocean.DropletsClient {
	return c.droplets
}

// Kubernetes implements ocean.Client.Kubernetes.
func (c *Client) Kubernetes() ocean.KubernetesClient {
	return c.kubernetes
}

// Databases implements ocean.Client.Databases.
func (c *Client) Databases() ocean.DatabasesClient {
	return c.databases
}

// Registry implements ocean.Client.Registry.
func (c *Client) Registry() ocean.RegistryClient {
	return c.registry
}

// SSHKeys implements ocean.Client.SSHKeys.
func (c *Client) SSHKeys() ocean.SSHKeysClient {
	return c.sshKeys
}

// VPCs implements ocean.Client.VPCs.
func (c *Client) VPCs() ocean.VPCsClient {
	return c.vpcs
}

// Regions implements ocean.Client.Regions.
func (c *Client) Regions() ocean.RegionsClient {
	return c.regions
}

// Projects implements ocean.Client.Projects.
func (c *Client) Projects() ocean.ProjectsClient {
	return c.projects
}

// Close implements ocean.Client.Close.
func (c *Client) Close() error {
	c.httpClient.Close()

	if c.cache != nil {
		return c.cache.Close()
	}

	return nil
}
