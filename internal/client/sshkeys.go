package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oceanic-io/ocean-client/internal/http"
	"github.com/oceanic-io/ocean-client/pkg/ocean"
)

// SSHKeysClient implements ocean.SSHKeysClient.
type SSHKeysClient struct {
	httpClient *http.Client
}

// NewSSHKeysClient creates a new SSH keys client.
func NewSSHKeysClient(httpClient *http.Client) *SSHKeysClient {
	return &SSHKeysClient{httpClient: httpClient}
}

type sshKeyResponse struct {
	SSHKey *ocean.SSHKey `json:"ssh_key"`
}

type sshKeysListResponse struct {
	SSHKeys []*ocean.SSHKey `json:"ssh_keys"`
	Links   ocean.Links     `json:"links"`
	Meta    ocean.Meta      `json:"meta"`
}

// Get implements ocean.SSHKeysClient.Get.
func (c *SSHKeysClient) Get(ctx context.Context, id ocean.SSHKeyID) (*ocean.SSHKey, error) {
	path := fmt.Sprintf("/v2/account/keys/%d", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting SSH key: %w", err)
	}

	var result sshKeyResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing SSH key response: %w", err)
	}

	return result.SSHKey, nil
}

// ListAll implements ocean.SSHKeysClient.ListAll.
func (c *SSHKeysClient) ListAll(ctx context.Context) ([]*ocean.SSHKey, error) {
	return ocean.CollectAll(ctx, func(ctx context.Context, page int) (*ocean.Page[*ocean.SSHKey], error) {
		query := (&ocean.QueryParams{}).WithPage(page).ToValues()

		resp, err := c.httpClient.Get(ctx, "/v2/account/keys", query)
		if err != nil {
			return nil, fmt.Errorf("listing SSH keys: %w", err)
		}

		var result sshKeysListResponse
		if err := json.Unmarshal(resp.Body, &result); err != nil {
			return nil, fmt.Errorf("parsing SSH keys list response: %w", err)
		}

		return &ocean.Page[*ocean.SSHKey]{
			Items: result.SSHKeys,
			Links: result.Links,
			Meta:  result.Meta,
		}, nil
	})
}

// Create implements ocean.SSHKeysClient.Create.
func (c *SSHKeysClient) Create(ctx context.Context, req *ocean.SSHKeyCreateRequest) (*ocean.SSHKey, error) {
	resp, err := c.httpClient.Post(ctx, "/v2/account/keys", req)
	if err != nil {
		return nil, fmt.Errorf("creating SSH key: %w", err)
	}

	var result sshKeyResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing SSH key response: %w", err)
	}

	return result.SSHKey, nil
}

// Rename implements ocean.SSHKeysClient.Rename. The name is the only
// mutable field on an SSH key.
func (c *SSHKeysClient) Rename(ctx context.Context, id ocean.SSHKeyID, name string) (*ocean.SSHKey, error) {
	path := fmt.Sprintf("/v2/account/keys/%d", id)

	resp, err := c.httpClient.Put(ctx, path, &ocean.SSHKeyUpdateRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("renaming SSH key: %w", err)
	}

	var result sshKeyResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing SSH key response: %w", err)
	}

	return result.SSHKey, nil
}

// Delete implements ocean.SSHKeysClient.Delete.
func (c *SSHKeysClient) Delete(ctx context.Context, id ocean.SSHKeyID) error {
	path := fmt.Sprintf("/v2/account/keys/%d", id)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting SSH key: %w", err)
	}

	return nil
}
