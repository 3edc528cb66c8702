package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oceanic-io/ocean-client/internal/http"
	"github.com/oceanic-io/ocean-client/pkg/ocean"
)

// VPCsClient implements ocean.VPCsClient.
type VPCsClient struct {
	httpClient *http.Client
}

// NewVPCsClient creates a new VPCs client.
func NewVPCsClient(httpClient *http.Client) *VPCsClient {
	return &VPCsClient{httpClient: httpClient}
}

type vpcResponse struct {
	VPC *ocean.VPC `json:"vpc"`
}

type vpcsListResponse struct {
	VPCs  []*ocean.VPC `json:"vpcs"`
	Links ocean.Links  `json:"links"`
	Meta  ocean.Meta   `json:"meta"`
}

// Get implements ocean.VPCsClient.Get.
func (c *VPCsClient) Get(ctx context.Context, id ocean.VPCID) (*ocean.VPC, error) {
	path := fmt.Sprintf("/v2/vpcs/%s", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting VPC: %w", err)
	}

	var result vpcResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing VPC response: %w", err)
	}

	return result.VPC, nil
}

// ListAll implements ocean.VPCsClient.ListAll.
func (c *VPCsClient) ListAll(ctx context.Context) ([]*ocean.VPC, error) {
	return ocean.CollectAll(ctx, func(ctx context.Context, page int) (*ocean.Page[*ocean.VPC], error) {
		query := (&ocean.QueryParams{}).WithPage(page).ToValues()

		resp, err := c.httpClient.Get(ctx, "/v2/vpcs", query)
		if err != nil {
			return nil, fmt.Errorf("listing VPCs: %w", err)
		}

		var result vpcsListResponse
		if err := json.Unmarshal(resp.Body, &result); err != nil {
			return nil, fmt.Errorf("parsing VPCs list response: %w", err)
		}

		return &ocean.Page[*ocean.VPC]{
			Items: result.VPCs,
			Links: result.Links,
			Meta:  result.Meta,
		}, nil
	})
}

// Create implements ocean.VPCsClient.Create.
func (c *VPCsClient) Create(ctx context.Context, req *ocean.VPCCreateRequest) (*ocean.VPC, error) {
	resp, err := c.httpClient.Post(ctx, "/v2/vpcs", req)
	if err != nil {
		return nil, fmt.Errorf("creating VPC: %w", err)
	}

	var result vpcResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing VPC response: %w", err)
	}

	return result.VPC, nil
}

// Update implements ocean.VPCsClient.Update.
func (c *VPCsClient) Update(ctx context.Context, id ocean.VPCID, req *ocean.VPCUpdateRequest) (*ocean.VPC, error) {
	path := fmt.Sprintf("/v2/vpcs/%s", id)

	resp, err := c.httpClient.Put(ctx, path, req)
	if err != nil {
		return nil, fmt.Errorf("updating VPC: %w", err)
	}

	var result vpcResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing VPC response: %w", err)
	}

	return result.VPC, nil
}

// Delete implements ocean.VPCsClient.Delete. A VPC with members cannot
// be deleted; the API answers 403.
func (c *VPCsClient) Delete(ctx context.Context, id ocean.VPCID) error {
	path := fmt.Sprintf("/v2/vpcs/%s", id)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting VPC: %w", err)
	}

	return nil
}
