package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oceanic-io/ocean-client/internal/http"
	"github.com/oceanic-io/ocean-client/pkg/ocean"
)

// DropletsClient implements ocean.DropletsClient.
type DropletsClient struct {
	httpClient *http.Client
	waitOpts   ocean.WaitOptions
}

// NewDropletsClient creates a new droplets client.
func NewDropletsClient(httpClient *http.Client, waitOpts ocean.WaitOptions) *DropletsClient {
	return &DropletsClient{httpClient: httpClient, waitOpts: waitOpts}
}

type dropletResponse struct {
	Droplet *ocean.Droplet `json:"droplet"`
}

type dropletsListResponse struct {
	Droplets []*ocean.Droplet `json:"droplets"`
	Links    ocean.Links      `json:"links"`
	Meta     ocean.Meta       `json:"meta"`
}

type actionResponse struct {
	Action *ocean.Action `json:"action"`
}

// Get implements ocean.DropletsClient.Get.
func (c *DropletsClient) Get(ctx context.Context, id ocean.DropletID) (*ocean.Droplet, error) {
	path := fmt.Sprintf("/v2/droplets/%d", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting droplet: %w", err)
	}

	var result dropletResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing droplet response: %w", err)
	}

	return result.Droplet, nil
}

// ListPage implements ocean.DropletsClient.ListPage.
func (c *DropletsClient) ListPage(ctx context.Context, params *ocean.QueryParams) (*ocean.Page[*ocean.Droplet], error) {
	query := params.ToValues()

	resp, err := c.httpClient.Get(ctx, "/v2/droplets", query)
	if err != nil {
		return nil, fmt.Errorf("listing droplets: %w", err)
	}

	var result dropletsListResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing droplets list response: %w", err)
	}

	return &ocean.Page[*ocean.Droplet]{
		Items: result.Droplets,
		Links: result.Links,
		Meta:  result.Meta,
	}, nil
}

// ListAll implements ocean.DropletsClient.ListAll.
func (c *DropletsClient) ListAll(ctx context.Context) ([]*ocean.Droplet, error) {
	return ocean.CollectAll(ctx, func(ctx context.Context, page int) (*ocean.Page[*ocean.Droplet], error) {
		return c.ListPage(ctx, (&ocean.QueryParams{}).WithPage(page))
	})
}

// FindByName implements ocean.DropletsClient.FindByName. The name
// filter narrows the listing server-side; the exact match is still
// verified here.
func (c *DropletsClient) FindByName(ctx context.Context, name string) (*ocean.Droplet, bool, error) {
	params := &ocean.QueryParams{Name: name}

	return ocean.FindFirst(ctx, func(ctx context.Context, page int) (*ocean.Page[*ocean.Droplet], error) {
		return c.ListPage(ctx, params.WithPage(page))
	}, func(d *ocean.Droplet) bool {
		return d.Name == name
	})
}

// dropletReconciler adapts the client to the reconciliation engine.
type dropletReconciler struct {
	c *DropletsClient
}

func (r dropletReconciler) Kind() string {
	return "droplet"
}

func (r dropletReconciler) Create(ctx context.Context, desired *ocean.DropletSpec) (*ocean.Droplet, error) {
	resp, err := r.c.httpClient.Post(ctx, "/v2/droplets", desired.CreateRequest())
	if err != nil {
		return nil, err
	}

	var result dropletResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing droplet response: %w", err)
	}

	return result.Droplet, nil
}

func (r dropletReconciler) FindByName(ctx context.Context, name string) (*ocean.Droplet, bool, error) {
	return r.c.FindByName(ctx, name)
}

func (r dropletReconciler) Patch(ctx context.Context, live *ocean.Droplet, desired *ocean.DropletSpec) (*ocean.Droplet, error) {
	req := desired.UpdateRequest(live)

	path := fmt.Sprintf("/v2/droplets/%d", live.ID)

	resp, err := r.c.httpClient.Put(ctx, path, req)
	if err != nil {
		return nil, err
	}

	var result dropletResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing droplet response: %w", err)
	}

	return result.Droplet, nil
}

// Create implements ocean.DropletsClient.Create.
func (c *DropletsClient) Create(ctx context.Context, spec *ocean.DropletSpec) (ocean.CreateResult[*ocean.Droplet], error) {
	return ocean.CreateOrConflict(ctx, dropletReconciler{c}, spec)
}

// Update implements ocean.DropletsClient.Update.
func (c *DropletsClient) Update(ctx context.Context, live *ocean.Droplet, spec *ocean.DropletSpec) (*ocean.Droplet, bool, error) {
	return ocean.Update(ctx, dropletReconciler{c}, live, spec)
}

// Delete implements ocean.DropletsClient.Delete.
func (c *DropletsClient) Delete(ctx context.Context, id ocean.DropletID) error {
	path := fmt.Sprintf("/v2/droplets/%d", id)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting droplet: %w", err)
	}

	return nil
}

// Action implements ocean.DropletsClient.Action.
func (c *DropletsClient) Action(ctx context.Context, id ocean.DropletID, req *ocean.DropletActionRequest) (*ocean.Action, error) {
	path := fmt.Sprintf("/v2/droplets/%d/actions", id)

	resp, err := c.httpClient.Post(ctx, path, req)
	if err != nil {
		return nil, fmt.Errorf("submitting droplet action: %w", err)
	}

	var result actionResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing action response: %w", err)
	}

	return result.Action, nil
}

// WaitForStatus implements ocean.DropletsClient.WaitForStatus.
func (c *DropletsClient) WaitForStatus(ctx context.Context, id ocean.DropletID, target ocean.DropletStatus, timeout time.Duration) (*ocean.Droplet, error) {
	return ocean.WaitForStatus(ctx, "droplet", id.String(), string(target),
		func(ctx context.Context) (*ocean.Droplet, error) {
			return c.Get(ctx, id)
		},
		func(d *ocean.Droplet) string {
			return string(d.Status)
		},
		timeout, c.waitOpts)
}

// WaitForDestroy implements ocean.DropletsClient.WaitForDestroy.
func (c *DropletsClient) WaitForDestroy(ctx context.Context, id ocean.DropletID, timeout time.Duration) error {
	return ocean.WaitForDestroy(ctx, "droplet", id.String(),
		func(ctx context.Context) (*ocean.Droplet, error) {
			return c.Get(ctx, id)
		},
		timeout, c.waitOpts)
}
