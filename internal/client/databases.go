package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oceanic-io/ocean-client/internal/http"
	"github.com/oceanic-io/ocean-client/pkg/ocean"
)

// DatabasesClient implements ocean.DatabasesClient.
type DatabasesClient struct {
	httpClient *http.Client
	waitOpts   ocean.WaitOptions
}

// NewDatabasesClient creates a new databases client.
func NewDatabasesClient(httpClient *http.Client, waitOpts ocean.WaitOptions) *DatabasesClient {
	return &DatabasesClient{httpClient: httpClient, waitOpts: waitOpts}
}

type databaseResponse struct {
	Database *ocean.DatabaseCluster `json:"database"`
}

type databasesListResponse struct {
	Databases []*ocean.DatabaseCluster `json:"databases"`
	Links     ocean.Links              `json:"links"`
	Meta      ocean.Meta               `json:"meta"`
}

type databaseUserResponse struct {
	User *ocean.DatabaseUser `json:"user"`
}

type firewallRulesResponse struct {
	Rules []ocean.FirewallRule `json:"rules"`
}

// Get implements ocean.DatabasesClient.Get.
func (c *DatabasesClient) Get(ctx context.Context, id ocean.DatabaseID) (*ocean.DatabaseCluster, error) {
	path := fmt.Sprintf("/v2/databases/%s", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting database: %w", err)
	}

	var result databaseResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing database response: %w", err)
	}

	return result.Database, nil
}

// ListPage implements ocean.DatabasesClient.ListPage.
func (c *DatabasesClient) ListPage(ctx context.Context, params *ocean.QueryParams) (*ocean.Page[*ocean.DatabaseCluster], error) {
	query := params.ToValues()

	resp, err := c.httpClient.Get(ctx, "/v2/databases", query)
	if err != nil {
		return nil, fmt.Errorf("listing databases: %w", err)
	}

	var result databasesListResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing databases list response: %w", err)
	}

	return &ocean.Page[*ocean.DatabaseCluster]{
		Items: result.Databases,
		Links: result.Links,
		Meta:  result.Meta,
	}, nil
}

// ListAll implements ocean.DatabasesClient.ListAll.
func (c *DatabasesClient) ListAll(ctx context.Context) ([]*ocean.DatabaseCluster, error) {
	return ocean.CollectAll(ctx, func(ctx context.Context, page int) (*ocean.Page[*ocean.DatabaseCluster], error) {
		return c.ListPage(ctx, (&ocean.QueryParams{}).WithPage(page))
	})
}

// FindByName implements ocean.DatabasesClient.FindByName.
func (c *DatabasesClient) FindByName(ctx context.Context, name string) (*ocean.DatabaseCluster, bool, error) {
	return ocean.FindFirst(ctx, func(ctx context.Context, page int) (*ocean.Page[*ocean.DatabaseCluster], error) {
		return c.ListPage(ctx, (&ocean.QueryParams{}).WithPage(page))
	}, func(db *ocean.DatabaseCluster) bool {
		return db.Name == name
	})
}

// databaseReconciler adapts the client to the reconciliation engine.
type databaseReconciler struct {
	c *DatabasesClient
}

func (r databaseReconciler) Kind() string {
	return "database cluster"
}

func (r databaseReconciler) Create(ctx context.Context, desired *ocean.DatabaseSpec) (*ocean.DatabaseCluster, error) {
	resp, err := r.c.httpClient.Post(ctx, "/v2/databases", desired.CreateRequest())
	if err != nil {
		return nil, err
	}

	var result databaseResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing database response: %w", err)
	}

	created := result.Database

	// The maintenance window travels on its own endpoint and cannot be
	// set at creation time.
	if window, ok := desired.Maintenance(); ok && !window.Equal(created.Maintenance) {
		err = r.c.SetMaintenanceWindow(ctx, created.ID, window)
		if err != nil {
			return nil, err
		}

		created.Maintenance = window
	}

	return created, nil
}

func (r databaseReconciler) FindByName(ctx context.Context, name string) (*ocean.DatabaseCluster, bool, error) {
	return r.c.FindByName(ctx, name)
}

func (r databaseReconciler) Patch(ctx context.Context, live *ocean.DatabaseCluster, desired *ocean.DatabaseSpec) (*ocean.DatabaseCluster, error) {
	req := desired.UpdateRequest(live)
	if !req.IsEmpty() {
		path := fmt.Sprintf("/v2/databases/%s", live.ID)

		_, err := r.c.httpClient.Put(ctx, path, req)
		if err != nil {
			return nil, err
		}
	}

	if window, ok := desired.Maintenance(); ok && !window.Equal(live.Maintenance) {
		err := r.c.SetMaintenanceWindow(ctx, live.ID, window)
		if err != nil {
			return nil, err
		}
	}

	return r.c.Get(ctx, live.ID)
}

// Create implements ocean.DatabasesClient.Create.
func (c *DatabasesClient) Create(ctx context.Context, spec *ocean.DatabaseSpec) (ocean.CreateResult[*ocean.DatabaseCluster], error) {
	return ocean.CreateOrConflict(ctx, databaseReconciler{c}, spec)
}

// Update implements ocean.DatabasesClient.Update.
func (c *DatabasesClient) Update(ctx context.Context, live *ocean.DatabaseCluster, spec *ocean.DatabaseSpec) (*ocean.DatabaseCluster, bool, error) {
	return ocean.Update(ctx, databaseReconciler{c}, live, spec)
}

// Delete implements ocean.DatabasesClient.Delete.
func (c *DatabasesClient) Delete(ctx context.Context, id ocean.DatabaseID) error {
	path := fmt.Sprintf("/v2/databases/%s", id)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting database: %w", err)
	}

	return nil
}

// Resize implements ocean.DatabasesClient.Resize. The cluster reports
// status "resizing" until the new plan is live.
func (c *DatabasesClient) Resize(ctx context.Context, id ocean.DatabaseID, req *ocean.DatabaseResizeRequest) error {
	path := fmt.Sprintf("/v2/databases/%s/resize", id)

	_, err := c.httpClient.Put(ctx, path, req)
	if err != nil {
		return fmt.Errorf("resizing database: %w", err)
	}

	return nil
}

// SetMaintenanceWindow implements ocean.DatabasesClient.SetMaintenanceWindow.
func (c *DatabasesClient) SetMaintenanceWindow(ctx context.Context, id ocean.DatabaseID, window ocean.MaintenanceWindow) error {
	path := fmt.Sprintf("/v2/databases/%s/maintenance", id)

	_, err := c.httpClient.Put(ctx, path, window)
	if err != nil {
		return fmt.Errorf("setting maintenance window: %w", err)
	}

	return nil
}

// CreateUser implements ocean.DatabasesClient.CreateUser. The response
// is the only place the generated password appears.
func (c *DatabasesClient) CreateUser(ctx context.Context, id ocean.DatabaseID, req *ocean.DatabaseUserCreateRequest) (*ocean.DatabaseUser, error) {
	path := fmt.Sprintf("/v2/databases/%s/users", id)

	resp, err := c.httpClient.Post(ctx, path, req)
	if err != nil {
		return nil, fmt.Errorf("creating database user: %w", err)
	}

	var result databaseUserResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing database user response: %w", err)
	}

	return result.User, nil
}

// DeleteUser implements ocean.DatabasesClient.DeleteUser.
func (c *DatabasesClient) DeleteUser(ctx context.Context, id ocean.DatabaseID, name string) error {
	path := fmt.Sprintf("/v2/databases/%s/users/%s", id, name)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting database user: %w", err)
	}

	return nil
}

// SetFirewallRules implements ocean.DatabasesClient.SetFirewallRules.
// The rule set is replaced wholesale.
func (c *DatabasesClient) SetFirewallRules(ctx context.Context, id ocean.DatabaseID, rules []ocean.FirewallRule) error {
	path := fmt.Sprintf("/v2/databases/%s/firewall", id)

	_, err := c.httpClient.Put(ctx, path, &ocean.FirewallRulesRequest{Rules: rules})
	if err != nil {
		return fmt.Errorf("setting firewall rules: %w", err)
	}

	return nil
}

// FirewallRules implements ocean.DatabasesClient.FirewallRules.
func (c *DatabasesClient) FirewallRules(ctx context.Context, id ocean.DatabaseID) ([]ocean.FirewallRule, error) {
	path := fmt.Sprintf("/v2/databases/%s/firewall", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting firewall rules: %w", err)
	}

	var result firewallRulesResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing firewall rules response: %w", err)
	}

	return result.Rules, nil
}

// WaitForStatus implements ocean.DatabasesClient.WaitForStatus.
func (c *DatabasesClient) WaitForStatus(ctx context.Context, id ocean.DatabaseID, target ocean.DatabaseStatus, timeout time.Duration) (*ocean.DatabaseCluster, error) {
	return ocean.WaitForStatus(ctx, "database cluster", id.String(), string(target),
		func(ctx context.Context) (*ocean.DatabaseCluster, error) {
			return c.Get(ctx, id)
		},
		func(db *ocean.DatabaseCluster) string {
			return string(db.Status)
		},
		timeout, c.waitOpts)
}

// WaitForDestroy implements ocean.DatabasesClient.WaitForDestroy.
func (c *DatabasesClient) WaitForDestroy(ctx context.Context, id ocean.DatabaseID, timeout time.Duration) error {
	return ocean.WaitForDestroy(ctx, "database cluster", id.String(),
		func(ctx context.Context) (*ocean.DatabaseCluster, error) {
			return c.Get(ctx, id)
		},
		timeout, c.waitOpts)
}
