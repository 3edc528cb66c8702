package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/oceanic-io/ocean-client/internal/http"
	"github.com/oceanic-io/ocean-client/pkg/ocean"
)

// RegistryClient implements ocean.RegistryClient. The API serves a
// single registry per account, addressed by name.
type RegistryClient struct {
	httpClient *http.Client
	waitOpts   ocean.WaitOptions
}

// NewRegistryClient creates a new registry client.
func NewRegistryClient(httpClient *http.Client, waitOpts ocean.WaitOptions) *RegistryClient {
	return &RegistryClient{httpClient: httpClient, waitOpts: waitOpts}
}

type registryResponse struct {
	Registry *ocean.Registry `json:"registry"`
}

type repositoriesListResponse struct {
	Repositories []ocean.Repository `json:"repositories"`
	Links        ocean.Links        `json:"links"`
	Meta         ocean.Meta         `json:"meta"`
}

type tagsListResponse struct {
	Tags  []ocean.RepositoryTag `json:"tags"`
	Links ocean.Links           `json:"links"`
	Meta  ocean.Meta            `json:"meta"`
}

type garbageCollectionResponse struct {
	GarbageCollection *ocean.GarbageCollection `json:"garbage_collection"`
}

// Get implements ocean.RegistryClient.Get. A registry that exists under
// a different name surfaces as a NotFoundError for the requested name.
func (c *RegistryClient) Get(ctx context.Context, name ocean.RegistryName) (*ocean.Registry, error) {
	resp, err := c.httpClient.Get(ctx, "/v2/registry", nil)
	if err != nil {
		return nil, fmt.Errorf("getting registry: %w", err)
	}

	var result registryResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing registry response: %w", err)
	}

	if result.Registry.Name != name {
		return nil, &ocean.NotFoundError{Kind: "registry", ID: name.String()}
	}

	return result.Registry, nil
}

// registryReconciler adapts the client to the reconciliation engine.
type registryReconciler struct {
	c *RegistryClient
}

func (r registryReconciler) Kind() string {
	return "registry"
}

func (r registryReconciler) Create(ctx context.Context, desired *ocean.RegistrySpec) (*ocean.Registry, error) {
	resp, err := r.c.httpClient.Post(ctx, "/v2/registry", desired.CreateRequest())
	if err != nil {
		return nil, err
	}

	var result registryResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing registry response: %w", err)
	}

	return result.Registry, nil
}

func (r registryReconciler) FindByName(ctx context.Context, name string) (*ocean.Registry, bool, error) {
	registry, err := r.c.Get(ctx, ocean.RegistryName(name))
	if ocean.IsNotFound(err) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	return registry, true, nil
}

func (r registryReconciler) Patch(ctx context.Context, live *ocean.Registry, desired *ocean.RegistrySpec) (*ocean.Registry, error) {
	req := desired.UpdateRequest(live)

	resp, err := r.c.httpClient.Patch(ctx, "/v2/registry", req)
	if err != nil {
		return nil, err
	}

	var result registryResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing registry response: %w", err)
	}

	return result.Registry, nil
}

// Create implements ocean.RegistryClient.Create.
func (c *RegistryClient) Create(ctx context.Context, spec *ocean.RegistrySpec) (ocean.CreateResult[*ocean.Registry], error) {
	return ocean.CreateOrConflict(ctx, registryReconciler{c}, spec)
}

// Update implements ocean.RegistryClient.Update.
func (c *RegistryClient) Update(ctx context.Context, live *ocean.Registry, spec *ocean.RegistrySpec) (*ocean.Registry, bool, error) {
	return ocean.Update(ctx, registryReconciler{c}, live, spec)
}

// Delete implements ocean.RegistryClient.Delete.
func (c *RegistryClient) Delete(ctx context.Context, name ocean.RegistryName) error {
	_, err := c.httpClient.Delete(ctx, "/v2/registry")
	if err != nil {
		return fmt.Errorf("deleting registry: %w", err)
	}

	return nil
}

// ListRepositories implements ocean.RegistryClient.ListRepositories.
func (c *RegistryClient) ListRepositories(ctx context.Context, name ocean.RegistryName, params *ocean.QueryParams) (*ocean.Page[ocean.Repository], error) {
	path := fmt.Sprintf("/v2/registry/%s/repositories", name)

	resp, err := c.httpClient.Get(ctx, path, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}

	var result repositoriesListResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing repositories list response: %w", err)
	}

	return &ocean.Page[ocean.Repository]{
		Items: result.Repositories,
		Links: result.Links,
		Meta:  result.Meta,
	}, nil
}

// ListTags implements ocean.RegistryClient.ListTags.
func (c *RegistryClient) ListTags(ctx context.Context, name ocean.RegistryName, repository string, params *ocean.QueryParams) (*ocean.Page[ocean.RepositoryTag], error) {
	path := fmt.Sprintf("/v2/registry/%s/repositories/%s/tags", name, url.PathEscape(repository))

	resp, err := c.httpClient.Get(ctx, path, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var result tagsListResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing tags list response: %w", err)
	}

	return &ocean.Page[ocean.RepositoryTag]{
		Items: result.Tags,
		Links: result.Links,
		Meta:  result.Meta,
	}, nil
}

// DeleteTag implements ocean.RegistryClient.DeleteTag.
func (c *RegistryClient) DeleteTag(ctx context.Context, name ocean.RegistryName, repository, tag string) error {
	path := fmt.Sprintf("/v2/registry/%s/repositories/%s/tags/%s", name, url.PathEscape(repository), url.PathEscape(tag))

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}

	return nil
}

// DeleteManifest implements ocean.RegistryClient.DeleteManifest.
func (c *RegistryClient) DeleteManifest(ctx context.Context, name ocean.RegistryName, repository, digest string) error {
	path := fmt.Sprintf("/v2/registry/%s/repositories/%s/digests/%s", name, url.PathEscape(repository), url.PathEscape(digest))

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting manifest: %w", err)
	}

	return nil
}

// StartGarbageCollection implements ocean.RegistryClient.StartGarbageCollection.
func (c *RegistryClient) StartGarbageCollection(ctx context.Context, name ocean.RegistryName) (*ocean.GarbageCollection, error) {
	path := fmt.Sprintf("/v2/registry/%s/garbage-collection", name)

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("starting garbage collection: %w", err)
	}

	var result garbageCollectionResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing garbage collection response: %w", err)
	}

	return result.GarbageCollection, nil
}

// GetGarbageCollection implements ocean.RegistryClient.GetGarbageCollection.
func (c *RegistryClient) GetGarbageCollection(ctx context.Context, name ocean.RegistryName) (*ocean.GarbageCollection, error) {
	path := fmt.Sprintf("/v2/registry/%s/garbage-collection", name)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting garbage collection: %w", err)
	}

	var result garbageCollectionResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing garbage collection response: %w", err)
	}

	return result.GarbageCollection, nil
}

// WaitForGarbageCollection implements
// ocean.RegistryClient.WaitForGarbageCollection: polls until the active
// run reports "succeeded". A run ending in "failed" keeps polling until
// the budget runs out, mirroring the status-or-timeout contract.
func (c *RegistryClient) WaitForGarbageCollection(ctx context.Context, name ocean.RegistryName, timeout time.Duration) (*ocean.GarbageCollection, error) {
	return ocean.WaitForStatus(ctx, "garbage collection", name.String(), ocean.GCStatusSucceeded,
		func(ctx context.Context) (*ocean.GarbageCollection, error) {
			return c.GetGarbageCollection(ctx, name)
		},
		func(gc *ocean.GarbageCollection) string {
			return gc.Status
		},
		timeout, c.waitOpts)
}

// WaitForDestroy implements ocean.RegistryClient.WaitForDestroy.
func (c *RegistryClient) WaitForDestroy(ctx context.Context, name ocean.RegistryName, timeout time.Duration) error {
	return ocean.WaitForDestroy(ctx, "registry", name.String(),
		func(ctx context.Context) (*ocean.Registry, error) {
			return c.Get(ctx, name)
		},
		timeout, c.waitOpts)
}
