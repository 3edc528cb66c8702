package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oceanic-io/ocean-client/internal/http"
	"github.com/oceanic-io/ocean-client/pkg/ocean"
)

// ProjectsClient implements ocean.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{httpClient: httpClient}
}

type projectResponse struct {
	Project *ocean.Project `json:"project"`
}

type projectsListResponse struct {
	Projects []*ocean.Project `json:"projects"`
	Links    ocean.Links      `json:"links"`
	Meta     ocean.Meta       `json:"meta"`
}

// Get implements ocean.ProjectsClient.Get.
func (c *ProjectsClient) Get(ctx context.Context, id ocean.ProjectID) (*ocean.Project, error) {
	path := fmt.Sprintf("/v2/projects/%s", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	var result projectResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing project response: %w", err)
	}

	return result.Project, nil
}

// GetDefault implements ocean.ProjectsClient.GetDefault.
func (c *ProjectsClient) GetDefault(ctx context.Context) (*ocean.Project, error) {
	resp, err := c.httpClient.Get(ctx, "/v2/projects/default", nil)
	if err != nil {
		return nil, fmt.Errorf("getting default project: %w", err)
	}

	var result projectResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing project response: %w", err)
	}

	return result.Project, nil
}

// ListAll implements ocean.ProjectsClient.ListAll.
func (c *ProjectsClient) ListAll(ctx context.Context) ([]*ocean.Project, error) {
	return ocean.CollectAll(ctx, func(ctx context.Context, page int) (*ocean.Page[*ocean.Project], error) {
		query := (&ocean.QueryParams{}).WithPage(page).ToValues()

		resp, err := c.httpClient.Get(ctx, "/v2/projects", query)
		if err != nil {
			return nil, fmt.Errorf("listing projects: %w", err)
		}

		var result projectsListResponse
		if err := json.Unmarshal(resp.Body, &result); err != nil {
			return nil, fmt.Errorf("parsing projects list response: %w", err)
		}

		return &ocean.Page[*ocean.Project]{
			Items: result.Projects,
			Links: result.Links,
			Meta:  result.Meta,
		}, nil
	})
}

// Create implements ocean.ProjectsClient.Create.
func (c *ProjectsClient) Create(ctx context.Context, req *ocean.ProjectCreateRequest) (*ocean.Project, error) {
	resp, err := c.httpClient.Post(ctx, "/v2/projects", req)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	var result projectResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing project response: %w", err)
	}

	return result.Project, nil
}

// Update implements ocean.ProjectsClient.Update.
func (c *ProjectsClient) Update(ctx context.Context, id ocean.ProjectID, req *ocean.ProjectUpdateRequest) (*ocean.Project, error) {
	path := fmt.Sprintf("/v2/projects/%s", id)

	resp, err := c.httpClient.Patch(ctx, path, req)
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	var result projectResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing project response: %w", err)
	}

	return result.Project, nil
}
