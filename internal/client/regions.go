package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oceanic-io/ocean-client/internal/http"
	"github.com/oceanic-io/ocean-client/pkg/ocean"
)

const regionsCacheKey = "catalog/regions"

// RegionsClient implements ocean.RegionsClient. The region catalog is
// slow-moving, so responses are served through the configured cache.
type RegionsClient struct {
	httpClient *http.Client
	cache      ocean.Cache
	ttl        time.Duration
}

// NewRegionsClient creates a new regions client. A nil cache disables
// the read-through path.
func NewRegionsClient(httpClient *http.Client, cache ocean.Cache, ttl time.Duration) *RegionsClient {
	return &RegionsClient{httpClient: httpClient, cache: cache, ttl: ttl}
}

type regionsListResponse struct {
	Regions []ocean.Region `json:"regions"`
	Links   ocean.Links    `json:"links"`
	Meta    ocean.Meta     `json:"meta"`
}

// ListAll implements ocean.RegionsClient.ListAll. A cache hit skips the
// network entirely; a fetch repopulates the cache. Cache write failures
// do not fail the listing.
func (c *RegionsClient) ListAll(ctx context.Context) ([]ocean.Region, error) {
	if c.cache != nil {
		entry, err := c.cache.Get(ctx, regionsCacheKey)
		if err == nil {
			var regions []ocean.Region
			if err := json.Unmarshal(entry.Data, &regions); err == nil {
				return regions, nil
			}
		}
	}

	regions, err := c.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if data, err := json.Marshal(regions); err == nil {
			_ = c.cache.Set(ctx, regionsCacheKey, &ocean.CacheEntry{
				Data:      data,
				ExpiresAt: time.Now().Add(c.ttl),
			})
		}
	}

	return regions, nil
}

func (c *RegionsClient) fetchAll(ctx context.Context) ([]ocean.Region, error) {
	return ocean.CollectAll(ctx, func(ctx context.Context, page int) (*ocean.Page[ocean.Region], error) {
		query := (&ocean.QueryParams{}).WithPage(page).ToValues()

		resp, err := c.httpClient.Get(ctx, "/v2/regions", query)
		if err != nil {
			return nil, fmt.Errorf("listing regions: %w", err)
		}

		var result regionsListResponse
		if err := json.Unmarshal(resp.Body, &result); err != nil {
			return nil, fmt.Errorf("parsing regions list response: %w", err)
		}

		return &ocean.Page[ocean.Region]{
			Items: result.Regions,
			Links: result.Links,
			Meta:  result.Meta,
		}, nil
	})
}
