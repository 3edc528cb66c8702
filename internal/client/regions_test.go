package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oceanic-io/ocean-client/pkg/ocean"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionsClient_ListAll(t *testing.T) {
	t.Parallel()

	t.Run("serves repeat listings from cache", func(t *testing.T) {
		t.Parallel()

		var fetches atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fetches.Add(1)
			require.Equal(t, "/v2/regions", r.URL.Path)
			_, _ = w.Write([]byte(`{"regions":[{"slug":"nyc3","name":"New York 3","available":true,"features":["backups"]}],"meta":{"total":1}}`))
		}))
		defer server.Close()

		cache := ocean.NewMemoryCache(10)
		regions := NewRegionsClient(testHTTPClient(server), cache, time.Minute)
		ctx := context.Background()

		first, err := regions.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, first, 1)
		assert.Equal(t, "nyc3", first[0].Slug)

		second, err := regions.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		assert.Equal(t, int32(1), fetches.Load())
		assert.True(t, cache.Has(ctx, "catalog/regions"))
	})

	t.Run("expired entry triggers a refetch", func(t *testing.T) {
		t.Parallel()

		var fetches atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fetches.Add(1)
			_, _ = w.Write([]byte(`{"regions":[{"slug":"ams3","name":"Amsterdam 3","available":true}],"meta":{"total":1}}`))
		}))
		defer server.Close()

		cache := ocean.NewMemoryCache(10)
		regions := NewRegionsClient(testHTTPClient(server), cache, -time.Second)
		ctx := context.Background()

		_, err := regions.ListAll(ctx)
		require.NoError(t, err)

		_, err = regions.ListAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, int32(2), fetches.Load())
	})

	t.Run("nil cache always fetches", func(t *testing.T) {
		t.Parallel()

		var fetches atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fetches.Add(1)
			_, _ = w.Write([]byte(`{"regions":[],"meta":{"total":0}}`))
		}))
		defer server.Close()

		regions := NewRegionsClient(testHTTPClient(server), nil, time.Minute)
		ctx := context.Background()

		_, err := regions.ListAll(ctx)
		require.NoError(t, err)
		_, err = regions.ListAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, int32(2), fetches.Load())
	})

	t.Run("follows pagination before caching", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(nil)
		defer server.Close()

		server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") == "2" {
				_, _ = w.Write([]byte(`{"regions":[{"slug":"sfo3","name":"San Francisco 3","available":true}],"meta":{"total":2}}`))

				return
			}

			_, _ = w.Write([]byte(`{"regions":[{"slug":"nyc3","name":"New York 3","available":true}],"links":{"pages":{"next":"` + server.URL + `/v2/regions?page=2"}},"meta":{"total":2}}`))
		})

		regions := NewRegionsClient(testHTTPClient(server), ocean.NewMemoryCache(10), time.Minute)

		all, err := regions.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "nyc3", all[0].Slug)
		assert.Equal(t, "sfo3", all[1].Slug)
	})
}
