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

func TestRegistryClient_Get(t *testing.T) {
	t.Parallel()

	t.Run("matching name", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v2/registry", r.URL.Path)
			_, _ = w.Write([]byte(`{"registry":{"name":"acme","region":"nyc3","subscription_tier":"basic"}}`))
		}))
		defer server.Close()

		registries := NewRegistryClient(testHTTPClient(server), fastWaitOpts)

		registry, err := registries.Get(context.Background(), "acme")
		require.NoError(t, err)

		assert.Equal(t, ocean.RegistryName("acme"), registry.Name)
		assert.Equal(t, "nyc3", registry.Region)
	})

	t.Run("different name is not found", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"registry":{"name":"other","region":"nyc3"}}`))
		}))
		defer server.Close()

		registries := NewRegistryClient(testHTTPClient(server), fastWaitOpts)

		_, err := registries.Get(context.Background(), "acme")
		assert.True(t, ocean.IsNotFound(err))
	})
}

func TestRegistryClient_ListRepositoriesAndTags(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/v2/registry/acme/repositories":
			_, _ = w.Write([]byte(`{"repositories":[{"registry_name":"acme","name":"api/server","tag_count":4,"manifest_count":6}],"meta":{"total":1}}`))
		case "/v2/registry/acme/repositories/api%2Fserver/tags":
			_, _ = w.Write([]byte(`{"tags":[{"registry_name":"acme","repository":"api/server","tag":"v1.2.0"}],"meta":{"total":1}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.EscapedPath())
		}
	}))
	defer server.Close()

	registries := NewRegistryClient(testHTTPClient(server), fastWaitOpts)
	ctx := context.Background()

	repos, err := registries.ListRepositories(ctx, "acme", nil)
	require.NoError(t, err)
	require.Len(t, repos.Items, 1)
	assert.Equal(t, "api/server", repos.Items[0].Name)
	assert.Equal(t, 4, repos.Items[0].TagCount)

	tags, err := registries.ListTags(ctx, "acme", "api/server", nil)
	require.NoError(t, err)
	require.Len(t, tags.Items, 1)
	assert.Equal(t, "v1.2.0", tags.Items[0].Tag)
}

func TestRegistryClient_GarbageCollection(t *testing.T) {
	t.Parallel()

	var polls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/registry/acme/garbage-collection", r.URL.Path)

		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"garbage_collection":{"uuid":"gc-1","registry_name":"acme","status":"requested"}}`))

			return
		}

		if polls.Add(1) < 2 {
			_, _ = w.Write([]byte(`{"garbage_collection":{"uuid":"gc-1","registry_name":"acme","status":"requested"}}`))

			return
		}

		_, _ = w.Write([]byte(`{"garbage_collection":{"uuid":"gc-1","registry_name":"acme","status":"succeeded"}}`))
	}))
	defer server.Close()

	registries := NewRegistryClient(testHTTPClient(server), fastWaitOpts)
	ctx := context.Background()

	gc, err := registries.StartGarbageCollection(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, ocean.GCStatusRequested, gc.Status)

	gc, err = registries.WaitForGarbageCollection(ctx, "acme", time.Second)
	require.NoError(t, err)
	assert.Equal(t, ocean.GCStatusSucceeded, gc.Status)
	assert.Equal(t, int32(2), polls.Load())
}

func TestRegistryClient_CreateConflictAdoptsExisting(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"id":"conflict","message":"registry already exists"}`))

			return
		}

		_, _ = w.Write([]byte(`{"registry":{"name":"acme","region":"nyc3","subscription_tier":"basic"}}`))
	}))
	defer server.Close()

	registries := NewRegistryClient(testHTTPClient(server), fastWaitOpts)

	spec, err := ocean.NewRegistrySpec("acme", "nyc3", "basic")
	require.NoError(t, err)

	result, err := registries.Create(context.Background(), spec)
	require.NoError(t, err)

	assert.True(t, result.Conflicted())
	assert.Equal(t, ocean.RegistryName("acme"), result.Resource().Name)
}
