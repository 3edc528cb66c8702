package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oceanic-io/ocean-client/pkg/ocean"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSHKeysClient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/account/keys":
			var body ocean.SSHKeyCreateRequest

			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "deploy-key", body.Name)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"ssh_key":{"id":512190,"name":"deploy-key","fingerprint":"3b:16","public_key":"ssh-ed25519 AAAA"}}`))
		case r.Method == http.MethodPut && r.URL.Path == "/v2/account/keys/512190":
			var body ocean.SSHKeyUpdateRequest

			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ci-key", body.Name)

			_, _ = w.Write([]byte(`{"ssh_key":{"id":512190,"name":"ci-key","fingerprint":"3b:16","public_key":"ssh-ed25519 AAAA"}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v2/account/keys":
			_, _ = w.Write([]byte(`{"ssh_keys":[{"id":512190,"name":"ci-key"}],"meta":{"total":1}}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/v2/account/keys/512190":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	keys := NewSSHKeysClient(testHTTPClient(server))
	ctx := context.Background()

	key, err := keys.Create(ctx, &ocean.SSHKeyCreateRequest{Name: "deploy-key", PublicKey: "ssh-ed25519 AAAA"})
	require.NoError(t, err)
	assert.Equal(t, ocean.SSHKeyID(512190), key.ID)

	key, err = keys.Rename(ctx, key.ID, "ci-key")
	require.NoError(t, err)
	assert.Equal(t, "ci-key", key.Name)

	all, err := keys.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, keys.Delete(ctx, key.ID))
}

func TestVPCsClient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/vpcs":
			var body ocean.VPCCreateRequest

			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "10.10.0.0/16", body.IPRange)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"vpc":{"id":"5a4981aa","name":"backend","region":"nyc3","ip_range":"10.10.0.0/16"}}`))
		case r.Method == http.MethodPut && r.URL.Path == "/v2/vpcs/5a4981aa":
			_, _ = w.Write([]byte(`{"vpc":{"id":"5a4981aa","name":"backend","region":"nyc3","ip_range":"10.10.0.0/16","description":"internal"}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v2/vpcs/5a4981aa":
			_, _ = w.Write([]byte(`{"vpc":{"id":"5a4981aa","name":"backend","region":"nyc3","ip_range":"10.10.0.0/16"}}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	vpcs := NewVPCsClient(testHTTPClient(server))
	ctx := context.Background()

	vpc, err := vpcs.Create(ctx, &ocean.VPCCreateRequest{Name: "backend", Region: "nyc3", IPRange: "10.10.0.0/16"})
	require.NoError(t, err)
	assert.Equal(t, ocean.VPCID("5a4981aa"), vpc.ID)

	desc := "internal"

	vpc, err = vpcs.Update(ctx, vpc.ID, &ocean.VPCUpdateRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "internal", vpc.Description)

	vpc, err = vpcs.Get(ctx, "5a4981aa")
	require.NoError(t, err)
	assert.Equal(t, "backend", vpc.Name)
}

func TestProjectsClient_GetDefault(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/projects/default", r.URL.Path)
		_, _ = w.Write([]byte(`{"project":{"id":"4e1bfbc3","name":"main","purpose":"Web Application","is_default":true}}`))
	}))
	defer server.Close()

	projects := NewProjectsClient(testHTTPClient(server))

	project, err := projects.GetDefault(context.Background())
	require.NoError(t, err)

	assert.True(t, project.IsDefault)
	assert.Equal(t, ocean.ProjectID("4e1bfbc3"), project.ID)
}

func TestClient_New(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		assert.ErrorIs(t, err, ocean.ErrConfigRequired)
	})

	t.Run("missing endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := New(&ocean.Config{AccessToken: "token"})
		assert.ErrorIs(t, err, ocean.ErrAPIEndpointRequired)
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Parallel()

		_, err := New(&ocean.Config{APIEndpoint: "https://api.example.com"})
		assert.ErrorIs(t, err, ocean.ErrAccessTokenRequired)
	})

	t.Run("resource clients wired", func(t *testing.T) {
		t.Parallel()

		client, err := New(&ocean.Config{
			APIEndpoint: "https://api.example.com",
			AccessToken: "token",
		})
		require.NoError(t, err)

		assert.NotNil(t, client.Droplets())
		assert.NotNil(t, client.Kubernetes())
		assert.NotNil(t, client.Databases())
		assert.NotNil(t, client.Registry())
		assert.NotNil(t, client.SSHKeys())
		assert.NotNil(t, client.VPCs())
		assert.NotNil(t, client.Regions())
		assert.NotNil(t, client.Projects())

		require.NoError(t, client.Close())
	})

	t.Run("unsupported cache type", func(t *testing.T) {
		t.Parallel()

		_, err := New(&ocean.Config{
			APIEndpoint: "https://api.example.com",
			AccessToken: "token",
			Cache:       &ocean.CacheConfig{Type: "redis"},
		})
		assert.ErrorIs(t, err, ocean.ErrUnsupportedCacheType)
	})
}
