package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	oceanhttp "github.com/oceanic-io/ocean-client/internal/http"
	"github.com/oceanic-io/ocean-client/pkg/ocean"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTokenSource for testing.
type MockTokenSource struct {
	token string
	err   error
}

func (m *MockTokenSource) Token(_ context.Context) (string, error) {
	return m.token, m.err
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful GET with auth header", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v2/droplets", r.URL.Path)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"droplets":[]}`))
		}))
		defer server.Close()

		client := oceanhttp.NewClient(server.URL, &MockTokenSource{token: "test-token"})

		resp, err := client.Get(context.Background(), "/v2/droplets", nil)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"droplets":[]}`, string(resp.Body))
	})

	t.Run("query parameters encoded", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "50", r.URL.Query().Get("per_page"))
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := oceanhttp.NewClient(server.URL, &MockTokenSource{token: "t"})

		query := url.Values{}
		query.Set("page", "2")
		query.Set("per_page", "50")

		_, err := client.Get(context.Background(), "/v2/droplets", query)
		require.NoError(t, err)
	})

	t.Run("POST serializes body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string

			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "web-1", body["name"])

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"droplet":{"id":1}}`))
		}))
		defer server.Close()

		client := oceanhttp.NewClient(server.URL, &MockTokenSource{token: "t"})

		resp, err := client.Post(context.Background(), "/v2/droplets", map[string]string{"name": "web-1"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("API error parsed from body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"id":"not_found","message":"The resource you requested could not be found."}`))
		}))
		defer server.Close()

		client := oceanhttp.NewClient(server.URL, &MockTokenSource{token: "t"})

		resp, err := client.Get(context.Background(), "/v2/droplets/999", nil)
		require.Error(t, err)
		require.NotNil(t, resp, "non-2xx still returns the buffered response")

		apiErr := &ocean.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "not_found", apiErr.ID)
		assert.True(t, ocean.IsNotFound(err))
	})

	t.Run("4xx not retried", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"id":"conflict","message":"name already exists"}`))
		}))
		defer server.Close()

		client := oceanhttp.NewClient(server.URL, &MockTokenSource{token: "t"},
			oceanhttp.WithRetryConfig(3, time.Millisecond, 2*time.Millisecond))

		_, err := client.Post(context.Background(), "/v2/droplets", map[string]string{"name": "web-1"})
		require.Error(t, err)

		assert.True(t, ocean.IsNameConflict(err))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("5xx retried", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)

				return
			}

			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := oceanhttp.NewClient(server.URL, &MockTokenSource{token: "t"},
			oceanhttp.WithRetryConfig(3, time.Millisecond, 2*time.Millisecond))

		resp, err := client.Get(context.Background(), "/v2/droplets", nil)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("token source error aborts request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("request must not reach the server")
		}))
		defer server.Close()

		tokenErr := errors.New("token expired")
		client := oceanhttp.NewClient(server.URL, &MockTokenSource{err: tokenErr})

		_, err := client.Get(context.Background(), "/v2/droplets", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, tokenErr)
	})

	t.Run("custom headers forwarded", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "custom-value", r.Header.Get("X-Custom"))
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := oceanhttp.NewClient(server.URL, &MockTokenSource{token: "t"})

		_, err := client.Do(context.Background(), &oceanhttp.Request{
			Method:  http.MethodGet,
			Path:    "/v2/account",
			Headers: map[string]string{"X-Custom": "custom-value"},
		})
		require.NoError(t, err)
	})

	t.Run("debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := oceanhttp.NewClient(server.URL, &MockTokenSource{token: "t"},
			oceanhttp.WithLogger(logger), oceanhttp.WithDebug(true))

		_, err := client.Get(context.Background(), "/v2/account", nil)
		require.NoError(t, err)

		require.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

func TestClient_Close(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := oceanhttp.NewClient(server.URL, &MockTokenSource{token: "t"})

	_, err := client.Get(context.Background(), "/v2/account", nil)
	require.NoError(t, err)

	client.Close()

	_, err = client.Get(context.Background(), "/v2/account", nil)
	assert.ErrorIs(t, err, ocean.ErrClientClosed)

	// Closing twice is safe.
	client.Close()
}

func TestClient_DeleteWithBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)

		var body map[string][]string

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"sha256:abc"}, body["manifests"])

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := oceanhttp.NewClient(server.URL, &MockTokenSource{token: "t"})

	resp, err := client.DeleteWithBody(context.Background(), "/v2/registry/acme/garbage-collection",
		map[string][]string{"manifests": {"sha256:abc"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	resp := &oceanhttp.Response{Body: []byte(`{"name":"web-1"}`)}

	var out struct {
		Name string `json:"name"`
	}

	require.NoError(t, oceanhttp.Unmarshal(resp, &out))
	assert.Equal(t, "web-1", out.Name)

	bad := &oceanhttp.Response{Body: []byte(`{`)}
	assert.Error(t, oceanhttp.Unmarshal(bad, &out))
}
