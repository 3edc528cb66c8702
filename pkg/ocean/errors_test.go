package ocean

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	t.Run("without request id", func(t *testing.T) {
		t.Parallel()

		err := &APIError{StatusCode: 404, ID: "not_found", Message: "droplet not found"}
		assert.Equal(t, "not_found: droplet not found (status: 404)", err.Error())
	})

	t.Run("with request id", func(t *testing.T) {
		t.Parallel()

		err := &APIError{StatusCode: 429, ID: "too_many_requests", Message: "slow down", RequestID: "req-123"}
		assert.Equal(t, "too_many_requests: slow down (status: 429, request: req-123)", err.Error())
	})
}

func TestNotFoundError_Error(t *testing.T) {
	t.Parallel()

	err := &NotFoundError{Kind: "droplet", ID: "42"}
	assert.Equal(t, `droplet "42" not found`, err.Error())
}

func TestImmutableFieldError_Error(t *testing.T) {
	t.Parallel()

	err := &ImmutableFieldError{Kind: "database", Field: "engine"}
	assert.Contains(t, err.Error(), `database field "engine" is immutable`)
}

func TestWaitTimeoutError_Error(t *testing.T) {
	t.Parallel()

	err := &WaitTimeoutError{
		Kind:    "kubernetes cluster",
		ID:      "abc",
		Target:  "running",
		Last:    "provisioning",
		Timeout: 5 * time.Minute,
	}
	assert.Equal(t, `kubernetes cluster "abc" did not reach "running" within 5m0s (last status "provisioning")`, err.Error())
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"typed not found", &NotFoundError{Kind: "droplet", ID: "42"}, true},
		{"wrapped typed not found", fmt.Errorf("getting: %w", &NotFoundError{Kind: "droplet", ID: "42"}), true},
		{"404 api error", &APIError{StatusCode: http.StatusNotFound, ID: "not_found"}, true},
		{"500 api error", &APIError{StatusCode: http.StatusInternalServerError, ID: "server_error"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, IsNotFound(tt.err))
		})
	}
}

func TestIsUnauthorizedAndForbidden(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUnauthorized(&APIError{StatusCode: http.StatusUnauthorized}))
	assert.False(t, IsUnauthorized(&APIError{StatusCode: http.StatusForbidden}))
	assert.False(t, IsUnauthorized(errors.New("boom")))

	assert.True(t, IsForbidden(&APIError{StatusCode: http.StatusForbidden}))
	assert.False(t, IsForbidden(&APIError{StatusCode: http.StatusUnauthorized}))
	assert.False(t, IsForbidden(nil))
}

func TestIsNameConflict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "422 with conflict id",
			err:      &APIError{StatusCode: http.StatusUnprocessableEntity, ID: "conflict", Message: "name taken"},
			expected: true,
		},
		{
			name:     "409 with conflict id",
			err:      &APIError{StatusCode: http.StatusConflict, ID: "conflict", Message: "name taken"},
			expected: true,
		},
		{
			name:     "422 with already exists message",
			err:      &APIError{StatusCode: http.StatusUnprocessableEntity, ID: "unprocessable_entity", Message: "Droplet already exists"},
			expected: true,
		},
		{
			name:     "422 validation error",
			err:      &APIError{StatusCode: http.StatusUnprocessableEntity, ID: "unprocessable_entity", Message: "size is invalid"},
			expected: false,
		},
		{
			name:     "400 with conflict id",
			err:      &APIError{StatusCode: http.StatusBadRequest, ID: "conflict", Message: "name taken"},
			expected: false,
		},
		{
			name:     "wrapped conflict",
			err:      fmt.Errorf("creating: %w", &APIError{StatusCode: http.StatusConflict, ID: "conflict"}),
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, IsNameConflict(tt.err))
		})
	}
}

func TestParseAPIError(t *testing.T) {
	t.Parallel()

	t.Run("well formed body", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"id":"not_found","message":"The resource you requested could not be found.","request_id":"req-1"}`)

		apiErr := ParseAPIError(http.StatusNotFound, body)
		require.NotNil(t, apiErr)

		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "not_found", apiErr.ID)
		assert.Equal(t, "The resource you requested could not be found.", apiErr.Message)
		assert.Equal(t, "req-1", apiErr.RequestID)
	})

	t.Run("non json body", func(t *testing.T) {
		t.Parallel()

		apiErr := ParseAPIError(http.StatusBadGateway, []byte("upstream unavailable"))

		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Equal(t, "bad_gateway", apiErr.ID)
		assert.Equal(t, "upstream unavailable", apiErr.Message)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		apiErr := ParseAPIError(http.StatusServiceUnavailable, nil)

		assert.Equal(t, "service_unavailable", apiErr.ID)
		assert.Empty(t, apiErr.Message)
	})
}
