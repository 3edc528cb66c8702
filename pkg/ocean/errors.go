package ocean

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// APIError represents an error response from the Ocean API.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int `json:"-" yaml:"-"`
	// ID is the machine-readable error class (e.g., "not_found").
	ID string `json:"id" yaml:"id"`
	// Message is the human-readable description.
	Message string `json:"message" yaml:"message"`
	// RequestID identifies the request for support diagnostics.
	RequestID string `json:"request_id,omitempty" yaml:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s: %s (status: %d, request: %s)", e.ID, e.Message, e.StatusCode, e.RequestID)
	}

	return fmt.Sprintf("%s: %s (status: %d)", e.ID, e.Message, e.StatusCode)
}

// NotFoundError reports that an operation targeted an identifier the
// server no longer recognizes. Kind and ID are kept for diagnostics.
type NotFoundError struct {
	Kind string
	ID   string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ImmutableFieldError reports that an update was attempted with a desired
// state whose creation-only field differs from the live resource. Callers
// must copy immutable fields forward from the live snapshot before
// reconciling.
type ImmutableFieldError struct {
	Kind  string
	Field string
}

// Error implements the error interface.
func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("%s field %q is immutable after creation; copy it from the live resource before updating", e.Kind, e.Field)
}

// ProtocolError reports a response the client refuses to interpret: an
// unexpected status code or a body that contradicts the API contract.
// It indicates a server contract change or a client bug, never a condition
// worth retrying.
type ProtocolError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol violation (status %d): %s", e.StatusCode, e.Detail)
}

// WaitTimeoutError reports that a wait-for-status loop exhausted its
// budget before the resource reached the target.
type WaitTimeoutError struct {
	Kind    string
	ID      string
	Target  string
	Last    string
	Timeout time.Duration
}

// Error implements the error interface.
func (e *WaitTimeoutError) Error() string {
	return fmt.Sprintf("%s %q did not reach %q within %s (last status %q)",
		e.Kind, e.ID, e.Target, e.Timeout, e.Last)
}

// Common static errors.
var (
	ErrClientClosed        = errors.New("client is closed")
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrAccessTokenRequired = errors.New("access token is required")
	ErrCacheDisabled       = errors.New("cache disabled")
)

// IsNotFound reports whether err is a not-found condition, either the
// typed NotFoundError or a 404 API error.
func IsNotFound(err error) bool {
	nfErr := &NotFoundError{}
	if errors.As(err, &nfErr) {
		return true
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsForbidden reports whether err is a 403 response.
func IsForbidden(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}

	return false
}

// IsNameConflict reports whether err is the specific 422 rejection the
// API issues for a create colliding with an existing resource's name.
// The machine-readable id is checked first; the message phrase match is a
// fallback for older API versions that only set a generic id.
func IsNameConflict(err error) bool {
	apiErr := &APIError{}
	if !errors.As(err, &apiErr) {
		return false
	}

	if apiErr.StatusCode != http.StatusUnprocessableEntity && apiErr.StatusCode != http.StatusConflict {
		return false
	}

	if apiErr.ID == "conflict" {
		return true
	}

	return strings.Contains(strings.ToLower(apiErr.Message), "already exists")
}

// ParseAPIError decodes an error body into an APIError bound to the given
// status code. A body that does not decode still yields a usable error.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.ID == "" {
		apiErr.ID = strings.ToLower(strings.ReplaceAll(http.StatusText(statusCode), " ", "_"))
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
	}

	return apiErr
}
