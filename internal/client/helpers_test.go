package client

import (
	"context"
	"net/http/httptest"
	"time"

	"github.com/oceanic-io/ocean-client/internal/http"
	"github.com/oceanic-io/ocean-client/pkg/ocean"
)

// staticTokens is a TokenSource fixed to one token.
type staticTokens struct {
	token string
}

func (s *staticTokens) Token(_ context.Context) (string, error) {
	return s.token, nil
}

// fastWaitOpts keeps wait loops quick in tests.
var fastWaitOpts = ocean.WaitOptions{
	BaseDelay: time.Millisecond,
	MaxDelay:  2 * time.Millisecond,
}

func testHTTPClient(server *httptest.Server) *http.Client {
	return http.NewClient(server.URL, &staticTokens{token: "test-token"},
		http.WithRetryConfig(0, time.Millisecond, time.Millisecond))
}
