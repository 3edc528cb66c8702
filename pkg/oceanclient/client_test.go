package oceanclient_test

import (
	"testing"

	"github.com/oceanic-io/ocean-client/pkg/ocean"
	"github.com/oceanic-io/ocean-client/pkg/oceanclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := oceanclient.New(nil)
		assert.ErrorIs(t, err, ocean.ErrConfigRequired)
	})

	t.Run("missing endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := oceanclient.New(&ocean.Config{AccessToken: "token"})
		assert.ErrorIs(t, err, ocean.ErrAPIEndpointRequired)
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Parallel()

		_, err := oceanclient.New(&ocean.Config{APIEndpoint: "https://api.ocean.example"})
		assert.ErrorIs(t, err, ocean.ErrAccessTokenRequired)
	})

	t.Run("endpoint normalization", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			endpoint string
			want     string
		}{
			{
				name:     "trailing slash trimmed",
				endpoint: "https://api.ocean.example/",
				want:     "https://api.ocean.example",
			},
			{
				name:     "scheme added when missing",
				endpoint: "api.ocean.example",
				want:     "https://api.ocean.example",
			},
			{
				name:     "http scheme preserved",
				endpoint: "http://localhost:8080",
				want:     "http://localhost:8080",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				config := &ocean.Config{
					APIEndpoint: tt.endpoint,
					AccessToken: "token",
				}

				client, err := oceanclient.New(config)
				require.NoError(t, err)

				defer func() { _ = client.Close() }()

				assert.Equal(t, tt.want, config.APIEndpoint)
			})
		}
	})

	t.Run("with token", func(t *testing.T) {
		t.Parallel()

		client, err := oceanclient.NewWithToken("https://api.ocean.example", "token")
		require.NoError(t, err)

		defer func() { _ = client.Close() }()

		assert.NotNil(t, client.Droplets())
		assert.NotNil(t, client.Regions())
	})
}
