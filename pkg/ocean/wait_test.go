package ocean

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDelay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		current  time.Duration
		max      time.Duration
		expected time.Duration
	}{
		{"doubles below cap", 2 * time.Second, 30 * time.Second, 4 * time.Second},
		{"caps at max", 20 * time.Second, 30 * time.Second, 30 * time.Second},
		{"stays at max", 30 * time.Second, 30 * time.Second, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, nextDelay(tt.current, tt.max))
		})
	}
}

func TestWaitOptions_WithDefaults(t *testing.T) {
	t.Parallel()

	opts := WaitOptions{}.withDefaults()
	assert.Equal(t, DefaultWaitBaseDelay, opts.BaseDelay)
	assert.Equal(t, DefaultWaitMaxDelay, opts.MaxDelay)

	custom := WaitOptions{BaseDelay: time.Millisecond, MaxDelay: time.Second}.withDefaults()
	assert.Equal(t, time.Millisecond, custom.BaseDelay)
	assert.Equal(t, time.Second, custom.MaxDelay)
}

func TestWaitForStatus_ReachesTarget(t *testing.T) {
	t.Parallel()

	statuses := []string{"new", "new", "active"}
	calls := 0
	fetch := func(_ context.Context) (string, error) {
		s := statuses[calls]
		calls++

		return s, nil
	}

	opts := WaitOptions{BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	got, err := WaitForStatus(context.Background(), "droplet", "42", "active",
		fetch, func(s string) string { return s }, time.Second, opts)
	require.NoError(t, err)

	assert.Equal(t, "active", got)
	assert.Equal(t, 3, calls)
}

func TestWaitForStatus_ZeroBudgetFetchesOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	fetch := func(_ context.Context) (string, error) {
		calls++

		return "new", nil
	}

	start := time.Now()

	_, err := WaitForStatus(context.Background(), "droplet", "42", "active",
		fetch, func(s string) string { return s }, 0, WaitOptions{BaseDelay: time.Minute})
	require.Error(t, err)

	timeoutErr := &WaitTimeoutError{}
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "droplet", timeoutErr.Kind)
	assert.Equal(t, "active", timeoutErr.Target)
	assert.Equal(t, "new", timeoutErr.Last)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), time.Second, "zero budget must not sleep")
}

func TestWaitForStatus_NotFoundAborts(t *testing.T) {
	t.Parallel()

	fetch := func(_ context.Context) (string, error) {
		return "", &APIError{StatusCode: 404, ID: "not_found", Message: "gone"}
	}

	_, err := WaitForStatus(context.Background(), "droplet", "42", "active",
		fetch, func(s string) string { return s }, time.Second, WaitOptions{BaseDelay: time.Millisecond})
	require.Error(t, err)

	nfErr := &NotFoundError{}
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "42", nfErr.ID)
}

func TestWaitForStatus_FetchErrorPropagates(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("connection reset")
	fetch := func(_ context.Context) (string, error) {
		return "", fetchErr
	}

	_, err := WaitForStatus(context.Background(), "droplet", "42", "active",
		fetch, func(s string) string { return s }, time.Second, WaitOptions{BaseDelay: time.Millisecond})
	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)
}

func TestWaitForStatus_ContextCancelAbortsSleep(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	fetch := func(_ context.Context) (string, error) {
		cancel()

		return "new", nil
	}

	_, err := WaitForStatus(ctx, "droplet", "42", "active",
		fetch, func(s string) string { return s }, time.Minute, WaitOptions{BaseDelay: time.Minute})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitForDestroy_ImmediateNotFoundSucceeds(t *testing.T) {
	t.Parallel()

	calls := 0
	fetch := func(_ context.Context) (string, error) {
		calls++

		return "", &NotFoundError{Kind: "droplet", ID: "42"}
	}

	start := time.Now()

	err := WaitForDestroy(context.Background(), "droplet", "42",
		fetch, time.Minute, WaitOptions{BaseDelay: time.Minute})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), time.Second, "first-fetch success must not sleep")
}

func TestWaitForDestroy_PollsUntilGone(t *testing.T) {
	t.Parallel()

	calls := 0
	fetch := func(_ context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "present", nil
		}

		return "", &APIError{StatusCode: 404, ID: "not_found", Message: "gone"}
	}

	opts := WaitOptions{BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	err := WaitForDestroy(context.Background(), "droplet", "42", fetch, time.Second, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWaitForDestroy_Timeout(t *testing.T) {
	t.Parallel()

	fetch := func(_ context.Context) (string, error) {
		return "present", nil
	}

	err := WaitForDestroy(context.Background(), "droplet", "42", fetch, 0, WaitOptions{BaseDelay: time.Minute})
	require.Error(t, err)

	timeoutErr := &WaitTimeoutError{}
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "destroyed", timeoutErr.Target)
}

func TestWaitForDestroy_FetchErrorPropagates(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("connection reset")
	fetch := func(_ context.Context) (string, error) {
		return "", fetchErr
	}

	err := WaitForDestroy(context.Background(), "droplet", "42", fetch, time.Second, WaitOptions{BaseDelay: time.Millisecond})
	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)
}
