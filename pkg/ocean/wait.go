package ocean

import (
	"context"
	"fmt"
	"time"

	"github.com/oceanic-io/ocean-client/internal/constants"
)

// Default wait-loop tuning. The delay doubles each attempt until it
// reaches the cap.
const (
	DefaultWaitBaseDelay = constants.DefaultWaitBaseDelay
	DefaultWaitMaxDelay  = constants.DefaultWaitMaxDelay

	waitLogEvery = constants.WaitLogEvery
)

// WaitOptions tunes a wait loop. The zero value uses the defaults.
type WaitOptions struct {
	// BaseDelay is the first sleep between polls.
	BaseDelay time.Duration
	// MaxDelay caps the backoff.
	MaxDelay time.Duration
	// Logger, when set, receives bounded-frequency progress logs.
	Logger Logger
}

func (o WaitOptions) withDefaults() WaitOptions {
	if o.BaseDelay <= 0 {
		o.BaseDelay = DefaultWaitBaseDelay
	}

	if o.MaxDelay <= 0 {
		o.MaxDelay = DefaultWaitMaxDelay
	}

	return o
}

// nextDelay advances a capped exponential backoff.
func nextDelay(current, maxDelay time.Duration) time.Duration {
	doubled := current * 2
	if doubled > maxDelay {
		return maxDelay
	}

	return doubled
}

// WaitForStatus repeatedly fetches a resource until its status satisfies
// reached, sleeping with capped exponential backoff between attempts and
// bounded by timeout overall.
//
// status extracts the current status string for diagnostics. A fetch
// error satisfying IsNotFound aborts the wait: the resource was expected
// to keep existing, so it surfaces as a NotFoundError. A zero or
// already-elapsed budget fails with a WaitTimeoutError after at most one
// fetch and without sleeping. Cancelling the context aborts the sleep
// immediately.
func WaitForStatus[T any](
	ctx context.Context,
	kind, id, target string,
	fetch func(ctx context.Context) (T, error),
	status func(T) string,
	timeout time.Duration,
	opts WaitOptions,
) (T, error) {
	var zero T

	opts = opts.withDefaults()
	deadline := time.Now().Add(timeout)
	delay := opts.BaseDelay
	last := ""

	for attempt := 0; ; attempt++ {
		snapshot, err := fetch(ctx)
		if err != nil {
			if IsNotFound(err) {
				return zero, &NotFoundError{Kind: kind, ID: id}
			}

			return zero, fmt.Errorf("fetching %s %q while waiting for %q: %w", kind, id, target, err)
		}

		last = status(snapshot)
		if last == target {
			return snapshot, nil
		}

		if !time.Now().Before(deadline) {
			return zero, &WaitTimeoutError{Kind: kind, ID: id, Target: target, Last: last, Timeout: timeout}
		}

		if opts.Logger != nil && attempt%waitLogEvery == 0 {
			opts.Logger.Debug("waiting for status", map[string]interface{}{
				"kind": kind, "id": id, "target": target, "current": last, "attempt": attempt,
			})
		}

		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}

		delay = nextDelay(delay, opts.MaxDelay)
	}
}

// WaitForDestroy repeatedly fetches a resource until the server reports
// it gone. A not-found response is the success condition here, including
// on the very first fetch, in which case no sleep occurs.
func WaitForDestroy[T any](
	ctx context.Context,
	kind, id string,
	fetch func(ctx context.Context) (T, error),
	timeout time.Duration,
	opts WaitOptions,
) error {
	opts = opts.withDefaults()
	deadline := time.Now().Add(timeout)
	delay := opts.BaseDelay

	for attempt := 0; ; attempt++ {
		_, err := fetch(ctx)
		if err != nil {
			if IsNotFound(err) {
				return nil
			}

			return fmt.Errorf("fetching %s %q while waiting for destroy: %w", kind, id, err)
		}

		if !time.Now().Before(deadline) {
			return &WaitTimeoutError{Kind: kind, ID: id, Target: "destroyed", Last: "present", Timeout: timeout}
		}

		if opts.Logger != nil && attempt%waitLogEvery == 0 {
			opts.Logger.Debug("waiting for destroy", map[string]interface{}{
				"kind": kind, "id": id, "attempt": attempt,
			})
		}

		if err := sleep(ctx, delay); err != nil {
			return err
		}

		delay = nextDelay(delay, opts.MaxDelay)
	}
}

// sleep blocks for d or until the context is cancelled, whichever comes
// first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("wait interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
