package eventsink

import (
	"context"
	"time"

	"github.com/matzehuels/spatialnav/pkg/errors"
)

// Connection retry defaults for [NewRedisSink].
const (
	DefaultConnectAttempts = 3
	DefaultRetryDelay      = 200 * time.Millisecond
)

// retry runs fn up to attempts times while it fails with a network error,
// doubling delay after each failure. Other errors are returned at once.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if lastErr = fn(); lastErr == nil || !errors.Is(lastErr, errors.ErrCodeNetwork) {
			return lastErr
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
