package eventsink

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/matzehuels/spatialnav/pkg/errors"
)

func TestRetry(t *testing.T) {
	netErr := errors.New(errors.ErrCodeNetwork, "connection refused")
	tests := []struct {
		name     string
		attempts int
		fails    int
		err      error
		wantErr  bool
		wantRuns int
	}{
		{"succeeds first time", 3, 0, netErr, false, 1},
		{"recovers after network errors", 3, 2, netErr, false, 3},
		{"gives up", 2, 5, netErr, true, 2},
		{"other errors are final", 3, 5, errors.New(errors.ErrCodeInternal, "boom"), true, 1},
		{"zero attempts runs once", 0, 5, netErr, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := 0
			err := retry(context.Background(), tt.attempts, time.Millisecond, func() error {
				runs++
				if runs <= tt.fails {
					return tt.err
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if runs != tt.wantRuns {
				t.Errorf("runs = %d, want %d", runs, tt.wantRuns)
			}
		})
	}
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retry(ctx, 3, time.Hour, func() error {
		return errors.New(errors.ErrCodeNetwork, "down")
	})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
