package scene

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/spatialnav/pkg/errors"
)

// DefaultWatchDelay is how long Watch waits for a burst of writes to settle.
const DefaultWatchDelay = 100 * time.Millisecond

// Reload is the outcome of re-reading a watched scene file.
type Reload struct {
	Spec *Spec
	Err  error
}

// Watch streams a [Reload] each time the scene file at path changes, until
// ctx is cancelled. The parent directory is watched so editors that replace
// files atomically are followed. Bursts of writes within delay collapse into
// one reload; a zero delay uses DefaultWatchDelay. Callers should drain the
// channel; reloads are dropped while it is full.
func Watch(ctx context.Context, path string, delay time.Duration) (<-chan Reload, error) {
	if _, err := FormatFromPath(path); err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultWatchDelay
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "resolve %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create watcher")
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "watch %s", filepath.Dir(abs))
	}

	reloads := make(chan Reload, 8)

	go func() {
		defer close(reloads)
		defer watcher.Close()

		throttle := newThrottle(delay)
		defer throttle.Stop()

		send := func(r Reload) {
			select {
			case reloads <- r:
			default:
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				send(Reload{Err: errors.Wrap(errors.ErrCodeStorage, err, "watch %s", path)})
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				throttle.Enqueue()
			case <-throttle.C:
				spec, err := LoadFile(abs)
				send(Reload{Spec: spec, Err: err})
			}
		}
	}()

	return reloads, nil
}

// throttle coalesces rapid change notifications into a single tick on C.
type throttle struct {
	C chan struct{}

	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
}

func newThrottle(delay time.Duration) *throttle {
	return &throttle{C: make(chan struct{}, 1), delay: delay}
}

func (t *throttle) Enqueue() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		return
	}
	t.timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		t.timer = nil
		t.mu.Unlock()
		select {
		case t.C <- struct{}{}:
		default:
		}
	})
}

func (t *throttle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
