package eventsink

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spatialnav/pkg/navigator"
)

// DefaultQueueSize bounds the number of envelopes waiting for delivery.
const DefaultQueueSize = 256

// Forwarder delivers dispatcher events to a sink on a background goroutine.
type Forwarder struct {
	sink    Sink
	scene   string
	logger  *log.Logger
	timeout time.Duration

	queue   chan Envelope
	off     func()
	done    chan struct{}
	once    sync.Once

	// mu guards the fields below. idle is closed whenever pending is zero
	// and replaced when the first envelope of a new batch is queued.
	mu      sync.Mutex
	pending int
	idle    chan struct{}
	closed  bool
	dropped int
}

// Option configures a [Forwarder].
type Option func(*Forwarder)

// WithLogger sets the logger used for delivery failures.
func WithLogger(l *log.Logger) Option {
	return func(f *Forwarder) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithQueueSize sets how many envelopes may wait for delivery.
func WithQueueSize(n int) Option {
	return func(f *Forwarder) {
		if n > 0 {
			f.queue = make(chan Envelope, n)
		}
	}
}

// WithTimeout bounds each publish call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Forwarder) { f.timeout = d }
}

// Attach subscribes sink to every event d delivers. The returned forwarder
// never vetoes events.
func Attach(d *navigator.Dispatcher, scene string, sink Sink, opts ...Option) *Forwarder {
	f := &Forwarder{
		sink:    sink,
		scene:   scene,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		timeout: 5 * time.Second,
		queue:   make(chan Envelope, DefaultQueueSize),
		done:    make(chan struct{}),
		idle:    make(chan struct{}),
	}
	close(f.idle)
	for _, opt := range opts {
		opt(f)
	}

	go f.run()
	f.off = d.OnAny(func(ev navigator.Event) bool {
		f.enqueue(FromEvent(f.scene, ev))
		return true
	})
	return f
}

func (f *Forwarder) enqueue(env Envelope) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.queue <- env:
		if f.pending == 0 {
			f.idle = make(chan struct{})
		}
		f.pending++
	default:
		f.dropped++
		f.logger.Warn("event dropped", "sink", f.sink.Name(), "type", env.Type)
	}
}

func (f *Forwarder) run() {
	defer close(f.done)
	for env := range f.queue {
		f.deliver(env)
		f.mu.Lock()
		f.pending--
		if f.pending == 0 {
			close(f.idle)
		}
		f.mu.Unlock()
	}
}

func (f *Forwarder) deliver(env Envelope) {
	ctx := context.Background()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	if err := publish(ctx, f.sink, env); err != nil {
		f.logger.Error("publish failed", "sink", f.sink.Name(), "type", env.Type, "err", err)
	}
}

// Dropped returns the number of envelopes discarded because the queue was
// full.
func (f *Forwarder) Dropped() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}

// Flush waits until every queued envelope has been delivered or ctx ends.
func (f *Forwarder) Flush(ctx context.Context) error {
	f.mu.Lock()
	idle := f.idle
	f.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close unsubscribes, drains the queue and closes the sink.
func (f *Forwarder) Close() error {
	var err error
	f.once.Do(func() {
		f.off()
		f.mu.Lock()
		f.closed = true
		close(f.queue)
		f.mu.Unlock()
		<-f.done
		err = f.sink.Close()
	})
	return err
}
