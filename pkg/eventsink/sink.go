package eventsink

import (
	"context"
	stderrors "errors"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spatialnav/pkg/observability"
)

// Sink receives envelopes.
type Sink interface {
	// Name identifies the sink in logs and metrics.
	Name() string

	Publish(ctx context.Context, env Envelope) error
	Close() error
}

// publish delivers env and reports the outcome to the sink hooks.
func publish(ctx context.Context, s Sink, env Envelope) error {
	err := s.Publish(ctx, env)
	observability.Sink().OnPublish(ctx, s.Name(), env.Type, err)
	return err
}

// =============================================================================
// LogSink
// =============================================================================

// LogSink writes each envelope as a structured log line.
type LogSink struct {
	logger *log.Logger
	level  log.Level
}

// NewLogSink logs envelopes at info level. A nil logger discards them.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &LogSink{logger: logger, level: log.InfoLevel}
}

// WithLevel returns a copy of s logging at level.
func (s *LogSink) WithLevel(level log.Level) *LogSink {
	return &LogSink{logger: s.logger, level: level}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Publish(_ context.Context, env Envelope) error {
	kv := []any{"id", env.ID}
	add := func(k, v string) {
		if v != "" {
			kv = append(kv, k, v)
		}
	}
	add("scene", env.Scene)
	add("target", env.Target)
	add("direction", env.Direction)
	add("section", env.SectionID)
	add("next", env.Next)
	add("next_section", env.NextSectionID)
	add("previous", env.Previous)
	add("cause", env.Cause)
	if env.Native {
		kv = append(kv, "native", true)
	}
	s.logger.Log(s.level, env.Type, kv...)
	return nil
}

func (s *LogSink) Close() error { return nil }

// =============================================================================
// Recorder
// =============================================================================

// Recorder keeps every envelope in memory.
type Recorder struct {
	mu   sync.Mutex
	envs []Envelope
}

func (r *Recorder) Name() string { return "recorder" }

func (r *Recorder) Publish(_ context.Context, env Envelope) error {
	r.mu.Lock()
	r.envs = append(r.envs, env)
	r.mu.Unlock()
	return nil
}

// Envelopes returns a copy of everything recorded so far.
func (r *Recorder) Envelopes() []Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.envs)
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.envs))
	for i, e := range r.envs {
		out[i] = e.Type
	}
	return out
}

// Reset drops all recorded envelopes.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.envs = nil
	r.mu.Unlock()
}

func (r *Recorder) Close() error { return nil }

// =============================================================================
// Multi
// =============================================================================

// Multi publishes to every sink, continuing past failures.
type Multi []Sink

func (m Multi) Name() string { return "multi" }

func (m Multi) Publish(ctx context.Context, env Envelope) error {
	var errs []error
	for _, s := range m {
		if err := publish(ctx, s, env); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
