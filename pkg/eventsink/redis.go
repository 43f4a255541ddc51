package eventsink

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/spatialnav/pkg/errors"
)

// DefaultRedisChannel is the pub/sub channel used when none is configured.
const DefaultRedisChannel = "spatialnav:events"

// RedisConfig configures a [RedisSink].
type RedisConfig struct {
	// URL is a redis:// connection URL.
	URL string

	// Channel receives every envelope via PUBLISH. Defaults to
	// DefaultRedisChannel.
	Channel string

	// Stream, when set, also appends each envelope to a stream capped at
	// roughly StreamMaxLen entries.
	Stream       string
	StreamMaxLen int64

	// Attempts bounds the connection check and each publish. Zero means
	// DefaultConnectAttempts for the check and a single publish attempt.
	Attempts   int
	RetryDelay time.Duration
}

// RedisSink publishes envelopes as JSON on a Redis channel.
type RedisSink struct {
	client    redis.UniversalClient
	channel   string
	stream    string
	maxLen    int64
	attempts  int
	delay     time.Duration
	ownClient bool
}

// NewRedisSink connects to cfg.URL and verifies the connection.
func NewRedisSink(ctx context.Context, cfg RedisConfig) (*RedisSink, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse redis url")
	}
	client := redis.NewClient(opts)

	attempts := cfg.Attempts
	if attempts == 0 {
		attempts = DefaultConnectAttempts
	}
	delay := cfg.RetryDelay
	if delay == 0 {
		delay = DefaultRetryDelay
	}
	err = retry(ctx, attempts, delay, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Wrap(errors.ErrCodeNetwork, err, "ping redis")
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, err
	}
	s := NewRedisSinkWithClient(client, cfg)
	s.ownClient = true
	return s, nil
}

// NewRedisSinkWithClient publishes through an existing client, which the
// caller keeps ownership of.
func NewRedisSinkWithClient(client redis.UniversalClient, cfg RedisConfig) *RedisSink {
	if cfg.Channel == "" {
		cfg.Channel = DefaultRedisChannel
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	return &RedisSink{
		client:   client,
		channel:  cfg.Channel,
		stream:   cfg.Stream,
		maxLen:   cfg.StreamMaxLen,
		attempts: cfg.Attempts,
		delay:    cfg.RetryDelay,
	}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Publish(ctx context.Context, env Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal envelope")
	}
	err = retry(ctx, s.attempts, s.delay, func() error {
		if err := s.client.Publish(ctx, s.channel, data).Err(); err != nil {
			return errors.Wrap(errors.ErrCodeNetwork, err, "publish to %s", s.channel)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if s.stream == "" {
		return nil
	}
	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{"type": env.Type, "envelope": data},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "append to stream %s", s.stream)
	}
	return nil
}

// Close closes the client when the sink created it.
func (s *RedisSink) Close() error {
	if !s.ownClient {
		return nil
	}
	return s.client.Close()
}
