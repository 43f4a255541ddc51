// Package cache stores rendered artifacts so repeated requests for the same
// scene and options skip the render.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [MemoryCache]: a process-local map, for the remote-control server
//   - [NullCache]: stores nothing, for tests or when caching is disabled
//
// # Keys
//
// A [Keyer] derives keys from a scene hash and render options, so a change
// to either produces a new key:
//
//	k := cache.NewDefaultKeyer()
//	key := k.NavmapKey(cache.Hash(sceneBytes), cache.NavmapKeyOpts{Format: "svg"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A zero ttl never expires.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
