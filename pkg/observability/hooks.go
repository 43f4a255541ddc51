// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about navigation decisions, scene storage, render cache
// use, event publishing and remote-control requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so library packages stay
// free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetNavigationHooks(&myNavigationHooks{})
//	    observability.SetSceneHooks(&mySceneHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	// ... pick a destination ...
//	observability.Navigation().OnMove(dir, from, to, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Navigation Hooks
// =============================================================================

// NavigationHooks receives events from the focus navigator.
//
// Navigation runs synchronously on the caller's goroutine and carries no
// context; implementations must not block.
type NavigationHooks interface {
	// OnMove records a successful directional move.
	OnMove(direction, from, to string, duration time.Duration)

	// OnNavigateFailed records a move that found no destination.
	OnNavigateFailed(direction, from string)

	// OnFocus records an applied focus change.
	OnFocus(sectionID, nodeID string, silent bool)

	// OnVeto records a lifecycle step rejected by a listener.
	OnVeto(eventType string)
}

// =============================================================================
// Scene Hooks
// =============================================================================

// SceneHooks receives events from scene loading and storage.
type SceneHooks interface {
	// OnSceneLoad records a scene read from a file or store.
	OnSceneLoad(ctx context.Context, backend, name string, elements int, duration time.Duration, err error)

	// OnSceneSave records a scene write.
	OnSceneSave(ctx context.Context, backend, name string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Sink Hooks
// =============================================================================

// SinkHooks receives events from navigation event sinks.
type SinkHooks interface {
	// OnPublish records an event handed to a sink, with the delivery error if any.
	OnPublish(ctx context.Context, sink, eventType string, err error)
}

// =============================================================================
// Remote Hooks
// =============================================================================

// RemoteHooks receives events from the HTTP remote-control server.
type RemoteHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response status of a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopNavigationHooks is a no-op implementation of NavigationHooks.
type NoopNavigationHooks struct{}

func (NoopNavigationHooks) OnMove(string, string, string, time.Duration) {}
func (NoopNavigationHooks) OnNavigateFailed(string, string)               {}
func (NoopNavigationHooks) OnFocus(string, string, bool)                  {}
func (NoopNavigationHooks) OnVeto(string)                                 {}

// NoopSceneHooks is a no-op implementation of SceneHooks.
type NoopSceneHooks struct{}

func (NoopSceneHooks) OnSceneLoad(context.Context, string, string, int, time.Duration, error) {}
func (NoopSceneHooks) OnSceneSave(context.Context, string, string, time.Duration, error)      {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopSinkHooks is a no-op implementation of SinkHooks.
type NoopSinkHooks struct{}

func (NoopSinkHooks) OnPublish(context.Context, string, string, error) {}

// NoopRemoteHooks is a no-op implementation of RemoteHooks.
type NoopRemoteHooks struct{}

func (NoopRemoteHooks) OnRequest(context.Context, string, string)                     {}
func (NoopRemoteHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	navigationHooks NavigationHooks = NoopNavigationHooks{}
	sceneHooks      SceneHooks      = NoopSceneHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	sinkHooks       SinkHooks       = NoopSinkHooks{}
	remoteHooks     RemoteHooks     = NoopRemoteHooks{}
	hooksMu         sync.RWMutex
)

// SetNavigationHooks registers custom navigation hooks.
// This should be called once at application startup before any navigator is built.
func SetNavigationHooks(h NavigationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		navigationHooks = h
	}
}

// SetSceneHooks registers custom scene hooks.
func SetSceneHooks(h SceneHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sceneHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetSinkHooks registers custom sink hooks.
func SetSinkHooks(h SinkHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sinkHooks = h
	}
}

// SetRemoteHooks registers custom remote-control hooks.
func SetRemoteHooks(h RemoteHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		remoteHooks = h
	}
}

// Navigation returns the registered navigation hooks.
func Navigation() NavigationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return navigationHooks
}

// Scene returns the registered scene hooks.
func Scene() SceneHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sceneHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Sink returns the registered sink hooks.
func Sink() SinkHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sinkHooks
}

// Remote returns the registered remote-control hooks.
func Remote() RemoteHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return remoteHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	navigationHooks = NoopNavigationHooks{}
	sceneHooks = NoopSceneHooks{}
	cacheHooks = NoopCacheHooks{}
	sinkHooks = NoopSinkHooks{}
	remoteHooks = NoopRemoteHooks{}
}
