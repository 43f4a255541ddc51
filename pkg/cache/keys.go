package cache

import (
	"context"
	"strings"

	"github.com/matzehuels/spatialnav/pkg/observability"
)

// Key namespaces, also reported as the key type to cache hooks.
const (
	KeyTypeNavmap   = "navmap"
	KeyTypeTerminal = "term"
)

// NavmapKeyOpts are the render options that change a navigation map.
type NavmapKeyOpts struct {
	Format       string  `json:"format"`
	Focused      string  `json:"focused,omitempty"`
	StraightOnly bool    `json:"straight_only,omitempty"`
	Threshold    float64 `json:"threshold"`
}

// TerminalKeyOpts are the render options that change a terminal drawing.
type TerminalKeyOpts struct {
	Cols    int    `json:"cols"`
	Rows    int    `json:"rows"`
	Focused string `json:"focused,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	NavmapKey(sceneHash string, opts NavmapKeyOpts) string
	TerminalKey(sceneHash string, opts TerminalKeyOpts) string
}

// DefaultKeyer hashes the scene hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) NavmapKey(sceneHash string, opts NavmapKeyOpts) string {
	return hashKey(KeyTypeNavmap, sceneHash, opts)
}

func (DefaultKeyer) TerminalKey(sceneHash string, opts TerminalKeyOpts) string {
	return hashKey(KeyTypeTerminal, sceneHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix, so several scenes or tenants can
// share one backend without colliding.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses the
// default.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) NavmapKey(sceneHash string, opts NavmapKeyOpts) string {
	return k.prefix + k.inner.NavmapKey(sceneHash, opts)
}

func (k *ScopedKeyer) TerminalKey(sceneHash string, opts TerminalKeyOpts) string {
	return k.prefix + k.inner.TerminalKey(sceneHash, opts)
}

// keyType extracts the namespace of a key for the cache hooks.
func keyType(key string) string {
	parts := strings.Split(key, ":")
	for i := len(parts) - 2; i >= 0; i-- {
		switch parts[i] {
		case KeyTypeNavmap, KeyTypeTerminal:
			return parts[i]
		}
	}
	return "other"
}

func reportGet(ctx context.Context, key string, hit bool) {
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
	}
}
