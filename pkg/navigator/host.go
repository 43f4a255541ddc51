package navigator

import "github.com/matzehuels/spatialnav/pkg/spatial"

// Node is a focusable element. Implementations must be comparable, typically
// pointers, since nodes are compared by identity.
type Node interface {
	ID() string
}

// Host is the environment a [Navigator] drives.
type Host interface {
	// BoundingBox returns n's on-screen box, or false when it has none.
	BoundingBox(n Node) (spatial.Box, bool)

	// Query returns the nodes matching pattern in document order. An invalid
	// pattern yields no nodes.
	Query(pattern string) []Node

	// Matches reports whether n matches pattern.
	Matches(n Node, pattern string) bool

	// Disabled reports whether n is marked disabled.
	Disabled(n Node) bool

	// Focused returns the node holding input focus, or nil.
	Focused() Node

	Focus(n Node)
	Blur(n Node)

	// Override returns the extended selector n declares for dir, if any. An
	// empty value blocks movement in that direction.
	Override(n Node, dir spatial.Direction) (string, bool)

	// MakeFocusable gives n a focus stop unless it already has one.
	MakeFocusable(n Node)
}
