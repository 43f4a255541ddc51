package navigator

import "github.com/matzehuels/spatialnav/pkg/spatial"

// Priority selects which node receives focus when a section is entered.
type Priority string

const (
	// PriorityNone enters a section at its default element, then its
	// last-focused node, then its first navigable node.
	PriorityNone Priority = ""
	// PriorityLastFocused prefers the node that was focused when the section
	// was last left.
	PriorityLastFocused Priority = "last-focused"
	// PriorityDefaultElement always enters at the section's default element.
	PriorityDefaultElement Priority = "default-element"
)

// Restrict controls whether a move may leave the focused node's section.
type Restrict string

const (
	RestrictSelfOnly  Restrict = "self-only"
	RestrictSelfFirst Restrict = "self-first"
	RestrictNone      Restrict = "none"
)

// DefaultTabIndexIgnoreList matches nodes that are focusable without help.
const DefaultTabIndexIgnoreList = "a, input, select, textarea, button, iframe, [contentEditable=true]"

// Filter decides whether a node may receive focus within a section.
type Filter func(n Node, sectionID string) bool

// Config is a fully resolved set of navigation options.
type Config struct {
	StraightOnly             bool
	StraightOverlapThreshold float64
	RememberSource           bool
	Priority                 Priority

	// LeaveFor maps a direction to an extended selector focused when a move
	// in that direction leaves the section. An empty value blocks the move.
	LeaveFor map[spatial.Direction]string

	Restrict           Restrict
	TabIndexIgnoreList string
	NavigableFilter    Filter
	InnerPartition     spatial.InnerPartition
}

// DefaultConfig returns the navigator-wide defaults.
func DefaultConfig() Config {
	return Config{
		StraightOverlapThreshold: 0.5,
		Restrict:                 RestrictSelfFirst,
		TabIndexIgnoreList:       DefaultTabIndexIgnoreList,
		InnerPartition:           spatial.InnerBox,
	}
}

// SectionConfig holds a section's membership and its overrides of [Config].
// Nil fields inherit the navigator-wide value.
type SectionConfig struct {
	Selector       Selector
	DefaultElement Selector

	StraightOnly             *bool
	StraightOverlapThreshold *float64
	RememberSource           *bool
	Priority                 *Priority
	LeaveFor                 map[spatial.Direction]string
	Restrict                 *Restrict
	TabIndexIgnoreList       *string
	NavigableFilter          Filter
	InnerPartition           *spatial.InnerPartition
}

// Merge returns c with every override set in s applied.
func (c Config) Merge(s SectionConfig) Config {
	out := c
	if s.StraightOnly != nil {
		out.StraightOnly = *s.StraightOnly
	}
	if s.StraightOverlapThreshold != nil {
		out.StraightOverlapThreshold = *s.StraightOverlapThreshold
	}
	if s.RememberSource != nil {
		out.RememberSource = *s.RememberSource
	}
	if s.Priority != nil {
		out.Priority = *s.Priority
	}
	if s.LeaveFor != nil {
		out.LeaveFor = s.LeaveFor
	}
	if s.Restrict != nil {
		out.Restrict = *s.Restrict
	}
	if s.TabIndexIgnoreList != nil {
		out.TabIndexIgnoreList = *s.TabIndexIgnoreList
	}
	if s.NavigableFilter != nil {
		out.NavigableFilter = s.NavigableFilter
	}
	if s.InnerPartition != nil {
		out.InnerPartition = *s.InnerPartition
	}
	return out
}

// leaveFor looks up the override for dir.
func (c Config) leaveFor(dir spatial.Direction) (string, bool) {
	v, ok := c.LeaveFor[dir]
	return v, ok
}

// Ptr returns a pointer to v, for filling [SectionConfig] overrides.
func Ptr[T any](v T) *T { return &v }
