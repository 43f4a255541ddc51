package navigator

import "github.com/matzehuels/spatialnav/pkg/spatial"

// Section is a named group of navigable nodes with its own entry and exit
// policy. Sections are created by [Navigator.AddSection].
type Section struct {
	id       string
	cfg      SectionConfig
	disabled bool

	lastFocused Node
	previous    *spatial.Memory[Node]

	nav *Navigator
}

// ID returns the section id.
func (s *Section) ID() string { return s.id }

// Disabled reports whether the section is disabled.
func (s *Section) Disabled() bool { return s.disabled }

// Config returns the section's own overrides.
func (s *Section) Config() SectionConfig { return s.cfg }

// Resolved returns the navigator-wide config with the section's overrides applied.
func (s *Section) Resolved() Config { return s.nav.config.Merge(s.cfg) }

// Previous returns the last move recorded from this section, if any.
func (s *Section) Previous() (spatial.Memory[Node], bool) {
	if s.previous == nil {
		return spatial.Memory[Node]{}, false
	}
	return *s.previous, true
}

// Match reports whether n belongs to the section.
func (s *Section) Match(n Node) bool { return matches(s.nav.host, n, s.cfg.Selector) }

// IsNavigable reports whether n may receive focus in this section. With
// verifyMembership set, n must also match the section selector.
func (s *Section) IsNavigable(n Node, verifyMembership bool) bool {
	if n == nil || s.disabled {
		return false
	}

	h := s.nav.host
	if box, ok := h.BoundingBox(n); !ok || box.Empty() || h.Disabled(n) {
		return false
	}

	if verifyMembership && !s.Match(n) {
		return false
	}

	if f := s.Resolved().NavigableFilter; f != nil && !f(n, s.id) {
		return false
	}

	return true
}

// DefaultElement returns the first navigable member selected by the
// section's default-element selector.
func (s *Section) DefaultElement() Node {
	for _, n := range resolve(s.nav.host, s.cfg.DefaultElement) {
		if s.IsNavigable(n, true) {
			return n
		}
	}
	return nil
}

// LastFocusedElement returns the node last focused in the section while it
// is still navigable.
func (s *Section) LastFocusedElement() Node {
	if s.IsNavigable(s.lastFocused, true) {
		return s.lastFocused
	}
	return nil
}

// NavigableElements returns the section's navigable nodes in selector order.
func (s *Section) NavigableElements() []Node {
	var out []Node
	for _, n := range resolve(s.nav.host, s.cfg.Selector) {
		if s.IsNavigable(n, false) {
			out = append(out, n)
		}
	}
	return out
}

// PrimaryElement returns the node the section's priority substitutes for a
// geometric destination when the section is entered, or nil.
func (s *Section) PrimaryElement() Node {
	switch s.Resolved().Priority {
	case PriorityLastFocused:
		if n := s.LastFocusedElement(); n != nil {
			return n
		}
		return s.DefaultElement()
	case PriorityDefaultElement:
		return s.DefaultElement()
	}
	return nil
}

// EntryElement returns the node focused when the section itself is
// focused, falling back to its first navigable node.
func (s *Section) EntryElement() Node {
	if s.disabled {
		return nil
	}

	var n Node
	if s.Resolved().Priority == PriorityLastFocused {
		n = firstNode(s.LastFocusedElement, s.DefaultElement)
	} else {
		n = firstNode(s.DefaultElement, s.LastFocusedElement)
	}
	if n != nil {
		return n
	}

	if all := s.NavigableElements(); len(all) > 0 {
		return all[0]
	}
	return nil
}

func firstNode(fns ...func() Node) Node {
	for _, fn := range fns {
		if n := fn(); n != nil {
			return n
		}
	}
	return nil
}

// leaveOutcome is the result of applying a leave-for override.
type leaveOutcome int

const (
	leaveNone    leaveOutcome = iota // no override, or its target could not be focused
	leaveDone                        // the override moved focus
	leaveBlocked                     // the override suppresses movement
)

// gotoLeaveFor applies the section's leave-for override for dir.
func (s *Section) gotoLeaveFor(dir spatial.Direction) leaveOutcome {
	target, ok := s.Resolved().leaveFor(dir)
	if !ok {
		return leaveNone
	}
	if target == "" {
		return leaveBlocked
	}
	if s.nav.focusExtendedSelector(target, dir) {
		return leaveDone
	}
	return leaveNone
}
