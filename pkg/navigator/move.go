package navigator

import (
	"time"

	"github.com/matzehuels/spatialnav/pkg/observability"
	"github.com/matzehuels/spatialnav/pkg/spatial"
)

// Move moves focus from the focused node in direction dir. It returns false
// when nothing is focused, the move is vetoed or no destination exists.
func (n *Navigator) Move(dir spatial.Direction) bool {
	return n.move(dir, n.host.Focused())
}

// MoveFrom moves in direction dir starting from the first node sel selects
// instead of the focused node.
func (n *Navigator) MoveFrom(dir spatial.Direction, sel Selector) bool {
	return n.move(dir, first(resolve(n.host, sel)))
}

func (n *Navigator) move(dir spatial.Direction, from Node) bool {
	if !dir.Valid() || from == nil {
		return false
	}

	sid := n.SectionOf(from)
	if sid == "" {
		return false
	}

	if !n.notify(Event{Type: EventWillMove, Target: from, Cancelable: true, Direction: dir, SectionID: sid, Cause: CauseAPI}) {
		return false
	}
	return n.focusNext(dir, from, sid)
}

// focusNext runs one directional move from current, which belongs to
// section currentID.
func (n *Navigator) focusNext(dir spatial.Direction, current Node, currentID string) bool {
	n.moving = true
	defer func() { n.moving = false }()
	start := time.Now()

	if sel, ok := n.host.Override(current, dir); ok {
		if sel == "" || !n.focusExtendedSelector(sel, dir) {
			return n.fireNavigateFailed(current, dir)
		}
		return true
	}

	section := n.sections[currentID]
	next := n.search(dir, current, section)

	if next == nil {
		if section.gotoLeaveFor(dir) == leaveDone {
			return true
		}
		return n.fireNavigateFailed(current, dir)
	}

	section.previous = &spatial.Memory[Node]{Source: current, Destination: next, Reverse: dir.Reverse()}

	nextID := n.SectionOf(next)
	if nextID != currentID {
		switch section.gotoLeaveFor(dir) {
		case leaveDone:
			return true
		case leaveBlocked:
			return n.fireNavigateFailed(current, dir)
		}

		if s, ok := n.sections[nextID]; ok {
			if entry := s.PrimaryElement(); entry != nil {
				next = entry
			}
		}
	}

	n.logger.Debug("move", "direction", dir, "from", current.ID(), "to", next.ID(), "section", nextID)
	if !n.focusElement(next, nextID, dir) {
		return false
	}
	observability.Navigation().OnMove(string(dir), current.ID(), next.ID(), time.Since(start))
	return true
}

// search returns the geometric destination from current under the
// section's restrict policy.
func (n *Navigator) search(dir spatial.Direction, current Node, section *Section) Node {
	cfg := section.Resolved()
	opts := spatial.Options[Node]{
		StraightOnly:             cfg.StraightOnly,
		StraightOverlapThreshold: cfg.StraightOverlapThreshold,
		RememberSource:           cfg.RememberSource,
		InnerPartition:           cfg.InnerPartition,
		Previous:                 section.previous,
	}
	navigate := func(candidates []Node) Node {
		next, ok := spatial.Navigate(current, dir, candidates, n.host.BoundingBox, opts)
		if !ok {
			return nil
		}
		return next
	}

	var own, all []Node
	for _, id := range n.order {
		nodes := n.sections[id].NavigableElements()
		if id == section.id {
			own = nodes
		}
		all = append(all, nodes...)
	}

	switch cfg.Restrict {
	case RestrictSelfOnly, RestrictSelfFirst:
		next := navigate(without(own, current))
		if next == nil && cfg.Restrict == RestrictSelfFirst {
			next = navigate(without(all, own...))
		}
		return next
	}
	return navigate(without(all, current))
}

// fireNavigateFailed reports a failed move and returns false.
func (n *Navigator) fireNavigateFailed(from Node, dir spatial.Direction) bool {
	n.notify(Event{Type: EventNavigateFailed, Target: from, Direction: dir})
	n.logger.Debug("navigate failed", "direction", dir, "from", from.ID())
	observability.Navigation().OnNavigateFailed(string(dir), from.ID())
	return false
}

// Peek reports where [Navigator.Move] would send focus without moving it,
// recording anything or applying leave-for overrides.
func (n *Navigator) Peek(dir spatial.Direction) (Node, bool) {
	return n.peek(dir, n.host.Focused())
}

// PeekFrom is [Navigator.Peek] starting from the first node sel selects.
func (n *Navigator) PeekFrom(dir spatial.Direction, sel Selector) (Node, bool) {
	return n.peek(dir, first(resolve(n.host, sel)))
}

func (n *Navigator) peek(dir spatial.Direction, from Node) (Node, bool) {
	if !dir.Valid() || from == nil {
		return nil, false
	}
	sid := n.SectionOf(from)
	if sid == "" {
		return nil, false
	}

	if sel, ok := n.host.Override(from, dir); ok {
		return n.peekExtended(sel)
	}

	section := n.sections[sid]
	leave, hasLeave := section.Resolved().leaveFor(dir)

	next := n.search(dir, from, section)
	if next == nil {
		if hasLeave {
			return n.peekExtended(leave)
		}
		return nil, false
	}

	nextID := n.SectionOf(next)
	if nextID != sid {
		if hasLeave {
			if leave == "" {
				return nil, false
			}
			if target, ok := n.peekExtended(leave); ok {
				return target, true
			}
		}
		if s, ok := n.sections[nextID]; ok {
			if entry := s.PrimaryElement(); entry != nil {
				next = entry
			}
		}
	}
	return next, true
}

// peekExtended resolves an extended selector the way focusExtendedSelector
// would, without focusing.
func (n *Navigator) peekExtended(sel string) (Node, bool) {
	if sel == "" {
		return nil, false
	}
	if sel[0] == '@' {
		for _, s := range n.sectionRange(sel[1:]) {
			if next := s.EntryElement(); next != nil {
				return next, true
			}
		}
		return nil, false
	}

	next := first(n.host.Query(sel))
	if next == nil || !n.isNavigable(next, n.SectionOf(next), false) {
		return nil, false
	}
	return next, true
}

func first(nodes []Node) Node {
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// without returns nodes minus every excluded node.
func without(nodes []Node, excluded ...Node) []Node {
	out := make([]Node, 0, len(nodes))
outer:
	for _, node := range nodes {
		for _, x := range excluded {
			if node == x {
				continue outer
			}
		}
		out = append(out, node)
	}
	return out
}
