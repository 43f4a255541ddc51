package navigator

import (
	"github.com/matzehuels/spatialnav/pkg/observability"
	"github.com/matzehuels/spatialnav/pkg/spatial"
)

// Focus moves focus to a section, an extended selector, or, when target is
// empty, to the default section, then the last section, then the first
// section able to take focus.
//
// A target naming a registered section focuses that section's entry node.
// Any other target is an extended selector: "@" focuses a section like the
// empty target, "@<id>" focuses section id, and anything else is a pattern
// whose first match is focused if navigable.
//
// With silent set the change is made without lifecycle notifications.
func (n *Navigator) Focus(target string, silent bool) bool {
	autoPause := !n.paused && silent
	if autoPause {
		n.Pause()
		defer n.Resume()
	}

	switch {
	case target == "":
		return n.focusSection("")
	case n.sections[target] != nil:
		return n.focusSection(target)
	}
	return n.focusExtendedSelector(target, "")
}

// notify delivers a lifecycle event and reports whether it may proceed.
func (n *Navigator) notify(ev Event) bool {
	if n.events.Notify(ev) {
		return true
	}
	n.logger.Debug("vetoed", "event", ev.Type, "target", nodeID(ev.Target))
	observability.Navigation().OnVeto(string(ev.Type))
	return false
}

// focusElement applies focus to next, running the unfocus/focus lifecycle
// unless paused or already inside a focus change.
func (n *Navigator) focusElement(next Node, sectionID string, dir spatial.Direction) bool {
	if next == nil {
		return false
	}

	current := n.host.Focused()

	silentFocus := func() {
		if current != nil {
			n.host.Blur(current)
		}
		n.host.Focus(next)
		n.focusChanged(next, sectionID)
		observability.Navigation().OnFocus(sectionID, next.ID(), true)
	}

	if n.duringFocusChange {
		silentFocus()
		return true
	}

	n.duringFocusChange = true
	defer func() { n.duringFocusChange = false }()

	if n.paused {
		silentFocus()
		return true
	}

	if current != nil {
		unfocus := Event{
			Type:          EventWillUnfocus,
			Target:        current,
			Cancelable:    true,
			Next:          next,
			NextSectionID: sectionID,
			Direction:     dir,
		}
		if !n.notify(unfocus) {
			return false
		}

		n.host.Blur(current)
		unfocus.Type, unfocus.Cancelable = EventUnfocused, false
		n.notify(unfocus)
	}

	focus := Event{
		Type:       EventWillFocus,
		Target:     next,
		Cancelable: true,
		Previous:   current,
		SectionID:  sectionID,
		Direction:  dir,
	}
	if !n.notify(focus) {
		return false
	}

	n.host.Focus(next)
	focus.Type, focus.Cancelable = EventFocused, false
	n.notify(focus)

	n.duringFocusChange = false
	n.focusChanged(next, sectionID)
	observability.Navigation().OnFocus(sectionID, next.ID(), false)
	return true
}

// focusChanged records node as the last focused node of its section.
func (n *Navigator) focusChanged(node Node, sectionID string) {
	if sectionID == "" {
		sectionID = n.SectionOf(node)
	}
	if s, ok := n.sections[sectionID]; ok {
		s.lastFocused = node
		n.lastSectionID = sectionID
	}
}

// focusExtendedSelector focuses "@", "@<section>" or the first node matching
// a pattern.
func (n *Navigator) focusExtendedSelector(sel string, dir spatial.Direction) bool {
	if sel == "" {
		return false
	}
	if sel[0] == '@' {
		return n.focusSection(sel[1:])
	}

	nodes := n.host.Query(sel)
	if len(nodes) == 0 {
		return false
	}
	next := nodes[0]
	sid := n.SectionOf(next)
	if !n.isNavigable(next, sid, false) {
		return false
	}
	return n.focusElement(next, sid, dir)
}

// sectionRange lists the sections tried by focusSection: the given one, or
// the default, the last and then every section in registration order.
func (n *Navigator) sectionRange(id string) []*Section {
	var out []*Section
	add := func(id string) {
		s, ok := n.sections[id]
		if !ok || s.disabled {
			return
		}
		for _, o := range out {
			if o == s {
				return
			}
		}
		out = append(out, s)
	}

	if id != "" {
		add(id)
		return out
	}
	add(n.defaultSectionID)
	add(n.lastSectionID)
	for _, sid := range n.order {
		add(sid)
	}
	return out
}

// focusSection focuses the entry node of the first section in range that
// has one.
func (n *Navigator) focusSection(id string) bool {
	for _, s := range n.sectionRange(id) {
		if next := s.EntryElement(); next != nil {
			return n.focusElement(next, s.id, "")
		}
	}
	return false
}

func nodeID(n Node) string {
	if n == nil {
		return ""
	}
	return n.ID()
}
