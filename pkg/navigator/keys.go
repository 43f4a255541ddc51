package navigator

import "github.com/matzehuels/spatialnav/pkg/spatial"

// Key is a decoded navigation key.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
)

// Direction returns the travel direction of an arrow key.
func (k Key) Direction() (spatial.Direction, bool) {
	switch k {
	case KeyUp:
		return spatial.Up, true
	case KeyDown:
		return spatial.Down, true
	case KeyLeft:
		return spatial.Left, true
	case KeyRight:
		return spatial.Right, true
	}
	return "", false
}

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModAlt Modifiers = 1 << iota
	ModCtrl
	ModMeta
	ModShift
)

// KeyEvent is a key press or release.
type KeyEvent struct {
	Key  Key
	Mods Modifiers
}

// HandleKeyDown reacts to a key press. It reports whether the key was
// consumed and should not reach the focused node.
//
// Keys pressed with a modifier are ignored, as are all keys before [Navigator.Init],
// while paused or while no section exists.
func (n *Navigator) HandleKeyDown(ev KeyEvent) bool {
	if !n.ready || len(n.sections) == 0 || n.paused || ev.Mods != 0 {
		return false
	}

	dir, ok := ev.Key.Direction()
	if !ok {
		if ev.Key == KeyEnter {
			if cur := n.host.Focused(); cur != nil && n.SectionOf(cur) != "" {
				if !n.notify(Event{Type: EventEnterDown, Target: cur, Cancelable: true}) {
					return true
				}
			}
		}
		return false
	}

	cur := n.host.Focused()
	if cur == nil {
		if s, ok := n.sections[n.lastSectionID]; ok {
			cur = s.LastFocusedElement()
		}
		if cur == nil {
			n.focusSection("")
			return true
		}
	}

	sid := n.SectionOf(cur)
	if sid == "" {
		return false
	}

	if n.notify(Event{Type: EventWillMove, Target: cur, Cancelable: true, Direction: dir, SectionID: sid, Cause: CauseKeyDown}) {
		n.focusNext(dir, cur, sid)
	}
	return true
}

// HandleKeyUp reacts to a key release. Only enter is of interest; it reports
// whether an enter-up listener consumed the key.
func (n *Navigator) HandleKeyUp(ev KeyEvent) bool {
	if ev.Mods != 0 || !n.ready || n.paused || len(n.sections) == 0 || ev.Key != KeyEnter {
		return false
	}

	cur := n.host.Focused()
	if cur == nil || n.SectionOf(cur) == "" {
		return false
	}
	return !n.notify(Event{Type: EventEnterUp, Target: cur, Cancelable: true})
}

// HandleFocus reacts to focus arriving at node from outside the navigator,
// such as a pointer click. A vetoed will-focus blurs node again.
func (n *Navigator) HandleFocus(node Node) {
	if !n.ready || len(n.sections) == 0 || n.duringFocusChange || node == nil {
		return
	}

	sid := n.SectionOf(node)
	if sid == "" {
		return
	}

	if n.paused {
		n.focusChanged(node, sid)
		return
	}

	ev := Event{Type: EventWillFocus, Target: node, Cancelable: true, SectionID: sid, Native: true}
	if !n.notify(ev) {
		n.duringFocusChange = true
		n.host.Blur(node)
		n.duringFocusChange = false
		return
	}

	ev.Type, ev.Cancelable = EventFocused, false
	n.notify(ev)
	n.focusChanged(node, sid)
}

// HandleBlur reacts to node losing focus from outside the navigator. A
// vetoed will-unfocus focuses node again.
func (n *Navigator) HandleBlur(node Node) {
	if !n.ready || n.paused || len(n.sections) == 0 || n.duringFocusChange || node == nil {
		return
	}
	if n.SectionOf(node) == "" {
		return
	}

	ev := Event{Type: EventWillUnfocus, Target: node, Cancelable: true, Native: true}
	if !n.notify(ev) {
		n.duringFocusChange = true
		n.host.Focus(node)
		n.duringFocusChange = false
		return
	}

	ev.Type, ev.Cancelable = EventUnfocused, false
	n.notify(ev)
}
