// Package input decodes terminal and textual key input into navigator key
// events.
package input

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/navigator"
)

// FromKeyMsg converts a bubbletea key message. It reports false for keys
// the navigator does not handle.
func FromKeyMsg(msg tea.KeyMsg) (navigator.KeyEvent, bool) {
	var ev navigator.KeyEvent
	switch msg.Type {
	case tea.KeyUp:
		ev.Key = navigator.KeyUp
	case tea.KeyDown:
		ev.Key = navigator.KeyDown
	case tea.KeyLeft:
		ev.Key = navigator.KeyLeft
	case tea.KeyRight:
		ev.Key = navigator.KeyRight
	case tea.KeyEnter:
		ev.Key = navigator.KeyEnter
	case tea.KeyShiftUp:
		ev = navigator.KeyEvent{Key: navigator.KeyUp, Mods: navigator.ModShift}
	case tea.KeyShiftDown:
		ev = navigator.KeyEvent{Key: navigator.KeyDown, Mods: navigator.ModShift}
	case tea.KeyShiftLeft:
		ev = navigator.KeyEvent{Key: navigator.KeyLeft, Mods: navigator.ModShift}
	case tea.KeyShiftRight:
		ev = navigator.KeyEvent{Key: navigator.KeyRight, Mods: navigator.ModShift}
	case tea.KeyCtrlUp:
		ev = navigator.KeyEvent{Key: navigator.KeyUp, Mods: navigator.ModCtrl}
	case tea.KeyCtrlDown:
		ev = navigator.KeyEvent{Key: navigator.KeyDown, Mods: navigator.ModCtrl}
	case tea.KeyCtrlLeft:
		ev = navigator.KeyEvent{Key: navigator.KeyLeft, Mods: navigator.ModCtrl}
	case tea.KeyCtrlRight:
		ev = navigator.KeyEvent{Key: navigator.KeyRight, Mods: navigator.ModCtrl}
	case tea.KeyCtrlShiftUp:
		ev = navigator.KeyEvent{Key: navigator.KeyUp, Mods: navigator.ModCtrl | navigator.ModShift}
	case tea.KeyCtrlShiftDown:
		ev = navigator.KeyEvent{Key: navigator.KeyDown, Mods: navigator.ModCtrl | navigator.ModShift}
	case tea.KeyCtrlShiftLeft:
		ev = navigator.KeyEvent{Key: navigator.KeyLeft, Mods: navigator.ModCtrl | navigator.ModShift}
	case tea.KeyCtrlShiftRight:
		ev = navigator.KeyEvent{Key: navigator.KeyRight, Mods: navigator.ModCtrl | navigator.ModShift}
	default:
		return ev, false
	}
	if msg.Alt {
		ev.Mods |= navigator.ModAlt
	}
	return ev, true
}

var keyNames = map[string]navigator.Key{
	"up":    navigator.KeyUp,
	"down":  navigator.KeyDown,
	"left":  navigator.KeyLeft,
	"right": navigator.KeyRight,
	"enter": navigator.KeyEnter,
}

var modNames = map[string]navigator.Modifiers{
	"alt":   navigator.ModAlt,
	"ctrl":  navigator.ModCtrl,
	"meta":  navigator.ModMeta,
	"shift": navigator.ModShift,
}

// Parse reads a key written the way bubbletea prints it, such as "up",
// "shift+left" or "ctrl+alt+enter".
func Parse(s string) (navigator.KeyEvent, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	var ev navigator.KeyEvent
	for _, p := range parts[:len(parts)-1] {
		m, ok := modNames[p]
		if !ok {
			return ev, errors.New(errors.ErrCodeInvalidInput, "unknown modifier %q in key %q", p, s)
		}
		ev.Mods |= m
	}
	k, ok := keyNames[parts[len(parts)-1]]
	if !ok {
		return ev, errors.New(errors.ErrCodeInvalidInput, "unknown key %q", s)
	}
	ev.Key = k
	return ev, nil
}

// ParseSequence reads a comma- or space-separated list of keys.
func ParseSequence(s string) ([]navigator.KeyEvent, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]navigator.KeyEvent, 0, len(fields))
	for _, f := range fields {
		ev, err := Parse(f)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// Format writes ev back in the form Parse accepts.
func Format(ev navigator.KeyEvent) string {
	var b strings.Builder
	for _, m := range []struct {
		mod  navigator.Modifiers
		name string
	}{
		{navigator.ModCtrl, "ctrl"},
		{navigator.ModAlt, "alt"},
		{navigator.ModMeta, "meta"},
		{navigator.ModShift, "shift"},
	} {
		if ev.Mods&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	for name, k := range keyNames {
		if k == ev.Key {
			b.WriteString(name)
			return b.String()
		}
	}
	b.WriteString("none")
	return b.String()
}
