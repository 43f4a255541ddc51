package navigator

import (
	"sync"

	"github.com/matzehuels/spatialnav/pkg/spatial"
)

// EventType names a lifecycle notification.
type EventType string

const (
	EventWillMove       EventType = "will-move"
	EventWillUnfocus    EventType = "will-unfocus"
	EventUnfocused      EventType = "unfocused"
	EventWillFocus      EventType = "will-focus"
	EventFocused        EventType = "focused"
	EventNavigateFailed EventType = "navigate-failed"
	EventEnterDown      EventType = "enter-down"
	EventEnterUp        EventType = "enter-up"
)

// Cause values for [EventWillMove].
const (
	CauseKeyDown = "keydown"
	CauseAPI     = "api"
)

// Event is a lifecycle notification delivered to listeners. Fields that do
// not apply to a type are left zero.
type Event struct {
	Type       EventType
	Target     Node
	Cancelable bool

	Direction     spatial.Direction
	SectionID     string
	Next          Node
	NextSectionID string
	Previous      Node

	// Native is set for focus changes that did not originate in the navigator.
	Native bool
	Cause  string
}

// Listener receives an event. Returning false vetoes a cancelable event and
// is ignored otherwise.
type Listener func(Event) bool

// Notifier delivers events and reports whether the step may continue.
type Notifier interface {
	Notify(Event) bool
}

type listenerEntry struct {
	id int
	fn Listener
}

// Dispatcher fans events out to registered listeners. It is safe to register
// and remove listeners from within a listener.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    int
	listeners map[EventType][]listenerEntry
	any       []listenerEntry
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventType][]listenerEntry)}
}

// On registers fn for events of type t and returns a function removing it.
func (d *Dispatcher) On(t EventType, fn Listener) (off func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.listeners[t] = append(d.listeners[t], listenerEntry{id: id, fn: fn})
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.listeners[t] = removeEntry(d.listeners[t], id)
	}
}

// OnAny registers fn for every event type.
func (d *Dispatcher) OnAny(fn Listener) (off func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.any = append(d.any, listenerEntry{id: id, fn: fn})
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.any = removeEntry(d.any, id)
	}
}

// Notify delivers ev to every listener registered for its type, then to the
// catch-all listeners. All listeners run even after a veto. It returns false
// only when ev is cancelable and some listener vetoed it.
func (d *Dispatcher) Notify(ev Event) bool {
	d.mu.Lock()
	targets := make([]listenerEntry, 0, len(d.listeners[ev.Type])+len(d.any))
	targets = append(targets, d.listeners[ev.Type]...)
	targets = append(targets, d.any...)
	d.mu.Unlock()

	ok := true
	for _, l := range targets {
		if !l.fn(ev) {
			ok = false
		}
	}
	return ok || !ev.Cancelable
}

func removeEntry(entries []listenerEntry, id int) []listenerEntry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.id != id {
			out = append(out, e)
		}
	}
	return out
}
