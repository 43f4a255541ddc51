package navigator

import "testing"

func TestDispatcherVeto(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	d.On(EventWillFocus, func(Event) bool { calls++; return false })
	d.On(EventWillFocus, func(Event) bool { calls++; return true })

	if d.Notify(Event{Type: EventWillFocus, Cancelable: true}) {
		t.Error("cancelable event not vetoed")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want every listener to run", calls)
	}
	if !d.Notify(Event{Type: EventWillFocus}) {
		t.Error("non-cancelable event reported as vetoed")
	}
}

func TestDispatcherOff(t *testing.T) {
	d := NewDispatcher()
	var got []EventType
	off := d.On(EventFocused, func(ev Event) bool { got = append(got, ev.Type); return true })
	offAny := d.OnAny(func(ev Event) bool { got = append(got, "any:"+ev.Type); return true })

	d.Notify(Event{Type: EventFocused})
	off()
	offAny()
	d.Notify(Event{Type: EventFocused})

	if len(got) != 2 || got[0] != EventFocused || got[1] != "any:focused" {
		t.Errorf("got %v", got)
	}
}

func TestDispatcherRemoveDuringNotify(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	var off func()
	off = d.On(EventUnfocused, func(Event) bool { calls++; off(); return true })

	d.Notify(Event{Type: EventUnfocused})
	d.Notify(Event{Type: EventUnfocused})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
