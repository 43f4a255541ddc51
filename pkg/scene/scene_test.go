package scene

import (
	"testing"

	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/navigator"
	"github.com/matzehuels/spatialnav/pkg/spatial"
)

func newTestScene(t *testing.T, els ...*Element) *Scene {
	t.Helper()
	s := New("test")
	for _, e := range els {
		if err := s.Add(e); err != nil {
			t.Fatalf("Add(%s): %v", e.ID(), err)
		}
	}
	return s
}

func TestSceneAdd(t *testing.T) {
	s := New("test")
	if err := s.Add(NewElement("a", "", spatial.BoxAt(0, 0, 1, 1))); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err := s.Add(NewElement("a", "", spatial.BoxAt(0, 0, 1, 1)))
	if !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("duplicate Add error = %v, want INVALID_SCENE", err)
	}
	if err := s.Add(NewElement("", "", spatial.Box{})); err == nil {
		t.Error("Add accepted empty id")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestSceneHost(t *testing.T) {
	a := NewElement("a", "button", spatial.BoxAt(0, 0, 10, 10), "row")
	b := NewElement("b", "button", spatial.BoxAt(20, 0, 10, 10), "row")
	b.Hidden = true
	b.Disabled = true
	b.Nav = map[spatial.Direction]string{spatial.Left: ""}
	s := newTestScene(t, a, b)

	if box, ok := s.BoundingBox(a); !ok || box.Right != 10 {
		t.Errorf("BoundingBox(a) = %+v, %v", box, ok)
	}
	if _, ok := s.BoundingBox(b); ok {
		t.Error("hidden element has a box")
	}
	if !s.Disabled(b) || s.Disabled(a) {
		t.Error("Disabled mismatch")
	}

	if got := s.Query(".row"); len(got) != 2 || got[0] != navigator.Node(a) {
		t.Errorf("Query(.row) = %v", got)
	}
	if got := s.Query("#"); got != nil {
		t.Errorf("Query with invalid pattern = %v, want nil", got)
	}
	if !s.Matches(a, "button.row") || s.Matches(a, "#b") {
		t.Error("Matches mismatch")
	}

	if v, ok := s.Override(b, spatial.Left); !ok || v != "" {
		t.Errorf("Override(b, left) = %q, %v", v, ok)
	}
	if _, ok := s.Override(a, spatial.Left); ok {
		t.Error("unexpected override on a")
	}

	if s.Focused() != nil {
		t.Fatal("scene starts focused")
	}
	s.Focus(a)
	if s.Focused() != navigator.Node(a) || s.FocusedElement() != a {
		t.Error("Focus(a) not applied")
	}
	s.Blur(b)
	if s.FocusedElement() != a {
		t.Error("Blur of an unfocused element cleared focus")
	}
	s.Blur(a)
	if s.Focused() != nil {
		t.Error("Blur(a) did not clear focus")
	}

	s.MakeFocusable(a)
	if !a.TabStop {
		t.Error("MakeFocusable did not set a tab stop")
	}
}

func TestSceneRemove(t *testing.T) {
	a := NewElement("a", "", spatial.BoxAt(0, 0, 1, 1))
	s := newTestScene(t, a, NewElement("b", "", spatial.BoxAt(2, 0, 1, 1)))
	s.Focus(a)

	if !s.Remove("a") {
		t.Fatal("Remove(a) = false")
	}
	if s.Remove("a") {
		t.Error("second Remove(a) = true")
	}
	if s.Focused() != nil {
		t.Error("removed element still focused")
	}
	if _, ok := s.Element("a"); ok || s.Len() != 1 {
		t.Error("element a still present")
	}
}

func TestSceneBounds(t *testing.T) {
	hidden := NewElement("h", "", spatial.BoxAt(0, 0, 900, 900))
	hidden.Hidden = true
	s := newTestScene(t,
		NewElement("a", "", spatial.BoxAt(10, 10, 50, 20)),
		NewElement("b", "", spatial.BoxAt(100, 40, 20, 20)),
		hidden,
	)
	if b := s.Bounds(); b.Right != 120 || b.Bottom != 60 {
		t.Errorf("Bounds = %+v, want right 120 bottom 60", b)
	}
	s.Width, s.Height = 200, 10
	if b := s.Bounds(); b.Right != 200 || b.Bottom != 60 {
		t.Errorf("Bounds = %+v, want right 200 bottom 60", b)
	}
}

func TestSceneSelectInvalid(t *testing.T) {
	s := New("test")
	if _, err := s.Select("a b"); !errors.Is(err, errors.ErrCodeInvalidSelector) {
		t.Errorf("Select error = %v, want INVALID_SELECTOR", err)
	}
}
