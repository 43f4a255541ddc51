package scene

import (
	"slices"
	"sync"

	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/navigator"
	"github.com/matzehuels/spatialnav/pkg/spatial"
)

// Scene is an in-memory set of elements implementing [navigator.Host].
//
// A scene is not safe for concurrent mutation; callers that share one across
// goroutines must serialize access, as the navigator itself requires.
type Scene struct {
	Name          string
	Width, Height float64

	spec     *Spec
	elements []*Element
	byID     map[string]*Element
	focused  *Element

	mu       sync.Mutex
	patterns map[string]*Pattern
}

var _ navigator.Host = (*Scene)(nil)

// New creates an empty scene.
func New(name string) *Scene {
	return &Scene{
		Name:     name,
		byID:     make(map[string]*Element),
		patterns: make(map[string]*Pattern),
	}
}

// Add appends e in document order. Element ids must be unique and non-empty.
func (s *Scene) Add(e *Element) error {
	if e == nil || e.id == "" {
		return errors.New(errors.ErrCodeInvalidScene, "element id must not be empty")
	}
	if _, ok := s.byID[e.id]; ok {
		return errors.New(errors.ErrCodeInvalidScene, "duplicate element id %q", e.id)
	}
	s.elements = append(s.elements, e)
	s.byID[e.id] = e
	return nil
}

// Remove deletes the element with the given id, blurring it first if focused.
func (s *Scene) Remove(id string) bool {
	e, ok := s.byID[id]
	if !ok {
		return false
	}
	if s.focused == e {
		s.focused = nil
	}
	delete(s.byID, id)
	s.elements = slices.DeleteFunc(s.elements, func(x *Element) bool { return x == e })
	return true
}

// Element looks up an element by id.
func (s *Scene) Element(id string) (*Element, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Elements returns all elements in document order.
func (s *Scene) Elements() []*Element { return slices.Clone(s.elements) }

// Len returns the number of elements.
func (s *Scene) Len() int { return len(s.elements) }

// Spec returns the spec the scene was built from, or nil.
func (s *Scene) Spec() *Spec { return s.spec }

// FocusedElement returns the focused element, or nil.
func (s *Scene) FocusedElement() *Element { return s.focused }

// Select returns the elements matching pattern in document order.
func (s *Scene) Select(pattern string) ([]*Element, error) {
	p, err := s.compile(pattern)
	if err != nil {
		return nil, err
	}
	var out []*Element
	for _, e := range s.elements {
		if p.Match(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Bounds returns the box covering the declared size and every element.
func (s *Scene) Bounds() spatial.Box {
	right, bottom := s.Width, s.Height
	for _, e := range s.elements {
		if e.Hidden {
			continue
		}
		right = max(right, e.Box.Right)
		bottom = max(bottom, e.Box.Bottom)
	}
	return spatial.BoxFromEdges(0, 0, right, bottom)
}

func (s *Scene) compile(pattern string) (*Pattern, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.patterns[pattern]; ok {
		return p, nil
	}
	p, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	s.patterns[pattern] = p
	return p, nil
}

// =============================================================================
// navigator.Host
// =============================================================================

func element(n navigator.Node) (*Element, bool) {
	e, ok := n.(*Element)
	return e, ok && e != nil
}

// BoundingBox returns the element's box. Hidden elements have none.
func (s *Scene) BoundingBox(n navigator.Node) (spatial.Box, bool) {
	e, ok := element(n)
	if !ok || e.Hidden {
		return spatial.Box{}, false
	}
	return e.Box, true
}

// Query returns the elements matching pattern. Invalid patterns match nothing.
func (s *Scene) Query(pattern string) []navigator.Node {
	els, err := s.Select(pattern)
	if err != nil {
		return nil
	}
	out := make([]navigator.Node, len(els))
	for i, e := range els {
		out[i] = e
	}
	return out
}

// Matches reports whether n matches pattern.
func (s *Scene) Matches(n navigator.Node, pattern string) bool {
	e, ok := element(n)
	if !ok {
		return false
	}
	p, err := s.compile(pattern)
	if err != nil {
		return false
	}
	return p.Match(e)
}

func (s *Scene) Disabled(n navigator.Node) bool {
	e, ok := element(n)
	return ok && e.Disabled
}

// Focused returns the focused element as a node, or nil.
func (s *Scene) Focused() navigator.Node {
	if s.focused == nil {
		return nil
	}
	return s.focused
}

func (s *Scene) Focus(n navigator.Node) {
	if e, ok := element(n); ok {
		s.focused = e
	}
}

func (s *Scene) Blur(n navigator.Node) {
	if e, ok := element(n); ok && s.focused == e {
		s.focused = nil
	}
}

// Override returns the element's per-direction selector.
func (s *Scene) Override(n navigator.Node, dir spatial.Direction) (string, bool) {
	e, ok := element(n)
	if !ok {
		return "", false
	}
	v, ok := e.Nav[dir]
	return v, ok
}

// MakeFocusable gives the element a tab stop.
func (s *Scene) MakeFocusable(n navigator.Node) {
	if e, ok := element(n); ok {
		e.TabStop = true
	}
}
