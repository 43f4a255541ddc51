package navmap

import (
	"github.com/matzehuels/spatialnav/pkg/navigator"
	"github.com/matzehuels/spatialnav/pkg/scene"
	"github.com/matzehuels/spatialnav/pkg/spatial"
)

// Edge is one directional move.
type Edge struct {
	From, To  string
	Direction spatial.Direction
}

// Node is an element of the map.
type Node struct {
	ID        string
	Label     string
	SectionID string
	Box       spatial.Box
	Focused   bool
	Disabled  bool
}

// Map is the neighbour graph of a scene.
type Map struct {
	Nodes []Node
	Edges []Edge

	// DeadEnds lists, per element id, the directions with no destination.
	DeadEnds map[string][]spatial.Direction
}

// Build peeks every direction from every visible element that belongs to a
// section. Elements outside all sections appear as isolated nodes.
func Build(nav *navigator.Navigator, s *scene.Scene) Map {
	m := Map{DeadEnds: make(map[string][]spatial.Direction)}
	focused := s.FocusedElement()

	for _, e := range s.Elements() {
		if e.Hidden {
			continue
		}
		sid := nav.SectionOf(e)
		m.Nodes = append(m.Nodes, Node{
			ID:        e.ID(),
			Label:     e.DisplayName(),
			SectionID: sid,
			Box:       e.Box,
			Focused:   e == focused,
			Disabled:  e.Disabled,
		})
		if sid == "" || e.Disabled {
			continue
		}
		for _, dir := range spatial.Directions {
			next, ok := nav.PeekFrom(dir, navigator.ByNode(e))
			if !ok {
				m.DeadEnds[e.ID()] = append(m.DeadEnds[e.ID()], dir)
				continue
			}
			m.Edges = append(m.Edges, Edge{From: e.ID(), To: next.ID(), Direction: dir})
		}
	}
	return m
}

// Neighbours returns the destination of each direction from id.
func (m Map) Neighbours(id string) map[spatial.Direction]string {
	out := make(map[spatial.Direction]string)
	for _, e := range m.Edges {
		if e.From == id {
			out[e.Direction] = e.To
		}
	}
	return out
}

// Unreachable lists the ids of navigable nodes no edge leads to.
func (m Map) Unreachable() []string {
	reached := make(map[string]bool)
	for _, e := range m.Edges {
		reached[e.To] = true
	}
	var out []string
	for _, n := range m.Nodes {
		if n.SectionID != "" && !n.Disabled && !reached[n.ID] {
			out = append(out, n.ID)
		}
	}
	return out
}
