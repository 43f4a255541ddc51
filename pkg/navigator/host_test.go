package navigator

import (
	"strings"

	"github.com/matzehuels/spatialnav/pkg/spatial"
)

type testNode struct {
	id        string
	kind      string
	class     string
	box       spatial.Box
	disabled  bool
	noBox     bool
	overrides map[spatial.Direction]string
	tabStop   bool
}

func (n *testNode) ID() string { return n.id }

// testHost is an in-memory Host. Patterns are comma-separated lists of
// "#id", ".class", "*" or a bare kind.
type testHost struct {
	nodes   []*testNode
	focused *testNode
	log     []string
}

func newTestHost(nodes ...*testNode) *testHost { return &testHost{nodes: nodes} }

func (h *testHost) node(id string) *testNode {
	for _, n := range h.nodes {
		if n.id == id {
			return n
		}
	}
	return nil
}

func (h *testHost) BoundingBox(n Node) (spatial.Box, bool) {
	tn := n.(*testNode)
	if tn.noBox {
		return spatial.Box{}, false
	}
	return tn.box, true
}

func (h *testHost) Query(pattern string) []Node {
	var out []Node
	for _, n := range h.nodes {
		if h.Matches(n, pattern) {
			out = append(out, n)
		}
	}
	return out
}

func (h *testHost) Matches(n Node, pattern string) bool {
	tn := n.(*testNode)
	for _, p := range strings.Split(pattern, ",") {
		p = strings.TrimSpace(p)
		switch {
		case p == "*":
			return true
		case strings.HasPrefix(p, "#") && p[1:] == tn.id:
			return true
		case strings.HasPrefix(p, ".") && p[1:] == tn.class:
			return true
		case p != "" && p == tn.kind:
			return true
		}
	}
	return false
}

func (h *testHost) Disabled(n Node) bool { return n.(*testNode).disabled }

func (h *testHost) Focused() Node {
	if h.focused == nil {
		return nil
	}
	return h.focused
}

func (h *testHost) Focus(n Node) {
	h.focused = n.(*testNode)
	h.log = append(h.log, "focus:"+n.ID())
}

func (h *testHost) Blur(n Node) {
	if h.focused == n {
		h.focused = nil
	}
	h.log = append(h.log, "blur:"+n.ID())
}

func (h *testHost) Override(n Node, dir spatial.Direction) (string, bool) {
	v, ok := n.(*testNode).overrides[dir]
	return v, ok
}

func (h *testHost) MakeFocusable(n Node) { n.(*testNode).tabStop = true }

func at(id, class string, left, top, w, h float64) *testNode {
	return &testNode{id: id, class: class, box: spatial.BoxAt(left, top, w, h)}
}

func focusedID(h *testHost) string {
	if h.focused == nil {
		return ""
	}
	return h.focused.id
}

// recorder collects events of every type.
type recorder struct{ events []Event }

func (r *recorder) Notify(ev Event) bool {
	r.events = append(r.events, ev)
	return true
}

func (r *recorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

func (r *recorder) count(t EventType) int {
	c := 0
	for _, ev := range r.events {
		if ev.Type == t {
			c++
		}
	}
	return c
}
