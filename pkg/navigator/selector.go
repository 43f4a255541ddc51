package navigator

import "strings"

type selectorKind uint8

const (
	selectorNone selectorKind = iota
	selectorPattern
	selectorNodes
	selectorNode
)

// Selector identifies nodes by pattern, by an explicit list, or as a single
// node. The zero value selects nothing.
type Selector struct {
	kind    selectorKind
	pattern string
	nodes   []Node
}

// ByPattern selects the nodes the host matches against pattern.
func ByPattern(pattern string) Selector {
	if pattern == "" {
		return Selector{}
	}
	return Selector{kind: selectorPattern, pattern: pattern}
}

// ByNodes selects exactly the given nodes, in order.
func ByNodes(nodes ...Node) Selector {
	return Selector{kind: selectorNodes, nodes: nodes}
}

// ByNode selects a single node.
func ByNode(n Node) Selector {
	if n == nil {
		return Selector{}
	}
	return Selector{kind: selectorNode, nodes: []Node{n}}
}

// IsZero reports whether s selects nothing.
func (s Selector) IsZero() bool { return s.kind == selectorNone }

// Pattern returns the pattern of a ByPattern selector.
func (s Selector) Pattern() string { return s.pattern }

func (s Selector) String() string {
	switch s.kind {
	case selectorPattern:
		return s.pattern
	case selectorNodes, selectorNode:
		ids := make([]string, len(s.nodes))
		for i, n := range s.nodes {
			ids[i] = n.ID()
		}
		return "[" + strings.Join(ids, ", ") + "]"
	}
	return ""
}

// resolve returns the nodes s selects, in order.
func resolve(h Host, s Selector) []Node {
	switch s.kind {
	case selectorPattern:
		return h.Query(s.pattern)
	case selectorNodes, selectorNode:
		return append([]Node(nil), s.nodes...)
	}
	return nil
}

// matches reports whether n is selected by s.
func matches(h Host, n Node, s Selector) bool {
	if n == nil {
		return false
	}
	switch s.kind {
	case selectorPattern:
		return h.Matches(n, s.pattern)
	case selectorNodes, selectorNode:
		for _, m := range s.nodes {
			if m == n {
				return true
			}
		}
	}
	return false
}
