// Package navmap renders the directional neighbour graph of a scene.
//
// # Overview
//
// For every navigable element and every direction, [Build] asks the
// navigator where a move would land (without moving) and records the answer
// as an edge. The resulting [Map] shows at a glance which elements are
// reachable, which moves dead-end and where overrides redirect focus.
//
//	m := navmap.Build(nav, s)
//	dot := navmap.ToDOT(m, navmap.Options{})
//	svg, err := navmap.RenderSVG(ctx, dot)
//
// # DOT Format
//
// Nodes carry their scene position as pinned "pos" attributes, so the
// output of [ToDOT] can also be laid out to scale with "neato -n". In-process
// rendering uses the default Graphviz engine. Edges are labelled with their
// direction and coloured per direction.
//
// # Caching
//
// [Renderer] keys rendered artifacts by a hash of the scene, the focused
// element and the navigation options, and stores them in a [cache.Cache].
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering.
package navmap
