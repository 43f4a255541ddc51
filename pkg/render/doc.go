// Package render groups the views of a scene.
//
// The [term] subpackage draws a scene as box characters for a terminal, with
// the focused element drawn heavy and the neighbours of the focus marked. The
// [navmap] subpackage turns the navigation graph (where every direction leads
// from every element) into Graphviz DOT and renders it to SVG or PNG, caching
// renders by a fingerprint of the scene state.
package render
