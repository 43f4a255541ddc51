// Package pkg holds the libraries behind spatialnav, a directional focus
// navigator for positioned on-screen elements.
//
// # Overview
//
// The tree is organized in layers:
//
//  1. [spatial] - geometry: boxes, the 3×3 partition and candidate ranking
//  2. [navigator] - sections, focus lifecycle events and key handling
//  3. [scene] - an in-memory host built from TOML/YAML/JSON scene files, plus
//     file and MongoDB scene stores and file watching
//  4. [render] - terminal and Graphviz views of a scene
//  5. [remote], [eventsink], [input] - outer surfaces: an HTTP remote, event
//     forwarding to logs or Redis, and key parsing
//  6. [cache], [errors], [observability], [buildinfo] - shared infrastructure
//
// # Data Flow
//
//	scene file ──► scene.Spec ──► scene.Build ──► *scene.Scene (navigator.Host)
//	                                                   │
//	key press ──► input.Parse ──► navigator.HandleKeyDown ──► spatial.Navigate
//	                                                   │
//	                              events ──► eventsink / term / navmap
//
// # Quick Start
//
//	spec, err := scene.LoadFile("remote.toml")
//	if err != nil {
//	    return err
//	}
//	s, err := scene.Build(spec)
//	if err != nil {
//	    return err
//	}
//	nav, err := s.Navigator()
//	if err != nil {
//	    return err
//	}
//	nav.Move(spatial.Right)
//	fmt.Println(s.FocusedElement().ID())
package pkg
