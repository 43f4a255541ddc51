// Package scene provides a concrete, file-backed world for the navigator.
//
// A [Scene] is a flat set of positioned [Element] values. It implements
// [navigator.Host], so a scene loaded from disk can be navigated, rendered
// and served without a real user interface behind it.
//
// # Scene files
//
// Scenes are described by a [Spec] and stored as TOML, YAML or JSON:
//
//	name = "living-room"
//	focus = "@menu"
//
//	[defaults]
//	straight_overlap_threshold = 0.5
//
//	[[sections]]
//	id = "menu"
//	selector = ".menu"
//	[sections.options]
//	priority = "last-focused"
//
//	[[elements]]
//	id = "home"
//	class = ["menu"]
//	x = 0
//	y = 0
//	w = 120
//	h = 40
//
// [LoadFile] decodes and validates a file, [Build] turns a spec into a
// scene, and [Scene.Navigator] registers the spec's sections on a new
// navigator.
//
// # Patterns
//
// Sections and extended selectors refer to elements with a small pattern
// language: a comma-separated list of compounds, each made of an optional
// kind followed by any number of "#id", ".class" and "[attr]" or
// "[attr=value]" parts. "*" matches every element.
//
//	button.menu, #search, [contentEditable=true]
//
// # Storage
//
// [FileStore] keeps specs in a directory and [MongoStore] in a MongoDB
// collection. [Watch] reloads a scene file whenever it changes on disk.
package scene
