// Package spatial selects the next node to focus when moving in one of four
// directions across a set of positioned rectangles.
//
// # Overview
//
// The package is the geometric half of directional focus navigation. It knows
// nothing about sections, lifecycle notifications or how focus is applied; it
// answers one question: given the focused rectangle, a direction and a set of
// candidates, which candidate is the best destination?
//
// # Rectangles
//
// A [Rect] is an immutable snapshot of a node's bounding [Box] plus its centre.
// The centre is computed once as (Left + floor(Width/2), Top + floor(Height/2)).
// Eight heuristics are exposed as methods on the reference rect and are used
// as [Metric] values when ranking candidates:
//
//	ref := spatial.NewRect(focusedBox, -1)
//	d := ref.NearPlumbLineIsBetter(candidate) // always >= 0
//
// # Partitioning
//
// [Partition] divides rects into a 3×3 grid of [Groups] around a reference box
// (index 4 is the reference itself). Rects sitting in a corner cell are also
// promoted into the adjacent edge cell when they overlap the reference extent
// by at least the straight-overlap threshold along that axis.
//
// # Navigation
//
// [Navigate] partitions the candidates twice (an outer pass against the
// focused box and an inner pass over the overlapping cell), builds a
// three-tier priority cascade for the requested [Direction] and returns the
// best candidate of the first non-empty tier:
//
//	next, ok := spatial.Navigate(focused, spatial.Left, candidates, boxOf, spatial.Options[*Element]{
//	    StraightOverlapThreshold: 0.5,
//	})
//
// With [Options.RememberSource] set, reversing a previous move returns to the
// node it started from whenever that node is still in the winning tier.
package spatial
