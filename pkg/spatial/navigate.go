package spatial

import "slices"

// InnerPartition selects the reference used for the second partition pass over
// candidates that overlap the focused box.
type InnerPartition string

const (
	// InnerBox partitions the overlapping candidates against the focused box
	// again. Every such candidate then lands in the middle cell, so the aligned
	// tier stays empty and selection starts with the same-row/column tier.
	InnerBox InnerPartition = "box"

	// InnerCenter partitions against a zero-size box at the focused centre,
	// splitting overlapping candidates by which side of the centre they sit on.
	InnerCenter InnerPartition = "center"
)

// BoxFunc returns the bounding box of a node, or false when it cannot be
// computed.
type BoxFunc[N comparable] func(N) (Box, bool)

// Memory records a completed move so the opposite move can return to its
// source.
type Memory[N comparable] struct {
	Source      N
	Destination N
	Reverse     Direction
}

// Options controls candidate selection.
type Options[N comparable] struct {
	StraightOnly             bool
	StraightOverlapThreshold float64
	RememberSource           bool
	InnerPartition           InnerPartition

	// Previous is the last move recorded for the focused node's section.
	Previous *Memory[N]
}

// tier is one ranked group of the priority cascade.
type tier struct {
	rects   []Rect
	metrics []Metric
}

// Navigate returns the best candidate to focus when moving from focused in
// direction dir. Candidates equal to focused or without a box are ignored.
// It reports false when no candidate qualifies.
func Navigate[N comparable](focused N, dir Direction, candidates []N, boxOf BoxFunc[N], opts Options[N]) (N, bool) {
	var zero N
	if !dir.Valid() || len(candidates) == 0 {
		return zero, false
	}

	box, ok := boxOf(focused)
	if !ok {
		return zero, false
	}
	target := NewRect(box, -1)

	rects := make([]Rect, 0, len(candidates))
	for i, c := range candidates {
		if c == focused {
			continue
		}
		if b, ok := boxOf(c); ok {
			rects = append(rects, NewRect(b, i))
		}
	}
	if len(rects) == 0 {
		return zero, false
	}

	ranked := Rank(target, dir, rects, opts.StraightOnly, opts.StraightOverlapThreshold, opts.InnerPartition)
	if len(ranked) == 0 {
		return zero, false
	}

	if p := opts.Previous; opts.RememberSource && p != nil && p.Destination == focused && p.Reverse == dir {
		for _, r := range ranked {
			if candidates[r.Index] == p.Source {
				return p.Source, true
			}
		}
	}

	return candidates[ranked[0].Index], true
}

// Rank runs the priority cascade and returns the winning tier sorted best
// first, or nil when every tier is empty.
func Rank(target Rect, dir Direction, rects []Rect, straightOnly bool, threshold float64, inner InnerPartition) []Rect {
	groups := Partition(rects, target.Box, threshold)

	innerRef := target.Box
	if inner == InnerCenter {
		innerRef = target.centerBox()
	}
	innerGroups := Partition(groups[MiddleCenter], innerRef, threshold)

	tiers := cascade(target, dir, &groups, &innerGroups)
	if straightOnly {
		tiers = tiers[:2]
	}

	for _, t := range tiers {
		if len(t.rects) == 0 {
			continue
		}
		out := slices.Clone(t.rects)
		slices.SortStableFunc(out, func(a, b Rect) int {
			for _, m := range t.metrics {
				da, db := m(a), m(b)
				if da < db {
					return -1
				}
				if da > db {
					return 1
				}
			}
			return 0
		})
		return out
	}
	return nil
}

// cascade builds the three tiers for dir: aligned inner cells, the outer cell
// straight ahead, then the two outer corners ahead.
func cascade(t Rect, dir Direction, outer, inner *Groups) []tier {
	switch dir {
	case Left:
		return []tier{
			{inner.concat(TopLeft, MiddleLeft, BottomLeft), []Metric{t.NearPlumbLineIsBetter, t.TopIsBetter}},
			{outer.concat(MiddleLeft), []Metric{t.NearPlumbLineIsBetter, t.TopIsBetter}},
			{outer.concat(TopLeft, BottomLeft), []Metric{t.NearHorizonIsBetter, t.RightIsBetter, t.NearTargetTopIsBetter}},
		}
	case Right:
		return []tier{
			{inner.concat(TopRight, MiddleRight, BottomRight), []Metric{t.NearPlumbLineIsBetter, t.TopIsBetter}},
			{outer.concat(MiddleRight), []Metric{t.NearPlumbLineIsBetter, t.TopIsBetter}},
			{outer.concat(TopRight, BottomRight), []Metric{t.NearHorizonIsBetter, t.LeftIsBetter, t.NearTargetTopIsBetter}},
		}
	case Up:
		return []tier{
			{inner.concat(TopLeft, TopCenter, TopRight), []Metric{t.NearHorizonIsBetter, t.LeftIsBetter}},
			{outer.concat(TopCenter), []Metric{t.NearHorizonIsBetter, t.LeftIsBetter}},
			{outer.concat(TopLeft, TopRight), []Metric{t.NearPlumbLineIsBetter, t.BottomIsBetter, t.NearTargetLeftIsBetter}},
		}
	default:
		return []tier{
			{inner.concat(BottomLeft, BottomCenter, BottomRight), []Metric{t.NearHorizonIsBetter, t.LeftIsBetter}},
			{outer.concat(BottomCenter), []Metric{t.NearHorizonIsBetter, t.LeftIsBetter}},
			{outer.concat(BottomLeft, BottomRight), []Metric{t.NearPlumbLineIsBetter, t.TopIsBetter, t.NearTargetLeftIsBetter}},
		}
	}
}
