package spatial

import "math"

// Box is an on-screen bounding box. Coordinates grow rightwards and downwards,
// so Top <= Bottom and Left <= Right for a well-formed box.
type Box struct {
	Left, Top     float64
	Right, Bottom float64
	Width, Height float64
}

// BoxFromEdges builds a box from two opposite corners given in any order.
func BoxFromEdges(x1, y1, x2, y2 float64) Box {
	left, right := math.Min(x1, x2), math.Max(x1, x2)
	top, bottom := math.Min(y1, y2), math.Max(y1, y2)
	return Box{
		Left:   left,
		Top:    top,
		Right:  right,
		Bottom: bottom,
		Width:  right - left,
		Height: bottom - top,
	}
}

// BoxAt builds a box from its top-left corner and size.
func BoxAt(left, top, width, height float64) Box {
	return BoxFromEdges(left, top, left+width, top+height)
}

// Empty reports whether the box has no on-screen extent in either axis.
func (b Box) Empty() bool { return b.Width <= 0 && b.Height <= 0 }

// Point is a position on screen.
type Point struct {
	X, Y float64
}

// Rect is a per-query geometric snapshot of a node. Index refers back to the
// node the rect was built for (its position in the candidate slice, or -1 for
// the focused node).
type Rect struct {
	Box
	Center Point
	Index  int
}

// NewRect builds a rect and computes its centre.
func NewRect(b Box, index int) Rect {
	return Rect{
		Box: b,
		Center: Point{
			X: b.Left + math.Floor(b.Width/2),
			Y: b.Top + math.Floor(b.Height/2),
		},
		Index: index,
	}
}

// centerBox is the degenerate zero-size box at the rect's centre.
func (r Rect) centerBox() Box {
	return Box{Left: r.Center.X, Right: r.Center.X, Top: r.Center.Y, Bottom: r.Center.Y}
}

// Metric scores a candidate against a reference rect; smaller is better.
type Metric func(other Rect) float64

// NearPlumbLineIsBetter is the horizontal gap between other and the vertical
// line through r's centre.
func (r Rect) NearPlumbLineIsBetter(other Rect) float64 {
	var d float64
	if other.Center.X < r.Center.X {
		d = r.Center.X - other.Right
	} else {
		d = other.Left - r.Center.X
	}
	return clamp(d)
}

// NearHorizonIsBetter is the vertical gap between other and the horizontal
// line through r's centre.
func (r Rect) NearHorizonIsBetter(other Rect) float64 {
	var d float64
	if other.Center.Y < r.Center.Y {
		d = r.Center.Y - other.Bottom
	} else {
		d = other.Top - r.Center.Y
	}
	return clamp(d)
}

// NearTargetLeftIsBetter measures horizontal distance to r's left edge.
func (r Rect) NearTargetLeftIsBetter(other Rect) float64 {
	var d float64
	if other.Center.X < r.Center.X {
		d = r.Left - other.Right
	} else {
		d = other.Left - r.Left
	}
	return clamp(d)
}

// NearTargetTopIsBetter measures vertical distance to r's top edge.
func (r Rect) NearTargetTopIsBetter(other Rect) float64 {
	var d float64
	if other.Center.Y < r.Center.Y {
		d = r.Top - other.Bottom
	} else {
		d = other.Top - r.Top
	}
	return clamp(d)
}

// TopIsBetter prefers candidates with a smaller top edge.
func (r Rect) TopIsBetter(other Rect) float64 { return other.Top }

// BottomIsBetter prefers candidates with a larger bottom edge.
func (r Rect) BottomIsBetter(other Rect) float64 { return -other.Bottom }

// LeftIsBetter prefers candidates with a smaller left edge.
func (r Rect) LeftIsBetter(other Rect) float64 { return other.Left }

// RightIsBetter prefers candidates with a larger right edge.
func (r Rect) RightIsBetter(other Rect) float64 { return -other.Right }

func clamp(d float64) float64 {
	if d < 0 {
		return 0
	}
	return d
}
