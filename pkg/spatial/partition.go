package spatial

// Groups is the 3×3 grid produced by [Partition], indexed row*3+col.
//
//	0 | 1 | 2
//	--+---+--
//	3 | 4 | 5
//	--+---+--
//	6 | 7 | 8
type Groups [9][]Rect

// Cell indices of the partition grid.
const (
	TopLeft = iota
	TopCenter
	TopRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

// Partition places every rect into the grid cell its centre falls in relative
// to ref. A rect in a corner cell is also added to the neighbouring edge cell
// when its box reaches into ref's extent by at least threshold (a fraction of
// ref's width or height). Threshold 0 promotes maximally, 1 not at all; values
// outside [0,1] are not rejected.
func Partition(rects []Rect, ref Box, threshold float64) Groups {
	var groups Groups

	for _, r := range rects {
		col := 2
		switch {
		case r.Center.X < ref.Left:
			col = 0
		case r.Center.X <= ref.Right:
			col = 1
		}

		row := 2
		switch {
		case r.Center.Y < ref.Top:
			row = 0
		case r.Center.Y <= ref.Bottom:
			row = 1
		}

		id := row*3 + col
		groups[id] = append(groups[id], r)

		switch id {
		case TopLeft, TopRight, BottomLeft, BottomRight:
		default:
			continue
		}

		if r.Left <= ref.Right-ref.Width*threshold {
			switch id {
			case TopRight:
				groups[TopCenter] = append(groups[TopCenter], r)
			case BottomRight:
				groups[BottomCenter] = append(groups[BottomCenter], r)
			}
		}

		if r.Right >= ref.Left+ref.Width*threshold {
			switch id {
			case TopLeft:
				groups[TopCenter] = append(groups[TopCenter], r)
			case BottomLeft:
				groups[BottomCenter] = append(groups[BottomCenter], r)
			}
		}

		if r.Top <= ref.Bottom-ref.Height*threshold {
			switch id {
			case BottomLeft:
				groups[MiddleLeft] = append(groups[MiddleLeft], r)
			case BottomRight:
				groups[MiddleRight] = append(groups[MiddleRight], r)
			}
		}

		if r.Bottom >= ref.Top+ref.Height*threshold {
			switch id {
			case TopLeft:
				groups[MiddleLeft] = append(groups[MiddleLeft], r)
			case TopRight:
				groups[MiddleRight] = append(groups[MiddleRight], r)
			}
		}
	}

	return groups
}

// concat joins the given cells in order.
func (g *Groups) concat(cells ...int) []Rect {
	var out []Rect
	for _, c := range cells {
		out = append(out, g[c]...)
	}
	return out
}
