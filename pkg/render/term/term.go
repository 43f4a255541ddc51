// Package term draws a scene as boxes on a character grid for terminal
// display.
//
// Scene coordinates are scaled to fit the requested number of columns and
// rows. Each visible element becomes a bordered box with its label inside;
// the focused element, disabled elements and highlighted neighbours are
// painted with their own lipgloss styles.
//
//	out := term.Render(s, term.Options{Cols: 80, Rows: 24, Styles: term.DefaultStyles()})
package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/spatialnav/pkg/scene"
)

// Styles paints the grid.
type Styles struct {
	Background lipgloss.Style
	Box        lipgloss.Style
	Focused    lipgloss.Style
	Disabled   lipgloss.Style
	Neighbour  lipgloss.Style
}

// DefaultStyles uses the CLI palette.
func DefaultStyles() Styles {
	return Styles{
		Background: lipgloss.NewStyle(),
		Box:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Focused:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36")),
		Disabled:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true),
		Neighbour:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	}
}

// PlainStyles renders without any styling.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Background: s, Box: s, Focused: s, Disabled: s, Neighbour: s}
}

// Options controls rendering.
type Options struct {
	// Cols and Rows bound the grid. Defaults are 80 and 24.
	Cols, Rows int

	// Neighbours lists element ids to highlight, typically the peek targets
	// of the focused element.
	Neighbours []string

	Styles Styles
}

type paint uint8

const (
	paintNone paint = iota
	paintBox
	paintFocused
	paintDisabled
	paintNeighbour
)

type cell struct {
	r rune
	p paint
}

// Render draws s. Elements are drawn in document order, so later elements
// overlap earlier ones; the focused element is drawn last.
func Render(s *scene.Scene, opts Options) string {
	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, cols)
		for j := range grid[i] {
			grid[i][j] = cell{r: ' '}
		}
	}

	bounds := s.Bounds()
	sx, sy := 1.0, 1.0
	if bounds.Width > 0 {
		sx = float64(cols) / bounds.Width
	}
	if bounds.Height > 0 {
		sy = float64(rows) / bounds.Height
	}

	neighbour := make(map[string]bool, len(opts.Neighbours))
	for _, id := range opts.Neighbours {
		neighbour[id] = true
	}

	focused := s.FocusedElement()
	draw := func(e *scene.Element) {
		p := paintBox
		switch {
		case e == focused:
			p = paintFocused
		case e.Disabled:
			p = paintDisabled
		case neighbour[e.ID()]:
			p = paintNeighbour
		}

		c0 := clampInt(int(math.Floor(e.Box.Left*sx)), 0, cols-1)
		r0 := clampInt(int(math.Floor(e.Box.Top*sy)), 0, rows-1)
		c1 := clampInt(int(math.Ceil(e.Box.Right*sx))-1, c0, cols-1)
		r1 := clampInt(int(math.Ceil(e.Box.Bottom*sy))-1, r0, rows-1)
		drawBox(grid, c0, r0, c1, r1, p, e == focused)
		drawLabel(grid, c0, r0, c1, r1, p, e.DisplayName())
	}

	for _, e := range s.Elements() {
		if e.Hidden || e == focused {
			continue
		}
		draw(e)
	}
	if focused != nil && !focused.Hidden {
		draw(focused)
	}

	return paintGrid(grid, opts.Styles)
}

func drawBox(grid [][]cell, c0, r0, c1, r1 int, p paint, heavy bool) {
	h, v, tl, tr, bl, br := '─', '│', '┌', '┐', '└', '┘'
	if heavy {
		h, v, tl, tr, bl, br = '━', '┃', '┏', '┓', '┗', '┛'
	}

	set := func(r, c int, ch rune) { grid[r][c] = cell{r: ch, p: p} }

	switch {
	case r0 == r1 && c0 == c1:
		set(r0, c0, '■')
		return
	case r0 == r1:
		for c := c0; c <= c1; c++ {
			set(r0, c, h)
		}
		set(r0, c0, '[')
		set(r0, c1, ']')
		return
	case c0 == c1:
		for r := r0; r <= r1; r++ {
			set(r, c0, v)
		}
		return
	}

	for c := c0 + 1; c < c1; c++ {
		set(r0, c, h)
		set(r1, c, h)
	}
	for r := r0 + 1; r < r1; r++ {
		set(r, c0, v)
		set(r, c1, v)
		for c := c0 + 1; c < c1; c++ {
			set(r, c, ' ')
		}
	}
	set(r0, c0, tl)
	set(r0, c1, tr)
	set(r1, c0, bl)
	set(r1, c1, br)
}

func drawLabel(grid [][]cell, c0, r0, c1, r1 int, p paint, label string) {
	row := r0
	if r1-r0 >= 2 {
		row = r0 + (r1-r0)/2
	}
	start, end := c0+1, c1-1
	if c1-c0 < 2 {
		return
	}
	runes := []rune(label)
	if width := end - start + 1; len(runes) > width {
		runes = runes[:width]
	}
	offset := start + (end-start+1-len(runes))/2
	for i, ch := range runes {
		grid[row][offset+i] = cell{r: ch, p: p}
	}
}

func paintGrid(grid [][]cell, st Styles) string {
	styleOf := func(p paint) lipgloss.Style {
		switch p {
		case paintBox:
			return st.Box
		case paintFocused:
			return st.Focused
		case paintDisabled:
			return st.Disabled
		case paintNeighbour:
			return st.Neighbour
		}
		return st.Background
	}

	var out strings.Builder
	for i, row := range grid {
		if i > 0 {
			out.WriteByte('\n')
		}
		var run strings.Builder
		cur := paintNone
		flush := func() {
			if run.Len() > 0 {
				out.WriteString(styleOf(cur).Render(run.String()))
				run.Reset()
			}
		}
		for _, c := range row {
			if c.p != cur {
				flush()
				cur = c.p
			}
			run.WriteRune(c.r)
		}
		flush()
	}
	return out.String()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
