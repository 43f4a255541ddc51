package navmap

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/spatialnav/pkg/spatial"
)

// Options configures DOT generation.
type Options struct {
	// Scale converts scene units to points for the pinned positions.
	// Defaults to 1.
	Scale float64

	// Directions restricts the edges drawn. Empty means all four.
	Directions []spatial.Direction

	// Sections draws one cluster per section.
	Sections bool
}

var dirColors = map[spatial.Direction]string{
	spatial.Up:    "#2a9d8f",
	spatial.Down:  "#e76f51",
	spatial.Left:  "#264653",
	spatial.Right: "#e9c46a",
}

// ToDOT converts m to Graphviz DOT.
func ToDOT(m Map, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	want := make(map[spatial.Direction]bool)
	for _, d := range opts.Directions {
		want[d] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph navmap {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	writeNode := func(indent string, n Node) {
		x := (n.Box.Left + n.Box.Width/2) * scale
		y := -(n.Box.Top + n.Box.Height/2) * scale
		attrs := []string{
			fmt.Sprintf("label=%q", n.Label),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(x), fmtFloat(y)),
		}
		switch {
		case n.Focused:
			attrs = append(attrs, "fillcolor=\"#a8dadc\"", "penwidth=2")
		case n.Disabled:
			attrs = append(attrs, "style=\"rounded,dashed\"", "fontcolor=grey")
		case n.SectionID == "":
			attrs = append(attrs, "style=\"rounded,dotted\"")
		}
		fmt.Fprintf(&buf, "%s%q [%s];\n", indent, n.ID, strings.Join(attrs, ", "))
	}

	if opts.Sections {
		var order []string
		groups := make(map[string][]Node)
		for _, n := range m.Nodes {
			if _, ok := groups[n.SectionID]; !ok {
				order = append(order, n.SectionID)
			}
			groups[n.SectionID] = append(groups[n.SectionID], n)
		}
		for i, sid := range order {
			if sid == "" {
				for _, n := range groups[sid] {
					writeNode("  ", n)
				}
				continue
			}
			fmt.Fprintf(&buf, "  subgraph cluster_%d {\n    label=%q;\n    style=dashed;\n", i, sid)
			for _, n := range groups[sid] {
				writeNode("    ", n)
			}
			buf.WriteString("  }\n")
		}
	} else {
		for _, n := range m.Nodes {
			writeNode("  ", n)
		}
	}

	buf.WriteString("\n")
	for _, e := range m.Edges {
		if len(want) > 0 && !want[e.Direction] {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [label=%q, color=%q, fontcolor=%q];\n",
			e.From, e.To, string(e.Direction), dirColors[e.Direction], dirColors[e.Direction])
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element with a zero-origin viewBox and
// matching size, so the SVG scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
