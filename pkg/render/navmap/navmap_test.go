package navmap

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/spatialnav/pkg/cache"
	"github.com/matzehuels/spatialnav/pkg/navigator"
	"github.com/matzehuels/spatialnav/pkg/scene"
	"github.com/matzehuels/spatialnav/pkg/spatial"
)

func rowFixture(t *testing.T) (*scene.Scene, *navigator.Navigator) {
	t.Helper()
	s, err := scene.Build(&scene.Spec{
		Name:     "row",
		Sections: []scene.SectionSpec{{ID: "row", Selector: ".row"}},
		Elements: []scene.ElementSpec{
			{ID: "a", Class: []string{"row"}, X: 0, Y: 0, W: 10, H: 10},
			{ID: "b", Class: []string{"row"}, X: 20, Y: 0, W: 10, H: 10},
			{ID: "c", Class: []string{"row"}, X: 40, Y: 0, W: 10, H: 10, Nav: map[string]string{"right": "#a"}},
			{ID: "d", X: 0, Y: 40, W: 10, H: 10, Label: "loose"},
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	nav, err := s.Navigator()
	if err != nil {
		t.Fatalf("Navigator: %v", err)
	}
	return s, nav
}

func TestBuild(t *testing.T) {
	s, nav := rowFixture(t)
	m := Build(nav, s)

	if len(m.Nodes) != 4 {
		t.Fatalf("nodes = %d, want 4", len(m.Nodes))
	}

	tests := []struct {
		id   string
		want map[spatial.Direction]string
	}{
		{"a", map[spatial.Direction]string{spatial.Right: "b"}},
		{"b", map[spatial.Direction]string{spatial.Left: "a", spatial.Right: "c"}},
		{"c", map[spatial.Direction]string{spatial.Left: "b", spatial.Right: "a"}},
		{"d", map[spatial.Direction]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := m.Neighbours(tt.id)
			if len(got) != len(tt.want) {
				t.Fatalf("Neighbours = %v, want %v", got, tt.want)
			}
			for d, to := range tt.want {
				if got[d] != to {
					t.Errorf("%s: %q, want %q", d, got[d], to)
				}
			}
		})
	}

	if got := m.DeadEnds["a"]; !slices.Equal(got, []spatial.Direction{spatial.Up, spatial.Down, spatial.Left}) {
		t.Errorf("dead ends of a = %v", got)
	}
	if _, ok := m.DeadEnds["d"]; ok {
		t.Error("node outside every section has dead ends")
	}
	if got := m.Unreachable(); len(got) != 0 {
		t.Errorf("Unreachable = %v", got)
	}
}

func TestBuildDoesNotMoveFocus(t *testing.T) {
	s, nav := rowFixture(t)
	nav.Focus("#b", true)
	Build(nav, s)
	if s.FocusedElement().ID() != "b" {
		t.Errorf("focus moved to %s", s.FocusedElement().ID())
	}
}

func TestUnreachable(t *testing.T) {
	m := Map{
		Nodes: []Node{{ID: "a", SectionID: "s"}, {ID: "b", SectionID: "s"}, {ID: "x"}},
		Edges: []Edge{{From: "b", To: "b", Direction: spatial.Up}},
	}
	if got := m.Unreachable(); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Unreachable = %v, want [a]", got)
	}
}

func TestToDOT(t *testing.T) {
	s, nav := rowFixture(t)
	nav.Focus("#a", true)
	dot := ToDOT(Build(nav, s), Options{Scale: 2})

	for _, want := range []string{
		"digraph navmap {",
		`"a" [label="a", pos="10,-10!", fillcolor="#a8dadc", penwidth=2];`,
		`"d" [label="loose", pos="10,-90!", style="rounded,dotted"];`,
		`"c" -> "a" [label="right"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	only := ToDOT(Build(nav, s), Options{Directions: []spatial.Direction{spatial.Left}})
	if strings.Contains(only, `label="right"`) || !strings.Contains(only, `label="left"`) {
		t.Errorf("direction filter not applied:\n%s", only)
	}

	clustered := ToDOT(Build(nav, s), Options{Sections: true})
	if !strings.Contains(clustered, "subgraph cluster_0 {") || !strings.Contains(clustered, `label="row";`) {
		t.Errorf("sections not clustered:\n%s", clustered)
	}
}

func TestRenderSVG(t *testing.T) {
	s, nav := rowFixture(t)
	svg, err := RenderSVG(context.Background(), ToDOT(Build(nav, s), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte(`viewBox="0 0 `)) {
		t.Errorf("unexpected SVG: %.200s", svg)
	}
}

type countingCache struct {
	*cache.MemoryCache
	sets int
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return c.MemoryCache.Set(ctx, key, data, ttl)
}

func TestRendererCaches(t *testing.T) {
	ctx := context.Background()
	s, nav := rowFixture(t)
	c := &countingCache{MemoryCache: cache.NewMemoryCache(0)}
	r := NewRenderer(WithCache(c, time.Minute))

	first, err := r.Render(ctx, nav, s, FormatDOT)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := r.Render(ctx, nav, s, FormatDOT)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(first, second) || c.sets != 1 {
		t.Errorf("second render not served from cache (sets = %d)", c.sets)
	}

	nav.Focus("#b", true)
	if _, err := r.Render(ctx, nav, s, FormatDOT); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if c.sets != 2 {
		t.Errorf("focus change did not invalidate (sets = %d)", c.sets)
	}

	if _, err := r.Render(ctx, nav, s, Format("gif")); err == nil {
		t.Error("Render accepted an unknown format")
	}
}

func TestFingerprint(t *testing.T) {
	s, nav := rowFixture(t)
	before := Fingerprint(nav, s)
	if before != Fingerprint(nav, s) {
		t.Fatal("Fingerprint is not deterministic")
	}
	b, _ := s.Element("b")
	b.Disabled = true
	if Fingerprint(nav, s) == before {
		t.Error("disabling an element did not change the fingerprint")
	}
	b.Disabled = false
	nav.DisableSection("row")
	if Fingerprint(nav, s) == before {
		t.Error("disabling a section did not change the fingerprint")
	}
}

func TestFingerprintTracksNavigatorMemory(t *testing.T) {
	remember := true
	spec := &scene.Spec{
		Name:     "column",
		Defaults: scene.Options{RememberSource: &remember},
		Sections: []scene.SectionSpec{{ID: "all", Selector: ".item"}},
		Elements: []scene.ElementSpec{
			{ID: "a1", Class: []string{"item"}, X: 0, Y: 0, W: 10, H: 10},
			{ID: "a2", Class: []string{"item"}, X: 0, Y: 20, W: 10, H: 10},
			{ID: "b", Class: []string{"item"}, X: 20, Y: 10, W: 10, H: 10},
		},
	}
	open := func() (*scene.Scene, *navigator.Navigator) {
		s, err := scene.Build(spec)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		nav, err := s.Navigator()
		if err != nil {
			t.Fatalf("Navigator: %v", err)
		}
		return s, nav
	}

	s1, nav1 := open()
	nav1.Focus("#b", true)

	s2, nav2 := open()
	nav2.Focus("#a2", true)
	if !nav2.Move(spatial.Right) {
		t.Fatal("move right from a2 failed")
	}

	peek1, _ := nav1.Peek(spatial.Left)
	peek2, _ := nav2.Peek(spatial.Left)
	if peek1.ID() != "a1" || peek2.ID() != "a2" {
		t.Fatalf("left of b = %s and %s, want a1 and a2", peek1.ID(), peek2.ID())
	}
	if Fingerprint(nav1, s1) == Fingerprint(nav2, s2) {
		t.Error("remembered move did not change the fingerprint")
	}

	before := Fingerprint(nav1, s1)
	if err := nav1.SetDefaultSection("all"); err != nil {
		t.Fatal(err)
	}
	if Fingerprint(nav1, s1) == before {
		t.Error("default section did not change the fingerprint")
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []string{"dot", "svg", "png"} {
		if _, err := ParseFormat(f); err != nil {
			t.Errorf("ParseFormat(%q): %v", f, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("ParseFormat(pdf) succeeded")
	}
	if FormatSVG.ContentType() != "image/svg+xml" {
		t.Errorf("ContentType = %q", FormatSVG.ContentType())
	}
}
