package spatial

import "testing"

type layout map[string]Box

func (l layout) boxOf(id string) (Box, bool) {
	b, ok := l[id]
	return b, ok
}

func TestNavigate(t *testing.T) {
	row := layout{
		"left":   BoxAt(0, 0, 10, 10),
		"center": BoxAt(20, 0, 10, 10),
		"right":  BoxAt(40, 0, 10, 10),
	}
	grid := layout{
		"focus":   BoxAt(20, 20, 10, 10),
		"corner":  BoxAt(0, 0, 10, 10),
		"far":     BoxAt(0, 20, 10, 10),
		"near":    BoxAt(10, 20, 5, 10),
		"below":   BoxAt(20, 40, 10, 10),
		"belowBR": BoxAt(40, 40, 10, 10),
	}

	tests := []struct {
		name       string
		layout     layout
		focused    string
		dir        Direction
		candidates []string
		opts       Options[string]
		want       string
		wantOK     bool
	}{
		{
			name:       "StraightLeft",
			layout:     row,
			focused:    "center",
			dir:        Left,
			candidates: []string{"left", "center", "right"},
			want:       "left",
			wantOK:     true,
		},
		{
			name:       "StraightRight",
			layout:     row,
			focused:    "center",
			dir:        Right,
			candidates: []string{"left", "center", "right"},
			want:       "right",
			wantOK:     true,
		},
		{
			name:       "EdgeHasNoCandidate",
			layout:     row,
			focused:    "left",
			dir:        Left,
			candidates: []string{"left", "center", "right"},
		},
		{
			name:       "NearestPlumbLineWins",
			layout:     grid,
			focused:    "focus",
			dir:        Left,
			candidates: []string{"corner", "far", "near"},
			want:       "near",
			wantOK:     true,
		},
		{
			name:       "CornerTierWhenStraightEmpty",
			layout:     grid,
			focused:    "focus",
			dir:        Left,
			candidates: []string{"corner", "below"},
			want:       "corner",
			wantOK:     true,
		},
		{
			name:       "StraightOnlySkipsCorners",
			layout:     grid,
			focused:    "focus",
			dir:        Left,
			candidates: []string{"corner", "below"},
			opts:       Options[string]{StraightOnly: true},
		},
		{
			name:       "Down",
			layout:     grid,
			focused:    "focus",
			dir:        Down,
			candidates: []string{"belowBR", "below"},
			want:       "below",
			wantOK:     true,
		},
		{
			name:       "MissingBoxIgnored",
			layout:     row,
			focused:    "center",
			dir:        Left,
			candidates: []string{"ghost"},
		},
		{
			name:       "FocusedWithoutBox",
			layout:     row,
			focused:    "ghost",
			dir:        Left,
			candidates: []string{"left"},
		},
		{
			name:       "InvalidDirection",
			layout:     row,
			focused:    "center",
			dir:        "north",
			candidates: []string{"left"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.StraightOverlapThreshold = 0.5
			got, ok := Navigate(tt.focused, tt.dir, tt.candidates, tt.layout.boxOf, opts)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Navigate() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNavigateStableTies(t *testing.T) {
	l := layout{
		"focus": BoxAt(20, 0, 10, 10),
		"a":     BoxAt(0, 0, 10, 10),
		"b":     BoxAt(0, 0, 10, 10),
	}
	opts := Options[string]{StraightOverlapThreshold: 0.5}

	if got, _ := Navigate("focus", Left, []string{"a", "b"}, l.boxOf, opts); got != "a" {
		t.Errorf("got %q, want a", got)
	}
	if got, _ := Navigate("focus", Left, []string{"b", "a"}, l.boxOf, opts); got != "b" {
		t.Errorf("got %q, want b", got)
	}
}

func TestNavigateRememberSource(t *testing.T) {
	l := layout{
		"far":    BoxAt(0, 0, 10, 10),
		"near":   BoxAt(12, 0, 10, 10),
		"focus":  BoxAt(30, 0, 10, 10),
		"behind": BoxAt(50, 0, 10, 10),
	}
	candidates := []string{"far", "near", "behind"}

	tests := []struct {
		name string
		opts Options[string]
		want string
	}{
		{
			name: "Disabled",
			opts: Options[string]{Previous: &Memory[string]{Source: "far", Destination: "focus", Reverse: Left}},
			want: "near",
		},
		{
			name: "ReturnsToSource",
			opts: Options[string]{RememberSource: true, Previous: &Memory[string]{Source: "far", Destination: "focus", Reverse: Left}},
			want: "far",
		},
		{
			name: "WrongDirection",
			opts: Options[string]{RememberSource: true, Previous: &Memory[string]{Source: "far", Destination: "focus", Reverse: Right}},
			want: "near",
		},
		{
			name: "DifferentDestination",
			opts: Options[string]{RememberSource: true, Previous: &Memory[string]{Source: "far", Destination: "near", Reverse: Left}},
			want: "near",
		},
		{
			name: "SourceOutsideWinningTier",
			opts: Options[string]{RememberSource: true, Previous: &Memory[string]{Source: "behind", Destination: "focus", Reverse: Left}},
			want: "near",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.StraightOverlapThreshold = 0.5
			got, ok := Navigate("focus", Left, candidates, l.boxOf, opts)
			if !ok || got != tt.want {
				t.Errorf("Navigate() = %q, %v; want %q", got, ok, tt.want)
			}
		})
	}
}

func TestNavigateInnerPartition(t *testing.T) {
	l := layout{
		"bar":  BoxAt(0, 0, 100, 20),
		"item": BoxAt(10, 2, 10, 10),
	}

	opts := Options[string]{StraightOverlapThreshold: 0.5}
	if _, ok := Navigate("bar", Left, []string{"item"}, l.boxOf, opts); ok {
		t.Error("box partition should leave contained candidates unreachable")
	}

	opts.InnerPartition = InnerCenter
	got, ok := Navigate("bar", Left, []string{"item"}, l.boxOf, opts)
	if !ok || got != "item" {
		t.Errorf("centre partition = %q, %v; want item", got, ok)
	}
}

func TestRankEmpty(t *testing.T) {
	target := NewRect(BoxAt(0, 0, 10, 10), -1)
	if got := Rank(target, Up, nil, false, 0.5, InnerBox); got != nil {
		t.Errorf("Rank(nil) = %v, want nil", got)
	}
}
