package scene

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/navigator"
	"github.com/matzehuels/spatialnav/pkg/spatial"
)

const tomlFixture = `
name = "remote"
focus = "@menu"
default_section = "menu"

[defaults]
straight_overlap_threshold = 0.3
restrict = "self-first"

[[sections]]
id = "menu"
selector = ".menu"
default_element = "#search"
[sections.options]
priority = "last-focused"
leave_for = { down = "@grid" }

[[sections]]
id = "grid"
selector = ".card"

[[elements]]
id = "home"
class = ["menu"]
x = 0
y = 0
w = 100
h = 40

[[elements]]
id = "search"
class = ["menu"]
x = 120
y = 0
w = 100
h = 40
nav = { up = "" }

[[elements]]
id = "card-1"
kind = "tile"
class = ["card"]
x = 0
y = 80
w = 100
h = 100
`

const yamlFixture = `
name: remote
focus: "@menu"
default_section: menu
defaults:
  straight_overlap_threshold: 0.3
  restrict: self-first
sections:
  - id: menu
    selector: .menu
    default_element: "#search"
    options:
      priority: last-focused
      leave_for:
        down: "@grid"
  - id: grid
    selector: .card
elements:
  - {id: home, class: [menu], x: 0, y: 0, w: 100, h: 40}
  - {id: search, class: [menu], x: 120, y: 0, w: 100, h: 40, nav: {up: ""}}
  - {id: card-1, kind: tile, class: [card], x: 0, y: 80, w: 100, h: 100}
`

const jsonFixture = `{
  "name": "remote",
  "focus": "@menu",
  "default_section": "menu",
  "defaults": {"straight_overlap_threshold": 0.3, "restrict": "self-first"},
  "sections": [
    {"id": "menu", "selector": ".menu", "default_element": "#search",
     "options": {"priority": "last-focused", "leave_for": {"down": "@grid"}}},
    {"id": "grid", "selector": ".card"}
  ],
  "elements": [
    {"id": "home", "class": ["menu"], "x": 0, "y": 0, "w": 100, "h": 40},
    {"id": "search", "class": ["menu"], "x": 120, "y": 0, "w": 100, "h": 40, "nav": {"up": ""}},
    {"id": "card-1", "kind": "tile", "class": ["card"], "x": 0, "y": 80, "w": 100, "h": 100}
  ]
}`

func TestDecodeFormatsAgree(t *testing.T) {
	want, err := Parse([]byte(tomlFixture), FormatTOML)
	if err != nil {
		t.Fatalf("Parse(toml): %v", err)
	}

	if want.Name != "remote" || len(want.Sections) != 2 || len(want.Elements) != 3 {
		t.Fatalf("toml spec = %+v", want)
	}
	if th := want.Defaults.StraightOverlapThreshold; th == nil || *th != 0.3 {
		t.Errorf("threshold = %v, want 0.3", th)
	}
	if v, ok := want.Elements[1].Nav["up"]; !ok || v != "" {
		t.Errorf("search nav up = %q, %v", v, ok)
	}

	for _, tt := range []struct {
		format Format
		data   string
	}{
		{FormatYAML, yamlFixture},
		{FormatJSON, jsonFixture},
	} {
		t.Run(string(tt.format), func(t *testing.T) {
			got, err := Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("spec mismatch\n got: %+v\nwant: %+v", got, want)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	spec, err := Parse([]byte(tomlFixture), FormatTOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, spec, f); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(&buf, f)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got.Elements[2].ID != "card-1" || got.Sections[0].Options.LeaveFor["down"] != "@grid" {
				t.Errorf("decoded spec lost data: %+v", got)
			}
		})
	}
}

func TestDecodeUnknownKey(t *testing.T) {
	for _, tt := range []struct {
		format Format
		data   string
	}{
		{FormatTOML, "name = \"x\"\ncolour = \"red\"\n"},
		{FormatYAML, "name: x\ncolour: red\n"},
		{FormatJSON, `{"name": "x", "colour": "red"}`},
	} {
		t.Run(string(tt.format), func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.data), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Errorf("Decode error = %v, want INVALID_SCENE", err)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.toml", FormatTOML, true},
		{"dir/a.YAML", FormatYAML, true},
		{"a.yml", FormatYAML, true},
		{"a.json", FormatJSON, true},
		{"a.xml", "", false},
		{"a", "", false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestValidate(t *testing.T) {
	el := func(id string) ElementSpec { return ElementSpec{ID: id, W: 10, H: 10} }

	tests := []struct {
		name string
		spec Spec
		code errors.Code
	}{
		{"bad name", Spec{Name: "../x"}, errors.ErrCodeInvalidScene},
		{"negative size", Spec{Width: -1}, errors.ErrCodeInvalidScene},
		{"missing element id", Spec{Elements: []ElementSpec{{}}}, errors.ErrCodeInvalidScene},
		{"duplicate element", Spec{Elements: []ElementSpec{el("a"), el("a")}}, errors.ErrCodeInvalidScene},
		{"negative element size", Spec{Elements: []ElementSpec{{ID: "a", W: -1}}}, errors.ErrCodeInvalidScene},
		{"bad nav direction", Spec{Elements: []ElementSpec{{ID: "a", Nav: map[string]string{"sideways": ""}}}}, errors.ErrCodeInvalidScene},
		{"nav direction twice", Spec{Elements: []ElementSpec{{ID: "a", Nav: map[string]string{"up": "#b", "Up": ""}}}}, errors.ErrCodeInvalidScene},
		{"leave_for direction twice", Spec{Defaults: Options{LeaveFor: map[string]string{"left": "@a", " LEFT": "@b"}}}, errors.ErrCodeInvalidConfig},
		{"reserved section id", Spec{Sections: []SectionSpec{{ID: "@x", Selector: "*"}}}, errors.ErrCodeInvalidSectionID},
		{"duplicate section", Spec{Sections: []SectionSpec{{ID: "s", Selector: "*"}, {ID: "s", Selector: "*"}}}, errors.ErrCodeInvalidScene},
		{"missing selector", Spec{Sections: []SectionSpec{{ID: "s"}}}, errors.ErrCodeInvalidScene},
		{"bad selector", Spec{Sections: []SectionSpec{{Selector: "a b"}}}, errors.ErrCodeInvalidSelector},
		{"bad default element", Spec{Sections: []SectionSpec{{Selector: "*", DefaultElement: "#"}}}, errors.ErrCodeInvalidSelector},
		{"threshold above one", Spec{Defaults: Options{StraightOverlapThreshold: navigator.Ptr(1.5)}}, errors.ErrCodeInvalidConfig},
		{"threshold NaN", Spec{Defaults: Options{StraightOverlapThreshold: navigator.Ptr(math.NaN())}}, errors.ErrCodeInvalidConfig},
		{"bad priority", Spec{Defaults: Options{Priority: navigator.Ptr("first")}}, errors.ErrCodeInvalidConfig},
		{"bad restrict", Spec{Sections: []SectionSpec{{Selector: "*", Options: Options{Restrict: navigator.Ptr("never")}}}}, errors.ErrCodeInvalidConfig},
		{"bad inner partition", Spec{Defaults: Options{InnerPartition: navigator.Ptr("corner")}}, errors.ErrCodeInvalidConfig},
		{"bad leave_for", Spec{Defaults: Options{LeaveFor: map[string]string{"back": ""}}}, errors.ErrCodeInvalidConfig},
		{"bad ignore list", Spec{Defaults: Options{TabIndexIgnoreList: navigator.Ptr("[")}}, errors.ErrCodeInvalidSelector},
		{"unknown default section", Spec{DefaultSection: "menu"}, errors.ErrCodeInvalidScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if code := errors.GetCode(err); code != tt.code {
				t.Errorf("code = %s, want %s (%v)", code, tt.code, err)
			}
		})
	}
}

func TestValidateAcceptsEmptySpec(t *testing.T) {
	if err := (&Spec{}).Validate(); err != nil {
		t.Errorf("Validate(empty) = %v", err)
	}
}

func TestOptionsApply(t *testing.T) {
	opts := Options{
		StraightOnly:   navigator.Ptr(true),
		Priority:       navigator.Ptr("default-element"),
		Restrict:       navigator.Ptr("none"),
		InnerPartition: navigator.Ptr("center"),
		LeaveFor:       map[string]string{"Up": "@top"},
	}
	cfg := opts.Apply(navigator.DefaultConfig())

	if !cfg.StraightOnly || cfg.Priority != navigator.PriorityDefaultElement ||
		cfg.Restrict != navigator.RestrictNone || cfg.InnerPartition != spatial.InnerCenter {
		t.Errorf("Apply = %+v", cfg)
	}
	if cfg.StraightOverlapThreshold != 0.5 {
		t.Errorf("threshold = %v, want inherited 0.5", cfg.StraightOverlapThreshold)
	}
	if cfg.LeaveFor[spatial.Up] != "@top" {
		t.Errorf("LeaveFor = %v", cfg.LeaveFor)
	}
}

func TestElementSpecElement(t *testing.T) {
	es := ElementSpec{
		ID: "a", Kind: "button", Class: []string{"x"}, Label: "A",
		X: 10, Y: 20, W: 30, H: 40, TabStop: true,
		Attrs: map[string]string{"role": "tab"},
		Nav:   map[string]string{"left": "#b"},
	}
	e := es.Element()
	if e.ID() != "a" || e.Box != spatial.BoxAt(10, 20, 30, 40) || !e.HasClass("x") || !e.TabStop {
		t.Errorf("Element = %+v", e)
	}
	if e.Nav[spatial.Left] != "#b" || e.Attrs["role"] != "tab" || e.DisplayName() != "A" {
		t.Errorf("Element = %+v", e)
	}
	es.Class[0] = "y"
	if !e.HasClass("x") {
		t.Error("element shares the spec's class slice")
	}
}
