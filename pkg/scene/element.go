package scene

import (
	"slices"
	"strings"

	"github.com/matzehuels/spatialnav/pkg/spatial"
)

// Element is a positioned node of a scene.
type Element struct {
	id string

	Kind     string
	Classes  []string
	Label    string
	Box      spatial.Box
	Disabled bool
	Hidden   bool
	TabStop  bool
	Attrs    map[string]string

	// Nav holds per-direction extended selectors; an empty value blocks
	// movement in that direction.
	Nav map[spatial.Direction]string
}

// NewElement creates an element.
func NewElement(id, kind string, box spatial.Box, classes ...string) *Element {
	return &Element{id: id, Kind: kind, Box: box, Classes: classes}
}

// ID returns the element id.
func (e *Element) ID() string { return e.id }

// HasClass reports whether e carries class c.
func (e *Element) HasClass(c string) bool { return slices.Contains(e.Classes, c) }

// Attr looks up an attribute by case-insensitive name. The "disabled" and
// "tabindex" attributes reflect the Disabled and TabStop fields.
func (e *Element) Attr(name string) (string, bool) {
	switch strings.ToLower(name) {
	case "disabled":
		return "", e.Disabled
	case "tabindex":
		if e.TabStop {
			return "-1", true
		}
		return "", false
	}
	for k, v := range e.Attrs {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// DisplayName returns the label, falling back to the id.
func (e *Element) DisplayName() string {
	if e.Label != "" {
		return e.Label
	}
	return e.id
}
