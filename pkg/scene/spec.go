package scene

import (
	"fmt"
	"slices"

	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/navigator"
	"github.com/matzehuels/spatialnav/pkg/spatial"
)

// Spec is the serialisable description of a scene.
type Spec struct {
	Name        string `toml:"name" yaml:"name" json:"name" bson:"name"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty" bson:"description,omitempty"`

	Width  float64 `toml:"width,omitempty" yaml:"width,omitempty" json:"width,omitempty" bson:"width,omitempty"`
	Height float64 `toml:"height,omitempty" yaml:"height,omitempty" json:"height,omitempty" bson:"height,omitempty"`

	// Focus is an extended selector focused silently once the navigator is
	// built, for example "@menu" or "#home".
	Focus          string `toml:"focus,omitempty" yaml:"focus,omitempty" json:"focus,omitempty" bson:"focus,omitempty"`
	DefaultSection string `toml:"default_section,omitempty" yaml:"default_section,omitempty" json:"default_section,omitempty" bson:"default_section,omitempty"`

	Defaults Options       `toml:"defaults,omitempty" yaml:"defaults,omitempty" json:"defaults,omitempty" bson:"defaults,omitempty"`
	Sections []SectionSpec `toml:"sections,omitempty" yaml:"sections,omitempty" json:"sections,omitempty" bson:"sections,omitempty"`
	Elements []ElementSpec `toml:"elements" yaml:"elements" json:"elements" bson:"elements"`
}

// Options mirrors [navigator.SectionConfig]'s overrides. Unset fields inherit.
type Options struct {
	StraightOnly             *bool             `toml:"straight_only,omitempty" yaml:"straight_only,omitempty" json:"straight_only,omitempty" bson:"straight_only,omitempty"`
	StraightOverlapThreshold *float64          `toml:"straight_overlap_threshold,omitempty" yaml:"straight_overlap_threshold,omitempty" json:"straight_overlap_threshold,omitempty" bson:"straight_overlap_threshold,omitempty"`
	RememberSource           *bool             `toml:"remember_source,omitempty" yaml:"remember_source,omitempty" json:"remember_source,omitempty" bson:"remember_source,omitempty"`
	Priority                 *string           `toml:"priority,omitempty" yaml:"priority,omitempty" json:"priority,omitempty" bson:"priority,omitempty"`
	Restrict                 *string           `toml:"restrict,omitempty" yaml:"restrict,omitempty" json:"restrict,omitempty" bson:"restrict,omitempty"`
	TabIndexIgnoreList       *string           `toml:"tab_index_ignore_list,omitempty" yaml:"tab_index_ignore_list,omitempty" json:"tab_index_ignore_list,omitempty" bson:"tab_index_ignore_list,omitempty"`
	InnerPartition           *string           `toml:"inner_partition,omitempty" yaml:"inner_partition,omitempty" json:"inner_partition,omitempty" bson:"inner_partition,omitempty"`
	LeaveFor                 map[string]string `toml:"leave_for,omitempty" yaml:"leave_for,omitempty" json:"leave_for,omitempty" bson:"leave_for,omitempty"`
}

// SectionSpec declares a section.
type SectionSpec struct {
	ID             string  `toml:"id,omitempty" yaml:"id,omitempty" json:"id,omitempty" bson:"id,omitempty"`
	Selector       string  `toml:"selector" yaml:"selector" json:"selector" bson:"selector"`
	DefaultElement string  `toml:"default_element,omitempty" yaml:"default_element,omitempty" json:"default_element,omitempty" bson:"default_element,omitempty"`
	Disabled       bool    `toml:"disabled,omitempty" yaml:"disabled,omitempty" json:"disabled,omitempty" bson:"disabled,omitempty"`
	Options        Options `toml:"options,omitempty" yaml:"options,omitempty" json:"options,omitempty" bson:"options,omitempty"`
}

// ElementSpec declares an element by its top-left corner and size.
type ElementSpec struct {
	ID       string            `toml:"id" yaml:"id" json:"id" bson:"id"`
	Kind     string            `toml:"kind,omitempty" yaml:"kind,omitempty" json:"kind,omitempty" bson:"kind,omitempty"`
	Class    []string          `toml:"class,omitempty" yaml:"class,omitempty" json:"class,omitempty" bson:"class,omitempty"`
	Label    string            `toml:"label,omitempty" yaml:"label,omitempty" json:"label,omitempty" bson:"label,omitempty"`
	X        float64           `toml:"x" yaml:"x" json:"x" bson:"x"`
	Y        float64           `toml:"y" yaml:"y" json:"y" bson:"y"`
	W        float64           `toml:"w" yaml:"w" json:"w" bson:"w"`
	H        float64           `toml:"h" yaml:"h" json:"h" bson:"h"`
	Disabled bool              `toml:"disabled,omitempty" yaml:"disabled,omitempty" json:"disabled,omitempty" bson:"disabled,omitempty"`
	Hidden   bool              `toml:"hidden,omitempty" yaml:"hidden,omitempty" json:"hidden,omitempty" bson:"hidden,omitempty"`
	TabStop  bool              `toml:"tab_stop,omitempty" yaml:"tab_stop,omitempty" json:"tab_stop,omitempty" bson:"tab_stop,omitempty"`
	Attrs    map[string]string `toml:"attrs,omitempty" yaml:"attrs,omitempty" json:"attrs,omitempty" bson:"attrs,omitempty"`

	// Nav maps a direction to an extended selector. An empty value blocks
	// movement in that direction.
	Nav map[string]string `toml:"nav,omitempty" yaml:"nav,omitempty" json:"nav,omitempty" bson:"nav,omitempty"`
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks the spec for structural errors. All problems are reported
// as INVALID_SCENE, INVALID_CONFIG, INVALID_SECTION_ID or INVALID_SELECTOR.
func (s *Spec) Validate() error {
	if s.Name != "" {
		if err := errors.ValidateSceneName(s.Name); err != nil {
			return err
		}
	}
	if s.Width < 0 || s.Height < 0 {
		return errors.New(errors.ErrCodeInvalidScene, "scene size must not be negative")
	}
	if err := s.Defaults.validate("defaults"); err != nil {
		return err
	}

	seen := make(map[string]bool, len(s.Elements))
	for i, e := range s.Elements {
		if e.ID == "" {
			return errors.New(errors.ErrCodeInvalidScene, "element %d has no id", i)
		}
		if seen[e.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate element id %q", e.ID)
		}
		seen[e.ID] = true
		if e.W < 0 || e.H < 0 {
			return errors.New(errors.ErrCodeInvalidScene, "element %q has a negative size", e.ID)
		}
		if _, err := parseDirections(e.Nav); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "element %q nav", e.ID)
		}
	}

	var ids []string
	for i, sec := range s.Sections {
		where := fmt.Sprintf("section %d", i)
		if sec.ID != "" {
			if err := errors.ValidateSectionID(sec.ID); err != nil {
				return err
			}
			if slices.Contains(ids, sec.ID) {
				return errors.New(errors.ErrCodeInvalidScene, "duplicate section id %q", sec.ID)
			}
			ids = append(ids, sec.ID)
			where = fmt.Sprintf("section %q", sec.ID)
		}
		if sec.Selector == "" {
			return errors.New(errors.ErrCodeInvalidScene, "%s has no selector", where)
		}
		if _, err := CompilePattern(sec.Selector); err != nil {
			return err
		}
		if sec.DefaultElement != "" {
			if _, err := CompilePattern(sec.DefaultElement); err != nil {
				return err
			}
		}
		if err := sec.Options.validate(where); err != nil {
			return err
		}
	}

	if s.DefaultSection != "" && !slices.Contains(ids, s.DefaultSection) {
		return errors.New(errors.ErrCodeInvalidScene, "default section %q is not declared", s.DefaultSection)
	}
	return nil
}

func (o Options) validate(where string) error {
	if o.StraightOverlapThreshold != nil {
		if err := errors.ValidateThreshold(*o.StraightOverlapThreshold); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", where)
		}
	}
	if o.Priority != nil {
		switch navigator.Priority(*o.Priority) {
		case navigator.PriorityNone, navigator.PriorityLastFocused, navigator.PriorityDefaultElement:
		default:
			return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown priority %q", where, *o.Priority)
		}
	}
	if o.Restrict != nil {
		switch navigator.Restrict(*o.Restrict) {
		case navigator.RestrictSelfOnly, navigator.RestrictSelfFirst, navigator.RestrictNone:
		default:
			return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown restrict policy %q", where, *o.Restrict)
		}
	}
	if o.InnerPartition != nil {
		switch spatial.InnerPartition(*o.InnerPartition) {
		case spatial.InnerBox, spatial.InnerCenter:
		default:
			return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown inner partition %q", where, *o.InnerPartition)
		}
	}
	if o.TabIndexIgnoreList != nil && *o.TabIndexIgnoreList != "" {
		if _, err := CompilePattern(*o.TabIndexIgnoreList); err != nil {
			return err
		}
	}
	if _, err := parseDirections(o.LeaveFor); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s leave_for", where)
	}
	return nil
}

func parseDirections(m map[string]string) (map[spatial.Direction]string, error) {
	if m == nil {
		return nil, nil
	}
	out := make(map[spatial.Direction]string, len(m))
	for k, v := range m {
		d, err := spatial.ParseDirection(k)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDirection, err, "%q", k)
		}
		if _, dup := out[d]; dup {
			return nil, errors.New(errors.ErrCodeInvalidDirection, "direction %s is given more than once", d)
		}
		out[d] = v
	}
	return out, nil
}

// =============================================================================
// Conversion
// =============================================================================

// Apply returns base with every option set in o applied.
func (o Options) Apply(base navigator.Config) navigator.Config {
	return base.Merge(o.sectionConfig())
}

func (o Options) sectionConfig() navigator.SectionConfig {
	var sc navigator.SectionConfig
	sc.StraightOnly = o.StraightOnly
	sc.StraightOverlapThreshold = o.StraightOverlapThreshold
	sc.RememberSource = o.RememberSource
	sc.TabIndexIgnoreList = o.TabIndexIgnoreList
	if o.Priority != nil {
		sc.Priority = navigator.Ptr(navigator.Priority(*o.Priority))
	}
	if o.Restrict != nil {
		sc.Restrict = navigator.Ptr(navigator.Restrict(*o.Restrict))
	}
	if o.InnerPartition != nil {
		sc.InnerPartition = navigator.Ptr(spatial.InnerPartition(*o.InnerPartition))
	}
	sc.LeaveFor, _ = parseDirections(o.LeaveFor)
	return sc
}

// SectionConfig converts the spec into a navigator section config.
func (s SectionSpec) SectionConfig() navigator.SectionConfig {
	sc := s.Options.sectionConfig()
	sc.Selector = navigator.ByPattern(s.Selector)
	sc.DefaultElement = navigator.ByPattern(s.DefaultElement)
	return sc
}

// Element converts the spec into a scene element.
func (e ElementSpec) Element() *Element {
	el := NewElement(e.ID, e.Kind, spatial.BoxAt(e.X, e.Y, e.W, e.H), slices.Clone(e.Class)...)
	el.Label = e.Label
	el.Disabled = e.Disabled
	el.Hidden = e.Hidden
	el.TabStop = e.TabStop
	if len(e.Attrs) > 0 {
		el.Attrs = make(map[string]string, len(e.Attrs))
		for k, v := range e.Attrs {
			el.Attrs[k] = v
		}
	}
	el.Nav, _ = parseDirections(e.Nav)
	return el
}
