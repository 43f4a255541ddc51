package scene

import (
	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/navigator"
)

// Build validates spec and creates its scene.
func Build(spec *Spec) (*Scene, error) {
	if spec == nil {
		return nil, errors.New(errors.ErrCodeInvalidScene, "nil scene spec")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	s := New(spec.Name)
	s.Width, s.Height = spec.Width, spec.Height
	s.spec = spec
	for _, es := range spec.Elements {
		if err := s.Add(es.Element()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Navigator creates an initialized navigator over s. The spec's defaults and
// sections are applied before opts, so a [navigator.WithConfig] option
// replaces the defaults entirely. When the spec names an initial focus it is
// applied silently.
func (s *Scene) Navigator(opts ...navigator.Option) (*navigator.Navigator, error) {
	spec := s.spec
	if spec == nil {
		spec = &Spec{}
	}

	cfg := spec.Defaults.Apply(navigator.DefaultConfig())
	nav := navigator.New(s, append([]navigator.Option{navigator.WithConfig(cfg)}, opts...)...)
	nav.Init()

	for _, sec := range spec.Sections {
		id, err := nav.AddSection(sec.ID, sec.SectionConfig())
		if err != nil {
			return nil, err
		}
		if sec.Disabled {
			nav.DisableSection(id)
		}
	}
	if spec.DefaultSection != "" {
		if err := nav.SetDefaultSection(spec.DefaultSection); err != nil {
			return nil, err
		}
	}
	if spec.Focus != "" {
		nav.Focus(spec.Focus, true)
	}
	return nav, nil
}
