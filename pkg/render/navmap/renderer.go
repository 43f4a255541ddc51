package navmap

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spatialnav/pkg/cache"
	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/navigator"
	"github.com/matzehuels/spatialnav/pkg/scene"
	"github.com/matzehuels/spatialnav/pkg/spatial"
)

// Format is a rendered artifact type.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatDOT, FormatSVG, FormatPNG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported navmap format: %q", s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	}
	return "text/vnd.graphviz"
}

// Renderer builds, renders and caches navigation maps.
type Renderer struct {
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
	opts   Options
}

// RendererOption configures a [Renderer].
type RendererOption func(*Renderer)

// WithCache stores rendered artifacts in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) RendererOption {
	return func(r *Renderer) {
		if c != nil {
			r.cache, r.ttl = c, ttl
		}
	}
}

// WithKeyer replaces the default cache keyer.
func WithKeyer(k cache.Keyer) RendererOption {
	return func(r *Renderer) {
		if k != nil {
			r.keyer = k
		}
	}
}

// WithLogger sets the logger for cache decisions.
func WithLogger(l *log.Logger) RendererOption {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithOptions sets the DOT options.
func WithOptions(o Options) RendererOption {
	return func(r *Renderer) { r.opts = o }
}

// NewRenderer creates a renderer. Without WithCache nothing is cached.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the navigation map of s in format f.
func (r *Renderer) Render(ctx context.Context, nav *navigator.Navigator, s *scene.Scene, f Format) ([]byte, error) {
	cfg := nav.Config()
	focused := ""
	if e := s.FocusedElement(); e != nil {
		focused = e.ID()
	}
	key := r.keyer.NavmapKey(Fingerprint(nav, s), cache.NavmapKeyOpts{
		Format:       string(f),
		Focused:      focused,
		StraightOnly: cfg.StraightOnly,
		Threshold:    cfg.StraightOverlapThreshold,
	})

	if data, hit, err := r.cache.Get(ctx, key); err != nil {
		r.logger.Warn("navmap cache read failed", "err", err)
	} else if hit {
		r.logger.Debug("navmap cache hit", "scene", s.Name, "format", f)
		return data, nil
	}

	dot := ToDOT(Build(nav, s), r.opts)
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = RenderSVG(ctx, dot)
	case FormatPNG:
		data, err = RenderPNG(ctx, dot)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported navmap format: %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render navmap")
	}

	if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("navmap cache write failed", "err", err)
	}
	return data, nil
}

type elementPrint struct {
	ID       string                       `json:"id"`
	Box      spatial.Box                  `json:"box"`
	Disabled bool                         `json:"disabled,omitempty"`
	Hidden   bool                         `json:"hidden,omitempty"`
	Label    string                       `json:"label,omitempty"`
	Kind     string                       `json:"kind,omitempty"`
	Classes  []string                     `json:"classes,omitempty"`
	Nav      map[spatial.Direction]string `json:"nav,omitempty"`
}

type sectionPrint struct {
	ID             string                       `json:"id"`
	Selector       string                       `json:"selector"`
	DefaultElement string                       `json:"default_element,omitempty"`
	Disabled       bool                         `json:"disabled,omitempty"`
	StraightOnly   bool                         `json:"straight_only,omitempty"`
	Threshold      float64                      `json:"threshold"`
	RememberSource bool                         `json:"remember_source,omitempty"`
	Priority       navigator.Priority           `json:"priority,omitempty"`
	Restrict       navigator.Restrict           `json:"restrict,omitempty"`
	Inner          spatial.InnerPartition       `json:"inner,omitempty"`
	LeaveFor       map[spatial.Direction]string `json:"leave_for,omitempty"`
	LastFocused    string                       `json:"last_focused,omitempty"`
	Previous       *movePrint                   `json:"previous,omitempty"`
}

type movePrint struct {
	Source      string            `json:"source"`
	Destination string            `json:"destination"`
	Reverse     spatial.Direction `json:"reverse"`
}

func nodeID(n navigator.Node) string {
	if n == nil {
		return ""
	}
	return n.ID()
}

// Fingerprint hashes everything about s and nav that can change a map,
// including the remembered move of every section and the default and last
// section ids that leave-for targets resolve through.
func Fingerprint(nav *navigator.Navigator, s *scene.Scene) string {
	var fp struct {
		Elements       []elementPrint `json:"elements"`
		Sections       []sectionPrint `json:"sections"`
		DefaultSection string         `json:"default_section,omitempty"`
		LastSection    string         `json:"last_section,omitempty"`
	}
	fp.DefaultSection, fp.LastSection = nav.DefaultSectionID(), nav.LastSectionID()
	for _, e := range s.Elements() {
		fp.Elements = append(fp.Elements, elementPrint{
			ID: e.ID(), Box: e.Box, Disabled: e.Disabled, Hidden: e.Hidden,
			Label: e.Label, Kind: e.Kind, Classes: e.Classes, Nav: e.Nav,
		})
	}
	for _, id := range nav.Sections() {
		sec, _ := nav.Section(id)
		cfg := sec.Resolved()
		sp := sectionPrint{
			ID:             id,
			Selector:       sec.Config().Selector.String(),
			DefaultElement: sec.Config().DefaultElement.String(),
			Disabled:       sec.Disabled(),
			StraightOnly:   cfg.StraightOnly,
			Threshold:      cfg.StraightOverlapThreshold,
			RememberSource: cfg.RememberSource,
			Priority:       cfg.Priority,
			Restrict:       cfg.Restrict,
			Inner:          cfg.InnerPartition,
			LeaveFor:       cfg.LeaveFor,
		}
		if n := sec.LastFocusedElement(); n != nil {
			sp.LastFocused = n.ID()
		}
		if m, ok := sec.Previous(); ok {
			sp.Previous = &movePrint{Source: nodeID(m.Source), Destination: nodeID(m.Destination), Reverse: m.Reverse}
		}
		fp.Sections = append(fp.Sections, sp)
	}
	data, _ := json.Marshal(fp)
	return cache.Hash(data)
}
