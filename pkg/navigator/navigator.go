package navigator

import (
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spatialnav/pkg/errors"
)

// idPrefix prefixes generated section ids.
const idPrefix = "section-"

// State is the navigator's coarse lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateIdle
	StateMoving
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoving:
		return "moving"
	case StatePaused:
		return "paused"
	}
	return "uninitialized"
}

// Navigator owns sections and applies directional focus moves.
type Navigator struct {
	host   Host
	events *Dispatcher
	logger *log.Logger
	config Config

	sections map[string]*Section
	order    []string
	idPool   int

	ready             bool
	paused            bool
	moving            bool
	duringFocusChange bool

	defaultSectionID string
	lastSectionID    string
}

// Option configures a [Navigator].
type Option func(*Navigator)

// WithConfig replaces the navigator-wide defaults.
func WithConfig(c Config) Option { return func(n *Navigator) { n.config = c } }

// WithLogger sets the logger used for move decisions. Defaults to discard.
func WithLogger(l *log.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithNotifier forwards every event to nt in addition to registered listeners.
func WithNotifier(nt Notifier) Option {
	return func(n *Navigator) {
		if nt != nil {
			n.events.OnAny(nt.Notify)
		}
	}
}

// New creates a navigator driving host.
func New(host Host, opts ...Option) *Navigator {
	n := &Navigator{
		host:     host,
		events:   NewDispatcher(),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		config:   DefaultConfig(),
		sections: make(map[string]*Section),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Events returns the dispatcher delivering lifecycle notifications.
func (n *Navigator) Events() *Dispatcher { return n.events }

// Host returns the host the navigator drives.
func (n *Navigator) Host() Host { return n.host }

// Init starts handling key and native focus input. It is idempotent.
func (n *Navigator) Init() {
	n.ready = true
}

// Uninit stops handling input, removes every section and restarts id
// generation.
func (n *Navigator) Uninit() {
	n.Clear()
	n.idPool = 0
	n.ready = false
}

// Clear removes every section and forgets the default and last sections.
func (n *Navigator) Clear() {
	n.sections = make(map[string]*Section)
	n.order = nil
	n.defaultSectionID = ""
	n.lastSectionID = ""
	n.duringFocusChange = false
}

// State reports the current lifecycle state.
func (n *Navigator) State() State {
	switch {
	case !n.ready:
		return StateUninitialized
	case n.paused:
		return StatePaused
	case n.moving:
		return StateMoving
	}
	return StateIdle
}

// Pause suspends lifecycle notifications. Focus changes made while paused
// are applied silently.
func (n *Navigator) Pause() { n.paused = true }

// Resume re-enables lifecycle notifications.
func (n *Navigator) Resume() { n.paused = false }

// Paused reports whether the navigator is paused.
func (n *Navigator) Paused() bool { return n.paused }

// Config returns the navigator-wide defaults.
func (n *Navigator) Config() Config { return n.config }

// SetConfig replaces the navigator-wide defaults.
func (n *Navigator) SetConfig(c Config) { n.config = c }

// AddSection registers a section and returns its id. An empty id is replaced
// by a generated "section-<n>" id.
func (n *Navigator) AddSection(id string, cfg SectionConfig) (string, error) {
	if id == "" {
		id = n.generateID()
	} else if err := errors.ValidateSectionID(id); err != nil {
		return "", err
	}

	if _, ok := n.sections[id]; ok {
		return "", errors.New(errors.ErrCodeDuplicateSection, "section %q already exists", id)
	}

	n.sections[id] = &Section{id: id, cfg: cfg, nav: n}
	n.order = append(n.order, id)
	n.logger.Debug("section added", "id", id, "selector", cfg.Selector.String())
	return id, nil
}

// RemoveSection unregisters a section. It reports whether the section existed.
func (n *Navigator) RemoveSection(id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, errors.New(errors.ErrCodeInvalidSectionID, "section id is required")
	}

	if _, ok := n.sections[id]; !ok {
		return false, nil
	}

	delete(n.sections, id)
	n.order = slices.DeleteFunc(n.order, func(s string) bool { return s == id })
	if n.lastSectionID == id {
		n.lastSectionID = ""
	}
	return true, nil
}

// EnableSection enables a section. It reports whether the section exists;
// an unknown id is reported by the false result rather than an error, unlike
// the other section setters.
func (n *Navigator) EnableSection(id string) bool {
	return n.setDisabled(id, false)
}

// DisableSection disables a section. Like [Navigator.EnableSection] it
// reports an unknown id by returning false.
func (n *Navigator) DisableSection(id string) bool {
	return n.setDisabled(id, true)
}

func (n *Navigator) setDisabled(id string, disabled bool) bool {
	s, ok := n.sections[id]
	if !ok {
		return false
	}
	if s.disabled != disabled {
		s.disabled = disabled
		n.logger.Debug("section toggled", "id", id, "disabled", disabled)
	}
	return true
}

// SetSectionConfig replaces a section's configuration.
func (n *Navigator) SetSectionConfig(id string, cfg SectionConfig) error {
	s, err := n.section(id)
	if err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

// SetDefaultSection sets the section focused first by [Navigator.Focus].
// An empty id clears it.
func (n *Navigator) SetDefaultSection(id string) error {
	if id == "" {
		n.defaultSectionID = ""
		return nil
	}
	if _, err := n.section(id); err != nil {
		return err
	}
	n.defaultSectionID = id
	return nil
}

// DefaultSectionID returns the default section id, or "".
func (n *Navigator) DefaultSectionID() string { return n.defaultSectionID }

// LastSectionID returns the id of the section that last received focus, or "".
func (n *Navigator) LastSectionID() string { return n.lastSectionID }

// Section returns the section with the given id.
func (n *Navigator) Section(id string) (*Section, bool) {
	s, ok := n.sections[id]
	return s, ok
}

// Sections returns section ids in registration order.
func (n *Navigator) Sections() []string { return slices.Clone(n.order) }

// SectionOf returns the id of the first enabled section n belongs to, or "".
func (n *Navigator) SectionOf(node Node) string {
	for _, id := range n.order {
		if s := n.sections[id]; !s.disabled && s.Match(node) {
			return id
		}
	}
	return ""
}

// MakeFocusable gives every member of a section a focus stop, skipping nodes
// that match the tab-index ignore list. An empty id applies to all sections.
func (n *Navigator) MakeFocusable(id string) error {
	if id == "" {
		for _, sid := range n.order {
			n.makeFocusable(n.sections[sid])
		}
		return nil
	}

	s, err := n.section(id)
	if err != nil {
		return err
	}
	n.makeFocusable(s)
	return nil
}

func (n *Navigator) makeFocusable(s *Section) {
	ignore := s.Resolved().TabIndexIgnoreList
	for _, node := range resolve(n.host, s.cfg.Selector) {
		if ignore != "" && n.host.Matches(node, ignore) {
			continue
		}
		n.host.MakeFocusable(node)
	}
}

func (n *Navigator) section(id string) (*Section, error) {
	s, ok := n.sections[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeSectionNotFound, "section %q does not exist", id)
	}
	return s, nil
}

func (n *Navigator) generateID() string {
	for {
		n.idPool++
		id := idPrefix + strconv.Itoa(n.idPool)
		if _, ok := n.sections[id]; !ok {
			return id
		}
	}
}

func (n *Navigator) isNavigable(node Node, sectionID string, verifyMembership bool) bool {
	s, ok := n.sections[sectionID]
	return ok && s.IsNavigable(node, verifyMembership)
}
