package remote

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/spatialnav/pkg/buildinfo"
	"github.com/matzehuels/spatialnav/pkg/cache"
	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/input"
	"github.com/matzehuels/spatialnav/pkg/render/navmap"
	"github.com/matzehuels/spatialnav/pkg/render/term"
	"github.com/matzehuels/spatialnav/pkg/spatial"
)

// HealthResponse reports liveness and the server build.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// StateResponse describes where focus is.
type StateResponse struct {
	Scene          string `json:"scene"`
	State          string `json:"state"`
	Paused         bool   `json:"paused"`
	Focused        string `json:"focused,omitempty"`
	Section        string `json:"section,omitempty"`
	DefaultSection string `json:"default_section,omitempty"`
	LastSection    string `json:"last_section,omitempty"`
}

// MoveResponse is the outcome of a move, focus or key request.
type MoveResponse struct {
	OK    bool          `json:"ok"`
	State StateResponse `json:"state"`
}

// PeekResponse is where a move would land.
type PeekResponse struct {
	Direction spatial.Direction `json:"direction"`
	OK        bool              `json:"ok"`
	Target    string            `json:"target,omitempty"`
}

// SectionResponse describes one section.
type SectionResponse struct {
	ID             string   `json:"id"`
	Selector       string   `json:"selector"`
	DefaultElement string   `json:"default_element,omitempty"`
	Disabled       bool     `json:"disabled"`
	LastFocused    string   `json:"last_focused,omitempty"`
	Navigable      []string `json:"navigable"`
}

// ElementResponse describes one element.
type ElementResponse struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind,omitempty"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Disabled bool    `json:"disabled,omitempty"`
	Hidden   bool    `json:"hidden,omitempty"`
	Section  string  `json:"section,omitempty"`
	Focused  bool    `json:"focused,omitempty"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

// state must be called with s.mu held.
func (s *Server) state() StateResponse {
	st := StateResponse{
		Scene:          s.scene.Name,
		State:          s.nav.State().String(),
		Paused:         s.nav.Paused(),
		DefaultSection: s.nav.DefaultSectionID(),
		LastSection:    s.nav.LastSectionID(),
	}
	if e := s.scene.FocusedElement(); e != nil {
		st.Focused = e.ID()
		st.Section = s.nav.SectionOf(e)
	}
	return st
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SectionResponse, 0, len(s.nav.Sections()))
	for _, id := range s.nav.Sections() {
		sec, _ := s.nav.Section(id)
		resp := SectionResponse{
			ID:             id,
			Selector:       sec.Config().Selector.String(),
			DefaultElement: sec.Config().DefaultElement.String(),
			Disabled:       sec.Disabled(),
			Navigable:      []string{},
		}
		if last := sec.LastFocusedElement(); last != nil {
			resp.LastFocused = last.ID()
		}
		for _, n := range sec.NavigableElements() {
			resp.Navigable = append(resp.Navigable, n.ID())
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSectionToggle(enable bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		s.mu.Lock()
		defer s.mu.Unlock()

		var ok bool
		if enable {
			ok = s.nav.EnableSection(id)
		} else {
			ok = s.nav.DisableSection(id)
		}
		if !ok {
			writeError(w, errors.New(errors.ErrCodeSectionNotFound, "section %q not found", id))
			return
		}
		s.logger.Info("section toggled", "section", id, "enabled", enable)
		writeJSON(w, http.StatusOK, s.state())
	}
}

func (s *Server) handleElements(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	focused := s.scene.FocusedElement()
	elems := s.scene.Elements()
	out := make([]ElementResponse, 0, len(elems))
	for _, e := range elems {
		out = append(out, ElementResponse{
			ID:       e.ID(),
			Kind:     e.Kind,
			Label:    e.Label,
			X:        e.Box.Left,
			Y:        e.Box.Top,
			W:        e.Box.Width,
			H:        e.Box.Height,
			Disabled: e.Disabled,
			Hidden:   e.Hidden,
			Section:  s.nav.SectionOf(e),
			Focused:  e == focused,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func parseDirection(r *http.Request) (spatial.Direction, error) {
	raw := chi.URLParam(r, "direction")
	dir, err := spatial.ParseDirection(raw)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidDirection, err, "invalid direction %q", raw)
	}
	return dir, nil
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	dir, err := parseDirection(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.nav.Move(dir)
	s.logger.Debug("move", "direction", dir, "ok", ok)
	writeJSON(w, http.StatusOK, MoveResponse{OK: ok, State: s.state()})
}

func (s *Server) handlePeek(w http.ResponseWriter, r *http.Request) {
	dir, err := parseDirection(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := PeekResponse{Direction: dir}
	if next, ok := s.nav.Peek(dir); ok {
		resp.OK, resp.Target = true, next.ID()
	}
	writeJSON(w, http.StatusOK, resp)
}

// resolveTarget turns a bare element id into an id pattern. Section ids and
// extended selectors pass through.
func (s *Server) resolveTarget(target string) string {
	if target == "" {
		return ""
	}
	if _, ok := s.nav.Section(target); ok {
		return target
	}
	if _, ok := s.scene.Element(target); ok {
		return "#" + target
	}
	return target
}

func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "target")
	if t, err := url.PathUnescape(target); err == nil {
		target = t
	}
	if target == "" {
		target = r.URL.Query().Get("target")
	}
	silent, _ := strconv.ParseBool(r.URL.Query().Get("silent"))

	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.nav.Focus(s.resolveTarget(target), silent)
	s.logger.Debug("focus", "target", target, "silent", silent, "ok", ok)
	writeJSON(w, http.StatusOK, MoveResponse{OK: ok, State: s.state()})
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	ev, err := input.Parse(chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	down := s.nav.HandleKeyDown(ev)
	up := s.nav.HandleKeyUp(ev)
	writeJSON(w, http.StatusOK, MoveResponse{OK: down || up, State: s.state()})
}

func (s *Server) handlePause(pause bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if pause {
			s.nav.Pause()
		} else {
			s.nav.Resume()
		}
		writeJSON(w, http.StatusOK, s.state())
	}
}

func (s *Server) handleNavmap(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(navmap.FormatSVG)
	}
	f, err := navmap.ParseFormat(name)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	data, err := s.renderer.Render(r.Context(), s.nav, s.scene, f)
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("navmap render failed", "err", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	_, _ = w.Write(data)
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a positive integer, got %q", name, raw)
	}
	return v, nil
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	cols, err := queryInt(r, "cols", 80)
	if err != nil {
		writeError(w, err)
		return
	}
	rows, err := queryInt(r, "rows", 24)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	opts := cache.TerminalKeyOpts{Cols: cols, Rows: rows}
	if e := s.scene.FocusedElement(); e != nil {
		opts.Focused = e.ID()
	}
	key := s.keyer.TerminalKey(navmap.Fingerprint(s.nav, s.scene), opts)

	ctx := r.Context()
	data, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("screen cache read failed", "err", err)
	}
	if !hit {
		var neighbours []string
		for _, dir := range spatial.Directions {
			if next, ok := s.nav.Peek(dir); ok {
				neighbours = append(neighbours, next.ID())
			}
		}
		data = []byte(term.Render(s.scene, term.Options{
			Cols:       cols,
			Rows:       rows,
			Neighbours: neighbours,
			Styles:     term.PlainStyles(),
		}))
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("screen cache write failed", "err", err)
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(data)
}
