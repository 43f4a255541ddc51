package remote

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/spatialnav/pkg/cache"
	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/navigator"
	"github.com/matzehuels/spatialnav/pkg/observability"
	"github.com/matzehuels/spatialnav/pkg/render/navmap"
	"github.com/matzehuels/spatialnav/pkg/scene"
)

// Server serves one scene and its navigator.
type Server struct {
	mu    sync.Mutex
	scene *scene.Scene
	nav   *navigator.Navigator

	router   chi.Router
	logger   *log.Logger
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	renderer *navmap.Renderer
	mapOpts  navmap.Options

	httpServer *http.Server
	listener   net.Listener
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCache caches rendered navmaps and screens in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) {
		if c != nil {
			s.cache, s.ttl = c, ttl
		}
	}
}

// WithKeyer replaces the default cache keyer.
func WithKeyer(k cache.Keyer) Option {
	return func(s *Server) {
		if k != nil {
			s.keyer = k
		}
	}
}

// WithNavmapOptions sets the DOT options used by /navmap.
func WithNavmapOptions(o navmap.Options) Option {
	return func(s *Server) { s.mapOpts = o }
}

// New creates a server for sc driven by nav. nav must have been created
// over sc.
func New(sc *scene.Scene, nav *navigator.Navigator, opts ...Option) *Server {
	s := &Server{
		scene:  sc,
		nav:    nav,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.renderer = navmap.NewRenderer(
		navmap.WithCache(s.cache, s.ttl),
		navmap.WithKeyer(s.keyer),
		navmap.WithLogger(s.logger),
		navmap.WithOptions(s.mapOpts),
	)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/health", s.handleHealth)
	r.Get("/state", s.handleState)
	r.Get("/sections", s.handleSections)
	r.Post("/sections/{id}/enable", s.handleSectionToggle(true))
	r.Post("/sections/{id}/disable", s.handleSectionToggle(false))
	r.Get("/elements", s.handleElements)
	r.Post("/move/{direction}", s.handleMove)
	r.Get("/peek/{direction}", s.handlePeek)
	r.Post("/focus", s.handleFocus)
	r.Post("/focus/{target}", s.handleFocus)
	r.Post("/key/{key}", s.handleKey)
	r.Post("/pause", s.handlePause(true))
	r.Post("/resume", s.handlePause(false))
	r.Get("/navmap", s.handleNavmap)
	r.Get("/screen", s.handleScreen)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no route for " + r.Method + " " + r.URL.Path})
	})
	s.router = r
	s.httpServer = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Replace swaps in a new scene and navigator, typically after a reload.
func (s *Server) Replace(sc *scene.Scene, nav *navigator.Navigator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scene, s.nav = sc, nav
	s.logger.Info("scene replaced", "scene", sc.Name, "elements", sc.Len())
}

// Do runs fn with exclusive access to the navigator.
func (s *Server) Do(fn func(*scene.Scene, *navigator.Navigator)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.scene, s.nav)
}

// Listen binds addr. Call [Server.Serve] with the returned listener.
func (s *Server) Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "listen on %s", addr)
	}
	s.listener = ln
	return ln, nil
}

// Serve accepts connections on ln until [Server.Shutdown].
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("remote listening", "addr", ln.Addr().String())
	if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Addr returns the bound address, or "" before [Server.Listen].
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("remote shutting down")
	return s.httpServer.Shutdown(ctx)
}

// instrument logs each request and reports it to the remote hooks.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.Remote()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", time.Since(start))
	})
}
