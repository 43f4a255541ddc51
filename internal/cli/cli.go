// Package cli implements the spatialnav command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spatialnav/pkg/buildinfo"
	"github.com/matzehuels/spatialnav/pkg/cache"
	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/navigator"
	"github.com/matzehuels/spatialnav/pkg/scene"
	"github.com/matzehuels/spatialnav/pkg/spatial"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "spatialnav"

	// renderCacheTTL is how long rendered navmaps stay in the file cache.
	renderCacheTTL = 7 * 24 * time.Hour

	// mongoTimeout bounds connecting to the scene database.
	mongoTimeout = 10 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	storeDir string
	mongoURI string
	mongoDB  string
	noCache  bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Spatialnav moves focus across on-screen elements with arrow keys",
		Long:         `Spatialnav loads scene files describing positioned elements and sections, and drives directional focus navigation over them: from the command line, in an interactive terminal, or as an HTTP remote.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.storeDir, "store-dir", "", "scene store directory (default ~/.config/spatialnav/scenes)")
	flags.StringVar(&c.mongoURI, "mongo-uri", os.Getenv("SPATIALNAV_MONGODB_URI"), "store scenes in MongoDB instead of files")
	flags.StringVar(&c.mongoDB, "mongo-db", appName, "MongoDB database for the scene store")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the render cache")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.navmapCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.sceneCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Scene Loading
// =============================================================================

// isScenePath reports whether ref names a scene file rather than a stored
// scene.
func isScenePath(ref string) bool {
	if _, err := os.Stat(ref); err == nil {
		return true
	}
	_, err := scene.FormatFromPath(ref)
	return err == nil
}

// loadSpec reads a scene file, or a scene from the store when ref is not a
// path.
func (c *CLI) loadSpec(ctx context.Context, ref string) (*scene.Spec, error) {
	if isScenePath(ref) {
		return scene.LoadFile(ref)
	}
	store, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Get(ctx, ref)
}

// openScene loads ref and builds its scene and navigator.
func (c *CLI) openScene(ctx context.Context, ref string) (*scene.Scene, *navigator.Navigator, error) {
	prog := newProgress(c.Logger)
	spec, err := c.loadSpec(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	s, nav, err := c.buildScene(spec)
	if err != nil {
		return nil, nil, err
	}
	prog.debug("Loaded scene %q with %d elements", s.Name, s.Len())
	return s, nav, nil
}

func (c *CLI) buildScene(spec *scene.Spec) (*scene.Scene, *navigator.Navigator, error) {
	s, err := scene.Build(spec)
	if err != nil {
		return nil, nil, err
	}
	nav, err := s.Navigator(navigator.WithLogger(c.Logger))
	if err != nil {
		return nil, nil, err
	}
	return s, nav, nil
}

// =============================================================================
// Store and Cache Factories
// =============================================================================

// openStore returns the MongoDB store when --mongo-uri is set, else the file
// store.
func (c *CLI) openStore(ctx context.Context) (scene.Store, error) {
	if c.mongoURI != "" {
		ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
		defer cancel()
		c.Logger.Debug("connecting to scene database", "db", c.mongoDB)
		return scene.ConnectMongo(ctx, c.mongoURI, c.mongoDB, scene.DefaultMongoCollection)
	}
	return scene.NewFileStore(c.storeDir, scene.FormatTOML)
}

func (c *CLI) newCache() cache.Cache {
	if c.noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("render cache disabled", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("render cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the render cache directory, honouring XDG_CACHE_HOME.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseDirections parses --directions values.
func parseDirections(names []string) ([]spatial.Direction, error) {
	out := make([]spatial.Direction, 0, len(names))
	for _, n := range names {
		d, err := parseDirection(n)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	return out, nil
}

func parseDirection(name string) (spatial.Direction, error) {
	d, err := spatial.ParseDirection(name)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidDirection, err, "invalid direction %q", name)
	}
	return d, nil
}
