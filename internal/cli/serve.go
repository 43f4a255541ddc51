package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spatialnav/pkg/cache"
	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/eventsink"
	"github.com/matzehuels/spatialnav/pkg/navigator"
	"github.com/matzehuels/spatialnav/pkg/remote"
	"github.com/matzehuels/spatialnav/pkg/scene"
)

// shutdownTimeout bounds graceful shutdown of the HTTP remote.
const shutdownTimeout = 5 * time.Second

// sharedSink keeps a sink open across reloads; each navigator gets its own
// forwarder, and only the command closes the underlying sink.
type sharedSink struct {
	eventsink.Sink
}

func (sharedSink) Close() error { return nil }

// serveCommand exposes a scene as an HTTP remote control.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr   string
		watch  bool
		events eventFlags
	)

	cmd := &cobra.Command{
		Use:   "serve <scene>",
		Short: "Drive a scene over HTTP like a TV remote",
		Long: `Serve loads a scene and answers HTTP requests that move focus, peek, press
keys, toggle sections and render the scene. Lifecycle events can be logged or
published to Redis. With --watch the scene file is reloaded on save.`,
		Example: `  spatialnav serve remote.toml --addr 127.0.0.1:7070
  curl -X POST localhost:7070/move/right
  spatialnav serve remote.toml --watch --redis redis://localhost:6379/0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if watch && !isScenePath(args[0]) {
				return errors.New(errors.ErrCodeInvalidInput, "--watch needs a scene file, not a stored scene")
			}
			s, nav, err := c.openScene(ctx, args[0])
			if err != nil {
				return err
			}

			sink, err := events.sink(ctx, c.Logger)
			if err != nil {
				return err
			}
			attach := func(name string, nav *navigator.Navigator) *eventsink.Forwarder {
				if sink == nil {
					return nil
				}
				return eventsink.Attach(nav.Events(), name, sharedSink{sink}, eventsink.WithLogger(c.Logger))
			}
			fwd := attach(s.Name, nav)

			srv := remote.New(s, nav,
				remote.WithLogger(c.Logger),
				remote.WithCache(cache.NewMemoryCache(0), time.Hour),
			)
			ln, err := srv.Listen(addr)
			if err != nil {
				return err
			}

			if watch {
				reloads, err := scene.Watch(ctx, args[0], scene.DefaultWatchDelay)
				if err != nil {
					ln.Close()
					return err
				}
				go func() {
					for r := range reloads {
						if r.Err != nil {
							c.Logger.Error("scene reload failed", "err", r.Err)
							continue
						}
						s, nav, err := c.buildScene(r.Spec)
						if err != nil {
							c.Logger.Error("scene reload failed", "err", err)
							continue
						}
						next := attach(s.Name, nav)
						srv.Replace(s, nav)
						var old *eventsink.Forwarder
						srv.Do(func(*scene.Scene, *navigator.Navigator) { old, fwd = fwd, next })
						if old != nil {
							_ = old.Close()
						}
					}
				}()
			}

			errc := make(chan error, 1)
			go func() { errc <- srv.Serve(ln) }()

			printSuccess("Serving %s on %s", StyleHighlight.Render(s.Name), StyleValue.Render("http://"+srv.Addr()))
			printNextStep("Move focus", "curl -X POST http://"+srv.Addr()+"/move/right")

			select {
			case err = <-errc:
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				err = srv.Shutdown(shutdownCtx)
			}

			srv.Do(func(*scene.Scene, *navigator.Navigator) {
				if fwd != nil {
					_ = fwd.Close()
				}
			})
			if sink != nil {
				if cerr := sink.Close(); cerr != nil {
					c.Logger.Warn("closing event sink", "err", cerr)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7070", "listen address")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the scene file when it changes")
	events.register(cmd)
	return cmd
}
