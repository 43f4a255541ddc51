package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/eventsink"
	"github.com/matzehuels/spatialnav/pkg/input"
)

// eventFlags selects where lifecycle events are sent.
type eventFlags struct {
	log          bool
	redisURL     string
	redisChannel string
	redisStream  string
}

func (f *eventFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&f.log, "events", false, "log every lifecycle event")
	flags.StringVar(&f.redisURL, "redis", "", "publish lifecycle events to this redis:// URL")
	flags.StringVar(&f.redisChannel, "redis-channel", eventsink.DefaultRedisChannel, "Redis channel for events")
	flags.StringVar(&f.redisStream, "redis-stream", "", "also append events to this Redis stream")
}

// sink builds the configured sink, or nil when events go nowhere.
func (f *eventFlags) sink(ctx context.Context, logger *log.Logger) (eventsink.Sink, error) {
	var sinks eventsink.Multi
	if f.log {
		sinks = append(sinks, eventsink.NewLogSink(logger))
	}
	if f.redisURL != "" {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		rs, err := eventsink.NewRedisSink(ctx, eventsink.RedisConfig{
			URL:          f.redisURL,
			Channel:      f.redisChannel,
			Stream:       f.redisStream,
			StreamMaxLen: 10000,
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, rs)
	}
	switch len(sinks) {
	case 0:
		return nil, nil
	case 1:
		return sinks[0], nil
	}
	return sinks, nil
}

// moveCommand replays a sequence of key presses against a scene.
func (c *CLI) moveCommand() *cobra.Command {
	var (
		from   string
		events eventFlags
	)

	cmd := &cobra.Command{
		Use:   "move <scene> <key>...",
		Short: "Press keys in a scene and report where focus lands",
		Long: `Move loads a scene and presses each key in turn, printing the focused element
after every step. Keys are arrows or enter, optionally with modifiers:
up, down, left, right, enter, shift+left, ctrl+alt+enter. Keys pressed with a
modifier are ignored by the navigator.`,
		Example: `  spatialnav move remote.toml right right down
  spatialnav move remote.toml --from '#search' down,enter --events
  spatialnav move remote.toml left --redis redis://localhost:6379/0`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			keys, err := input.ParseSequence(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			s, nav, err := c.openScene(ctx, args[0])
			if err != nil {
				return err
			}
			if from != "" && !nav.Focus(from, true) {
				return errors.New(errors.ErrCodeInvalidInput, "cannot focus %q", from)
			}

			sink, err := events.sink(ctx, c.Logger)
			if err != nil {
				return err
			}
			if sink != nil {
				fwd := eventsink.Attach(nav.Events(), s.Name, sink, eventsink.WithLogger(c.Logger))
				defer func() {
					if err := fwd.Close(); err != nil {
						c.Logger.Warn("closing event sink", "err", err)
					}
				}()
			}

			current := func() string {
				if e := s.FocusedElement(); e != nil {
					return e.ID()
				}
				return ""
			}

			printInfo("Start at %s", StyleHighlight.Render(orNone(current())))
			for _, ev := range keys {
				before := current()
				consumed := nav.HandleKeyDown(ev)
				consumed = nav.HandleKeyUp(ev) || consumed
				after := current()

				key := input.Format(ev)
				switch {
				case after != before:
					printDetail("%-12s %s %s %s", key, orNone(before), iconArrow, StyleHighlight.Render(after))
				case !consumed:
					printDetail("%-12s ignored", key)
				default:
					printDetail("%-12s %s (no move)", key, orNone(before))
				}
			}
			printSuccess("Focused %s", StyleHighlight.Render(orNone(current())))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "focus this section, element pattern or @section first")
	events.register(cmd)
	return cmd
}
