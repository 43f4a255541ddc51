package cli

import (
	stderrors "errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/input"
	"github.com/matzehuels/spatialnav/pkg/navigator"
	"github.com/matzehuels/spatialnav/pkg/render/term"
	"github.com/matzehuels/spatialnav/pkg/scene"
	"github.com/matzehuels/spatialnav/pkg/spatial"
)

// maxEventLines is how many recent lifecycle events the footer shows.
const maxEventLines = 4

var (
	playStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	playErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	playPausedStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
)

// =============================================================================
// PlayModel - Interactive navigation
// =============================================================================

// reloadMsg carries a scene file change into the program.
type reloadMsg scene.Reload

// eventLog collects lifecycle events. Listeners run synchronously inside
// Update, so no locking is needed.
type eventLog struct {
	lines []string
}

func (l *eventLog) listen(ev navigator.Event) bool {
	line := string(ev.Type)
	if ev.Target != nil {
		line += " " + ev.Target.ID()
	}
	if ev.Direction != "" {
		line += " " + ev.Direction.String()
	}
	l.lines = append(l.lines, line)
	if len(l.lines) > maxEventLines {
		l.lines = l.lines[len(l.lines)-maxEventLines:]
	}
	return true
}

// PlayModel is the bubbletea model for driving a scene with the keyboard.
type PlayModel struct {
	Scene *scene.Scene
	Nav   *navigator.Navigator

	Width, Height int
	Err           error
	Reloads       int

	events *eventLog
	off    func()
}

// NewPlayModel creates a model over s and nav.
func NewPlayModel(s *scene.Scene, nav *navigator.Navigator) PlayModel {
	m := PlayModel{Scene: s, Nav: nav, Width: 80, Height: 24, events: &eventLog{}}
	m.off = nav.Events().OnAny(m.events.listen)
	return m
}

func (m PlayModel) Init() tea.Cmd {
	return nil
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "p":
			if m.Nav.Paused() {
				m.Nav.Resume()
			} else {
				m.Nav.Pause()
			}
			return m, nil
		case "f":
			m.Nav.Focus("", false)
			return m, nil
		}
		if ev, ok := input.FromKeyMsg(msg); ok {
			m.Nav.HandleKeyDown(ev)
			m.Nav.HandleKeyUp(ev)
		}
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	case reloadMsg:
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m = m.reload(msg.Spec)
	}
	return m, nil
}

// reload swaps in a freshly built scene and keeps focus on the same element
// id when it still exists.
func (m PlayModel) reload(spec *scene.Spec) PlayModel {
	s, err := scene.Build(spec)
	if err != nil {
		m.Err = err
		return m
	}
	nav, err := s.Navigator()
	if err != nil {
		m.Err = err
		return m
	}
	if e := m.Scene.FocusedElement(); e != nil {
		if _, ok := s.Element(e.ID()); ok {
			nav.Focus("#"+e.ID(), true)
		}
	}

	if m.off != nil {
		m.off()
	}
	m.Scene, m.Nav, m.Err = s, nav, nil
	m.off = nav.Events().OnAny(m.events.listen)
	m.Reloads++
	return m
}

func (m PlayModel) View() string {
	var b strings.Builder

	title := StyleTitle.Render(m.Scene.Name)
	if m.Nav.Paused() {
		title += " " + playPausedStyle.Render("paused")
	}
	b.WriteString(title)
	b.WriteString("\n")

	var neighbours []string
	for _, d := range spatial.Directions {
		if next, ok := m.Nav.Peek(d); ok {
			neighbours = append(neighbours, next.ID())
		}
	}
	rows := m.Height - 4 - maxEventLines
	if rows < 3 {
		rows = 3
	}
	b.WriteString(term.Render(m.Scene, term.Options{
		Cols:       m.Width,
		Rows:       rows,
		Neighbours: neighbours,
		Styles:     term.DefaultStyles(),
	}))
	b.WriteString("\n")

	focused, section := "", ""
	if e := m.Scene.FocusedElement(); e != nil {
		focused, section = e.DisplayName(), m.Nav.SectionOf(e)
	}
	b.WriteString(playStatusStyle.Render(fmt.Sprintf("focus %s · section %s · %s", orNone(focused), orNone(section), m.Nav.State())))
	b.WriteString("\n")

	for _, line := range m.events.lines {
		b.WriteString(StyleDim.Render("  " + line))
		b.WriteString("\n")
	}
	if m.Err != nil {
		b.WriteString(playErrorStyle.Render(errors.UserMessage(m.Err)))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render("←↑↓→ move  ⏎ enter  f focus default  p pause  q quit"))
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// playCommand opens a scene in an interactive terminal view.
func (c *CLI) playCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "play <scene>",
		Short: "Navigate a scene interactively with the arrow keys",
		Long: `Play draws the scene in the terminal and moves focus with the arrow keys.
The focused element has a heavy border and the destinations of the four
arrow keys are highlighted. With --watch the scene file is reloaded on save.`,
		Example: `  spatialnav play remote.toml
  spatialnav play remote.toml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, nav, err := c.openScene(ctx, args[0])
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewPlayModel(s, nav), tea.WithAltScreen(), tea.WithContext(ctx))

			if watch {
				if !isScenePath(args[0]) {
					return errors.New(errors.ErrCodeInvalidInput, "--watch needs a scene file, not a stored scene")
				}
				reloads, err := scene.Watch(ctx, args[0], scene.DefaultWatchDelay)
				if err != nil {
					return err
				}
				go func() {
					for r := range reloads {
						p.Send(reloadMsg(r))
					}
				}()
			}

			_, err = p.Run()
			if stderrors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the scene file when it changes")
	return cmd
}
