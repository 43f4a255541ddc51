package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spatialnav/pkg/render/navmap"
	"github.com/matzehuels/spatialnav/pkg/spatial"
)

// inspectCommand summarises a scene: its sections, every element's
// neighbours and the elements no move can reach.
func (c *CLI) inspectCommand() *cobra.Command {
	var neighbours bool

	cmd := &cobra.Command{
		Use:   "inspect <scene>",
		Short: "Show a scene's sections and navigation graph",
		Long: `Inspect loads a scene file, or a scene from the store by name, and prints
its sections with their entry elements. With --neighbours it also lists the
destination of every direction from every element.`,
		Example: `  spatialnav inspect remote.toml
  spatialnav inspect remote.toml --neighbours
  spatialnav inspect living-room`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, nav, err := c.openScene(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(stdout, StyleTitle.Render(s.Name))
			if d := s.Spec().Description; d != "" {
				printDetail("%s", d)
			}
			source := "store"
			if isScenePath(args[0]) {
				source = "file"
			}
			printStats(s.Len(), len(nav.Sections()), source)
			fmt.Fprintln(stdout)

			b := s.Bounds()
			printKeyValue("Bounds", fmt.Sprintf("%gx%g", b.Width, b.Height))
			printKeyValue("Default section", orNone(nav.DefaultSectionID()))
			focused := ""
			if e := s.FocusedElement(); e != nil {
				focused = e.ID()
			}
			printKeyValue("Focused", orNone(focused))
			fmt.Fprintln(stdout)

			rows := make([][]string, 0, len(nav.Sections()))
			for _, id := range nav.Sections() {
				sec, _ := nav.Section(id)
				entry := ""
				if e := sec.EntryElement(); e != nil {
					entry = e.ID()
				}
				state := "enabled"
				if sec.Disabled() {
					state = "disabled"
				}
				rows = append(rows, []string{
					id,
					sec.Config().Selector.String(),
					fmt.Sprint(len(sec.NavigableElements())),
					orNone(entry),
					state,
				})
			}
			printTable([]string{"Section", "Selector", "Navigable", "Entry", "State"}, rows)

			m := navmap.Build(nav, s)
			if neighbours {
				printTable(neighbourHeaders(), neighbourRows(m))
			}

			if ids := m.Unreachable(); len(ids) > 0 {
				printWarning("Unreachable by any move: %s", strings.Join(ids, ", "))
			}
			for _, n := range m.Nodes {
				if n.SectionID == "" && !n.Disabled {
					printWarning("%s belongs to no section", n.ID)
				}
			}

			printNextStep("Try it", "spatialnav play "+args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&neighbours, "neighbours", "n", false, "list the destination of every move")
	return cmd
}

func neighbourHeaders() []string {
	h := []string{"Element"}
	for _, d := range spatial.Directions {
		h = append(h, d.String())
	}
	return h
}

// neighbourRows lists, per section member, where each direction leads.
func neighbourRows(m navmap.Map) [][]string {
	var rows [][]string
	for _, n := range m.Nodes {
		if n.SectionID == "" || n.Disabled {
			continue
		}
		next := m.Neighbours(n.ID)
		row := []string{n.ID}
		for _, d := range spatial.Directions {
			row = append(row, orNone(next[d]))
		}
		rows = append(rows, row)
	}
	return rows
}
