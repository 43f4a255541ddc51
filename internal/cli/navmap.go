package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/render/navmap"
)

// navmapCommand exports the directional neighbour graph of a scene.
func (c *CLI) navmapCommand() *cobra.Command {
	var (
		output     string
		format     string
		focus      string
		directions []string
		sections   bool
		scale      float64
	)

	cmd := &cobra.Command{
		Use:   "navmap <scene>",
		Short: "Export where every arrow key leads as a Graphviz graph",
		Long: `Navmap peeks every direction from every element and draws the result as a
graph with one node per element, pinned at its on-screen position, and one
edge per move. Output is DOT, SVG or PNG; the format follows the output file
extension unless --format is given. Renders are cached.`,
		Example: `  spatialnav navmap remote.toml -o remote.svg
  spatialnav navmap remote.toml --format dot --directions left,right
  spatialnav navmap remote.toml -o remote.png --sections --scale 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if format == "" {
				format = string(navmap.FormatSVG)
				if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
					format = ext
				}
			}
			f, err := navmap.ParseFormat(format)
			if err != nil {
				return err
			}
			dirs, err := parseDirections(directions)
			if err != nil {
				return err
			}

			s, nav, err := c.openScene(ctx, args[0])
			if err != nil {
				return err
			}
			if focus != "" && !nav.Focus(focus, true) {
				return errors.New(errors.ErrCodeInvalidInput, "cannot focus %q", focus)
			}

			r := navmap.NewRenderer(
				navmap.WithCache(c.newCache(), renderCacheTTL),
				navmap.WithLogger(c.Logger),
				navmap.WithOptions(navmap.Options{Scale: scale, Directions: dirs, Sections: sections}),
			)

			prog := newProgress(c.Logger)
			spin := newSpinner(ctx, "Rendering navmap...")
			if f != navmap.FormatDOT {
				spin.Start()
			}
			data, err := r.Render(ctx, nav, s, f)
			if f != navmap.FormatDOT {
				spin.Stop()
			}
			if err != nil {
				return err
			}
			prog.debug("Rendered %s navmap", f)

			if output == "" || output == "-" {
				if f == navmap.FormatPNG {
					return errors.New(errors.ErrCodeInvalidInput, "refusing to write PNG to stdout; use -o")
				}
				_, err := stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeStorage, err, "write %s", output)
			}
			printSuccess("Rendered navmap of %s", StyleHighlight.Render(s.Name))
			printFile(output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file (default stdout)")
	flags.StringVarP(&format, "format", "f", "", "dot, svg or png")
	flags.StringVar(&focus, "focus", "", "focus this target first so it is highlighted")
	flags.StringSliceVar(&directions, "directions", nil, "only draw these directions")
	flags.BoolVar(&sections, "sections", false, "group elements by section")
	flags.Float64Var(&scale, "scale", 1, "points per scene unit")
	return cmd
}
