package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spatialnav/pkg/errors"
	"github.com/matzehuels/spatialnav/pkg/scene"
)

// sceneCommand manages the scene store.
func (c *CLI) sceneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Manage stored scenes",
		Long: `Scenes can be kept in a store and referred to by name instead of by path.
The store is a directory of TOML files unless --mongo-uri points at MongoDB.`,
	}

	cmd.AddCommand(c.sceneListCommand())
	cmd.AddCommand(c.sceneShowCommand())
	cmd.AddCommand(c.sceneImportCommand())
	cmd.AddCommand(c.sceneExportCommand())
	cmd.AddCommand(c.sceneDeleteCommand())

	return cmd
}

func (c *CLI) sceneListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			names, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No stored scenes")
				printNextStep("Add one", "spatialnav scene import remote.toml")
				return nil
			}

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				spec, err := store.Get(ctx, name)
				if err != nil {
					rows = append(rows, []string{name, iconNone, iconNone, errors.UserMessage(err)})
					continue
				}
				rows = append(rows, []string{
					name,
					fmt.Sprint(len(spec.Elements)),
					fmt.Sprint(len(spec.Sections)),
					spec.Description,
				})
			}
			printTable([]string{"Scene", "Elements", "Sections", "Description"}, rows)
			return nil
		},
	}
}

func (c *CLI) sceneShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := scene.ParseFormat(format)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			spec, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return scene.Encode(stdout, spec, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(scene.FormatTOML), "toml, yaml or json")
	return cmd
}

func (c *CLI) sceneImportCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Validate scene files and add them to the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name != "" && len(args) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--name needs exactly one file")
			}
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			for _, path := range args {
				spec, err := scene.LoadFile(path)
				if err != nil {
					return err
				}
				if name != "" {
					spec.Name = name
				}
				if err := store.Put(ctx, spec); err != nil {
					return err
				}
				printSuccess("Imported %s", StyleHighlight.Render(spec.Name))
				printDetail("%d elements, %d sections from %s", len(spec.Elements), len(spec.Sections), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "store under this name instead of the file's")
	return cmd
}

func (c *CLI) sceneExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> <file>",
		Short: "Write a stored scene to a file",
		Long:  `Export writes a stored scene to a file; the extension picks TOML, YAML or JSON.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			spec, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := scene.SaveFile(args[1], spec); err != nil {
				return err
			}
			printSuccess("Exported %s", StyleHighlight.Render(spec.Name))
			printFile(args[1])
			return nil
		},
	}
}

func (c *CLI) sceneDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a stored scene",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			ok, err := store.Delete(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(errors.ErrCodeSceneNotFound, "scene %q not found", args[0])
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
