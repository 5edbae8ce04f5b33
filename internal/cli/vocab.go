package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// The four vocabulary commands share one list/add shape; labels and
// groups are board-scoped, categories and tags are workspace-wide.

func newLabelsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Manage board labels",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <board-id>",
		Short: "List a board's labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			labels, err := st.ListLabels(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.printJSON(labels)
		},
	})

	var color string
	add := &cobra.Command{
		Use:   "add <board-id> <name>",
		Short: "Add a label to a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			l, err := st.CreateLabel(cmd.Context(), args[0], strings.TrimSpace(args[1]), color)
			if err != nil {
				return err
			}
			return app.printJSON(l)
		},
	}
	add.Flags().StringVar(&color, "color", "", "Hex color (default: from the palette)")
	cmd.AddCommand(add)
	return cmd
}

func newGroupsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage board groups",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <board-id>",
		Short: "List a board's groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			groups, err := st.ListGroups(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.printJSON(groups)
		},
	})

	var color string
	add := &cobra.Command{
		Use:   "add <board-id> <name>",
		Short: "Add a group to a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			g, err := st.CreateGroup(cmd.Context(), args[0], strings.TrimSpace(args[1]), color)
			if err != nil {
				return err
			}
			return app.printJSON(g)
		},
	}
	add.Flags().StringVar(&color, "color", "", "Hex color")
	cmd.AddCommand(add)
	return cmd
}

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage workspace categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			cats, err := st.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			return app.printJSON(cats)
		},
	})

	var color, description string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			c, err := st.CreateCategory(cmd.Context(), strings.TrimSpace(args[0]), color, description)
			if err != nil {
				return err
			}
			return app.printJSON(c)
		},
	}
	add.Flags().StringVar(&color, "color", "", "Hex color")
	add.Flags().StringVar(&description, "description", "", "Category description")
	cmd.AddCommand(add)
	return cmd
}

func newTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage workspace tags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			tags, err := st.ListTags(cmd.Context())
			if err != nil {
				return err
			}
			return app.printJSON(tags)
		},
	})

	var color, description string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			t, err := st.CreateTag(cmd.Context(), strings.TrimSpace(args[0]), color, description)
			if err != nil {
				return err
			}
			return app.printJSON(t)
		},
	}
	add.Flags().StringVar(&color, "color", "", "Hex color")
	add.Flags().StringVar(&description, "description", "", "Tag description")
	cmd.AddCommand(add)
	return cmd
}
