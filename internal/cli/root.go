// Package cli wires the cobra command tree. Running the binary with no
// subcommand opens the interactive TUI on the primary board.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pinboard-cli/internal/editor"
	"pinboard-cli/internal/store"
	"pinboard-cli/internal/tui"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Wires      bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "pinboard",
		Short:        "Local-first pin board CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the primary board in the interactive TUI
  pinboard

  # Scriptable commands
  pinboard boards list
  pinboard boards create "Reading list"

  # Serve the JSON API + websocket watch feed
  pinboard serve --addr :8787

  # Render a board to an image
  pinboard export board-abc123 out.png
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app, "")
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("PINBOARD_DIR", ""), "Path to the .pinboard store dir (default: discovered upward from cwd)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVar(&app.Wires, "wires", envBool("PINBOARD_WIRES"), "Enable the experimental wire tool")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newBoardsCmd(app))
	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newSnapshotsCmd(app))
	cmd.AddCommand(newLabelsCmd(app))
	cmd.AddCommand(newGroupsCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newExportCmd(app))

	return cmd
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func (app *App) store() (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		var err error
		dir, err = store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
	}
	return store.Store{Dir: dir}, nil
}

func (app *App) editorOptions() editor.Options {
	return editor.Options{WiresEnabled: app.Wires}
}

func runTUI(app *App, boardID string) error {
	st, err := app.store()
	if err != nil {
		return err
	}
	return tui.Run(context.Background(), st, boardID, app.editorOptions())
}

func (app *App) printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a .pinboard store in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			dir := strings.TrimSpace(app.Dir)
			if dir == "" {
				dir = cwd + string(os.PathSeparator) + ".pinboard"
			}
			st := store.Store{Dir: dir}
			b, err := st.PrimaryBoard(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s (primary board %s)\n", dir, b.ID)
			return nil
		},
	}
}
