package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pinboard-cli/internal/store"
)

func newBoardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Manage boards",
	}
	cmd.AddCommand(newBoardsListCmd(app))
	cmd.AddCommand(newBoardsCreateCmd(app))
	cmd.AddCommand(newBoardsShowCmd(app))
	cmd.AddCommand(newBoardsRenameCmd(app))
	cmd.AddCommand(newBoardsRmCmd(app))
	return cmd
}

func newBoardsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			boards, err := st.ListBoards(cmd.Context())
			if err != nil {
				return err
			}
			type row struct {
				ID        string `json:"id"`
				Title     string `json:"title"`
				Pins      int    `json:"pins"`
				IsPrimary bool   `json:"is_primary"`
			}
			out := make([]row, 0, len(boards))
			for _, b := range boards {
				out = append(out, row{ID: b.ID, Title: b.Title, Pins: len(b.State.Pins), IsPrimary: b.IsPrimary})
			}
			return app.printJSON(out)
		},
	}
}

func newBoardsCreateCmd(app *App) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			b, err := st.CreateBoard(cmd.Context(), strings.TrimSpace(args[0]), description)
			if err != nil {
				return err
			}
			return app.printJSON(b)
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Board description")
	return cmd
}

func newBoardsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <board-id>",
		Short: "Print a board including its full state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			b, err := st.GetBoard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.printJSON(b)
		},
	}
}

func newBoardsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <board-id> <title>",
		Short: "Rename a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			title := strings.TrimSpace(args[1])
			b, err := st.UpdateBoard(cmd.Context(), args[0], store.BoardPatch{Title: &title})
			if err != nil {
				return err
			}
			return app.printJSON(b)
		},
	}
}

func newBoardsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <board-id>",
		Short: "Delete a board and its snapshots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			if err := st.DeleteBoard(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open [board-id]",
		Short: "Open a board in the TUI (default: primary board)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID := ""
			if len(args) == 1 {
				boardID = args[0]
			}
			return runTUI(app, boardID)
		},
	}
}
