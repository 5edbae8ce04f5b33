package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pinboard-cli/internal/export"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <board-id> <file.png>",
		Short: "Render a board to a PNG image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			b, err := st.GetBoard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := export.PNG(b.State, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d pins)\n", args[1], len(b.State.Pins))
			return nil
		},
	}
}
