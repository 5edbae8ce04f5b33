package cli

import (
	"github.com/spf13/cobra"

	"pinboard-cli/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var readOnly bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and websocket watch feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			// Make sure the store (and primary board) exist before listening.
			if _, err := st.PrimaryBoard(cmd.Context()); err != nil {
				return err
			}
			srv, err := web.NewServer(web.ServerConfig{
				Addr:     addr,
				Dir:      st.Dir,
				ReadOnly: readOnly,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8787", "Listen address")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Reject mutating requests")
	return cmd
}
