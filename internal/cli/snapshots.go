package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSnapshotsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snapshots",
		Aliases: []string{"snaps"},
		Short:   "Manage board snapshots",
	}
	cmd.AddCommand(newSnapshotsListCmd(app))
	cmd.AddCommand(newSnapshotsCreateCmd(app))
	cmd.AddCommand(newSnapshotsRestoreCmd(app))
	cmd.AddCommand(newSnapshotsRmCmd(app))
	return cmd
}

func newSnapshotsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <board-id>",
		Short: "List a board's snapshots, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			snaps, err := st.ListSnapshots(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.printJSON(snaps)
		},
	}
}

func newSnapshotsCreateCmd(app *App) *cobra.Command {
	var name, note string
	cmd := &cobra.Command{
		Use:   "create <board-id>",
		Short: "Snapshot a board's current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			snap, err := st.CreateSnapshot(cmd.Context(), args[0], name, note)
			if err != nil {
				return err
			}
			return app.printJSON(snap)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Snapshot name (default: timestamped)")
	cmd.Flags().StringVar(&note, "note", "", "Snapshot note")
	return cmd
}

func newSnapshotsRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <snapshot-id>",
		Short: "Overwrite the board's state with a snapshot's",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			b, err := st.RestoreSnapshot(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.printJSON(b)
		},
	}
}

func newSnapshotsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <snapshot-id>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.store()
			if err != nil {
				return err
			}
			if err := st.DeleteSnapshot(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
