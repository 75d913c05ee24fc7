package cli

import (
	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the current map's change log (oldest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := loadDB(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			mm, err := currentMap(cmd.Context(), app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			evs, err := db.Events(cmd.Context(), mm.ID, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": evs})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 200, "Max events to return (0 = all)")
	return cmd
}
