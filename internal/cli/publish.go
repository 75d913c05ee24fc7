package cli

import (
	"mindit-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var toDir string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write the map to --to as .txt, .md, .html and .page.html files (derived, not canonical)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, mm, root, err := openMap(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			sh, err := loadStyle()
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.WriteMap(root, toDir, publish.WriteOptions{Overwrite: overwrite, Style: sh})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.logger().Info("published", "map", mm.ID, "files", len(res.Written))
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	return cmd
}
