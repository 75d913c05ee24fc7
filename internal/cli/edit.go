package cli

import (
	"strings"

	"mindit-cli/internal/store"
	"mindit-cli/internal/tui"

	"github.com/spf13/cobra"
)

type editFlags struct {
	profile     string
	showIDs     bool
	noClipboard bool
}

func newEditCmd(app *App) *cobra.Command {
	var f editFlags

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive editor on the current map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, f)
		},
	}
	cmd.Flags().StringVar(&f.profile, "profile", envOr("MINDIT_TUI_PROFILE", ""), "Appearance profile (default|mono)")
	cmd.Flags().BoolVar(&f.showIDs, "show-ids", false, "Show node ids next to names")
	cmd.Flags().BoolVar(&f.noClipboard, "no-clipboard", false, "Keep copy/cut/paste inside the editor")
	return cmd
}

func runEdit(cmd *cobra.Command, app *App, f editFlags) error {
	db, err := loadDB(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer db.Close()
	mm, err := currentMap(cmd.Context(), app, db)
	if err != nil {
		return writeErr(cmd, err)
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}
	sh, err := loadStyle()
	if err != nil {
		return writeErr(cmd, err)
	}

	opts := tui.Options{
		Profile: strings.TrimSpace(f.profile),
		ShowIDs: f.showIDs,
		Style:   sh,
		Logger:  app.logger(),
	}
	if cfg.TUI != nil {
		if opts.Profile == "" {
			opts.Profile = cfg.TUI.Profile
		}
		opts.ShowIDs = opts.ShowIDs || cfg.TUI.ShowIDs
	}
	if f.noClipboard {
		opts.Clipboard = tui.NewMemoryClipboard()
	}
	app.logger().Info("editor start", "map", mm.ID)
	if err := tui.Run(cmd.Context(), db, mm, opts); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}
