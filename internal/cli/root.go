package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"mindit-cli/internal/format"
	"mindit-cli/internal/model"
	"mindit-cli/internal/store"
	"mindit-cli/internal/style"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	MapRef     string
	PrettyJSON bool
	Format     string
	LogFile    string

	log     *slog.Logger
	logFile *os.File
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "mindit",
		Short:        "mindit: keyboard-driven mind maps in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Create a map and open the editor
  mindit maps create "Trip plan" --use
  mindit

  # Scriptable commands
  mindit import notes.txt
  mindit export --as markdown

  # Direct node lookup (shortcut for: mindit export --node <node-id>)
  mindit node-3fa9c2d1
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive editor.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runEdit(cmd, app, editFlags{})
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setupLogging()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.closeLogging()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("MINDIT_DIR", ""), "Path to store dir (default: ~/.mindit/store)")
	cmd.PersistentFlags().StringVar(&app.MapRef, "map", envOr("MINDIT_MAP", ""), "Map id or name (default: current map from config.json)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("MINDIT_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("MINDIT_LOG_FILE", ""), "Write diagnostic logs (JSON lines) to this file")

	cmd.AddCommand(newMapsCmd(app))
	cmd.AddCommand(newNodeCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newFindCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newWebTUICmd(app))

	return cmd
}

// setupLogging installs the diagnostic logger. Without --log-file logs are discarded so they
// can never end up in command output or on top of the editor screen.
func (app *App) setupLogging() error {
	path := strings.TrimSpace(app.LogFile)
	if path == "" {
		app.log = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	app.logFile = f
	app.log = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return nil
}

func (app *App) closeLogging() error {
	if app.logFile == nil {
		return nil
	}
	err := app.logFile.Close()
	app.logFile = nil
	return err
}

func (app *App) logger() *slog.Logger {
	if app.log == nil {
		app.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return app.log
}

func loadDB(ctx context.Context, app *App) (*store.DB, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
		app.Dir = dir
	}
	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	db, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}
	app.logger().Debug("store opened", "dir", dir)
	return db, nil
}

// currentMap resolves the map to work on:
// 1) --map
// 2) ~/.mindit/config.json currentMap
// 3) the only map in the store
func currentMap(ctx context.Context, app *App, db *store.DB) (model.MindMap, error) {
	ref := strings.TrimSpace(app.MapRef)
	if ref == "" {
		if cfg, err := store.LoadConfig(); err == nil {
			ref = strings.TrimSpace(cfg.CurrentMap)
		}
	}
	if ref != "" {
		return db.FindMap(ctx, ref)
	}
	maps, err := db.ListMaps(ctx)
	if err != nil {
		return model.MindMap{}, err
	}
	if len(maps) == 1 {
		return maps[0], nil
	}
	return model.MindMap{}, errors.New("no current map; run `mindit maps create <name> --use` or `mindit maps use <map>` (or pass --map)")
}

// openMap loads the store, resolves the current map and loads its tree.
func openMap(cmd *cobra.Command, app *App) (*store.DB, model.MindMap, *model.Node, error) {
	ctx := cmd.Context()
	db, err := loadDB(ctx, app)
	if err != nil {
		return nil, model.MindMap{}, nil, err
	}
	mm, err := currentMap(ctx, app, db)
	if err != nil {
		_ = db.Close()
		return nil, model.MindMap{}, nil, err
	}
	root, err := db.LoadTree(ctx, mm.ID)
	if err != nil {
		_ = db.Close()
		return nil, model.MindMap{}, nil, err
	}
	return db, mm, root, nil
}

// findNode returns root when id is empty.
func findNode(root *model.Node, id string) (*model.Node, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return root, nil
	}
	n := model.Find(root, id)
	if n == nil {
		return nil, errNotFound("node", id)
	}
	return n, nil
}

func loadStyle() (*style.Sheet, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	sh, err := style.Load(cfg.Stylesheet)
	if err != nil {
		return nil, fmt.Errorf("load stylesheet: %w", err)
	}
	return sh, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeText writes rendered documents (exports, previews) verbatim regardless of --format.
func writeText(cmd *cobra.Command, s string) error {
	return format.Write(cmd.OutOrStdout(), s, "text", false)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
