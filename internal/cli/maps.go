package cli

import (
	"errors"
	"strings"

	"mindit-cli/internal/model"
	"mindit-cli/internal/store"

	"github.com/spf13/cobra"
)

func newMapsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maps",
		Short: "Map commands (create, list, switch, delete)",
	}
	cmd.AddCommand(newMapsListCmd(app))
	cmd.AddCommand(newMapsCreateCmd(app))
	cmd.AddCommand(newMapsUseCmd(app))
	cmd.AddCommand(newMapsDeleteCmd(app))
	return cmd
}

type mapListEntry struct {
	model.MindMap
	Current bool `json:"current"`
}

func newMapsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List maps (oldest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := loadDB(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			maps, err := db.ListMaps(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			current := ""
			if cfg, err := store.LoadConfig(); err == nil {
				current = cfg.CurrentMap
			}
			out := make([]mapListEntry, 0, len(maps))
			for _, m := range maps {
				out = append(out, mapListEntry{MindMap: m, Current: m.ID == current})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newMapsCreateCmd(app *App) *cobra.Command {
	var use bool

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a map; its root node carries the map name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := loadDB(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			m, _, err := db.CreateMap(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if use {
				if err := setCurrentMap(m.ID); err != nil {
					return writeErr(cmd, err)
				}
			}
			app.logger().Info("map created", "map", m.ID, "name", m.Name)
			return writeOut(cmd, app, map[string]any{"data": m})
		},
	}
	cmd.Flags().BoolVar(&use, "use", false, "Make the new map the current map")
	return cmd
}

func newMapsUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <map>",
		Short: "Set the current map (by id or name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := loadDB(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			m, err := db.FindMap(cmd.Context(), args[0])
			if err != nil {
				if isNotFound(err) {
					err = errors.New(err.Error() + " (see `mindit maps list`)")
				}
				return writeErr(cmd, err)
			}
			if err := setCurrentMap(m.ID); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": m})
		},
	}
}

func newMapsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <map>",
		Short: "Delete a map and all of its nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := loadDB(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			m, err := db.FindMap(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := db.DeleteMap(cmd.Context(), m.ID); err != nil {
				return writeErr(cmd, err)
			}
			err = store.UpdateConfig(func(cfg *store.GlobalConfig) {
				if cfg.CurrentMap == m.ID {
					cfg.CurrentMap = ""
				}
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": m.ID}})
		},
	}
}

func setCurrentMap(id string) error {
	return store.UpdateConfig(func(cfg *store.GlobalConfig) {
		cfg.CurrentMap = strings.TrimSpace(id)
	})
}
