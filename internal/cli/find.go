package cli

import (
	"strings"

	"mindit-cli/internal/search"

	"github.com/spf13/cobra"
)

type findResult struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Path  []string `json:"path"`
	Score int      `json:"score"`
}

func newFindCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Fuzzy-find nodes by name (best match first)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, root, err := openMap(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			matches := search.Find(root, strings.Join(args, " "), limit)
			out := make([]findResult, 0, len(matches))
			for _, m := range matches {
				out = append(out, findResult{ID: m.Node.ID, Name: m.Node.Name, Path: m.Path, Score: m.Score})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Max matches to return (0 = all)")
	return cmd
}
