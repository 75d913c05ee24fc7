package cli

import (
	"io"
	"os"
	"strings"

	"mindit-cli/internal/codec"
	"mindit-cli/internal/model"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var parentID string
	var side string

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Add tab-indented bulleted text under a node (default: the root)",
		Long: strings.TrimSpace(`
Each line is one node; leading tabs give its depth. Under the root the block is added to the
branch named by --side.

"§" stands for an empty name and "‡" for a line break inside a name.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			db, mm, root, err := openMap(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			parent, err := findNode(root, parentID)
			if err != nil {
				return writeErr(cmd, err)
			}

			dir, err := parseSide(side)
			if err != nil {
				return writeErr(cmd, err)
			}
			before := countNodes(root)
			im := codec.Importer{
				Persister:  db.Persister(cmd.Context(), mm.ID),
				Directions: codec.FixedDirection(dir),
			}
			header, err := im.FromBulletedText(text, parent)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := map[string]any{
				"added": countNodes(root) - before,
			}
			if header != nil {
				res["first"] = header.ID
			}
			app.logger().Info("imported", "map", mm.ID, "parent", parent.ID, "added", res["added"])
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	cmd.Flags().StringVar(&parentID, "parent", "", "Node to import under (default: root)")
	cmd.Flags().StringVar(&side, "side", "right", "Branch when importing under the root (left|right)")
	return cmd
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	var b []byte
	var err error
	if path == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func countNodes(root *model.Node) int {
	n := 0
	model.Walk(root, func(*model.Node) bool {
		n++
		return true
	})
	return n
}

func parseSide(side string) (model.Position, error) {
	switch strings.ToLower(strings.TrimSpace(side)) {
	case "", "right":
		return model.PositionRight, nil
	case "left":
		return model.PositionLeft, nil
	default:
		return "", usageError{flag: "side", msg: "expected left or right; got " + side}
	}
}
