package cli

import (
	"mindit-cli/internal/codec"
	"mindit-cli/internal/model"
	"mindit-cli/internal/mutate"
	"mindit-cli/internal/nav"
	"mindit-cli/internal/store"

	"github.com/spf13/cobra"
)

func newNodeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Node commands (add, rename, collapse, delete)",
	}
	cmd.AddCommand(newNodeAddCmd(app))
	cmd.AddCommand(newNodeRenameCmd(app))
	cmd.AddCommand(newNodeCollapseCmd(app))
	cmd.AddCommand(newNodeDeleteCmd(app))
	return cmd
}

type nodeView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Position    string   `json:"position"`
	Depth       int      `json:"depth"`
	IsCollapsed bool     `json:"isCollapsed"`
	Children    []string `json:"children"`
}

func viewNode(n *model.Node) nodeView {
	ids := model.IDs(model.SubTree(n))
	if ids == nil {
		ids = []string{}
	}
	return nodeView{
		ID:          n.ID,
		Name:        n.Name,
		Position:    string(n.Position),
		Depth:       n.Depth,
		IsCollapsed: n.IsCollapsed,
		Children:    ids,
	}
}

// withNode loads the current map, finds id and runs fn with a persister for that map.
func withNode(cmd *cobra.Command, app *App, id string, fn func(p *store.MapPersister, n *model.Node) error) error {
	db, mm, root, err := openMap(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer db.Close()
	n, err := findNode(root, id)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := fn(db.Persister(cmd.Context(), mm.ID), n); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func newNodeAddCmd(app *App) *cobra.Command {
	var parentID string
	var side string
	var first bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a node under --parent (default: root)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNode(cmd, app, parentID, func(p *store.MapPersister, parent *model.Node) error {
				pos := model.PositionChild
				if model.IsRoot(parent) {
					dir, err := parseSide(side)
					if err != nil {
						return err
					}
					pos = dir
				}
				n := model.NewNode(codec.DecodeName(args[0]), pos, parent)
				index := len(*model.Sequence(parent, pos))
				if first {
					index = 0
				}
				if err := mutate.AddChild(p, parent, n, index); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": viewNode(n)})
			})
		},
	}
	cmd.Flags().StringVar(&parentID, "parent", "", "Parent node id (default: root)")
	cmd.Flags().StringVar(&side, "side", "right", "Branch when adding under the root (left|right)")
	cmd.Flags().BoolVar(&first, "first", false, "Insert as the first child instead of the last")
	return cmd
}

func newNodeRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <node-id> <name>",
		Short: "Rename a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNode(cmd, app, args[0], func(p *store.MapPersister, n *model.Node) error {
				if err := mutate.Rename(p, n, codec.DecodeName(args[1])); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": viewNode(n)})
			})
		},
	}
}

func newNodeCollapseCmd(app *App) *cobra.Command {
	var expand bool

	cmd := &cobra.Command{
		Use:   "collapse <node-id>",
		Short: "Collapse (or with --expand, expand) a node's children in the editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNode(cmd, app, args[0], func(p *store.MapPersister, n *model.Node) error {
				if err := mutate.SetCollapsed(p, n, !expand); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": viewNode(n)})
			})
		},
	}
	cmd.Flags().BoolVar(&expand, "expand", false, "Expand instead of collapse")
	return cmd
}

func newNodeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <node-id>",
		Short: "Delete a node and its subtree (the root cannot be deleted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withNode(cmd, app, args[0], func(p *store.MapPersister, n *model.Node) error {
				focus := nav.FocusAfterDelete(n)
				if err := mutate.Delete(p, n); err != nil {
					return err
				}
				res := map[string]any{"deleted": n.ID}
				if focus != nil {
					res["focus"] = focus.ID
				}
				return writeOut(cmd, app, map[string]any{"data": res})
			})
		},
	}
}
