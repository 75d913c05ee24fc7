package tui

import "mindit-cli/internal/model"

type mapRow struct {
	node        *model.Node
	depth       int
	side        model.Position
	hasChildren bool
	collapsed   bool
}

// flattenMap lays the map out top to bottom: root, then the left branch, then the right
// branch, each in sequence order. Children of collapsed nodes are skipped.
func flattenMap(root *model.Node) []mapRow {
	if root == nil {
		return nil
	}
	out := []mapRow{{
		node:        root,
		side:        model.PositionRoot,
		hasChildren: model.HasChildren(root),
		collapsed:   root.IsCollapsed,
	}}
	if root.IsCollapsed {
		return out
	}
	var walk func(n *model.Node, depth int, side model.Position)
	walk = func(n *model.Node, depth int, side model.Position) {
		out = append(out, mapRow{
			node:        n,
			depth:       depth,
			side:        side,
			hasChildren: model.HasChildren(n),
			collapsed:   n.IsCollapsed,
		})
		for _, ch := range model.VisibleChildren(n) {
			walk(ch, depth+1, side)
		}
	}
	for _, n := range root.Left {
		walk(n, 1, model.PositionLeft)
	}
	for _, n := range root.Right {
		walk(n, 1, model.PositionRight)
	}
	return out
}

func rowIndex(rows []mapRow, n *model.Node) int {
	for i, r := range rows {
		if r.node == n {
			return i
		}
	}
	return -1
}
