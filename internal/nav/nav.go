// Package nav computes where the selection goes for arrow-key movement and after deletes.
//
// Vertical movement walks siblings in sequence order. At the ends of a sibling sequence it
// continues into the parent's neighbouring subtree, realigned to the original depth, and it
// never crosses root: the left and right branches are separate columns. Down enters a subtree
// through first children and up through last children, so the two keys undo each other.
package nav

import "mindit-cli/internal/model"

type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	default:
		return "unknown"
	}
}

// FindSameLevelChild descends from n through first children until it reaches targetDepth or a
// node with no visible children. currentDepth counts the steps taken and bounds the descent.
func FindSameLevelChild(n *model.Node, targetDepth, currentDepth int) *model.Node {
	if n == nil {
		return nil
	}
	children := model.VisibleChildren(n)
	if len(children) == 0 || n.Depth == targetDepth || n.Depth > targetDepth || currentDepth >= targetDepth {
		return n
	}
	return FindSameLevelChild(children[0], targetDepth, currentDepth+1)
}

// findSameLevelLastChild is FindSameLevelChild descending through last children.
func findSameLevelLastChild(n *model.Node, targetDepth, currentDepth int) *model.Node {
	if n == nil {
		return nil
	}
	children := model.VisibleChildren(n)
	if len(children) == 0 || n.Depth >= targetDepth || currentDepth >= targetDepth {
		return n
	}
	return findSameLevelLastChild(children[len(children)-1], targetDepth, currentDepth+1)
}

// VerticalMove returns the node selected after pressing up or down on n, aiming for
// targetDepth when the move lands in another subtree. It returns n when there is nowhere to go.
func VerticalMove(n *model.Node, key Key, targetDepth int) *model.Node {
	if n == nil || model.IsRoot(n) || (key != KeyUp && key != KeyDown) {
		return n
	}
	step := 1
	if key == KeyUp {
		step = -1
	}
	for cur := n; cur != nil && !model.IsRoot(cur); cur = cur.Parent {
		sibs := model.Siblings(cur)
		idx := model.IndexOf(sibs, cur)
		if idx < 0 {
			return n
		}
		next := idx + step
		if next < 0 || next >= len(sibs) {
			continue
		}
		if key == KeyUp {
			return findSameLevelLastChild(sibs[next], targetDepth, sibs[next].Depth)
		}
		return FindSameLevelChild(sibs[next], targetDepth, sibs[next].Depth)
	}
	return n
}

// Outward reports whether key points away from root for a node on side.
func Outward(side model.Position, key Key) bool {
	switch side {
	case model.PositionLeft:
		return key == KeyLeft
	case model.PositionRight:
		return key == KeyRight
	default:
		return false
	}
}

// ParentForEventBinding is the move toward root: the parent, or n itself for root.
func ParentForEventBinding(n *model.Node) *model.Node {
	if n == nil || n.Parent == nil {
		return n
	}
	return n.Parent
}

// HandleCollapsing is the move away from root. A collapsed node reports expand=true and
// stays selected until expanded; otherwise the first child is selected, if any.
func HandleCollapsing(n *model.Node) (target *model.Node, expand bool) {
	if n == nil {
		return nil, false
	}
	if n.IsCollapsed && model.HasChildren(n) {
		return n, true
	}
	children := model.SubTree(n)
	if len(children) == 0 {
		return n, false
	}
	return children[0], false
}

// RootMove handles left/right on root: each key enters the branch on that side.
func RootMove(root *model.Node, key Key) (target *model.Node, expand bool) {
	if root == nil {
		return nil, false
	}
	if root.IsCollapsed && model.HasChildren(root) {
		return root, true
	}
	branch := root.Right
	if key == KeyLeft {
		branch = root.Left
	}
	if len(branch) == 0 {
		return root, false
	}
	return branch[0], false
}

// Horizontal resolves a left/right key against n's branch side.
func Horizontal(n *model.Node, key Key) (target *model.Node, expand bool) {
	if n == nil {
		return nil, false
	}
	if model.IsRoot(n) {
		return RootMove(n, key)
	}
	if Outward(model.Branch(n), key) {
		return HandleCollapsing(n)
	}
	return ParentForEventBinding(n), false
}

// FocusAfterDelete picks the selection to use once n is removed: next sibling, then previous
// sibling, then parent. Call it before n is detached.
func FocusAfterDelete(n *model.Node) *model.Node {
	if n == nil {
		return nil
	}
	sibs := model.Siblings(n)
	idx := model.IndexOf(sibs, n)
	if idx >= 0 {
		if idx+1 < len(sibs) {
			return sibs[idx+1]
		}
		if idx > 0 {
			return sibs[idx-1]
		}
	}
	return n.Parent
}
