package model

import "time"

// Position is where a node hangs relative to the map root.
//
// LEFT/RIGHT are only stored on the direct children of root. Deeper nodes are CHILD and
// inherit their side from the nearest LEFT/RIGHT ancestor (see Branch).
type Position string

const (
	PositionRoot  Position = "root"
	PositionLeft  Position = "left"
	PositionRight Position = "right"
	PositionChild Position = "childSubTree"
)

func (p Position) Valid() bool {
	switch p {
	case PositionRoot, PositionLeft, PositionRight, PositionChild:
		return true
	default:
		return false
	}
}

// Node is a single mind-map node.
//
// Parent is a back-reference only; a node is owned by its parent's sequence.
type Node struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Position     Position `json:"position"`
	Parent       *Node    `json:"-"`
	Left         []*Node  `json:"left,omitempty"`
	Right        []*Node  `json:"right,omitempty"`
	ChildSubTree []*Node  `json:"childSubTree,omitempty"`
	Depth        int      `json:"depth"`
	IsCollapsed  bool     `json:"isCollapsed"`
}

// NewRoot returns a detached root node.
func NewRoot(name string) *Node {
	return &Node{Name: name, Position: PositionRoot}
}

// NewNode returns an unsaved node placed under parent. It is not yet part of any sequence.
func NewNode(name string, pos Position, parent *Node) *Node {
	n := &Node{Name: name, Position: pos, Parent: parent}
	if parent != nil {
		n.Depth = parent.Depth + 1
	}
	return n
}

func IsRoot(n *Node) bool {
	return n != nil && n.Position == PositionRoot
}

// SubTree returns the ordered children of n: left ++ right for root, childSubTree otherwise.
// The returned slice is a copy.
func SubTree(n *Node) []*Node {
	if n == nil {
		return nil
	}
	if IsRoot(n) {
		out := make([]*Node, 0, len(n.Left)+len(n.Right))
		out = append(out, n.Left...)
		return append(out, n.Right...)
	}
	return append([]*Node(nil), n.ChildSubTree...)
}

// HasChildren reports whether n has any children, collapsed or not.
func HasChildren(n *Node) bool {
	if n == nil {
		return false
	}
	return len(n.Left)+len(n.Right)+len(n.ChildSubTree) > 0
}

// VisibleChildren is SubTree, except that a collapsed node shows none.
func VisibleChildren(n *Node) []*Node {
	if n == nil || n.IsCollapsed {
		return nil
	}
	return SubTree(n)
}

// SequenceDirection returns the name of the sequence on parent that holds a child placed at pos.
// Under root that is left or right; everywhere else it is childSubTree.
func SequenceDirection(parent *Node, pos Position) Position {
	if IsRoot(parent) {
		if pos == PositionLeft {
			return PositionLeft
		}
		return PositionRight
	}
	return PositionChild
}

// Sequence returns a pointer to parent's child slice for dir.
func Sequence(parent *Node, dir Position) *[]*Node {
	switch SequenceDirection(parent, dir) {
	case PositionLeft:
		return &parent.Left
	case PositionRight:
		return &parent.Right
	default:
		return &parent.ChildSubTree
	}
}

// Siblings returns the sequence that contains n (including n), or nil for root/detached nodes.
func Siblings(n *Node) []*Node {
	if n == nil || n.Parent == nil {
		return nil
	}
	return *Sequence(n.Parent, n.Position)
}

func IndexOf(seq []*Node, n *Node) int {
	for i, x := range seq {
		if x == n {
			return i
		}
	}
	return -1
}

// Branch resolves which side of the map n is on by walking up to the nearest LEFT/RIGHT ancestor.
// Root reports PositionRoot. A detached non-root node reports "".
func Branch(n *Node) Position {
	for cur := n; cur != nil; cur = cur.Parent {
		switch cur.Position {
		case PositionRoot, PositionLeft, PositionRight:
			return cur.Position
		}
	}
	return ""
}

func IDs(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

// Walk visits n and its descendants depth-first, in SubTree order. Returning false from fn
// stops descent into that node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, ch := range SubTree(n) {
		Walk(ch, fn)
	}
}

func Find(root *Node, id string) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Path returns the names from the map root down to n.
func Path(n *Node) []string {
	var out []string
	for cur := n; cur != nil; cur = cur.Parent {
		out = append([]string{cur.Name}, out...)
	}
	return out
}

// FixDepths recomputes Depth for n's subtree, starting from n.Depth.
func FixDepths(n *Node) {
	for _, ch := range SubTree(n) {
		ch.Parent = n
		ch.Depth = n.Depth + 1
		FixDepths(ch)
	}
}

// NodeSpec is what the core hands to persistence when it registers a new node.
// ID is optional; when set, persistence must use it instead of minting one.
type NodeSpec struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	ParentID string   `json:"parentId"`
	Position Position `json:"position"`
}

// Fields is a declarative "set these fields" update for one node.
// Only non-nil fields are applied. Children replaces the sequence named by Direction.
type Fields struct {
	Name        *string  `json:"name,omitempty"`
	IsCollapsed *bool    `json:"isCollapsed,omitempty"`
	Direction   Position `json:"direction,omitempty"`
	Children    []string `json:"children,omitempty"`
}

func SetName(name string) Fields {
	return Fields{Name: &name}
}

func SetCollapsed(v bool) Fields {
	return Fields{IsCollapsed: &v}
}

func SetChildren(dir Position, ids []string) Fields {
	if ids == nil {
		ids = []string{}
	}
	return Fields{Direction: dir, Children: ids}
}

type MindMap struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RootID    string    `json:"rootId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	MapID    string    `json:"mapId"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}
