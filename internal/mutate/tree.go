package mutate

import (
	"mindit-cli/internal/model"
)

// Persister stores node changes. Calls describe the change declaratively; the in-memory tree
// has already been updated when they are made, and nothing here rolls it back on error.
type Persister interface {
	AddNode(spec model.NodeSpec) (string, error)
	UpdateNode(id string, f model.Fields) error
	DeleteNode(id string) error
}

// Register assigns n an id through p. Nodes that already have an id are left alone.
func Register(p Persister, n *model.Node) error {
	if n == nil || n.ID != "" {
		return nil
	}
	parentID := ""
	if n.Parent != nil {
		parentID = n.Parent.ID
	}
	id, err := p.AddNode(model.NodeSpec{Name: n.Name, ParentID: parentID, Position: n.Position})
	if err != nil {
		return err
	}
	n.ID = id
	return nil
}

// AddChild inserts n into parent's sequence at index (clamped), registering it first if needed.
// The sequence is chosen from n.Position: left/right under root, childSubTree elsewhere.
func AddChild(p Persister, parent, n *model.Node, index int) error {
	if parent == nil || n == nil {
		return ErrNoParent
	}
	n.Parent = parent
	n.Depth = parent.Depth + 1
	if model.IsRoot(parent) {
		n.Position = model.SequenceDirection(parent, n.Position)
	} else {
		n.Position = model.PositionChild
	}
	if err := Register(p, n); err != nil {
		return err
	}
	seq := model.Sequence(parent, n.Position)
	if index < 0 {
		index = 0
	}
	if index > len(*seq) {
		index = len(*seq)
	}
	next := make([]*model.Node, 0, len(*seq)+1)
	next = append(next, (*seq)[:index]...)
	next = append(next, n)
	next = append(next, (*seq)[index:]...)
	*seq = next
	model.FixDepths(n)
	return p.UpdateNode(parent.ID, model.SetChildren(model.SequenceDirection(parent, n.Position), model.IDs(next)))
}

// RemoveChild drops n from parent's sequence. The node record itself is kept; see Delete.
func RemoveChild(p Persister, parent, n *model.Node) error {
	if parent == nil || n == nil {
		return ErrNoParent
	}
	seq := model.Sequence(parent, n.Position)
	idx := model.IndexOf(*seq, n)
	if idx < 0 {
		return NotFoundError{Kind: "child", ID: n.ID}
	}
	next := make([]*model.Node, 0, len(*seq)-1)
	next = append(next, (*seq)[:idx]...)
	next = append(next, (*seq)[idx+1:]...)
	*seq = next
	return p.UpdateNode(parent.ID, model.SetChildren(model.SequenceDirection(parent, n.Position), model.IDs(next)))
}

// ReplaceChildSequence sets parent's dir sequence to nodes in one update.
// Every node must already be registered.
func ReplaceChildSequence(p Persister, parent *model.Node, dir model.Position, nodes []*model.Node) error {
	if parent == nil {
		return ErrNoParent
	}
	dir = model.SequenceDirection(parent, dir)
	seq := model.Sequence(parent, dir)
	*seq = append([]*model.Node(nil), nodes...)
	for _, n := range nodes {
		n.Parent = parent
		n.Depth = parent.Depth + 1
		model.FixDepths(n)
	}
	return p.UpdateNode(parent.ID, model.SetChildren(dir, model.IDs(nodes)))
}

// Delete detaches n from its parent and asks p to delete it (and its subtree).
// Root cannot be deleted.
func Delete(p Persister, n *model.Node) error {
	if n == nil {
		return nil
	}
	if model.IsRoot(n) {
		return InvalidOperationError{Op: "delete", NodeID: n.ID}
	}
	if n.Parent == nil {
		return ErrNoParent
	}
	seq := model.Sequence(n.Parent, n.Position)
	idx := model.IndexOf(*seq, n)
	if idx < 0 {
		return NotFoundError{Kind: "child", ID: n.ID}
	}
	next := make([]*model.Node, 0, len(*seq)-1)
	next = append(next, (*seq)[:idx]...)
	next = append(next, (*seq)[idx+1:]...)
	*seq = next
	return p.DeleteNode(n.ID)
}

func Rename(p Persister, n *model.Node, name string) error {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return nil
	}
	n.Name = name
	return p.UpdateNode(n.ID, model.SetName(name))
}

func SetCollapsed(p Persister, n *model.Node, collapsed bool) error {
	if n == nil || n.IsCollapsed == collapsed {
		return nil
	}
	n.IsCollapsed = collapsed
	return p.UpdateNode(n.ID, model.SetCollapsed(collapsed))
}
