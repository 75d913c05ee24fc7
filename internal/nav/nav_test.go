package nav

import (
	"testing"

	"mindit-cli/internal/model"
)

// buildMap:
//
//	root
//	  right: r1 (r1a, r1b (r1b1)), r2 (r2a), r3
//	  left:  l1 (l1a)
func buildMap() map[string]*model.Node {
	nodes := map[string]*model.Node{}
	root := model.NewRoot("root")
	nodes["root"] = root
	add := func(parent *model.Node, name string, pos model.Position) *model.Node {
		n := model.NewNode(name, pos, parent)
		n.ID = name
		seq := model.Sequence(parent, pos)
		*seq = append(*seq, n)
		nodes[name] = n
		return n
	}
	r1 := add(root, "r1", model.PositionRight)
	add(r1, "r1a", model.PositionChild)
	r1b := add(r1, "r1b", model.PositionChild)
	add(r1b, "r1b1", model.PositionChild)
	r2 := add(root, "r2", model.PositionRight)
	add(r2, "r2a", model.PositionChild)
	add(root, "r3", model.PositionRight)
	l1 := add(root, "l1", model.PositionLeft)
	add(l1, "l1a", model.PositionChild)
	return nodes
}

func TestFindSameLevelChild(t *testing.T) {
	t.Run("node without children", func(t *testing.T) {
		n := &model.Node{}
		if got := FindSameLevelChild(n, 2, 0); got != n {
			t.Fatalf("expected same node")
		}
	})
	t.Run("node at target depth", func(t *testing.T) {
		n := &model.Node{Depth: 2, ChildSubTree: []*model.Node{{Depth: 3}}}
		if got := FindSameLevelChild(n, 2, 0); got != n {
			t.Fatalf("expected same node")
		}
	})
	t.Run("descends through first children", func(t *testing.T) {
		m := buildMap()
		if got := FindSameLevelChild(m["r1"], 3, 1); got != m["r1b1"] && got != m["r1a"] {
			t.Fatalf("unexpected %v", got.ID)
		}
		if got := FindSameLevelChild(m["r1"], 2, 1); got != m["r1a"] {
			t.Fatalf("expected r1a, got %s", got.ID)
		}
	})
	t.Run("collapsed nodes are not entered", func(t *testing.T) {
		m := buildMap()
		m["r1"].IsCollapsed = true
		if got := FindSameLevelChild(m["r1"], 2, 1); got != m["r1"] {
			t.Fatalf("expected r1, got %s", got.ID)
		}
	})
}

func TestVerticalMove_Siblings(t *testing.T) {
	parent := &model.Node{ID: "parent", Position: model.PositionChild, Depth: 1}
	first := &model.Node{ID: "first", Position: model.PositionChild, Depth: 2, Parent: parent}
	second := &model.Node{ID: "second", Position: model.PositionChild, Depth: 2, Parent: parent}
	parent.ChildSubTree = []*model.Node{first, second}

	if got := VerticalMove(first, KeyDown, first.Depth); got != second {
		t.Fatalf("down from first = %s", got.ID)
	}
	if got := VerticalMove(second, KeyUp, second.Depth); got != first {
		t.Fatalf("up from second = %s", got.ID)
	}
}

func TestVerticalMove_Boundaries(t *testing.T) {
	m := buildMap()

	tests := []struct {
		name  string
		from  string
		key   Key
		depth int
		want  string
	}{
		{name: "first branch node up stays", from: "r1", key: KeyUp, depth: 1, want: "r1"},
		{name: "last branch node down stays", from: "r3", key: KeyDown, depth: 1, want: "r3"},
		{name: "last child down enters parent's next sibling subtree", from: "r1b", key: KeyDown, depth: 2, want: "r2a"},
		{name: "first child up enters previous subtree through its last child", from: "r2a", key: KeyUp, depth: 2, want: "r1b"},
		{name: "up realigns deeper through last children", from: "r2a", key: KeyUp, depth: 3, want: "r1b1"},
		{name: "grandchild down climbs two levels", from: "r1b1", key: KeyDown, depth: 3, want: "r2a"},
		{name: "next subtree without children lands on the sibling", from: "r2a", key: KeyDown, depth: 2, want: "r3"},
		{name: "branches are not crossed", from: "l1a", key: KeyDown, depth: 2, want: "l1a"},
		{name: "root does not move", from: "root", key: KeyDown, depth: 0, want: "root"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := VerticalMove(m[tt.from], tt.key, tt.depth)
			if got != m[tt.want] {
				t.Fatalf("VerticalMove(%s, %s) = %s want %s", tt.from, tt.key, got.Name, tt.want)
			}
		})
	}
}

func TestVerticalMove_UpUndoesDown(t *testing.T) {
	m := buildMap()
	for _, from := range []string{"r1b", "r1a", "r2a", "l1a"} {
		n := m[from]
		down := VerticalMove(n, KeyDown, n.Depth)
		if back := VerticalMove(down, KeyUp, n.Depth); back != n {
			t.Fatalf("down then up from %s went %s -> %s", from, down.Name, back.Name)
		}
	}
}

func TestHorizontal(t *testing.T) {
	m := buildMap()

	tests := []struct {
		name       string
		from       string
		key        Key
		want       string
		wantExpand bool
	}{
		{name: "right side: left goes to parent", from: "r1a", key: KeyLeft, want: "r1"},
		{name: "right side: right goes to first child", from: "r1", key: KeyRight, want: "r1a"},
		{name: "left side: right goes to parent", from: "l1a", key: KeyRight, want: "l1"},
		{name: "left side: left goes to first child", from: "l1", key: KeyLeft, want: "l1a"},
		{name: "branch node toward root selects root", from: "l1", key: KeyRight, want: "root"},
		{name: "leaf outward stays", from: "r3", key: KeyRight, want: "r3"},
		{name: "root left enters left branch", from: "root", key: KeyLeft, want: "l1"},
		{name: "root right enters right branch", from: "root", key: KeyRight, want: "r1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, expand := Horizontal(m[tt.from], tt.key)
			if got != m[tt.want] || expand != tt.wantExpand {
				t.Fatalf("Horizontal(%s, %s) = %s,%v want %s,%v", tt.from, tt.key, got.Name, expand, tt.want, tt.wantExpand)
			}
		})
	}
}

func TestHorizontal_CollapsedNodeAsksToExpand(t *testing.T) {
	m := buildMap()
	m["r1"].IsCollapsed = true

	got, expand := Horizontal(m["r1"], KeyRight)
	if got != m["r1"] || !expand {
		t.Fatalf("expected expand on r1, got %s,%v", got.Name, expand)
	}
	// Toward root ignores collapse state.
	if got, expand := Horizontal(m["r1"], KeyLeft); got != m["root"] || expand {
		t.Fatalf("expected root, got %s,%v", got.Name, expand)
	}
}

func TestFocusAfterDelete(t *testing.T) {
	parent := &model.Node{ID: "parent", Position: model.PositionChild}
	previous := &model.Node{ID: "previous", Position: model.PositionChild, Parent: parent}
	removed := &model.Node{ID: "removed", Position: model.PositionChild, Parent: parent}
	next := &model.Node{ID: "next", Position: model.PositionChild, Parent: parent}

	parent.ChildSubTree = []*model.Node{previous, removed, next}
	if got := FocusAfterDelete(removed); got != next {
		t.Fatalf("expected next, got %s", got.ID)
	}

	parent.ChildSubTree = []*model.Node{previous, removed}
	if got := FocusAfterDelete(removed); got != previous {
		t.Fatalf("expected previous, got %s", got.ID)
	}

	parent.ChildSubTree = []*model.Node{removed}
	if got := FocusAfterDelete(removed); got != parent {
		t.Fatalf("expected parent, got %s", got.ID)
	}
}
