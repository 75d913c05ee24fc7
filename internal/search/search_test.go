package search

import (
	"strings"
	"testing"

	"mindit-cli/internal/model"
)

func sample() *model.Node {
	root := model.NewRoot("Project")
	add := func(parent *model.Node, name string, pos model.Position) *model.Node {
		n := model.NewNode(name, pos, parent)
		seq := model.Sequence(parent, pos)
		*seq = append(*seq, n)
		return n
	}
	infra := add(root, "infrastructure", model.PositionRight)
	add(infra, "database migration", model.PositionChild)
	add(infra, "deploy", model.PositionChild)
	add(root, "docs", model.PositionLeft)
	return root
}

func TestFind(t *testing.T) {
	root := sample()

	got := Find(root, "dep", 0)
	if len(got) == 0 || got[0].Node.Name != "deploy" {
		t.Fatalf("expected deploy first, got %+v", got)
	}
	if p := strings.Join(got[0].Path, "/"); p != "Project/infrastructure/deploy" {
		t.Fatalf("path %q", p)
	}
	if len(got[0].Indexes) != 3 {
		t.Fatalf("indexes %v", got[0].Indexes)
	}
}

func TestFind_EdgeCases(t *testing.T) {
	root := sample()
	if got := Find(root, "   ", 0); got != nil {
		t.Fatalf("blank query should match nothing: %+v", got)
	}
	if got := Find(nil, "x", 0); got != nil {
		t.Fatalf("nil root should match nothing")
	}
	if got := Find(root, "zzzz", 0); len(got) != 0 {
		t.Fatalf("unexpected matches %+v", got)
	}
	if got := Find(root, "o", 2); len(got) != 2 {
		t.Fatalf("limit not applied: %d", len(got))
	}
	if got := Find(root, "proj", 0); len(got) != 1 || !model.IsRoot(got[0].Node) {
		t.Fatalf("root should be searchable: %+v", got)
	}
}
