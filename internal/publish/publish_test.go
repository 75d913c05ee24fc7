package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mindit-cli/internal/model"
)

func sampleMap() *model.Node {
	root := model.NewRoot("Trip *plan*")
	root.ID = "root"
	add := func(parent *model.Node, name string, pos model.Position) *model.Node {
		n := model.NewNode(name, pos, parent)
		n.ID = name
		seq := model.Sequence(parent, pos)
		*seq = append(*seq, n)
		return n
	}
	gear := add(root, "gear", model.PositionRight)
	add(gear, "tent", model.PositionChild)
	add(gear, "two\nlines", model.PositionChild)
	add(root, "budget", model.PositionLeft)
	return root
}

func TestMarkdownOutline(t *testing.T) {
	t.Parallel()

	got := MarkdownOutline(sampleMap())
	want := "# Trip \\*plan\\*\n" +
		"\n" +
		"- budget\n" +
		"- gear\n" +
		"  - tent\n" +
		"  - two  \n" +
		"    lines\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestMarkdownOutline_Subtree(t *testing.T) {
	t.Parallel()

	root := sampleMap()
	got := MarkdownOutline(root.Right[0].ChildSubTree[0])
	if got != "- tent\n" {
		t.Fatalf("got %q", got)
	}
	if MarkdownOutline(nil) != "" {
		t.Fatalf("nil node should render empty")
	}
	empty := model.NewNode("", model.PositionChild, root)
	if got := MarkdownOutline(empty); got != "- §\n" {
		t.Fatalf("empty name: %q", got)
	}
}

func TestWriteMap_WritesAllFormats(t *testing.T) {
	t.Parallel()

	to := t.TempDir()
	res, err := WriteMap(sampleMap(), to, WriteOptions{})
	if err != nil {
		t.Fatalf("WriteMap: %v", err)
	}
	if len(res.Written) != 4 {
		t.Fatalf("expected 4 files, got %v", res.Written)
	}
	txt, err := os.ReadFile(filepath.Join(to, "trip-plan.txt"))
	if err != nil {
		t.Fatalf("read txt: %v", err)
	}
	if !strings.HasPrefix(string(txt), "Trip *plan*\n\tbudget\n\tgear\n\t\ttent") {
		t.Fatalf("txt %q", string(txt))
	}
	if _, err := os.Stat(filepath.Join(to, "trip-plan.html")); err != nil {
		t.Fatalf("stat html: %v", err)
	}
	page, err := os.ReadFile(filepath.Join(to, "trip-plan.page.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	for _, want := range []string{"<title>Trip *plan*</title>", "<h1>Trip *plan*</h1>", "<li>budget</li>"} {
		if !strings.Contains(string(page), want) {
			t.Fatalf("page missing %q:\n%s", want, page)
		}
	}

	if _, err := WriteMap(sampleMap(), to, WriteOptions{}); err == nil {
		t.Fatalf("expected error without overwrite")
	}
	if _, err := WriteMap(sampleMap(), to, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestFileBase(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Trip *plan*": "trip-plan",
		"  ":          "map",
		"a/b c":       "a-b-c",
		"notes.v2":    "notes.v2",
	}
	for in, want := range tests {
		if got := FileBase(in); got != want {
			t.Fatalf("FileBase(%q) = %q want %q", in, got, want)
		}
	}
}
