package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	got := strings.Join(Topics(), ",")
	if got != "commands,keys,text-format" {
		t.Fatalf("topics %q", got)
	}
}

func TestGet(t *testing.T) {
	body, ok := Get(" Keys ")
	if !ok || !strings.Contains(body, "# Editor keys") {
		t.Fatalf("keys topic: %v %q", ok, body)
	}
	for _, bad := range []string{"", "missing", "../docs"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("Get(%q) should fail", bad)
		}
	}
}
