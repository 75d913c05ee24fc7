package store

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewNodeID_Shape(t *testing.T) {
	id, err := NewNodeID()
	if err != nil {
		t.Fatalf("NewNodeID: %v", err)
	}
	if !strings.HasPrefix(id, "node-") {
		t.Fatalf("expected node prefix, got %q", id)
	}
	suffix := strings.TrimPrefix(id, "node-")
	if got, want := len(suffix), 8; got != want {
		t.Fatalf("expected suffix len %d, got %d (%q)", want, got, suffix)
	}
	if strings.ToLower(suffix) != suffix {
		t.Fatalf("expected lowercase suffix, got %q", suffix)
	}
}

func TestNewNodeID_Distinct(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id, err := NewNodeID()
		if err != nil {
			t.Fatalf("NewNodeID: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewMapID_IsUUID(t *testing.T) {
	if _, err := uuid.Parse(newMapID()); err != nil {
		t.Fatalf("map id is not a uuid: %v", err)
	}
}
