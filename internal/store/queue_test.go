package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"mindit-cli/internal/codec"
	"mindit-cli/internal/model"
	"mindit-cli/internal/mutate/mutatetest"
)

type confirmations struct {
	mu  sync.Mutex
	got []Confirmation
}

func (c *confirmations) add(cf Confirmation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, cf)
}

func TestQueue_PreservesOrderAndMintsIDs(t *testing.T) {
	rec := &mutatetest.Recorder{}
	var cf confirmations
	q := NewQueue(rec, cf.add, nil)

	id, err := q.AddNode(model.NodeSpec{Name: "a", ParentID: "root", Position: model.PositionRight})
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := q.UpdateNode("root", model.SetChildren(model.PositionRight, []string{id})); err != nil {
		t.Fatalf("UpdateNode: %v", err)
	}
	if err := q.DeleteNode(id); err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if len(rec.Calls) != 3 {
		t.Fatalf("calls %+v", rec.Calls)
	}
	if rec.Calls[0].Op != "add" || rec.Calls[0].ID != id || rec.Calls[0].Spec.ID != id {
		t.Fatalf("add call %+v", rec.Calls[0])
	}
	if rec.Calls[1].Op != "update" || rec.Calls[2].Op != "delete" {
		t.Fatalf("order %+v", rec.Calls)
	}
	if len(cf.got) != 3 || cf.got[0].Op != "add" || cf.got[2].Op != "delete" {
		t.Fatalf("confirmations %+v", cf.got)
	}
	for _, c := range cf.got {
		if c.Err != nil {
			t.Fatalf("unexpected failure %+v", c)
		}
	}
}

func TestQueue_ReportsFailures(t *testing.T) {
	boom := errors.New("boom")
	rec := &mutatetest.Recorder{Err: boom}
	var cf confirmations
	q := NewQueue(rec, cf.add, nil)

	if err := q.UpdateNode("x", model.SetName("n")); err != nil {
		t.Fatalf("enqueue should not fail: %v", err)
	}
	_ = q.Close()
	if len(cf.got) != 1 || !errors.Is(cf.got[0].Err, boom) {
		t.Fatalf("confirmations %+v", cf.got)
	}
}

func TestQueue_ClosedRejectsWrites(t *testing.T) {
	q := NewQueue(&mutatetest.Recorder{}, nil, nil)
	_ = q.Close()
	if err := q.DeleteNode("x"); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("expected ErrQueueClosed, got %v", err)
	}
	if _, err := q.AddNode(model.NodeSpec{Name: "x"}); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("expected ErrQueueClosed, got %v", err)
	}
	// Closing twice is fine.
	_ = q.Close()
}

func TestQueue_OverSQLite(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	m, root, err := db.CreateMap(ctx, "root")
	if err != nil {
		t.Fatalf("CreateMap: %v", err)
	}
	var cf confirmations
	q := NewQueue(db.Persister(ctx, m.ID), cf.add, nil)

	im := codec.Importer{Persister: q, Directions: codec.FixedDirection(model.PositionRight)}
	if _, err := im.FromBulletedText("one\n\ttwo\n\t\tthree\nfour", root); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for _, c := range cf.got {
		if c.Err != nil {
			t.Fatalf("write failed: %+v", c)
		}
	}

	loaded, err := db.LoadTree(ctx, m.ID)
	if err != nil {
		t.Fatalf("LoadTree: %v", err)
	}
	if got, want := codec.ToBulletedText(loaded, 0), "root\n\tone\n\t\ttwo\n\t\t\tthree\n\tfour"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestMapQueue_DrainsAfterCancel(t *testing.T) {
	db := openTestDB(t)
	m, _, err := db.CreateMap(context.Background(), "shutdown")
	if err != nil {
		t.Fatalf("CreateMap: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var cf confirmations
	q := db.NewMapQueue(ctx, m.ID, cf.add, nil)
	cancel()

	id, err := q.AddNode(model.NodeSpec{Name: "late", ParentID: m.RootID, Position: model.PositionRight})
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := q.UpdateNode(m.RootID, model.SetChildren(model.PositionRight, []string{id})); err != nil {
		t.Fatalf("UpdateNode: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for _, c := range cf.got {
		if c.Err != nil {
			t.Fatalf("write failed after cancel: %+v", c)
		}
	}

	root, err := db.LoadTree(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("LoadTree: %v", err)
	}
	if len(root.Right) != 1 || root.Right[0].Name != "late" {
		t.Fatalf("right %v", model.IDs(root.Right))
	}
}
