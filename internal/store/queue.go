package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"mindit-cli/internal/model"
	"mindit-cli/internal/mutate"
)

var ErrQueueClosed = errors.New("persistence queue is closed")

// Confirmation reports the outcome of one queued write.
type Confirmation struct {
	Op  string
	ID  string
	Err error
}

type queuedOp struct {
	op  string
	id  string
	run func() error
}

// Queue is a mutate.Persister that hands writes to a single background worker, so callers never
// block on the database. Writes are applied in submission order. AddNode mints the id up front
// and returns it immediately; failures are only reported through the confirmation callback.
type Queue struct {
	next      mutate.Persister
	onConfirm func(Confirmation)
	log       *slog.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	pending []queuedOp
	closed  bool
	done    chan struct{}
}

// NewQueue starts the worker. onConfirm is called from the worker goroutine and may be nil.
func NewQueue(next mutate.Persister, onConfirm func(Confirmation), log *slog.Logger) *Queue {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	q := &Queue{
		next:      next,
		onConfirm: onConfirm,
		log:       log,
		done:      make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// NewMapQueue queues writes for one map of db. The writes are detached from ctx's cancellation,
// so Close still drains what was queued before a shutdown signal.
func (db *DB) NewMapQueue(ctx context.Context, mapID string, onConfirm func(Confirmation), log *slog.Logger) *Queue {
	if ctx == nil {
		ctx = context.Background()
	}
	return NewQueue(db.Persister(context.WithoutCancel(ctx), mapID), onConfirm, log)
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.pending) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		op := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		err := op.run()
		if err != nil {
			q.log.Error("persistence failed", "op", op.op, "id", op.id, "err", err)
		} else {
			q.log.Debug("persisted", "op", op.op, "id", op.id)
		}
		if q.onConfirm != nil {
			q.onConfirm(Confirmation{Op: op.op, ID: op.id, Err: err})
		}
	}
}

func (q *Queue) enqueue(op queuedOp) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.pending = append(q.pending, op)
	q.cond.Signal()
	return nil
}

func (q *Queue) AddNode(spec model.NodeSpec) (string, error) {
	if spec.ID == "" {
		id, err := NewNodeID()
		if err != nil {
			return "", err
		}
		spec.ID = id
	}
	err := q.enqueue(queuedOp{op: "add", id: spec.ID, run: func() error {
		_, err := q.next.AddNode(spec)
		return err
	}})
	if err != nil {
		return "", err
	}
	return spec.ID, nil
}

func (q *Queue) UpdateNode(id string, f model.Fields) error {
	if f.Children != nil {
		f.Children = append([]string{}, f.Children...)
	}
	return q.enqueue(queuedOp{op: "update", id: id, run: func() error {
		return q.next.UpdateNode(id, f)
	}})
}

func (q *Queue) DeleteNode(id string) error {
	return q.enqueue(queuedOp{op: "delete", id: id, run: func() error {
		return q.next.DeleteNode(id)
	}})
}

// Close stops accepting writes and waits for the queued ones to finish.
func (q *Queue) Close() error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.cond.Broadcast()
	}
	q.mu.Unlock()
	<-q.done
	return nil
}
