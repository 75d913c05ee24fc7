package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mindit-cli/internal/model"
	"mindit-cli/internal/mutate"
)

type nodeRow struct {
	ID        string
	ParentID  string
	Name      string
	Position  model.Position
	Left      []string
	Right     []string
	Children  []string
	Collapsed bool
}

func (r *nodeRow) sequence(dir model.Position) *[]string {
	switch dir {
	case model.PositionLeft:
		return &r.Left
	case model.PositionRight:
		return &r.Right
	default:
		return &r.Children
	}
}

func (r *nodeRow) childIDs() []string {
	out := make([]string, 0, len(r.Left)+len(r.Right)+len(r.Children))
	out = append(out, r.Left...)
	out = append(out, r.Right...)
	return append(out, r.Children...)
}

type sqlQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func loadRows(ctx context.Context, q sqlQuerier, mapID string) (map[string]*nodeRow, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, parent_id, name, position, left_json, right_json, children_json, collapsed FROM nodes WHERE map_id = ?`, mapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]*nodeRow{}
	for rows.Next() {
		var r nodeRow
		var pos, left, right, children string
		var collapsed int
		if err := rows.Scan(&r.ID, &r.ParentID, &r.Name, &pos, &left, &right, &children, &collapsed); err != nil {
			return nil, err
		}
		r.Position = model.Position(pos)
		r.Collapsed = collapsed != 0
		for _, seq := range []struct {
			raw string
			dst *[]string
		}{{left, &r.Left}, {right, &r.Right}, {children, &r.Children}} {
			if err := json.Unmarshal([]byte(seq.raw), seq.dst); err != nil {
				return nil, fmt.Errorf("node %s: %w", r.ID, err)
			}
		}
		out[r.ID] = &r
	}
	return out, rows.Err()
}

func saveRow(ctx context.Context, tx sqlExecer, r *nodeRow) error {
	left, _ := json.Marshal(nonNil(r.Left))
	right, _ := json.Marshal(nonNil(r.Right))
	children, _ := json.Marshal(nonNil(r.Children))
	_, err := tx.ExecContext(ctx, `UPDATE nodes SET parent_id = ?, name = ?, position = ?, left_json = ?, right_json = ?, children_json = ?, collapsed = ?, updated_at_unixms = ? WHERE id = ?`,
		r.ParentID, r.Name, string(r.Position), string(left), string(right), string(children), boolToInt(r.Collapsed), time.Now().UTC().UnixMilli(), r.ID)
	return err
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// LoadTree rebuilds the in-memory tree of mapID from its root. Sequences decide placement:
// ids that have no row are dropped and a node reachable twice is only attached once.
func (db *DB) LoadTree(ctx context.Context, mapID string) (*model.Node, error) {
	m, err := db.FindMap(ctx, mapID)
	if err != nil {
		return nil, err
	}
	rows, err := loadRows(ctx, db.sql, m.ID)
	if err != nil {
		return nil, err
	}
	rootRow, ok := rows[m.RootID]
	if !ok {
		return nil, mutate.NotFoundError{Kind: "node", ID: m.RootID}
	}

	seen := map[string]bool{rootRow.ID: true}
	root := &model.Node{
		ID:          rootRow.ID,
		Name:        rootRow.Name,
		Position:    model.PositionRoot,
		IsCollapsed: rootRow.Collapsed,
	}
	var attach func(parent *model.Node, ids []string, pos model.Position) []*model.Node
	attach = func(parent *model.Node, ids []string, pos model.Position) []*model.Node {
		var out []*model.Node
		for _, id := range ids {
			r, ok := rows[id]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			n := &model.Node{
				ID:          r.ID,
				Name:        r.Name,
				Position:    pos,
				Parent:      parent,
				Depth:       parent.Depth + 1,
				IsCollapsed: r.Collapsed,
			}
			n.ChildSubTree = attach(n, r.Children, model.PositionChild)
			out = append(out, n)
		}
		return out
	}
	root.Left = attach(root, rootRow.Left, model.PositionLeft)
	root.Right = attach(root, rootRow.Right, model.PositionRight)
	model.FixDepths(root)
	return root, nil
}

// MapPersister writes node changes for one map. It implements mutate.Persister; every call runs
// in its own transaction and appends one event.
type MapPersister struct {
	db    *DB
	mapID string
	ctx   context.Context
}

func (db *DB) Persister(ctx context.Context, mapID string) *MapPersister {
	if ctx == nil {
		ctx = context.Background()
	}
	return &MapPersister{db: db, mapID: mapID, ctx: ctx}
}

func (p *MapPersister) MapID() string { return p.mapID }

func (p *MapPersister) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := p.db.sql.BeginTx(p.ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (p *MapPersister) AddNode(spec model.NodeSpec) (string, error) {
	id := spec.ID
	if id == "" {
		var err error
		if id, err = NewNodeID(); err != nil {
			return "", err
		}
	}
	if spec.Position == model.PositionRoot || !spec.Position.Valid() {
		return "", fmt.Errorf("add node: invalid position %q", spec.Position)
	}
	spec.ID = id
	err := p.inTx(func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(p.ctx, `SELECT COUNT(1) FROM nodes WHERE id = ? AND map_id = ?`, spec.ParentID, p.mapID).Scan(&n); err != nil {
			return err
		}
		if n == 0 {
			return mutate.NotFoundError{Kind: "node", ID: spec.ParentID}
		}
		if _, err := tx.ExecContext(p.ctx, `INSERT INTO nodes(id, map_id, parent_id, name, position, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
			id, p.mapID, spec.ParentID, spec.Name, string(spec.Position), time.Now().UTC().UnixMilli()); err != nil {
			return err
		}
		return appendEvent(p.ctx, tx, p.mapID, "node.add", id, spec)
	})
	if err != nil {
		return "", fmt.Errorf("add node: %w", err)
	}
	return id, nil
}

func (p *MapPersister) UpdateNode(id string, f model.Fields) error {
	err := p.inTx(func(tx *sql.Tx) error {
		rows, err := loadRows(p.ctx, tx, p.mapID)
		if err != nil {
			return err
		}
		r, ok := rows[id]
		if !ok {
			return mutate.NotFoundError{Kind: "node", ID: id}
		}
		if f.Name != nil {
			r.Name = *f.Name
		}
		if f.IsCollapsed != nil {
			r.Collapsed = *f.IsCollapsed
		}
		if f.Children != nil {
			*r.sequence(f.Direction) = append([]string{}, f.Children...)
			for _, cid := range f.Children {
				ch, ok := rows[cid]
				if !ok || ch.ParentID == id {
					continue
				}
				ch.ParentID = id
				if err := saveRow(p.ctx, tx, ch); err != nil {
					return err
				}
			}
		}
		if err := saveRow(p.ctx, tx, r); err != nil {
			return err
		}
		return appendEvent(p.ctx, tx, p.mapID, "node.update", id, f)
	})
	if err != nil {
		return fmt.Errorf("update node: %w", err)
	}
	return nil
}

// DeleteNode removes id and its subtree and drops id from any sequence that still lists it.
func (p *MapPersister) DeleteNode(id string) error {
	err := p.inTx(func(tx *sql.Tx) error {
		rows, err := loadRows(p.ctx, tx, p.mapID)
		if err != nil {
			return err
		}
		r, ok := rows[id]
		if !ok {
			return mutate.NotFoundError{Kind: "node", ID: id}
		}
		if r.Position == model.PositionRoot {
			return mutate.InvalidOperationError{Op: "delete", NodeID: id}
		}

		var doomed []string
		seen := map[string]bool{}
		var walk func(id string)
		walk = func(id string) {
			if seen[id] {
				return
			}
			seen[id] = true
			doomed = append(doomed, id)
			if r, ok := rows[id]; ok {
				for _, cid := range r.childIDs() {
					walk(cid)
				}
			}
		}
		walk(id)
		for _, did := range doomed {
			if _, err := tx.ExecContext(p.ctx, `DELETE FROM nodes WHERE id = ?`, did); err != nil {
				return err
			}
		}
		for _, other := range rows {
			if seen[other.ID] {
				continue
			}
			changed := false
			for _, dir := range []model.Position{model.PositionLeft, model.PositionRight, model.PositionChild} {
				seq := other.sequence(dir)
				kept := (*seq)[:0]
				for _, cid := range *seq {
					if cid == id {
						changed = true
						continue
					}
					kept = append(kept, cid)
				}
				*seq = kept
			}
			if changed {
				if err := saveRow(p.ctx, tx, other); err != nil {
					return err
				}
			}
		}
		return appendEvent(p.ctx, tx, p.mapID, "node.delete", id, map[string]any{"ids": doomed})
	})
	if err != nil {
		var inv mutate.InvalidOperationError
		if errors.As(err, &inv) {
			return err
		}
		return fmt.Errorf("delete node: %w", err)
	}
	return nil
}
