package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindit-cli/internal/model"
	"mindit-cli/internal/mutate"
)

var (
	errEmptyDir     = errors.New("store dir is empty")
	errEmptyMapName = errors.New("map name is empty")
)

// AmbiguousMapError is returned when a name matches more than one map.
type AmbiguousMapError struct {
	Name string
	IDs  []string
}

func (e AmbiguousMapError) Error() string {
	return fmt.Sprintf("map name %q is ambiguous (%s); use an id", e.Name, strings.Join(e.IDs, ", "))
}

// CreateMap inserts a map and its root node. The root carries the map name.
func (db *DB) CreateMap(ctx context.Context, name string) (model.MindMap, *model.Node, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.MindMap{}, nil, errEmptyMapName
	}
	rootID, err := NewNodeID()
	if err != nil {
		return model.MindMap{}, nil, err
	}
	m := model.MindMap{
		ID:        newMapID(),
		Name:      name,
		RootID:    rootID,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	tx, err := db.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return model.MindMap{}, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO maps(id, name, root_id, created_at_unixms) VALUES(?, ?, ?, ?)`,
		m.ID, m.Name, m.RootID, m.CreatedAt.UnixMilli()); err != nil {
		return model.MindMap{}, nil, fmt.Errorf("create map: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO nodes(id, map_id, parent_id, name, position, updated_at_unixms) VALUES(?, ?, '', ?, ?, ?)`,
		rootID, m.ID, name, string(model.PositionRoot), m.CreatedAt.UnixMilli()); err != nil {
		return model.MindMap{}, nil, fmt.Errorf("create root node: %w", err)
	}
	if err := appendEvent(ctx, tx, m.ID, "map.create", m.ID, m); err != nil {
		return model.MindMap{}, nil, err
	}
	if err := tx.Commit(); err != nil {
		return model.MindMap{}, nil, err
	}

	root := model.NewRoot(name)
	root.ID = rootID
	return m, root, nil
}

func (db *DB) ListMaps(ctx context.Context) ([]model.MindMap, error) {
	rows, err := db.sql.QueryContext(ctx, `SELECT id, name, root_id, created_at_unixms FROM maps ORDER BY created_at_unixms, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MindMap{}
	for rows.Next() {
		m, err := scanMap(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMap(r rowScanner) (model.MindMap, error) {
	var m model.MindMap
	var created int64
	if err := r.Scan(&m.ID, &m.Name, &m.RootID, &created); err != nil {
		return model.MindMap{}, err
	}
	m.CreatedAt = time.UnixMilli(created).UTC()
	return m, nil
}

// FindMap resolves ref as a map id first, then as an exact map name.
func (db *DB) FindMap(ctx context.Context, ref string) (model.MindMap, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.MindMap{}, mutate.NotFoundError{Kind: "map", ID: ref}
	}
	m, err := scanMap(db.sql.QueryRowContext(ctx, `SELECT id, name, root_id, created_at_unixms FROM maps WHERE id = ?`, ref))
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.MindMap{}, err
	}

	all, err := db.ListMaps(ctx)
	if err != nil {
		return model.MindMap{}, err
	}
	var matches []model.MindMap
	for _, m := range all {
		if m.Name == ref {
			matches = append(matches, m)
		}
	}
	switch len(matches) {
	case 0:
		return model.MindMap{}, mutate.NotFoundError{Kind: "map", ID: ref}
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		return model.MindMap{}, AmbiguousMapError{Name: ref, IDs: ids}
	}
}

// DeleteMap removes a map and all of its nodes. Its events are kept.
func (db *DB) DeleteMap(ctx context.Context, id string) error {
	tx, err := db.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM maps WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return mutate.NotFoundError{Kind: "map", ID: id}
	}
	// Cascades cover this too; kept explicit for databases opened without foreign_keys.
	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes WHERE map_id = ?`, id); err != nil {
		return err
	}
	if err := appendEvent(ctx, tx, id, "map.delete", id, nil); err != nil {
		return err
	}
	return tx.Commit()
}
