package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"mindit-cli/internal/model"
)

type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func appendEvent(ctx context.Context, tx sqlExecer, mapID, typ, entityID string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO events(id, map_id, ts_unixms, type, entity_id, payload_json) VALUES(?, ?, ?, ?, ?, ?)`,
		newEventID(), mapID, time.Now().UTC().UnixMilli(), typ, entityID, string(raw))
	return err
}

// Events returns up to limit of the most recent events for mapID, oldest first.
// An empty mapID returns events across all maps; limit <= 0 returns everything.
func (db *DB) Events(ctx context.Context, mapID string, limit int) ([]model.Event, error) {
	q := `SELECT id, map_id, ts_unixms, type, entity_id, payload_json FROM events`
	var args []any
	if mapID != "" {
		q += ` WHERE map_id = ?`
		args = append(args, mapID)
	}
	q += ` ORDER BY seq DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var ev model.Event
		var ts int64
		var payload string
		if err := rows.Scan(&ev.ID, &ev.MapID, &ts, &ev.Type, &ev.EntityID, &payload); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(ts).UTC()
		ev.Payload = json.RawMessage(payload)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
