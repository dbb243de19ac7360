// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"time"

	"github.com/northboundstudio/brandsite/internal/model"
)

// CreateEventParams holds the fields for a new event log entry.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent appends an event log entry.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (model.Event, error) {
	var e model.Event
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO events (level, category, message, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, level, category, message, metadata, created_at`,
		arg.Level, arg.Category, arg.Message, arg.Metadata, arg.CreatedAt.UTC())
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt)
	return e, err
}

// EventFilter narrows ListEvents; nil fields are ignored.
type EventFilter struct {
	Level    *string
	Category *string
	Limit    int64
	Offset   int64
}

// ListEvents returns events newest first.
func (q *Queries) ListEvents(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	query := `SELECT id, level, category, message, metadata, created_at FROM events`
	var conds []string
	var args []any
	if filter.Level != nil {
		conds = append(conds, `level = ?`)
		args = append(args, *filter.Level)
	}
	if filter.Category != nil {
		conds = append(conds, `category = ?`)
		args = append(args, *filter.Category)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + joinConds(conds)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message,
			&e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// PruneEventsBefore deletes events older than the cutoff, returning the
// number removed. Called by the scheduler's retention sweep.
func (q *Queries) PruneEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM events WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
