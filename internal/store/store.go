// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

// Package store is the data access layer: hand-written parameterized SQL
// per entity, one file each, bound to a Queries value.
package store

import (
	"context"
	"database/sql"
	"strings"
)

// DBTX is the subset of *sql.DB / *sql.Tx the queries need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries provides access to all database queries.
type Queries struct {
	db DBTX
}

// New creates a Queries bound to the given database handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// DefaultListLimit is applied when a list filter does not set a limit.
const DefaultListLimit = 50

// normalizeLimit clamps a filter limit to the default when unset.
func normalizeLimit(limit int64) int64 {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// joinConds joins WHERE fragments with AND; shared by the list and
// count queries.
func joinConds(conds []string) string {
	return strings.Join(conds, " AND ")
}

// joinSets joins SET fragments; shared by every entity's update.
func joinSets(sets []string) string {
	return strings.Join(sets, ", ")
}

// IsUniqueViolation reports whether err is a UNIQUE constraint failure.
// Both SQLite drivers in use (modernc.org/sqlite and mattn/go-sqlite3)
// surface the violated constraint in the error text.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
