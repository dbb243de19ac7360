// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/northboundstudio/brandsite/internal/model"
)

const serviceColumns = `id, title, slug, summary, body, icon, position,
	featured, published, created_at, updated_at`

func scanService(row interface{ Scan(...any) error }) (model.Service, error) {
	var s model.Service
	err := row.Scan(&s.ID, &s.Title, &s.Slug, &s.Summary, &s.Body, &s.Icon,
		&s.Position, &s.Featured, &s.Published, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// CreateServiceParams holds the fields for a new service offering.
type CreateServiceParams struct {
	Title     string
	Slug      string
	Summary   string
	Body      string
	Icon      sql.NullString
	Position  int64
	Featured  bool
	Published bool
}

// CreateService inserts a service offering.
func (q *Queries) CreateService(ctx context.Context, arg CreateServiceParams) (model.Service, error) {
	now := time.Now().UTC()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO services (title, slug, summary, body, icon, position,
			featured, published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+serviceColumns,
		arg.Title, arg.Slug, arg.Summary, arg.Body, arg.Icon, arg.Position,
		arg.Featured, arg.Published, now, now)
	return scanService(row)
}

// GetServiceByID returns a service or sql.ErrNoRows.
func (q *Queries) GetServiceByID(ctx context.Context, id int64) (model.Service, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE id = ?`, id)
	return scanService(row)
}

// GetServiceBySlug returns a service by slug, optionally published-only.
func (q *Queries) GetServiceBySlug(ctx context.Context, slug string, publishedOnly bool) (model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE slug = ?`
	if publishedOnly {
		query += ` AND published = 1`
	}
	row := q.db.QueryRowContext(ctx, query, slug)
	return scanService(row)
}

// ServiceFilter narrows ListServices; nil fields are ignored.
type ServiceFilter struct {
	Published *bool
	Featured  *bool
	Limit     int64
	Offset    int64
}

// ListServices returns services ordered by position.
func (q *Queries) ListServices(ctx context.Context, filter ServiceFilter) ([]model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services`
	var conds []string
	var args []any
	if filter.Published != nil {
		conds = append(conds, `published = ?`)
		args = append(args, *filter.Published)
	}
	if filter.Featured != nil {
		conds = append(conds, `featured = ?`)
		args = append(args, *filter.Featured)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + joinConds(conds)
	}
	query += ` ORDER BY position ASC, id ASC LIMIT ? OFFSET ?`
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// ServicePatch carries a partial update; nil fields are left untouched.
type ServicePatch struct {
	Title     *string
	Slug      *string
	Summary   *string
	Body      *string
	Icon      *string
	Position  *int64
	Featured  *bool
	Published *bool
}

// UpdateService applies the non-nil patch fields and returns the updated row.
func (q *Queries) UpdateService(ctx context.Context, id int64, patch ServicePatch) (model.Service, error) {
	var sets []string
	var args []any
	addSet := func(col string, val any) {
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	if patch.Title != nil {
		addSet("title", *patch.Title)
	}
	if patch.Slug != nil {
		addSet("slug", *patch.Slug)
	}
	if patch.Summary != nil {
		addSet("summary", *patch.Summary)
	}
	if patch.Body != nil {
		addSet("body", *patch.Body)
	}
	if patch.Icon != nil {
		addSet("icon", *patch.Icon)
	}
	if patch.Position != nil {
		addSet("position", *patch.Position)
	}
	if patch.Featured != nil {
		addSet("featured", *patch.Featured)
	}
	if patch.Published != nil {
		addSet("published", *patch.Published)
	}
	if len(sets) == 0 {
		return q.GetServiceByID(ctx, id)
	}
	addSet("updated_at", time.Now().UTC())
	args = append(args, id)

	row := q.db.QueryRowContext(ctx,
		`UPDATE services SET `+joinSets(sets)+` WHERE id = ? RETURNING `+serviceColumns,
		args...)
	return scanService(row)
}

// DeleteService removes a service. Returns false if no row matched.
func (q *Queries) DeleteService(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
