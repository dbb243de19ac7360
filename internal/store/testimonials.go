// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/northboundstudio/brandsite/internal/model"
)

const testimonialColumns = `id, name, position, company, content, rating,
	image_url, featured, approved, created_at, updated_at`

func scanTestimonial(row interface{ Scan(...any) error }) (model.Testimonial, error) {
	var t model.Testimonial
	err := row.Scan(&t.ID, &t.Name, &t.Position, &t.Company, &t.Content,
		&t.Rating, &t.ImageURL, &t.Featured, &t.Approved,
		&t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// CreateTestimonialParams holds the fields for a new testimonial.
// New testimonials start unapproved unless the admin flips the flag.
type CreateTestimonialParams struct {
	Name     string
	Position string
	Company  string
	Content  string
	Rating   int64
	ImageURL sql.NullString
	Featured bool
	Approved bool
}

// CreateTestimonial inserts a testimonial.
func (q *Queries) CreateTestimonial(ctx context.Context, arg CreateTestimonialParams) (model.Testimonial, error) {
	now := time.Now().UTC()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO testimonials (name, position, company, content, rating,
			image_url, featured, approved, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+testimonialColumns,
		arg.Name, arg.Position, arg.Company, arg.Content, arg.Rating,
		arg.ImageURL, arg.Featured, arg.Approved, now, now)
	return scanTestimonial(row)
}

// GetTestimonialByID returns a testimonial or sql.ErrNoRows.
func (q *Queries) GetTestimonialByID(ctx context.Context, id int64) (model.Testimonial, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials WHERE id = ?`, id)
	return scanTestimonial(row)
}

// TestimonialFilter narrows ListTestimonials; nil fields are ignored.
type TestimonialFilter struct {
	Approved *bool
	Featured *bool
	Limit    int64
	Offset   int64
}

// ListTestimonials returns testimonials newest first.
// Admin listings pass an empty filter; public listings filter on the
// visibility flags.
func (q *Queries) ListTestimonials(ctx context.Context, filter TestimonialFilter) ([]model.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials`
	var conds []string
	var args []any
	if filter.Approved != nil {
		conds = append(conds, `approved = ?`)
		args = append(args, *filter.Approved)
	}
	if filter.Featured != nil {
		conds = append(conds, `featured = ?`)
		args = append(args, *filter.Featured)
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

	var testimonials []model.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

// TestimonialPatch carries a partial update; nil fields are left untouched.
type TestimonialPatch struct {
	Name     *string
	Position *string
	Company  *string
	Content  *string
	Rating   *int64
	ImageURL *string
	Featured *bool
	Approved *bool
}

// UpdateTestimonial applies the non-nil patch fields and returns the updated row.
func (q *Queries) UpdateTestimonial(ctx context.Context, id int64, patch TestimonialPatch) (model.Testimonial, error) {
	var sets []string
	var args []any
	addSet := func(col string, val any) {
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Position != nil {
		addSet("position", *patch.Position)
	}
	if patch.Company != nil {
		addSet("company", *patch.Company)
	}
	if patch.Content != nil {
		addSet("content", *patch.Content)
	}
	if patch.Rating != nil {
		addSet("rating", *patch.Rating)
	}
	if patch.ImageURL != nil {
		addSet("image_url", *patch.ImageURL)
	}
	if patch.Featured != nil {
		addSet("featured", *patch.Featured)
	}
	if patch.Approved != nil {
		addSet("approved", *patch.Approved)
	}
	if len(sets) == 0 {
		return q.GetTestimonialByID(ctx, id)
	}
	addSet("updated_at", time.Now().UTC())
	args = append(args, id)

	row := q.db.QueryRowContext(ctx,
		`UPDATE testimonials SET `+joinSets(sets)+` WHERE id = ? RETURNING `+testimonialColumns,
		args...)
	return scanTestimonial(row)
}

// DeleteTestimonial removes a testimonial. Returns false if no row matched.
func (q *Queries) DeleteTestimonial(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
