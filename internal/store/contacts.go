// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/northboundstudio/brandsite/internal/model"
)

const contactColumns = `id, name, email, phone, subject, message, status,
	ip_address, user_agent, browser, country, created_at, updated_at`

func scanContact(row interface{ Scan(...any) error }) (model.Contact, error) {
	var c model.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message,
		&c.Status, &c.IPAddress, &c.UserAgent, &c.Browser, &c.Country,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateContactParams holds the fields for a new contact submission.
type CreateContactParams struct {
	Name      string
	Email     string
	Phone     sql.NullString
	Subject   sql.NullString
	Message   string
	IPAddress sql.NullString
	UserAgent sql.NullString
	Browser   sql.NullString
	Country   sql.NullString
}

// CreateContact inserts a new contact with status "new".
func (q *Queries) CreateContact(ctx context.Context, arg CreateContactParams) (model.Contact, error) {
	now := time.Now().UTC()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO contacts (name, email, phone, subject, message, status,
			ip_address, user_agent, browser, country, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+contactColumns,
		arg.Name, arg.Email, arg.Phone, arg.Subject, arg.Message,
		model.ContactStatusNew, arg.IPAddress, arg.UserAgent, arg.Browser,
		arg.Country, now, now)
	return scanContact(row)
}

// GetContactByID returns a contact or sql.ErrNoRows.
func (q *Queries) GetContactByID(ctx context.Context, id int64) (model.Contact, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id)
	return scanContact(row)
}

// ContactFilter narrows ListContacts; nil fields are ignored.
type ContactFilter struct {
	Status *string
	Limit  int64
	Offset int64
}

// ListContacts returns contacts newest first, optionally filtered by status.
func (q *Queries) ListContacts(ctx context.Context, filter ContactFilter) ([]model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts`
	var args []any
	if filter.Status != nil {
		query += ` WHERE status = ?`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// CountContacts counts contacts matching the filter.
func (q *Queries) CountContacts(ctx context.Context, filter ContactFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM contacts`
	var args []any
	if filter.Status != nil {
		query += ` WHERE status = ?`
		args = append(args, *filter.Status)
	}
	var count int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// ContactPatch carries a partial update; nil fields are left untouched.
type ContactPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Subject *string
	Message *string
	Status  *string
}

// UpdateContact applies the non-nil patch fields and returns the updated row.
// An empty patch is a no-op returning the current row. Unknown ids yield
// sql.ErrNoRows.
func (q *Queries) UpdateContact(ctx context.Context, id int64, patch ContactPatch) (model.Contact, error) {
	var sets []string
	var args []any
	addSet := func(col string, val any) {
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Email != nil {
		addSet("email", *patch.Email)
	}
	if patch.Phone != nil {
		addSet("phone", *patch.Phone)
	}
	if patch.Subject != nil {
		addSet("subject", *patch.Subject)
	}
	if patch.Message != nil {
		addSet("message", *patch.Message)
	}
	if patch.Status != nil {
		addSet("status", *patch.Status)
	}
	if len(sets) == 0 {
		return q.GetContactByID(ctx, id)
	}
	addSet("updated_at", time.Now().UTC())
	args = append(args, id)

	row := q.db.QueryRowContext(ctx,
		`UPDATE contacts SET `+joinSets(sets)+` WHERE id = ? RETURNING `+contactColumns,
		args...)
	return scanContact(row)
}

// DeleteContact removes a contact. Returns false if no row matched.
func (q *Queries) DeleteContact(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ContactStats counts contacts per status.
func (q *Queries) ContactStats(ctx context.Context) (map[string]int64, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM contacts GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}
