// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/northboundstudio/brandsite/internal/model"
)

const consultationColumns = `id, name, email, phone, company, website, role,
	main_challenge, other_challenge, session_goal, preferred_at,
	consultation_type, status, ip_address, user_agent, country,
	created_at, updated_at`

func scanConsultation(row interface{ Scan(...any) error }) (model.Consultation, error) {
	var c model.Consultation
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Website,
		&c.Role, &c.MainChallenge, &c.OtherChallenge, &c.SessionGoal,
		&c.PreferredAt, &c.ConsultationType, &c.Status, &c.IPAddress,
		&c.UserAgent, &c.Country, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateConsultationParams holds the fields for a new booking request.
type CreateConsultationParams struct {
	Name             string
	Email            string
	Phone            sql.NullString
	Company          sql.NullString
	Website          sql.NullString
	Role             sql.NullString
	MainChallenge    string
	OtherChallenge   sql.NullString
	SessionGoal      string
	PreferredAt      sql.NullTime
	ConsultationType string
	IPAddress        sql.NullString
	UserAgent        sql.NullString
	Country          sql.NullString
}

// CreateConsultation inserts a booking request with status "pending".
func (q *Queries) CreateConsultation(ctx context.Context, arg CreateConsultationParams) (model.Consultation, error) {
	now := time.Now().UTC()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO consultations (name, email, phone, company, website, role,
			main_challenge, other_challenge, session_goal, preferred_at,
			consultation_type, status, ip_address, user_agent, country,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+consultationColumns,
		arg.Name, arg.Email, arg.Phone, arg.Company, arg.Website, arg.Role,
		arg.MainChallenge, arg.OtherChallenge, arg.SessionGoal, arg.PreferredAt,
		arg.ConsultationType, model.ConsultationStatusPending, arg.IPAddress,
		arg.UserAgent, arg.Country, now, now)
	return scanConsultation(row)
}

// GetConsultationByID returns a consultation or sql.ErrNoRows.
func (q *Queries) GetConsultationByID(ctx context.Context, id int64) (model.Consultation, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+consultationColumns+` FROM consultations WHERE id = ?`, id)
	return scanConsultation(row)
}

// ConsultationFilter narrows ListConsultations; nil fields are ignored.
type ConsultationFilter struct {
	Status *string
	Type   *string
	Limit  int64
	Offset int64
}

// ListConsultations returns consultations newest first.
func (q *Queries) ListConsultations(ctx context.Context, filter ConsultationFilter) ([]model.Consultation, error) {
	query := `SELECT ` + consultationColumns + ` FROM consultations`
	var conds []string
	var args []any
	if filter.Status != nil {
		conds = append(conds, `status = ?`)
		args = append(args, *filter.Status)
	}
	if filter.Type != nil {
		conds = append(conds, `consultation_type = ?`)
		args = append(args, *filter.Type)
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

	var consultations []model.Consultation
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		consultations = append(consultations, c)
	}
	return consultations, rows.Err()
}

// ConsultationPatch carries a partial update; nil fields are left untouched.
type ConsultationPatch struct {
	Status      *string
	PreferredAt *time.Time
}

// UpdateConsultation applies the non-nil patch fields and returns the updated row.
// Only the scheduling fields are mutable after submission.
func (q *Queries) UpdateConsultation(ctx context.Context, id int64, patch ConsultationPatch) (model.Consultation, error) {
	var sets []string
	var args []any
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.PreferredAt != nil {
		sets = append(sets, "preferred_at = ?")
		args = append(args, *patch.PreferredAt)
	}
	if len(sets) == 0 {
		return q.GetConsultationByID(ctx, id)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	row := q.db.QueryRowContext(ctx,
		`UPDATE consultations SET `+joinSets(sets)+` WHERE id = ? RETURNING `+consultationColumns,
		args...)
	return scanConsultation(row)
}

// DeleteConsultation removes a consultation. Returns false if no row matched.
func (q *Queries) DeleteConsultation(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM consultations WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ConsultationStats counts consultations per status.
func (q *Queries) ConsultationStats(ctx context.Context) (map[string]int64, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM consultations GROUP BY status`)
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
