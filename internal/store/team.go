// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/northboundstudio/brandsite/internal/model"
)

const teamMemberColumns = `id, name, role, bio, image_url, position,
	featured, published, created_at, updated_at`

func scanTeamMember(row interface{ Scan(...any) error }) (model.TeamMember, error) {
	var m model.TeamMember
	err := row.Scan(&m.ID, &m.Name, &m.Role, &m.Bio, &m.ImageURL, &m.Position,
		&m.Featured, &m.Published, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// CreateTeamMemberParams holds the fields for a new team member.
type CreateTeamMemberParams struct {
	Name      string
	Role      string
	Bio       string
	ImageURL  sql.NullString
	Position  int64
	Featured  bool
	Published bool
}

// CreateTeamMember inserts a team member.
func (q *Queries) CreateTeamMember(ctx context.Context, arg CreateTeamMemberParams) (model.TeamMember, error) {
	now := time.Now().UTC()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO team_members (name, role, bio, image_url, position,
			featured, published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+teamMemberColumns,
		arg.Name, arg.Role, arg.Bio, arg.ImageURL, arg.Position,
		arg.Featured, arg.Published, now, now)
	return scanTeamMember(row)
}

// GetTeamMemberByID returns a team member or sql.ErrNoRows.
func (q *Queries) GetTeamMemberByID(ctx context.Context, id int64) (model.TeamMember, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+teamMemberColumns+` FROM team_members WHERE id = ?`, id)
	return scanTeamMember(row)
}

// TeamMemberFilter narrows ListTeamMembers; nil fields are ignored.
type TeamMemberFilter struct {
	Published *bool
	Featured  *bool
	Limit     int64
	Offset    int64
}

// ListTeamMembers returns team members ordered by position.
func (q *Queries) ListTeamMembers(ctx context.Context, filter TeamMemberFilter) ([]model.TeamMember, error) {
	query := `SELECT ` + teamMemberColumns + ` FROM team_members`
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

	var members []model.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// TeamMemberPatch carries a partial update; nil fields are left untouched.
type TeamMemberPatch struct {
	Name      *string
	Role      *string
	Bio       *string
	ImageURL  *string
	Position  *int64
	Featured  *bool
	Published *bool
}

// UpdateTeamMember applies the non-nil patch fields and returns the updated row.
func (q *Queries) UpdateTeamMember(ctx context.Context, id int64, patch TeamMemberPatch) (model.TeamMember, error) {
	var sets []string
	var args []any
	addSet := func(col string, val any) {
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Role != nil {
		addSet("role", *patch.Role)
	}
	if patch.Bio != nil {
		addSet("bio", *patch.Bio)
	}
	if patch.ImageURL != nil {
		addSet("image_url", *patch.ImageURL)
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
		return q.GetTeamMemberByID(ctx, id)
	}
	addSet("updated_at", time.Now().UTC())
	args = append(args, id)

	row := q.db.QueryRowContext(ctx,
		`UPDATE team_members SET `+joinSets(sets)+` WHERE id = ? RETURNING `+teamMemberColumns,
		args...)
	return scanTeamMember(row)
}

// DeleteTeamMember removes a team member. Returns false if no row matched.
func (q *Queries) DeleteTeamMember(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
