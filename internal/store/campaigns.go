// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/northboundstudio/brandsite/internal/model"
)

const campaignColumns = `id, name, slug, description, active, starts_at,
	ends_at, created_at, updated_at`

const submissionColumns = `id, campaign_id, name, email, message,
	ip_address, user_agent, country, created_at`

func scanCampaign(row interface{ Scan(...any) error }) (model.Campaign, error) {
	var c model.Campaign
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Active,
		&c.StartsAt, &c.EndsAt, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func scanSubmission(row interface{ Scan(...any) error }) (model.CampaignSubmission, error) {
	var s model.CampaignSubmission
	err := row.Scan(&s.ID, &s.CampaignID, &s.Name, &s.Email, &s.Message,
		&s.IPAddress, &s.UserAgent, &s.Country, &s.CreatedAt)
	return s, err
}

// CreateCampaignParams holds the fields for a new campaign.
type CreateCampaignParams struct {
	Name        string
	Slug        string
	Description string
	Active      bool
	StartsAt    sql.NullTime
	EndsAt      sql.NullTime
}

// CreateCampaign inserts a campaign.
func (q *Queries) CreateCampaign(ctx context.Context, arg CreateCampaignParams) (model.Campaign, error) {
	now := time.Now().UTC()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO campaigns (name, slug, description, active, starts_at,
			ends_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+campaignColumns,
		arg.Name, arg.Slug, arg.Description, arg.Active, arg.StartsAt,
		arg.EndsAt, now, now)
	return scanCampaign(row)
}

// GetCampaignByID returns a campaign or sql.ErrNoRows.
func (q *Queries) GetCampaignByID(ctx context.Context, id int64) (model.Campaign, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = ?`, id)
	return scanCampaign(row)
}

// GetCampaignBySlug returns a campaign by slug, optionally active-only.
func (q *Queries) GetCampaignBySlug(ctx context.Context, slug string, activeOnly bool) (model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE slug = ?`
	if activeOnly {
		query += ` AND active = 1`
	}
	row := q.db.QueryRowContext(ctx, query, slug)
	return scanCampaign(row)
}

// CampaignFilter narrows ListCampaigns; nil fields are ignored.
type CampaignFilter struct {
	Active *bool
	Limit  int64
	Offset int64
}

// ListCampaigns returns campaigns newest first.
func (q *Queries) ListCampaigns(ctx context.Context, filter CampaignFilter) ([]model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	var args []any
	if filter.Active != nil {
		query += ` WHERE active = ?`
		args = append(args, *filter.Active)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []model.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// CampaignPatch carries a partial update; nil fields are left untouched.
type CampaignPatch struct {
	Name        *string
	Slug        *string
	Description *string
	Active      *bool
	StartsAt    *time.Time
	EndsAt      *time.Time
}

// UpdateCampaign applies the non-nil patch fields and returns the updated row.
func (q *Queries) UpdateCampaign(ctx context.Context, id int64, patch CampaignPatch) (model.Campaign, error) {
	var sets []string
	var args []any
	addSet := func(col string, val any) {
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Slug != nil {
		addSet("slug", *patch.Slug)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Active != nil {
		addSet("active", *patch.Active)
	}
	if patch.StartsAt != nil {
		addSet("starts_at", *patch.StartsAt)
	}
	if patch.EndsAt != nil {
		addSet("ends_at", *patch.EndsAt)
	}
	if len(sets) == 0 {
		return q.GetCampaignByID(ctx, id)
	}
	addSet("updated_at", time.Now().UTC())
	args = append(args, id)

	row := q.db.QueryRowContext(ctx,
		`UPDATE campaigns SET `+joinSets(sets)+` WHERE id = ? RETURNING `+campaignColumns,
		args...)
	return scanCampaign(row)
}

// DeleteCampaign removes a campaign and (via FK cascade) its submissions.
func (q *Queries) DeleteCampaign(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CreateCampaignSubmissionParams holds the fields for a new submission.
type CreateCampaignSubmissionParams struct {
	CampaignID int64
	Name       string
	Email      string
	Message    string
	IPAddress  sql.NullString
	UserAgent  sql.NullString
	Country    sql.NullString
}

// CreateCampaignSubmission inserts a form submission for a campaign.
func (q *Queries) CreateCampaignSubmission(ctx context.Context, arg CreateCampaignSubmissionParams) (model.CampaignSubmission, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO campaign_submissions (campaign_id, name, email, message,
			ip_address, user_agent, country, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+submissionColumns,
		arg.CampaignID, arg.Name, arg.Email, arg.Message, arg.IPAddress,
		arg.UserAgent, arg.Country, time.Now().UTC())
	return scanSubmission(row)
}

// ListCampaignSubmissions returns a campaign's submissions, newest first.
func (q *Queries) ListCampaignSubmissions(ctx context.Context, campaignID int64, limit, offset int64) ([]model.CampaignSubmission, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+submissionColumns+` FROM campaign_submissions
		 WHERE campaign_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		campaignID, normalizeLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.CampaignSubmission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// CountCampaignSubmissions counts a campaign's submissions.
func (q *Queries) CountCampaignSubmissions(ctx context.Context, campaignID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM campaign_submissions WHERE campaign_id = ?`,
		campaignID).Scan(&count)
	return count, err
}
