// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/northboundstudio/brandsite/internal/model"
)

const jobColumns = `id, title, slug, department, location, employment_type,
	description, deadline, allow_cv_submission, published, created_at, updated_at`

const applicationColumns = `id, job_id, first_name, last_name, email, phone,
	cover_letter, resume_url, portfolio_url, ip_address, user_agent, country,
	created_at`

func scanJob(row interface{ Scan(...any) error }) (model.Job, error) {
	var j model.Job
	err := row.Scan(&j.ID, &j.Title, &j.Slug, &j.Department, &j.Location,
		&j.EmploymentType, &j.Description, &j.Deadline, &j.AllowCvSubmission,
		&j.Published, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}

func scanApplication(row interface{ Scan(...any) error }) (model.JobApplication, error) {
	var a model.JobApplication
	err := row.Scan(&a.ID, &a.JobID, &a.FirstName, &a.LastName, &a.Email,
		&a.Phone, &a.CoverLetter, &a.ResumeURL, &a.PortfolioURL,
		&a.IPAddress, &a.UserAgent, &a.Country, &a.CreatedAt)
	return a, err
}

// CreateJobParams holds the fields for a new job posting.
type CreateJobParams struct {
	Title             string
	Slug              string
	Department        string
	Location          string
	EmploymentType    string
	Description       string
	Deadline          sql.NullTime
	AllowCvSubmission bool
	Published         bool
}

// CreateJob inserts a job posting.
func (q *Queries) CreateJob(ctx context.Context, arg CreateJobParams) (model.Job, error) {
	now := time.Now().UTC()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO jobs (title, slug, department, location, employment_type,
			description, deadline, allow_cv_submission, published,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+jobColumns,
		arg.Title, arg.Slug, arg.Department, arg.Location, arg.EmploymentType,
		arg.Description, arg.Deadline, arg.AllowCvSubmission, arg.Published,
		now, now)
	return scanJob(row)
}

// GetJobByID returns a job or sql.ErrNoRows.
func (q *Queries) GetJobByID(ctx context.Context, id int64) (model.Job, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	return scanJob(row)
}

// GetJobBySlug returns a job by slug, optionally published-only.
func (q *Queries) GetJobBySlug(ctx context.Context, slug string, publishedOnly bool) (model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE slug = ?`
	if publishedOnly {
		query += ` AND published = 1`
	}
	row := q.db.QueryRowContext(ctx, query, slug)
	return scanJob(row)
}

// JobFilter narrows ListJobs; nil fields are ignored.
type JobFilter struct {
	Published  *bool
	Department *string
	Limit      int64
	Offset     int64
}

// ListJobs returns jobs newest first.
func (q *Queries) ListJobs(ctx context.Context, filter JobFilter) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	var conds []string
	var args []any
	if filter.Published != nil {
		conds = append(conds, `published = ?`)
		args = append(args, *filter.Published)
	}
	if filter.Department != nil {
		conds = append(conds, `department = ?`)
		args = append(args, *filter.Department)
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

	var jobs []model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// CountJobs counts jobs matching the filter.
func (q *Queries) CountJobs(ctx context.Context, filter JobFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM jobs`
	var conds []string
	var args []any
	if filter.Published != nil {
		conds = append(conds, `published = ?`)
		args = append(args, *filter.Published)
	}
	if filter.Department != nil {
		conds = append(conds, `department = ?`)
		args = append(args, *filter.Department)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + joinConds(conds)
	}

	var count int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// JobPatch carries a partial update; nil fields are left untouched.
type JobPatch struct {
	Title             *string
	Slug              *string
	Department        *string
	Location          *string
	EmploymentType    *string
	Description       *string
	Deadline          *time.Time
	AllowCvSubmission *bool
	Published         *bool
}

// UpdateJob applies the non-nil patch fields and returns the updated row.
func (q *Queries) UpdateJob(ctx context.Context, id int64, patch JobPatch) (model.Job, error) {
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
	if patch.Department != nil {
		addSet("department", *patch.Department)
	}
	if patch.Location != nil {
		addSet("location", *patch.Location)
	}
	if patch.EmploymentType != nil {
		addSet("employment_type", *patch.EmploymentType)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Deadline != nil {
		addSet("deadline", *patch.Deadline)
	}
	if patch.AllowCvSubmission != nil {
		addSet("allow_cv_submission", *patch.AllowCvSubmission)
	}
	if patch.Published != nil {
		addSet("published", *patch.Published)
	}
	if len(sets) == 0 {
		return q.GetJobByID(ctx, id)
	}
	addSet("updated_at", time.Now().UTC())
	args = append(args, id)

	row := q.db.QueryRowContext(ctx,
		`UPDATE jobs SET `+joinSets(sets)+` WHERE id = ? RETURNING `+jobColumns,
		args...)
	return scanJob(row)
}

// DeleteJob removes a job and (via FK cascade) its applications.
func (q *Queries) DeleteJob(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// UnpublishExpiredJobs unpublishes published jobs whose deadline has passed.
// Returns the number of jobs changed. Run periodically by the scheduler.
func (q *Queries) UnpublishExpiredJobs(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE jobs SET published = 0, updated_at = ?
		WHERE published = 1 AND deadline IS NOT NULL AND deadline < ?`,
		now.UTC(), now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CreateJobApplicationParams holds the fields for a new application.
type CreateJobApplicationParams struct {
	JobID        int64
	FirstName    string
	LastName     string
	Email        string
	Phone        sql.NullString
	CoverLetter  sql.NullString
	ResumeURL    sql.NullString
	PortfolioURL sql.NullString
	IPAddress    sql.NullString
	UserAgent    sql.NullString
	Country      sql.NullString
}

// CreateJobApplication inserts an application. A repeat application for the
// same (job, email) pair violates the unique index; detect it with
// IsUniqueViolation.
func (q *Queries) CreateJobApplication(ctx context.Context, arg CreateJobApplicationParams) (model.JobApplication, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO job_applications (job_id, first_name, last_name, email,
			phone, cover_letter, resume_url, portfolio_url, ip_address,
			user_agent, country, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+applicationColumns,
		arg.JobID, arg.FirstName, arg.LastName, arg.Email, arg.Phone,
		arg.CoverLetter, arg.ResumeURL, arg.PortfolioURL, arg.IPAddress,
		arg.UserAgent, arg.Country, time.Now().UTC())
	return scanApplication(row)
}

// GetJobApplicationByID returns an application or sql.ErrNoRows.
func (q *Queries) GetJobApplicationByID(ctx context.Context, id int64) (model.JobApplication, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE id = ?`, id)
	return scanApplication(row)
}

// HasJobApplication reports whether an application exists for the pair.
func (q *Queries) HasJobApplication(ctx context.Context, jobID int64, email string) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM job_applications WHERE job_id = ? AND email = ?`,
		jobID, email).Scan(&count)
	return count > 0, err
}

// ListJobApplications returns a job's applications, newest first.
func (q *Queries) ListJobApplications(ctx context.Context, jobID int64, limit, offset int64) ([]model.JobApplication, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM job_applications
		 WHERE job_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		jobID, normalizeLimit(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []model.JobApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// DeleteJobApplication removes an application. Returns false if no row matched.
func (q *Queries) DeleteJobApplication(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM job_applications WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ApplicationStats counts applications per job.
func (q *Queries) ApplicationStats(ctx context.Context) (map[int64]int64, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT job_id, COUNT(*) FROM job_applications GROUP BY job_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[int64]int64)
	for rows.Next() {
		var jobID, count int64
		if err := rows.Scan(&jobID, &count); err != nil {
			return nil, err
		}
		stats[jobID] = count
	}
	return stats, rows.Err()
}
