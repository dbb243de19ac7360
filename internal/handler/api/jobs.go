// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/northboundstudio/brandsite/internal/model"
	"github.com/northboundstudio/brandsite/internal/service"
	"github.com/northboundstudio/brandsite/internal/store"
	"github.com/northboundstudio/brandsite/internal/util"
)

// JobResponse represents a job posting in API responses.
type JobResponse struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Slug              string     `json:"slug"`
	Department        string     `json:"department"`
	Location          string     `json:"location"`
	EmploymentType    string     `json:"employment_type"`
	Description       string     `json:"description"`
	Deadline          *time.Time `json:"deadline,omitempty"`
	AllowCvSubmission bool       `json:"allow_cv_submission"`
	Published         bool       `json:"published"`
	Open              bool       `json:"open"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func jobToResponse(j model.Job) JobResponse {
	resp := JobResponse{
		ID:                j.ID,
		Title:             j.Title,
		Slug:              j.Slug,
		Department:        j.Department,
		Location:          j.Location,
		EmploymentType:    j.EmploymentType,
		Description:       j.Description,
		AllowCvSubmission: j.AllowCvSubmission,
		Published:         j.Published,
		Open:              j.IsOpen(time.Now().UTC()),
		CreatedAt:         j.CreatedAt,
		UpdatedAt:         j.UpdatedAt,
	}
	if j.Deadline.Valid {
		resp.Deadline = &j.Deadline.Time
	}
	return resp
}

// JobApplicationResponse represents an application in API responses.
type JobApplicationResponse struct {
	ID           int64     `json:"id"`
	JobID        int64     `json:"job_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	CoverLetter  string    `json:"cover_letter,omitempty"`
	ResumeURL    string    `json:"resume_url,omitempty"`
	PortfolioURL string    `json:"portfolio_url,omitempty"`
	Country      string    `json:"country,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func applicationToResponse(a model.JobApplication) JobApplicationResponse {
	return JobApplicationResponse{
		ID:           a.ID,
		JobID:        a.JobID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Email:        a.Email,
		Phone:        a.Phone.String,
		CoverLetter:  a.CoverLetter.String,
		ResumeURL:    a.ResumeURL.String,
		PortfolioURL: a.PortfolioURL.String,
		Country:      a.Country.String,
		CreatedAt:    a.CreatedAt,
	}
}

// ListPublicJobs handles GET /api/v1/jobs (public).
// Only postings that are published and still open are returned.
func (h *Handler) ListPublicJobs(w http.ResponseWriter, r *http.Request) {
	published := true
	filter := store.JobFilter{Published: &published}
	if dept := r.URL.Query().Get("department"); dept != "" {
		filter.Department = &dept
	}

	jobs, err := h.queries.ListJobs(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to list jobs")
		return
	}

	now := time.Now().UTC()
	resp := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		if !jobs[i].IsOpen(now) {
			continue
		}
		resp = append(resp, jobToResponse(jobs[i]))
	}
	WriteSuccess(w, resp, nil)
}

// resolvePublicJob looks up a published job by the route value, which
// may be either a slug or a numeric ID. Drafts resolve to
// sql.ErrNoRows in both forms.
func (h *Handler) resolvePublicJob(ctx context.Context, param string) (model.Job, error) {
	if id, err := strconv.ParseInt(param, 10, 64); err == nil {
		job, err := h.queries.GetJobByID(ctx, id)
		if err != nil {
			return model.Job{}, err
		}
		if !job.Published {
			return model.Job{}, sql.ErrNoRows
		}
		return job, nil
	}
	return h.queries.GetJobBySlug(ctx, param, true)
}

// GetPublicJob handles GET /api/v1/jobs/{slug} (public). The slug
// position also accepts a job ID.
func (h *Handler) GetPublicJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.resolvePublicJob(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		WriteNotFound(w, "Job not found")
		return
	}
	WriteSuccess(w, jobToResponse(job), nil)
}

// ApplyRequest is the public job application payload.
type ApplyRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	CoverLetter  string `json:"cover_letter,omitempty"`
	ResumeURL    string `json:"resume_url,omitempty"`
	PortfolioURL string `json:"portfolio_url,omitempty"`
}

// Apply handles POST /api/v1/jobs/{slug}/apply (public). The slug
// position also accepts a job ID.
// The (job, email) pair is unique at the database level, so two
// concurrent submissions cannot both get through.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	job, err := h.resolvePublicJob(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		WriteNotFound(w, "Job not found")
		return
	}
	if !job.IsOpen(time.Now().UTC()) {
		WriteBadRequest(w, "This position is no longer accepting applications", nil)
		return
	}

	var req ApplyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !job.AllowCvSubmission && req.ResumeURL != "" {
		WriteBadRequest(w, "This position does not accept resume uploads", nil)
		return
	}

	if v := model.ValidateJobApplication(req.FirstName, req.LastName, req.Email, req.ResumeURL, req.PortfolioURL); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	meta := service.CollectRequestMeta(r, h.geo)
	application, err := h.queries.CreateJobApplication(r.Context(), store.CreateJobApplicationParams{
		JobID:        job.ID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        util.NullStringFromValue(req.Phone),
		CoverLetter:  util.NullStringFromValue(req.CoverLetter),
		ResumeURL:    util.NullStringFromValue(req.ResumeURL),
		PortfolioURL: util.NullStringFromValue(req.PortfolioURL),
		IPAddress:    util.NullStringFromValue(meta.IPAddress),
		UserAgent:    util.NullStringFromValue(meta.UserAgent),
		Country:      util.NullStringFromValue(meta.Country),
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteBadRequest(w, "You have already applied for this position", nil)
			return
		}
		slog.Error("failed to create application", "category", "form", "job_id", job.ID, "error", err)
		WriteInternalError(w, "Failed to submit application")
		return
	}

	if err := h.mailer.SendApplicationNotification(job.Title, req.FirstName, req.LastName, req.Email); err != nil {
		slog.Warn("application notification failed", "category", "mail", "application_id", application.ID, "error", err)
	}
	if err := h.mailer.SendApplicationConfirmation(req.Email, req.FirstName, job.Title); err != nil {
		slog.Warn("application confirmation failed", "category", "mail", "application_id", application.ID, "error", err)
	}

	WriteCreated(w, map[string]int64{"applicationId": application.ID})
}

// ListJobs handles GET /api/v1/admin/jobs.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	limit, offset, meta := pagination(r)

	filter := store.JobFilter{Limit: limit, Offset: offset}
	if s := r.URL.Query().Get("published"); s == "true" || s == "false" {
		published := s == "true"
		filter.Published = &published
	}
	if dept := r.URL.Query().Get("department"); dept != "" {
		filter.Department = &dept
	}

	jobs, err := h.queries.ListJobs(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to list jobs")
		return
	}

	resp := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		resp = append(resp, jobToResponse(j))
	}
	WriteSuccess(w, resp, meta)
}

// GetJob handles GET /api/v1/admin/jobs/{id}.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := requireEntityByID(w, r, "job", func(id int64) (model.Job, error) {
		return h.queries.GetJobByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, jobToResponse(job), nil)
}

// CreateJobRequest is the admin payload for a new job posting.
type CreateJobRequest struct {
	Title             string  `json:"title"`
	Slug              string  `json:"slug,omitempty"`
	Department        string  `json:"department"`
	Location          string  `json:"location"`
	EmploymentType    string  `json:"employment_type"`
	Description       string  `json:"description"`
	Deadline          *string `json:"deadline,omitempty"`
	AllowCvSubmission bool    `json:"allow_cv_submission"`
	Published         bool    `json:"published"`
}

// CreateJob handles POST /api/v1/admin/jobs.
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}

	if v := model.ValidateJob(req.Title, req.Slug, req.Department, req.Location, req.EmploymentType, req.Description); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	var deadline *time.Time
	if req.Deadline != nil && *req.Deadline != "" {
		t, parseErr := time.Parse(time.RFC3339, *req.Deadline)
		if parseErr != nil {
			WriteBadRequest(w, "deadline must be an RFC 3339 timestamp", nil)
			return
		}
		deadline = &t
	}

	job, err := h.queries.CreateJob(r.Context(), store.CreateJobParams{
		Title:             req.Title,
		Slug:              req.Slug,
		Department:        req.Department,
		Location:          req.Location,
		EmploymentType:    req.EmploymentType,
		Description:       req.Description,
		Deadline:          util.NullTimeFromPtr(deadline),
		AllowCvSubmission: req.AllowCvSubmission,
		Published:         req.Published,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteBadRequest(w, "Slug already exists", map[string]string{"slug": "Slug already exists"})
			return
		}
		WriteInternalError(w, "Failed to create job")
		return
	}

	WriteCreated(w, jobToResponse(job))
}

// UpdateJobRequest is the admin patch payload for a job posting.
type UpdateJobRequest struct {
	Title             *string `json:"title,omitempty"`
	Slug              *string `json:"slug,omitempty"`
	Department        *string `json:"department,omitempty"`
	Location          *string `json:"location,omitempty"`
	EmploymentType    *string `json:"employment_type,omitempty"`
	Description       *string `json:"description,omitempty"`
	Deadline          *string `json:"deadline,omitempty"`
	AllowCvSubmission *bool   `json:"allow_cv_submission,omitempty"`
	Published         *bool   `json:"published,omitempty"`
}

// UpdateJob handles PUT /api/v1/admin/jobs/{id}.
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid job ID", nil)
		return
	}

	var req UpdateJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	current, err := h.queries.GetJobByID(r.Context(), id)
	if err != nil {
		WriteNotFound(w, "Job not found")
		return
	}

	merged := current
	if req.Title != nil {
		merged.Title = *req.Title
	}
	if req.Slug != nil {
		merged.Slug = *req.Slug
	}
	if req.Department != nil {
		merged.Department = *req.Department
	}
	if req.Location != nil {
		merged.Location = *req.Location
	}
	if req.EmploymentType != nil {
		merged.EmploymentType = *req.EmploymentType
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if v := model.ValidateJob(merged.Title, merged.Slug, merged.Department, merged.Location, merged.EmploymentType, merged.Description); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	patch := store.JobPatch{
		Title:             req.Title,
		Slug:              req.Slug,
		Department:        req.Department,
		Location:          req.Location,
		EmploymentType:    req.EmploymentType,
		Description:       req.Description,
		AllowCvSubmission: req.AllowCvSubmission,
		Published:         req.Published,
	}
	if req.Deadline != nil && *req.Deadline != "" {
		t, parseErr := time.Parse(time.RFC3339, *req.Deadline)
		if parseErr != nil {
			WriteBadRequest(w, "deadline must be an RFC 3339 timestamp", nil)
			return
		}
		patch.Deadline = &t
	}

	job, err := h.queries.UpdateJob(r.Context(), id, patch)
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteBadRequest(w, "Slug already exists", map[string]string{"slug": "Slug already exists"})
			return
		}
		writeUpdateError(w, err, "job")
		return
	}
	WriteSuccess(w, jobToResponse(job), nil)
}

// DeleteJob handles DELETE /api/v1/admin/jobs/{id}. Applications for
// the job are removed by the foreign key cascade.
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	deleteEntityByID(w, r, "job", func(id int64) (bool, error) {
		return h.queries.DeleteJob(r.Context(), id)
	})
}

// ListJobApplications handles GET /api/v1/admin/jobs/{id}/applications.
func (h *Handler) ListJobApplications(w http.ResponseWriter, r *http.Request) {
	job, ok := requireEntityByID(w, r, "job", func(id int64) (model.Job, error) {
		return h.queries.GetJobByID(r.Context(), id)
	})
	if !ok {
		return
	}

	limit, offset, meta := pagination(r)
	applications, err := h.queries.ListJobApplications(r.Context(), job.ID, limit, offset)
	if err != nil {
		WriteInternalError(w, "Failed to list applications")
		return
	}

	resp := make([]JobApplicationResponse, 0, len(applications))
	for _, a := range applications {
		resp = append(resp, applicationToResponse(a))
	}
	WriteSuccess(w, resp, meta)
}

// DeleteJobApplication handles DELETE /api/v1/admin/applications/{id}.
func (h *Handler) DeleteJobApplication(w http.ResponseWriter, r *http.Request) {
	deleteEntityByID(w, r, "application", func(id int64) (bool, error) {
		return h.queries.DeleteJobApplication(r.Context(), id)
	})
}

// ApplicationStats handles GET /api/v1/admin/jobs/stats.
// Returns application counts keyed by job ID.
func (h *Handler) ApplicationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.ApplicationStats(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to load application stats")
		return
	}
	WriteSuccess(w, stats, nil)
}
