// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/northboundstudio/brandsite/internal/model"
	"github.com/northboundstudio/brandsite/internal/service"
	"github.com/northboundstudio/brandsite/internal/store"
	"github.com/northboundstudio/brandsite/internal/util"
)

// CampaignResponse represents a campaign in API responses.
type CampaignResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Active      bool       `json:"active"`
	Running     bool       `json:"running"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func campaignToResponse(c model.Campaign) CampaignResponse {
	resp := CampaignResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Active:      c.Active,
		Running:     c.IsRunning(time.Now().UTC()),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.StartsAt.Valid {
		resp.StartsAt = &c.StartsAt.Time
	}
	if c.EndsAt.Valid {
		resp.EndsAt = &c.EndsAt.Time
	}
	return resp
}

// CampaignSubmissionResponse represents a submission in API responses.
type CampaignSubmissionResponse struct {
	ID         int64     `json:"id"`
	CampaignID int64     `json:"campaign_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	Country    string    `json:"country,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func submissionToResponse(s model.CampaignSubmission) CampaignSubmissionResponse {
	return CampaignSubmissionResponse{
		ID:         s.ID,
		CampaignID: s.CampaignID,
		Name:       s.Name,
		Email:      s.Email,
		Message:    s.Message,
		Country:    s.Country.String,
		CreatedAt:  s.CreatedAt,
	}
}

// GetPublicCampaign handles GET /api/v1/campaigns/{slug} (public).
// Inactive campaigns are invisible here.
func (h *Handler) GetPublicCampaign(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	campaign, err := h.queries.GetCampaignBySlug(r.Context(), slug, true)
	if err != nil {
		WriteNotFound(w, "Campaign not found")
		return
	}
	WriteSuccess(w, campaignToResponse(campaign), nil)
}

// CreateCampaignSubmissionRequest is the public landing form payload.
type CreateCampaignSubmissionRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// CreateCampaignSubmission handles POST /api/v1/campaigns/{slug}/submissions (public).
func (h *Handler) CreateCampaignSubmission(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	campaign, err := h.queries.GetCampaignBySlug(r.Context(), slug, true)
	if err != nil {
		WriteNotFound(w, "Campaign not found")
		return
	}
	if !campaign.IsRunning(time.Now().UTC()) {
		WriteBadRequest(w, "This campaign is not accepting submissions", nil)
		return
	}

	var req CreateCampaignSubmissionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if v := model.ValidateCampaignSubmission(req.Name, req.Email, req.Message); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	meta := service.CollectRequestMeta(r, h.geo)
	submission, err := h.queries.CreateCampaignSubmission(r.Context(), store.CreateCampaignSubmissionParams{
		CampaignID: campaign.ID,
		Name:       req.Name,
		Email:      req.Email,
		Message:    req.Message,
		IPAddress:  util.NullStringFromValue(meta.IPAddress),
		UserAgent:  util.NullStringFromValue(meta.UserAgent),
		Country:    util.NullStringFromValue(meta.Country),
	})
	if err != nil {
		slog.Error("failed to create campaign submission", "category", "form", "campaign_id", campaign.ID, "error", err)
		WriteInternalError(w, "Failed to submit form")
		return
	}

	if err := h.mailer.SendCampaignSubmissionNotification(campaign.Name, req.Name, req.Email, req.Message); err != nil {
		slog.Warn("campaign submission notification failed", "category", "mail", "submission_id", submission.ID, "error", err)
	}

	WriteCreated(w, submissionToResponse(submission))
}

// ListCampaigns handles GET /api/v1/admin/campaigns.
func (h *Handler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	limit, offset, meta := pagination(r)

	filter := store.CampaignFilter{Limit: limit, Offset: offset}
	if s := r.URL.Query().Get("active"); s == "true" || s == "false" {
		active := s == "true"
		filter.Active = &active
	}

	campaigns, err := h.queries.ListCampaigns(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to list campaigns")
		return
	}

	resp := make([]CampaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		resp = append(resp, campaignToResponse(c))
	}
	WriteSuccess(w, resp, meta)
}

// GetCampaign handles GET /api/v1/admin/campaigns/{id}.
func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, ok := requireEntityByID(w, r, "campaign", func(id int64) (model.Campaign, error) {
		return h.queries.GetCampaignByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, campaignToResponse(campaign), nil)
}

// CreateCampaignRequest is the admin payload for a new campaign.
type CreateCampaignRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug,omitempty"`
	Description string  `json:"description"`
	Active      bool    `json:"active"`
	StartsAt    *string `json:"starts_at,omitempty"`
	EndsAt      *string `json:"ends_at,omitempty"`
}

// CreateCampaign handles POST /api/v1/admin/campaigns.
func (h *Handler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req CreateCampaignRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Slug == "" {
		req.Slug = util.Slugify(req.Name)
	}

	if v := model.ValidateCampaign(req.Name, req.Slug, req.Description); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	startsAt, ok := parseOptionalTime(w, req.StartsAt, "starts_at")
	if !ok {
		return
	}
	endsAt, ok := parseOptionalTime(w, req.EndsAt, "ends_at")
	if !ok {
		return
	}
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		WriteBadRequest(w, "ends_at must be after starts_at", nil)
		return
	}

	campaign, err := h.queries.CreateCampaign(r.Context(), store.CreateCampaignParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Active:      req.Active,
		StartsAt:    util.NullTimeFromPtr(startsAt),
		EndsAt:      util.NullTimeFromPtr(endsAt),
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteBadRequest(w, "Slug already exists", map[string]string{"slug": "Slug already exists"})
			return
		}
		WriteInternalError(w, "Failed to create campaign")
		return
	}

	WriteCreated(w, campaignToResponse(campaign))
}

// UpdateCampaignRequest is the admin patch payload for a campaign.
type UpdateCampaignRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
	StartsAt    *string `json:"starts_at,omitempty"`
	EndsAt      *string `json:"ends_at,omitempty"`
}

// UpdateCampaign handles PUT /api/v1/admin/campaigns/{id}.
func (h *Handler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid campaign ID", nil)
		return
	}

	var req UpdateCampaignRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	current, err := h.queries.GetCampaignByID(r.Context(), id)
	if err != nil {
		WriteNotFound(w, "Campaign not found")
		return
	}

	merged := current
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Slug != nil {
		merged.Slug = *req.Slug
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if v := model.ValidateCampaign(merged.Name, merged.Slug, merged.Description); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	patch := store.CampaignPatch{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Active:      req.Active,
	}
	startsAt, ok := parseOptionalTime(w, req.StartsAt, "starts_at")
	if !ok {
		return
	}
	endsAt, ok := parseOptionalTime(w, req.EndsAt, "ends_at")
	if !ok {
		return
	}
	patch.StartsAt = startsAt
	patch.EndsAt = endsAt

	campaign, err := h.queries.UpdateCampaign(r.Context(), id, patch)
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteBadRequest(w, "Slug already exists", map[string]string{"slug": "Slug already exists"})
			return
		}
		writeUpdateError(w, err, "campaign")
		return
	}
	WriteSuccess(w, campaignToResponse(campaign), nil)
}

// DeleteCampaign handles DELETE /api/v1/admin/campaigns/{id}. Submissions
// go with it via the foreign key cascade.
func (h *Handler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	deleteEntityByID(w, r, "campaign", func(id int64) (bool, error) {
		return h.queries.DeleteCampaign(r.Context(), id)
	})
}

// ListCampaignSubmissions handles GET /api/v1/admin/campaigns/{id}/submissions.
func (h *Handler) ListCampaignSubmissions(w http.ResponseWriter, r *http.Request) {
	campaign, ok := requireEntityByID(w, r, "campaign", func(id int64) (model.Campaign, error) {
		return h.queries.GetCampaignByID(r.Context(), id)
	})
	if !ok {
		return
	}

	limit, offset, meta := pagination(r)
	submissions, err := h.queries.ListCampaignSubmissions(r.Context(), campaign.ID, limit, offset)
	if err != nil {
		WriteInternalError(w, "Failed to list submissions")
		return
	}
	total, err := h.queries.CountCampaignSubmissions(r.Context(), campaign.ID)
	if err != nil {
		WriteInternalError(w, "Failed to count submissions")
		return
	}
	meta.Total = total

	resp := make([]CampaignSubmissionResponse, 0, len(submissions))
	for _, s := range submissions {
		resp = append(resp, submissionToResponse(s))
	}
	WriteSuccess(w, resp, meta)
}

// parseOptionalTime parses an RFC 3339 timestamp pointer, treating nil and
// empty string as absent. On failure it writes a 400 and returns ok=false.
func parseOptionalTime(w http.ResponseWriter, s *string, field string) (*time.Time, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		WriteBadRequest(w, field+" must be an RFC 3339 timestamp", nil)
		return nil, false
	}
	return &t, true
}
