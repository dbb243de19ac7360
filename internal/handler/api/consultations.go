// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/northboundstudio/brandsite/internal/model"
	"github.com/northboundstudio/brandsite/internal/service"
	"github.com/northboundstudio/brandsite/internal/store"
	"github.com/northboundstudio/brandsite/internal/util"
)

// ConsultationResponse represents a consultation request in API responses.
type ConsultationResponse struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	Company          string     `json:"company,omitempty"`
	Website          string     `json:"website,omitempty"`
	Role             string     `json:"role,omitempty"`
	MainChallenge    string     `json:"main_challenge"`
	OtherChallenge   string     `json:"other_challenge,omitempty"`
	SessionGoal      string     `json:"session_goal"`
	PreferredAt      *time.Time `json:"preferred_at,omitempty"`
	ConsultationType string     `json:"consultation_type"`
	Status           string     `json:"status"`
	Country          string     `json:"country,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func consultationToResponse(c model.Consultation) ConsultationResponse {
	resp := ConsultationResponse{
		ID:               c.ID,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone.String,
		Company:          c.Company.String,
		Website:          c.Website.String,
		Role:             c.Role.String,
		MainChallenge:    c.MainChallenge,
		OtherChallenge:   c.OtherChallenge.String,
		SessionGoal:      c.SessionGoal,
		ConsultationType: c.ConsultationType,
		Status:           c.Status,
		Country:          c.Country.String,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if c.PreferredAt.Valid {
		resp.PreferredAt = &c.PreferredAt.Time
	}
	return resp
}

// CreateConsultationRequest is the public booking form payload.
type CreateConsultationRequest struct {
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone,omitempty"`
	Company          string  `json:"company,omitempty"`
	Website          string  `json:"website,omitempty"`
	Role             string  `json:"role,omitempty"`
	MainChallenge    string  `json:"main_challenge"`
	OtherChallenge   string  `json:"other_challenge,omitempty"`
	SessionGoal      string  `json:"session_goal"`
	PreferredAt      *string `json:"preferred_at,omitempty"`
	ConsultationType string  `json:"consultation_type"`
}

// CreateConsultation handles POST /api/v1/consultations (public).
func (h *Handler) CreateConsultation(w http.ResponseWriter, r *http.Request) {
	var req CreateConsultationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := model.ValidateConsultation(req.Name, req.Email, req.Website,
		req.MainChallenge, req.OtherChallenge, req.SessionGoal, req.ConsultationType)
	if !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	var preferredAt *time.Time
	if req.PreferredAt != nil && *req.PreferredAt != "" {
		t, err := time.Parse(time.RFC3339, *req.PreferredAt)
		if err != nil {
			WriteBadRequest(w, "preferred_at must be an RFC 3339 timestamp", nil)
			return
		}
		preferredAt = &t
	}

	meta := service.CollectRequestMeta(r, h.geo)
	consultation, err := h.queries.CreateConsultation(r.Context(), store.CreateConsultationParams{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            util.NullStringFromValue(req.Phone),
		Company:          util.NullStringFromValue(req.Company),
		Website:          util.NullStringFromValue(req.Website),
		Role:             util.NullStringFromValue(req.Role),
		MainChallenge:    req.MainChallenge,
		OtherChallenge:   util.NullStringFromValue(req.OtherChallenge),
		SessionGoal:      req.SessionGoal,
		PreferredAt:      util.NullTimeFromPtr(preferredAt),
		ConsultationType: req.ConsultationType,
		IPAddress:        util.NullStringFromValue(meta.IPAddress),
		UserAgent:        util.NullStringFromValue(meta.UserAgent),
		Country:          util.NullStringFromValue(meta.Country),
	})
	if err != nil {
		slog.Error("failed to create consultation", "category", "form", "error", err)
		WriteInternalError(w, "Failed to submit consultation request")
		return
	}

	challenge := req.MainChallenge
	if req.MainChallenge == model.ChallengeOther {
		challenge = req.OtherChallenge
	}
	if err := h.mailer.SendConsultationNotification(req.Name, req.Email, req.ConsultationType, challenge, req.SessionGoal); err != nil {
		slog.Warn("consultation notification failed", "category", "mail", "consultation_id", consultation.ID, "error", err)
	}
	if err := h.mailer.SendConsultationConfirmation(req.Email, req.Name); err != nil {
		slog.Warn("consultation confirmation failed", "category", "mail", "consultation_id", consultation.ID, "error", err)
	}

	WriteCreated(w, consultationToResponse(consultation))
}

// ListConsultations handles GET /api/v1/admin/consultations.
func (h *Handler) ListConsultations(w http.ResponseWriter, r *http.Request) {
	limit, offset, meta := pagination(r)

	filter := store.ConsultationFilter{Limit: limit, Offset: offset}
	if status := r.URL.Query().Get("status"); status != "" {
		if !model.IsValidConsultationStatus(status) {
			WriteBadRequest(w, "Invalid status filter", nil)
			return
		}
		filter.Status = &status
	}
	if t := r.URL.Query().Get("type"); t != "" {
		if !model.IsValidConsultationType(t) {
			WriteBadRequest(w, "Invalid type filter", nil)
			return
		}
		filter.Type = &t
	}

	consultations, err := h.queries.ListConsultations(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to list consultations")
		return
	}

	resp := make([]ConsultationResponse, 0, len(consultations))
	for _, c := range consultations {
		resp = append(resp, consultationToResponse(c))
	}
	WriteSuccess(w, resp, meta)
}

// GetConsultation handles GET /api/v1/admin/consultations/{id}.
func (h *Handler) GetConsultation(w http.ResponseWriter, r *http.Request) {
	consultation, ok := requireEntityByID(w, r, "consultation", func(id int64) (model.Consultation, error) {
		return h.queries.GetConsultationByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, consultationToResponse(consultation), nil)
}

// UpdateConsultationRequest is the admin patch payload. Only scheduling
// fields are mutable after submission.
type UpdateConsultationRequest struct {
	Status      *string `json:"status,omitempty"`
	PreferredAt *string `json:"preferred_at,omitempty"`
}

// UpdateConsultation handles PUT /api/v1/admin/consultations/{id}.
func (h *Handler) UpdateConsultation(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid consultation ID", nil)
		return
	}

	var req UpdateConsultationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Status != nil && !model.IsValidConsultationStatus(*req.Status) {
		WriteBadRequest(w, "Invalid consultation status", nil)
		return
	}

	patch := store.ConsultationPatch{Status: req.Status}
	if req.PreferredAt != nil {
		t, parseErr := time.Parse(time.RFC3339, *req.PreferredAt)
		if parseErr != nil {
			WriteBadRequest(w, "preferred_at must be an RFC 3339 timestamp", nil)
			return
		}
		patch.PreferredAt = &t
	}

	consultation, err := h.queries.UpdateConsultation(r.Context(), id, patch)
	if err != nil {
		writeUpdateError(w, err, "consultation")
		return
	}
	WriteSuccess(w, consultationToResponse(consultation), nil)
}

// DeleteConsultation handles DELETE /api/v1/admin/consultations/{id}.
func (h *Handler) DeleteConsultation(w http.ResponseWriter, r *http.Request) {
	deleteEntityByID(w, r, "consultation", func(id int64) (bool, error) {
		return h.queries.DeleteConsultation(r.Context(), id)
	})
}

// ConsultationStats handles GET /api/v1/admin/consultations/stats.
func (h *Handler) ConsultationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.ConsultationStats(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to load consultation stats")
		return
	}
	WriteSuccess(w, stats, nil)
}
