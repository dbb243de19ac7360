// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/northboundstudio/brandsite/internal/cache"
	"github.com/northboundstudio/brandsite/internal/model"
	"github.com/northboundstudio/brandsite/internal/service"
	"github.com/northboundstudio/brandsite/internal/store"
	"github.com/northboundstudio/brandsite/internal/util"
)

// ServiceResponse represents a service offering in API responses.
type ServiceResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Summary   string    `json:"summary"`
	Body      string    `json:"body,omitempty"`
	HTML      string    `json:"html,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	Position  int64     `json:"position"`
	Featured  bool      `json:"featured"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func serviceToResponse(s model.Service, includeBody bool) ServiceResponse {
	resp := ServiceResponse{
		ID:        s.ID,
		Title:     s.Title,
		Slug:      s.Slug,
		Summary:   s.Summary,
		Icon:      s.Icon.String,
		Position:  s.Position,
		Featured:  s.Featured,
		Published: s.Published,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if includeBody {
		resp.Body = s.Body
		if html, err := service.RenderMarkdown(s.Body); err == nil {
			resp.HTML = html
		}
	}
	return resp
}

// ListPublicServices handles GET /api/v1/services (public).
func (h *Handler) ListPublicServices(w http.ResponseWriter, r *http.Request) {
	var resp []ServiceResponse
	if h.cachedJSON(r, cache.KeyPublishedServices, &resp) {
		WriteSuccess(w, resp, nil)
		return
	}

	published := true
	services, err := h.queries.ListServices(r.Context(), store.ServiceFilter{Published: &published})
	if err != nil {
		WriteInternalError(w, "Failed to list services")
		return
	}

	resp = make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		resp = append(resp, serviceToResponse(s, false))
	}

	h.storeJSON(r, cache.KeyPublishedServices, resp)
	WriteSuccess(w, resp, nil)
}

// GetPublicService handles GET /api/v1/services/{slug} (public).
func (h *Handler) GetPublicService(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	svc, err := h.queries.GetServiceBySlug(r.Context(), slug, true)
	if err != nil {
		WriteNotFound(w, "Service not found")
		return
	}
	WriteSuccess(w, serviceToResponse(svc, true), nil)
}

// ListServices handles GET /api/v1/admin/services.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	limit, offset, meta := pagination(r)

	filter := store.ServiceFilter{Limit: limit, Offset: offset}
	if s := r.URL.Query().Get("published"); s == "true" || s == "false" {
		published := s == "true"
		filter.Published = &published
	}

	services, err := h.queries.ListServices(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to list services")
		return
	}

	resp := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		resp = append(resp, serviceToResponse(s, false))
	}
	WriteSuccess(w, resp, meta)
}

// GetService handles GET /api/v1/admin/services/{id}.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	svc, ok := requireEntityByID(w, r, "service", func(id int64) (model.Service, error) {
		return h.queries.GetServiceByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, serviceToResponse(svc, true), nil)
}

// CreateServiceRequest is the admin payload for a new service.
type CreateServiceRequest struct {
	Title     string `json:"title"`
	Slug      string `json:"slug,omitempty"`
	Summary   string `json:"summary"`
	Body      string `json:"body"`
	Icon      string `json:"icon,omitempty"`
	Position  int64  `json:"position"`
	Featured  bool   `json:"featured"`
	Published bool   `json:"published"`
}

// CreateService handles POST /api/v1/admin/services.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}

	if v := model.ValidateService(req.Title, req.Slug, req.Summary, req.Body); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	svc, err := h.queries.CreateService(r.Context(), store.CreateServiceParams{
		Title:     req.Title,
		Slug:      req.Slug,
		Summary:   req.Summary,
		Body:      req.Body,
		Icon:      util.NullStringFromValue(req.Icon),
		Position:  req.Position,
		Featured:  req.Featured,
		Published: req.Published,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteBadRequest(w, "Slug already exists", map[string]string{"slug": "Slug already exists"})
			return
		}
		WriteInternalError(w, "Failed to create service")
		return
	}

	h.invalidateCache(r, cache.KeyPublishedServices)
	WriteCreated(w, serviceToResponse(svc, true))
}

// UpdateServiceRequest is the admin patch payload for a service.
type UpdateServiceRequest struct {
	Title     *string `json:"title,omitempty"`
	Slug      *string `json:"slug,omitempty"`
	Summary   *string `json:"summary,omitempty"`
	Body      *string `json:"body,omitempty"`
	Icon      *string `json:"icon,omitempty"`
	Position  *int64  `json:"position,omitempty"`
	Featured  *bool   `json:"featured,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// UpdateService handles PUT /api/v1/admin/services/{id}.
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid service ID", nil)
		return
	}

	var req UpdateServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	current, err := h.queries.GetServiceByID(r.Context(), id)
	if err != nil {
		WriteNotFound(w, "Service not found")
		return
	}

	merged := current
	if req.Title != nil {
		merged.Title = *req.Title
	}
	if req.Slug != nil {
		merged.Slug = *req.Slug
	}
	if req.Summary != nil {
		merged.Summary = *req.Summary
	}
	if req.Body != nil {
		merged.Body = *req.Body
	}
	if v := model.ValidateService(merged.Title, merged.Slug, merged.Summary, merged.Body); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	svc, err := h.queries.UpdateService(r.Context(), id, store.ServicePatch{
		Title:     req.Title,
		Slug:      req.Slug,
		Summary:   req.Summary,
		Body:      req.Body,
		Icon:      req.Icon,
		Position:  req.Position,
		Featured:  req.Featured,
		Published: req.Published,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteBadRequest(w, "Slug already exists", map[string]string{"slug": "Slug already exists"})
			return
		}
		writeUpdateError(w, err, "service")
		return
	}

	h.invalidateCache(r, cache.KeyPublishedServices)
	WriteSuccess(w, serviceToResponse(svc, true), nil)
}

// DeleteService handles DELETE /api/v1/admin/services/{id}.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	deleteEntityByID(w, r, "service", func(id int64) (bool, error) {
		deleted, err := h.queries.DeleteService(r.Context(), id)
		if err == nil && deleted {
			h.invalidateCache(r, cache.KeyPublishedServices)
		}
		return deleted, err
	})
}
