// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"time"

	"github.com/northboundstudio/brandsite/internal/cache"
	"github.com/northboundstudio/brandsite/internal/model"
	"github.com/northboundstudio/brandsite/internal/store"
	"github.com/northboundstudio/brandsite/internal/util"
)

// TestimonialResponse represents a testimonial in API responses.
type TestimonialResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Company   string    `json:"company"`
	Content   string    `json:"content"`
	Rating    int64     `json:"rating"`
	ImageURL  string    `json:"image_url,omitempty"`
	Featured  bool      `json:"featured"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func testimonialToResponse(t model.Testimonial) TestimonialResponse {
	return TestimonialResponse{
		ID:        t.ID,
		Name:      t.Name,
		Position:  t.Position,
		Company:   t.Company,
		Content:   t.Content,
		Rating:    t.Rating,
		ImageURL:  t.ImageURL.String,
		Featured:  t.Featured,
		Approved:  t.Approved,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ListPublicTestimonials handles GET /api/v1/testimonials (public).
// Only approved testimonials are returned; ?featured=true narrows to
// the featured set shown on the home page.
func (h *Handler) ListPublicTestimonials(w http.ResponseWriter, r *http.Request) {
	featuredOnly := r.URL.Query().Get("featured") == "true"
	cacheKey := cache.KeyApprovedTestimonials
	if featuredOnly {
		cacheKey = cache.KeyFeaturedTestimonials
	}

	var resp []TestimonialResponse
	if h.cachedJSON(r, cacheKey, &resp) {
		WriteSuccess(w, resp, nil)
		return
	}

	approved := true
	filter := store.TestimonialFilter{Approved: &approved}
	if featuredOnly {
		featured := true
		filter.Featured = &featured
	}

	testimonials, err := h.queries.ListTestimonials(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to list testimonials")
		return
	}

	resp = make([]TestimonialResponse, 0, len(testimonials))
	for _, t := range testimonials {
		resp = append(resp, testimonialToResponse(t))
	}

	h.storeJSON(r, cacheKey, resp)
	WriteSuccess(w, resp, nil)
}

// ListTestimonials handles GET /api/v1/admin/testimonials.
func (h *Handler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	limit, offset, meta := pagination(r)

	filter := store.TestimonialFilter{Limit: limit, Offset: offset}
	if s := r.URL.Query().Get("approved"); s == "true" || s == "false" {
		approved := s == "true"
		filter.Approved = &approved
	}
	if s := r.URL.Query().Get("featured"); s == "true" || s == "false" {
		featured := s == "true"
		filter.Featured = &featured
	}

	testimonials, err := h.queries.ListTestimonials(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to list testimonials")
		return
	}

	resp := make([]TestimonialResponse, 0, len(testimonials))
	for _, t := range testimonials {
		resp = append(resp, testimonialToResponse(t))
	}
	WriteSuccess(w, resp, meta)
}

// GetTestimonial handles GET /api/v1/admin/testimonials/{id}.
func (h *Handler) GetTestimonial(w http.ResponseWriter, r *http.Request) {
	testimonial, ok := requireEntityByID(w, r, "testimonial", func(id int64) (model.Testimonial, error) {
		return h.queries.GetTestimonialByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, testimonialToResponse(testimonial), nil)
}

// CreateTestimonialRequest is the admin payload for a new testimonial.
type CreateTestimonialRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Company  string `json:"company"`
	Content  string `json:"content"`
	Rating   int64  `json:"rating"`
	ImageURL string `json:"image_url,omitempty"`
	Featured bool   `json:"featured"`
	Approved bool   `json:"approved"`
}

// CreateTestimonial handles POST /api/v1/admin/testimonials.
func (h *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req CreateTestimonialRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if v := model.ValidateTestimonial(req.Name, req.Position, req.Company, req.Content, req.Rating, req.ImageURL); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	testimonial, err := h.queries.CreateTestimonial(r.Context(), store.CreateTestimonialParams{
		Name:     req.Name,
		Position: req.Position,
		Company:  req.Company,
		Content:  req.Content,
		Rating:   req.Rating,
		ImageURL: util.NullStringFromValue(req.ImageURL),
		Featured: req.Featured,
		Approved: req.Approved,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create testimonial")
		return
	}

	h.invalidateCache(r, cache.KeyApprovedTestimonials, cache.KeyFeaturedTestimonials)
	WriteCreated(w, testimonialToResponse(testimonial))
}

// UpdateTestimonialRequest is the admin patch payload for a testimonial.
type UpdateTestimonialRequest struct {
	Name     *string `json:"name,omitempty"`
	Position *string `json:"position,omitempty"`
	Company  *string `json:"company,omitempty"`
	Content  *string `json:"content,omitempty"`
	Rating   *int64  `json:"rating,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
	Featured *bool   `json:"featured,omitempty"`
	Approved *bool   `json:"approved,omitempty"`
}

// UpdateTestimonial handles PUT /api/v1/admin/testimonials/{id}.
func (h *Handler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid testimonial ID", nil)
		return
	}

	var req UpdateTestimonialRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Validate against the merged row so a partial update cannot push a
	// field out of bounds.
	current, err := h.queries.GetTestimonialByID(r.Context(), id)
	if err != nil {
		WriteNotFound(w, "Testimonial not found")
		return
	}
	merged := current
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Position != nil {
		merged.Position = *req.Position
	}
	if req.Company != nil {
		merged.Company = *req.Company
	}
	if req.Content != nil {
		merged.Content = *req.Content
	}
	if req.Rating != nil {
		merged.Rating = *req.Rating
	}
	imageURL := merged.ImageURL.String
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	if v := model.ValidateTestimonial(merged.Name, merged.Position, merged.Company, merged.Content, merged.Rating, imageURL); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	testimonial, err := h.queries.UpdateTestimonial(r.Context(), id, store.TestimonialPatch{
		Name:     req.Name,
		Position: req.Position,
		Company:  req.Company,
		Content:  req.Content,
		Rating:   req.Rating,
		ImageURL: req.ImageURL,
		Featured: req.Featured,
		Approved: req.Approved,
	})
	if err != nil {
		writeUpdateError(w, err, "testimonial")
		return
	}

	h.invalidateCache(r, cache.KeyApprovedTestimonials, cache.KeyFeaturedTestimonials)
	WriteSuccess(w, testimonialToResponse(testimonial), nil)
}

// DeleteTestimonial handles DELETE /api/v1/admin/testimonials/{id}.
func (h *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	deleteEntityByID(w, r, "testimonial", func(id int64) (bool, error) {
		deleted, err := h.queries.DeleteTestimonial(r.Context(), id)
		if err == nil && deleted {
			h.invalidateCache(r, cache.KeyApprovedTestimonials, cache.KeyFeaturedTestimonials)
		}
		return deleted, err
	})
}
