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

// TeamMemberResponse represents a team member in API responses.
type TeamMemberResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio"`
	ImageURL  string    `json:"image_url,omitempty"`
	Position  int64     `json:"position"`
	Featured  bool      `json:"featured"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func teamMemberToResponse(m model.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Role:      m.Role,
		Bio:       m.Bio,
		ImageURL:  m.ImageURL.String,
		Position:  m.Position,
		Featured:  m.Featured,
		Published: m.Published,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ListPublicTeamMembers handles GET /api/v1/team (public).
func (h *Handler) ListPublicTeamMembers(w http.ResponseWriter, r *http.Request) {
	var resp []TeamMemberResponse
	if h.cachedJSON(r, cache.KeyPublishedTeam, &resp) {
		WriteSuccess(w, resp, nil)
		return
	}

	published := true
	members, err := h.queries.ListTeamMembers(r.Context(), store.TeamMemberFilter{Published: &published})
	if err != nil {
		WriteInternalError(w, "Failed to list team members")
		return
	}

	resp = make([]TeamMemberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, teamMemberToResponse(m))
	}

	h.storeJSON(r, cache.KeyPublishedTeam, resp)
	WriteSuccess(w, resp, nil)
}

// ListTeamMembers handles GET /api/v1/admin/team.
func (h *Handler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	limit, offset, meta := pagination(r)

	filter := store.TeamMemberFilter{Limit: limit, Offset: offset}
	if s := r.URL.Query().Get("published"); s == "true" || s == "false" {
		published := s == "true"
		filter.Published = &published
	}

	members, err := h.queries.ListTeamMembers(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to list team members")
		return
	}

	resp := make([]TeamMemberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, teamMemberToResponse(m))
	}
	WriteSuccess(w, resp, meta)
}

// GetTeamMember handles GET /api/v1/admin/team/{id}.
func (h *Handler) GetTeamMember(w http.ResponseWriter, r *http.Request) {
	member, ok := requireEntityByID(w, r, "team member", func(id int64) (model.TeamMember, error) {
		return h.queries.GetTeamMemberByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, teamMemberToResponse(member), nil)
}

// CreateTeamMemberRequest is the admin payload for a new team member.
type CreateTeamMemberRequest struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
	ImageURL  string `json:"image_url,omitempty"`
	Position  int64  `json:"position"`
	Featured  bool   `json:"featured"`
	Published bool   `json:"published"`
}

// CreateTeamMember handles POST /api/v1/admin/team.
func (h *Handler) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if v := model.ValidateTeamMember(req.Name, req.Role, req.Bio, req.ImageURL); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	member, err := h.queries.CreateTeamMember(r.Context(), store.CreateTeamMemberParams{
		Name:      req.Name,
		Role:      req.Role,
		Bio:       req.Bio,
		ImageURL:  util.NullStringFromValue(req.ImageURL),
		Position:  req.Position,
		Featured:  req.Featured,
		Published: req.Published,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create team member")
		return
	}

	h.invalidateCache(r, cache.KeyPublishedTeam)
	WriteCreated(w, teamMemberToResponse(member))
}

// UpdateTeamMemberRequest is the admin patch payload for a team member.
type UpdateTeamMemberRequest struct {
	Name      *string `json:"name,omitempty"`
	Role      *string `json:"role,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
	Position  *int64  `json:"position,omitempty"`
	Featured  *bool   `json:"featured,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// UpdateTeamMember handles PUT /api/v1/admin/team/{id}.
func (h *Handler) UpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid team member ID", nil)
		return
	}

	var req UpdateTeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	current, err := h.queries.GetTeamMemberByID(r.Context(), id)
	if err != nil {
		WriteNotFound(w, "Team member not found")
		return
	}

	merged := current
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Role != nil {
		merged.Role = *req.Role
	}
	if req.Bio != nil {
		merged.Bio = *req.Bio
	}
	imageURL := merged.ImageURL.String
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	if v := model.ValidateTeamMember(merged.Name, merged.Role, merged.Bio, imageURL); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	member, err := h.queries.UpdateTeamMember(r.Context(), id, store.TeamMemberPatch{
		Name:      req.Name,
		Role:      req.Role,
		Bio:       req.Bio,
		ImageURL:  req.ImageURL,
		Position:  req.Position,
		Featured:  req.Featured,
		Published: req.Published,
	})
	if err != nil {
		writeUpdateError(w, err, "team member")
		return
	}

	h.invalidateCache(r, cache.KeyPublishedTeam)
	WriteSuccess(w, teamMemberToResponse(member), nil)
}

// DeleteTeamMember handles DELETE /api/v1/admin/team/{id}.
func (h *Handler) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	deleteEntityByID(w, r, "team member", func(id int64) (bool, error) {
		deleted, err := h.queries.DeleteTeamMember(r.Context(), id)
		if err == nil && deleted {
			h.invalidateCache(r, cache.KeyPublishedTeam)
		}
		return deleted, err
	})
}
