// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/northboundstudio/brandsite/internal/model"
	"github.com/northboundstudio/brandsite/internal/store"
)

// EventResponse represents an event log entry in API responses.
type EventResponse struct {
	ID        int64           `json:"id"`
	Level     string          `json:"level"`
	Category  string          `json:"category"`
	Message   string          `json:"message"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func eventToResponse(e model.Event) EventResponse {
	resp := EventResponse{
		ID:        e.ID,
		Level:     e.Level,
		Category:  e.Category,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
	if e.Metadata != "" && json.Valid([]byte(e.Metadata)) {
		resp.Metadata = json.RawMessage(e.Metadata)
	}
	return resp
}

// ListEvents handles GET /api/v1/admin/events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset, meta := pagination(r)

	filter := store.EventFilter{Limit: limit, Offset: offset}
	if level := r.URL.Query().Get("level"); level != "" {
		switch level {
		case model.EventLevelInfo, model.EventLevelWarning, model.EventLevelError:
			filter.Level = &level
		default:
			WriteBadRequest(w, "Invalid level filter", nil)
			return
		}
	}
	if category := r.URL.Query().Get("category"); category != "" {
		filter.Category = &category
	}

	events, err := h.queries.ListEvents(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}

	resp := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, eventToResponse(e))
	}
	WriteSuccess(w, resp, meta)
}
