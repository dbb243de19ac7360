// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/northboundstudio/brandsite/internal/cache"
	"github.com/northboundstudio/brandsite/internal/model"
)

// knownSettingKeys is the closed set of keys the admin API accepts.
var knownSettingKeys = []string{
	model.SettingSiteName,
	model.SettingTagline,
	model.SettingContactRecipient,
	model.SettingSocialInstagram,
	model.SettingSocialLinkedIn,
	model.SettingSocialX,
}

// GetPublicSettings handles GET /api/v1/settings (public).
// Only the allow-listed keys are exposed; absent keys are omitted.
func (h *Handler) GetPublicSettings(w http.ResponseWriter, r *http.Request) {
	var resp map[string]string
	if h.cachedJSON(r, cache.KeyPublicSettings, &resp) {
		WriteSuccess(w, resp, nil)
		return
	}

	settings, err := h.queries.ListSettings(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to load settings")
		return
	}

	public := model.PublicSettingKeys()
	resp = make(map[string]string, len(public))
	for _, s := range settings {
		if slices.Contains(public, s.Key) {
			resp[s.Key] = s.Value
		}
	}

	h.storeJSON(r, cache.KeyPublicSettings, resp)
	WriteSuccess(w, resp, nil)
}

// ListSettings handles GET /api/v1/admin/settings.
func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.queries.ListSettings(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to load settings")
		return
	}
	WriteSuccess(w, settings, nil)
}

// UpsertSettingRequest is the admin payload for a setting value.
type UpsertSettingRequest struct {
	Value string `json:"value"`
}

// UpsertSetting handles PUT /api/v1/admin/settings/{key}.
func (h *Handler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !slices.Contains(knownSettingKeys, key) {
		WriteBadRequest(w, "Unknown setting key", map[string]string{"key": key})
		return
	}

	var req UpsertSettingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.queries.UpsertSetting(r.Context(), key, req.Value); err != nil {
		WriteInternalError(w, "Failed to save setting")
		return
	}

	h.invalidateCache(r, cache.KeyPublicSettings)
	WriteSuccess(w, model.Setting{Key: key, Value: req.Value}, nil)
}

// DeleteSetting handles DELETE /api/v1/admin/settings/{key}.
func (h *Handler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	deleted, err := h.queries.DeleteSetting(r.Context(), key)
	if err != nil {
		WriteInternalError(w, "Failed to delete setting")
		return
	}
	if !deleted {
		WriteNotFound(w, "Setting not found")
		return
	}

	h.invalidateCache(r, cache.KeyPublicSettings)
	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
