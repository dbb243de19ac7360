// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

// Package api provides the REST API handlers for the public site and
// the admin panel.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/northboundstudio/brandsite/internal/cache"
	"github.com/northboundstudio/brandsite/internal/geoip"
	"github.com/northboundstudio/brandsite/internal/mailer"
	"github.com/northboundstudio/brandsite/internal/middleware"
	"github.com/northboundstudio/brandsite/internal/model"
	"github.com/northboundstudio/brandsite/internal/service"
	"github.com/northboundstudio/brandsite/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db         *sql.DB
	queries    *store.Queries
	cache      cache.Cache
	mailer     *mailer.Mailer
	geo        *geoip.Lookup
	uploads    *service.UploadService
	protection *middleware.LoginProtection
	sessions   *scs.SessionManager
}

// Options carries the dependencies wired in at startup.
type Options struct {
	DB         *sql.DB
	Cache      cache.Cache
	Mailer     *mailer.Mailer
	Geo        *geoip.Lookup
	Uploads    *service.UploadService
	Protection *middleware.LoginProtection
	Sessions   *scs.SessionManager
}

// NewHandler creates a new API handler.
func NewHandler(opts Options) *Handler {
	return &Handler{
		db:         opts.DB,
		queries:    store.New(opts.DB),
		cache:      opts.Cache,
		mailer:     opts.Mailer,
		geo:        opts.Geo,
		uploads:    opts.Uploads,
		protection: opts.Protection,
		sessions:   opts.Sessions,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination and other metadata.
type Meta struct {
	Total   int64 `json:"total,omitempty"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"per_page,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteForbidden writes a 403 Forbidden response.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "forbidden", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationFailed writes a 400 response carrying the validation
// messages. Field messages are human-readable; the frontend shows them
// verbatim.
func WriteValidationFailed(w http.ResponseWriter, v model.ValidationResult) {
	details := make(map[string]string, len(v.Errors))
	for i, msg := range v.Errors {
		details["error_"+strconv.Itoa(i)] = msg
	}
	WriteError(w, http.StatusBadRequest, "validation_error", strings.Join(v.Errors, "; "), details)
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{Status: "ok", Version: "v1"}, nil)
}

// ParseIDParam parses the {id} URL parameter.
func ParseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ParsePageParam parses the page query parameter, defaulting to 1.
func ParsePageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParsePerPageParam parses the per_page query parameter with bounds.
func ParsePerPageParam(r *http.Request, def, max int) int {
	perPage, err := strconv.Atoi(r.URL.Query().Get("per_page"))
	if err != nil || perPage < 1 {
		return def
	}
	if perPage > max {
		return max
	}
	return perPage
}

// pagination returns limit/offset for a request plus the Meta to echo.
func pagination(r *http.Request) (limit, offset int64, meta *Meta) {
	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r, 20, 100)
	return int64(perPage), int64((page - 1) * perPage), &Meta{Page: page, PerPage: perPage}
}

// decodeJSON decodes the request body, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return false
	}
	return true
}

// EntityFetcher is a function that fetches an entity by ID.
type EntityFetcher[T any] func(id int64) (T, error)

// requireEntityByID parses an ID from the URL and fetches the entity.
// Returns the entity and true on success; on failure the response has
// already been written.
func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, entityName string, fetch EntityFetcher[T]) (T, bool) {
	var zero T

	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return zero, false
	}

	entity, err := fetch(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, capitalizeFirst(entityName)+" not found")
		} else {
			WriteInternalError(w, "Failed to retrieve "+entityName)
		}
		return zero, false
	}

	return entity, true
}

// deleteEntityByID runs a delete and writes the standard responses.
func deleteEntityByID(w http.ResponseWriter, r *http.Request, entityName string, del func(id int64) (bool, error)) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return
	}

	deleted, err := del(id)
	if err != nil {
		WriteInternalError(w, "Failed to delete "+entityName)
		return
	}
	if !deleted {
		WriteNotFound(w, capitalizeFirst(entityName)+" not found")
		return
	}
	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}

// writeUpdateError maps a store update failure to a response.
func writeUpdateError(w http.ResponseWriter, err error, entityName string) {
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, capitalizeFirst(entityName)+" not found")
		return
	}
	WriteInternalError(w, "Failed to update "+entityName)
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// invalidateCache drops the given cache keys, logging nothing; a cache
// error never fails a write.
func (h *Handler) invalidateCache(r *http.Request, keys ...string) {
	if h.cache == nil {
		return
	}
	for _, key := range keys {
		_ = h.cache.Delete(r.Context(), key)
	}
}

// cachedJSON fetches a cached JSON value, returning ok=false on miss
// or when caching is disabled.
func (h *Handler) cachedJSON(r *http.Request, key string, dst any) bool {
	if h.cache == nil {
		return false
	}
	data, err := h.cache.Get(r.Context(), key)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// storeJSON best-effort stores a JSON value in the cache.
func (h *Handler) storeJSON(r *http.Request, key string, value any) {
	if h.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = h.cache.Set(r.Context(), key, data, 0)
}
