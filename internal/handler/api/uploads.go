// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/northboundstudio/brandsite/internal/service"
)

// UploadImage handles POST /api/v1/admin/uploads/images.
// Expects a multipart form with the file under "file".
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(service.MaxImageSize); err != nil {
		WriteBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Missing file field", nil)
		return
	}
	defer file.Close()

	result, err := h.uploads.UploadImage(file, header)
	if err != nil {
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	slog.Info("image uploaded", "category", "media", "uuid", result.UUID, "size", result.Size)
	WriteCreated(w, result)
}

// UploadResume handles POST /api/v1/uploads/resumes (public).
// Applicants upload their resume here and submit the returned URL with
// the application form.
func (h *Handler) UploadResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(service.MaxDocumentSize); err != nil {
		WriteBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Missing file field", nil)
		return
	}
	defer file.Close()

	result, err := h.uploads.UploadDocument(file, header)
	if err != nil {
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	slog.Info("resume uploaded", "category", "media", "uuid", result.UUID, "size", result.Size)
	WriteCreated(w, result)
}

// DeleteUpload handles DELETE /api/v1/admin/uploads/{uuid}.
func (h *Handler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	fileUUID := chi.URLParam(r, "uuid")

	if err := h.uploads.Delete(fileUUID); err != nil {
		WriteInternalError(w, "Failed to delete upload")
		return
	}
	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
