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

// ContactResponse represents a contact message in API responses.
type ContactResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	IPAddress string    `json:"ip_address,omitempty"`
	Browser   string    `json:"browser,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func contactToResponse(c model.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone.String,
		Subject:   c.Subject.String,
		Message:   c.Message,
		Status:    c.Status,
		IPAddress: c.IPAddress.String,
		Browser:   c.Browser.String,
		Country:   c.Country.String,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CreateContactRequest is the public contact form payload.
type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// CreateContact handles POST /api/v1/contact (public).
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if v := model.ValidateContact(req.Name, req.Email, req.Message); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	meta := service.CollectRequestMeta(r, h.geo)
	contact, err := h.queries.CreateContact(r.Context(), store.CreateContactParams{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     util.NullStringFromValue(req.Phone),
		Subject:   util.NullStringFromValue(req.Subject),
		Message:   req.Message,
		IPAddress: util.NullStringFromValue(meta.IPAddress),
		UserAgent: util.NullStringFromValue(meta.UserAgent),
		Browser:   util.NullStringFromValue(meta.Browser),
		Country:   util.NullStringFromValue(meta.Country),
	})
	if err != nil {
		slog.Error("failed to create contact", "category", "form", "error", err)
		WriteInternalError(w, "Failed to submit message")
		return
	}

	// Notification is best-effort: the submission is stored either way.
	if err := h.mailer.SendContactNotification(req.Name, req.Email, req.Subject, req.Message); err != nil {
		slog.Warn("contact notification failed", "category", "mail", "contact_id", contact.ID, "error", err)
	}

	WriteCreated(w, contactToResponse(contact))
}

// ListContacts handles GET /api/v1/admin/contacts.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	limit, offset, meta := pagination(r)

	filter := store.ContactFilter{Limit: limit, Offset: offset}
	if status := r.URL.Query().Get("status"); status != "" {
		if !model.IsValidContactStatus(status) {
			WriteBadRequest(w, "Invalid status filter", nil)
			return
		}
		filter.Status = &status
	}

	contacts, err := h.queries.ListContacts(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to list contacts")
		return
	}
	total, err := h.queries.CountContacts(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to count contacts")
		return
	}
	meta.Total = total

	resp := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		resp = append(resp, contactToResponse(c))
	}
	WriteSuccess(w, resp, meta)
}

// GetContact handles GET /api/v1/admin/contacts/{id}.
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	contact, ok := requireEntityByID(w, r, "contact", func(id int64) (model.Contact, error) {
		return h.queries.GetContactByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, contactToResponse(contact), nil)
}

// UpdateContactRequest is the admin patch payload for a contact.
type UpdateContactRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Subject *string `json:"subject,omitempty"`
	Message *string `json:"message,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// UpdateContact handles PUT /api/v1/admin/contacts/{id}.
// Absent fields are left unchanged; an empty body is a no-op.
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid contact ID", nil)
		return
	}

	var req UpdateContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Status != nil && !model.IsValidContactStatus(*req.Status) {
		WriteBadRequest(w, "Invalid contact status", nil)
		return
	}
	if req.Name != nil || req.Email != nil || req.Message != nil {
		current, getErr := h.queries.GetContactByID(r.Context(), id)
		if getErr != nil {
			WriteNotFound(w, "Contact not found")
			return
		}
		name, email, message := current.Name, current.Email, current.Message
		if req.Name != nil {
			name = *req.Name
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Message != nil {
			message = *req.Message
		}
		if v := model.ValidateContact(name, email, message); !v.IsValid() {
			WriteValidationFailed(w, v)
			return
		}
	}

	contact, err := h.queries.UpdateContact(r.Context(), id, store.ContactPatch{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  req.Status,
	})
	if err != nil {
		writeUpdateError(w, err, "contact")
		return
	}
	WriteSuccess(w, contactToResponse(contact), nil)
}

// DeleteContact handles DELETE /api/v1/admin/contacts/{id}.
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	deleteEntityByID(w, r, "contact", func(id int64) (bool, error) {
		return h.queries.DeleteContact(r.Context(), id)
	})
}

// ContactStats handles GET /api/v1/admin/contacts/stats.
func (h *Handler) ContactStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queries.ContactStats(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to load contact stats")
		return
	}
	WriteSuccess(w, stats, nil)
}
