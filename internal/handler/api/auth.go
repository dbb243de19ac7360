// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/northboundstudio/brandsite/internal/auth"
	"github.com/northboundstudio/brandsite/internal/middleware"
	"github.com/northboundstudio/brandsite/internal/model"
	"github.com/northboundstudio/brandsite/internal/util"
)

// UserResponse represents an admin account in API responses.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func userToResponse(u model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/admin/login.
// Failed attempts count toward the account lockout; the response for a
// wrong password and an unknown email is identical.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		WriteBadRequest(w, "Email and password are required", nil)
		return
	}

	if locked, remaining := h.protection.IsAccountLocked(email); locked {
		minutes := int(math.Ceil(remaining.Minutes()))
		WriteError(w, http.StatusTooManyRequests, "account_locked",
			"Account temporarily locked. Try again in "+strconv.Itoa(minutes)+" minutes.", nil)
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		// Burn comparable time so unknown emails are not distinguishable.
		_, _ = auth.CheckPassword(req.Password, dummyHash)
		h.recordFailure(r, email)
		WriteUnauthorized(w, "Invalid email or password")
		return
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		h.recordFailure(r, email)
		WriteUnauthorized(w, "Invalid email or password")
		return
	}

	h.protection.RecordSuccessfulLogin(email)

	// Session fixation: always issue a fresh token on privilege change.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		WriteInternalError(w, "Failed to create session")
		return
	}
	h.sessions.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, hashErr := auth.HashPassword(req.Password); hashErr == nil {
			if updErr := h.queries.UpdateUserPassword(r.Context(), user.ID, newHash); updErr != nil {
				slog.Warn("password rehash failed", "category", "auth", "user_id", user.ID, "error", updErr)
			}
		}
	}

	slog.Info("user logged in", "category", "auth", "user_id", user.ID, "ip", util.ClientIP(r))
	WriteSuccess(w, userToResponse(user), nil)
}

// recordFailure records a failed login and logs a lockout when it trips.
func (h *Handler) recordFailure(r *http.Request, email string) {
	locked, duration := h.protection.RecordFailedAttempt(email)
	if locked {
		slog.Warn("login lockout triggered",
			"category", "auth", "email", email, "duration", duration, "ip", util.ClientIP(r))
	}
}

// Logout handles POST /api/v1/admin/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		WriteInternalError(w, "Failed to destroy session")
		return
	}
	WriteSuccess(w, map[string]bool{"loggedOut": true}, nil)
}

// Me handles GET /api/v1/admin/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Authentication required")
		return
	}
	WriteSuccess(w, userToResponse(*user), nil)
}

// ChangePasswordRequest is the payload for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles POST /api/v1/admin/me/password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.NewPassword) < 12 {
		WriteBadRequest(w, "Password must be at least 12 characters", nil)
		return
	}

	ok, err := auth.CheckPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil || !ok {
		WriteUnauthorized(w, "Current password is incorrect")
		return
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		WriteInternalError(w, "Failed to update password")
		return
	}
	if err := h.queries.UpdateUserPassword(r.Context(), user.ID, newHash); err != nil {
		WriteInternalError(w, "Failed to update password")
		return
	}

	// Invalidate every other session for this account.
	if err := h.sessions.RenewToken(r.Context()); err == nil {
		h.sessions.Put(r.Context(), middleware.SessionKeyUserID, user.ID)
	}

	slog.Info("password changed", "category", "auth", "user_id", user.ID)
	WriteSuccess(w, map[string]bool{"updated": true}, nil)
}

// dummyHash keeps login timing flat for unknown emails. Hash of a
// random throwaway string, never a real credential.
const dummyHash = "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
