// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/northboundstudio/brandsite/internal/auth"
	"github.com/northboundstudio/brandsite/internal/mailer"
	"github.com/northboundstudio/brandsite/internal/middleware"
	"github.com/northboundstudio/brandsite/internal/model"
	"github.com/northboundstudio/brandsite/internal/store"
)

// authTestSetup builds a handler with a real session manager and login
// protection, plus one admin account.
func authTestSetup(t *testing.T) (*sql.DB, *Handler, *scs.SessionManager) {
	t.Helper()
	db := testDB(t)

	sm := scs.New()
	h := NewHandler(Options{
		DB:         db,
		Mailer:     mailer.New(mailer.Options{}),
		Sessions:   sm,
		Protection: middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig()),
	})

	hash, err := auth.HashPassword("correct-horse-battery")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	_, err = store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        "admin@example.com",
		PasswordHash: hash,
		Name:         "Admin",
		Role:         model.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	return db, h, sm
}

// doLogin runs the login handler inside a loaded session context.
func doLogin(t *testing.T, h *Handler, sm *scs.SessionManager, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	sm.LoadAndSave(http.HandlerFunc(h.Login)).ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	_, h, sm := authTestSetup(t)

	w := doLogin(t, h, sm, `{"email":"admin@example.com","password":"correct-horse-battery"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	user := unmarshalData[UserResponse](t, w)
	if user.Email != "admin@example.com" || user.Role != model.RoleAdmin {
		t.Errorf("unexpected user in response: %+v", user)
	}
	if len(w.Result().Cookies()) == 0 {
		t.Error("expected a session cookie on successful login")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	_, h, sm := authTestSetup(t)

	w := doLogin(t, h, sm, `{"email":"admin@example.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginUnknownEmailSameResponse(t *testing.T) {
	_, h, sm := authTestSetup(t)

	wrong := doLogin(t, h, sm, `{"email":"admin@example.com","password":"wrong"}`)
	unknown := doLogin(t, h, sm, `{"email":"nobody@example.com","password":"wrong"}`)

	if wrong.Code != unknown.Code {
		t.Errorf("status differs: %d vs %d", wrong.Code, unknown.Code)
	}
	if wrong.Body.String() != unknown.Body.String() {
		t.Errorf("bodies differ:\n%s\n%s", wrong.Body.String(), unknown.Body.String())
	}
}

func TestLoginEmailNormalized(t *testing.T) {
	_, h, sm := authTestSetup(t)

	w := doLogin(t, h, sm, `{"email":"  Admin@Example.COM ","password":"correct-horse-battery"}`)
	if w.Code != http.StatusOK {
		t.Errorf("expected normalized email to log in, got %d", w.Code)
	}
}

func TestLoginLockout(t *testing.T) {
	_, h, sm := authTestSetup(t)

	for i := 0; i < 5; i++ {
		doLogin(t, h, sm, `{"email":"admin@example.com","password":"wrong"}`)
	}

	w := doLogin(t, h, sm, `{"email":"admin@example.com","password":"correct-horse-battery"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after lockout, got %d", w.Code)
	}
	if detail := unmarshalError(t, w); detail.Code != "account_locked" {
		t.Errorf("expected account_locked, got %q", detail.Code)
	}
}

func TestLoginMissingFields(t *testing.T) {
	_, h, sm := authTestSetup(t)

	w := doLogin(t, h, sm, `{"email":"","password":""}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty credentials, got %d", w.Code)
	}
}
