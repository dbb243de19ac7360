// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"testing"

	"github.com/northboundstudio/brandsite/internal/store"
)

func createTestTestimonial(t *testing.T, db *sql.DB, name string, approved, featured bool) {
	t.Helper()
	_, err := store.New(db).CreateTestimonial(context.Background(), store.CreateTestimonialParams{
		Name:     name,
		Position: "CEO",
		Company:  "Acme Co",
		Content:  "Working with the studio transformed our brand.",
		Rating:   5,
		Featured: featured,
		Approved: approved,
	})
	if err != nil {
		t.Fatalf("failed to create test testimonial: %v", err)
	}
}

func TestListPublicTestimonials(t *testing.T) {
	db, h := testSetup(t)
	createTestTestimonial(t, db, "Approved Client", true, false)
	createTestTestimonial(t, db, "Pending Client", false, false)

	req := newGetRequest(t, "/api/v1/testimonials", nil)
	w := executeHandler(t, h.ListPublicTestimonials, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	items, _ := unmarshalList[TestimonialResponse](t, w)
	if len(items) != 1 {
		t.Fatalf("expected 1 approved testimonial, got %d", len(items))
	}
	if items[0].Name != "Approved Client" {
		t.Errorf("expected approved testimonial, got %q", items[0].Name)
	}
}

func TestListPublicTestimonialsFeatured(t *testing.T) {
	db, h := testSetup(t)
	createTestTestimonial(t, db, "Featured Client", true, true)
	createTestTestimonial(t, db, "Regular Client", true, false)

	req := newGetRequest(t, "/api/v1/testimonials?featured=true", nil)
	w := executeHandler(t, h.ListPublicTestimonials, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	items, _ := unmarshalList[TestimonialResponse](t, w)
	if len(items) != 1 {
		t.Fatalf("expected 1 featured testimonial, got %d", len(items))
	}
	if items[0].Name != "Featured Client" {
		t.Errorf("expected featured testimonial, got %q", items[0].Name)
	}
}

func TestCreateTestimonialContentBounds(t *testing.T) {
	_, h := testSetup(t)

	// 9 runes fails, 10 passes.
	tooShort := `{"name":"Jane Doe","position":"CTO","company":"Acme","content":"123456789","rating":5}`
	req := newJSONRequest(t, http.MethodPost, "/api/v1/admin/testimonials", tooShort, nil)
	w := executeHandler(t, h.CreateTestimonial, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for 9-rune content, got %d", w.Code)
	}
	if detail := unmarshalError(t, w); !strings.Contains(detail.Message, "Content") {
		t.Errorf("expected content error, got %q", detail.Message)
	}

	okBody := `{"name":"Jane Doe","position":"CTO","company":"Acme","content":"1234567890","rating":5}`
	req = newJSONRequest(t, http.MethodPost, "/api/v1/admin/testimonials", okBody, nil)
	w = executeHandler(t, h.CreateTestimonial, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for 10-rune content, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateTestimonialRatingBounds(t *testing.T) {
	_, h := testSetup(t)

	body := `{"name":"Jane Doe","position":"CTO","company":"Acme","content":"A very happy client indeed.","rating":6}`
	req := newJSONRequest(t, http.MethodPost, "/api/v1/admin/testimonials", body, nil)
	w := executeHandler(t, h.CreateTestimonial, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for rating 6, got %d", w.Code)
	}
}
