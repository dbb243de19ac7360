// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"testing"

	"github.com/northboundstudio/brandsite/internal/model"
)

func TestCreateConsultation(t *testing.T) {
	_, h := testSetup(t)

	body := `{"name":"Jane Doe","email":"jane@example.com","main_challenge":"positioning",` +
		`"session_goal":"Clarify how we talk about the product.","consultation_type":"brand_strategy",` +
		`"preferred_at":"2026-10-01T10:00:00Z"}`
	req := newJSONRequest(t, http.MethodPost, "/api/v1/consultations", body, nil)
	w := executeHandler(t, h.CreateConsultation, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	c := unmarshalData[ConsultationResponse](t, w)
	if c.Status != model.ConsultationStatusPending {
		t.Errorf("expected pending status, got %q", c.Status)
	}
	if c.PreferredAt == nil {
		t.Error("expected preferred_at to round-trip")
	}
}

func TestCreateConsultationValidation(t *testing.T) {
	_, h := testSetup(t)

	tests := []struct {
		name string
		body string
	}{
		{
			"other challenge without description",
			`{"name":"Jane Doe","email":"jane@example.com","main_challenge":"other",` +
				`"session_goal":"Clarify how we talk about the product.","consultation_type":"brand_strategy"}`,
		},
		{
			"unknown challenge",
			`{"name":"Jane Doe","email":"jane@example.com","main_challenge":"world-domination",` +
				`"session_goal":"Clarify how we talk about the product.","consultation_type":"brand_strategy"}`,
		},
		{
			"unknown consultation type",
			`{"name":"Jane Doe","email":"jane@example.com","main_challenge":"positioning",` +
				`"session_goal":"Clarify how we talk about the product.","consultation_type":"tarot"}`,
		},
		{
			"short session goal",
			`{"name":"Jane Doe","email":"jane@example.com","main_challenge":"positioning",` +
				`"session_goal":"Help","consultation_type":"brand_strategy"}`,
		},
		{
			"bad preferred_at",
			`{"name":"Jane Doe","email":"jane@example.com","main_challenge":"positioning",` +
				`"session_goal":"Clarify how we talk about the product.","consultation_type":"brand_strategy",` +
				`"preferred_at":"next tuesday"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, http.MethodPost, "/api/v1/consultations", tt.body, nil)
			w := executeHandler(t, h.CreateConsultation, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateConsultationOtherChallenge(t *testing.T) {
	_, h := testSetup(t)

	body := `{"name":"Jane Doe","email":"jane@example.com","main_challenge":"other",` +
		`"other_challenge":"We are merging two brands.",` +
		`"session_goal":"Decide which identity survives the merger.","consultation_type":"brand_strategy"}`
	req := newJSONRequest(t, http.MethodPost, "/api/v1/consultations", body, nil)
	w := executeHandler(t, h.CreateConsultation, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	c := unmarshalData[ConsultationResponse](t, w)
	if c.OtherChallenge != "We are merging two brands." {
		t.Errorf("expected other_challenge to round-trip, got %q", c.OtherChallenge)
	}
}

func TestUpdateConsultationStatus(t *testing.T) {
	_, h := testSetup(t)

	body := `{"name":"Jane Doe","email":"jane@example.com","main_challenge":"positioning",` +
		`"session_goal":"Clarify how we talk about the product.","consultation_type":"brand_strategy"}`
	req := newJSONRequest(t, http.MethodPost, "/api/v1/consultations", body, nil)
	if w := executeHandler(t, h.CreateConsultation, req); w.Code != http.StatusCreated {
		t.Fatalf("creating consultation: got %d", w.Code)
	}

	req = newJSONRequest(t, http.MethodPut, "/api/v1/admin/consultations/1",
		`{"status":"confirmed"}`, map[string]string{"id": "1"})
	w := executeHandler(t, h.UpdateConsultation, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if c := unmarshalData[ConsultationResponse](t, w); c.Status != model.ConsultationStatusConfirmed {
		t.Errorf("expected confirmed, got %q", c.Status)
	}

	req = newJSONRequest(t, http.MethodPut, "/api/v1/admin/consultations/1",
		`{"status":"ghosted"}`, map[string]string{"id": "1"})
	if w := executeHandler(t, h.UpdateConsultation, req); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", w.Code)
	}
}
