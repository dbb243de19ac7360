// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestApply(t *testing.T) {
	db, h := testSetup(t)
	createTestJob(t, db, "brand-designer", true, nil)

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`
	req := newJSONRequest(t, http.MethodPost, "/api/v1/jobs/brand-designer/apply", body,
		map[string]string{"slug": "brand-designer"})
	w := executeHandler(t, h.Apply, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM job_applications`).Scan(&count); err != nil {
		t.Fatalf("counting applications: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 application, got %d", count)
	}
}

func TestApplyDuplicate(t *testing.T) {
	db, h := testSetup(t)
	createTestJob(t, db, "brand-designer", true, nil)

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`
	first := newJSONRequest(t, http.MethodPost, "/api/v1/jobs/brand-designer/apply", body,
		map[string]string{"slug": "brand-designer"})
	if w := executeHandler(t, h.Apply, first); w.Code != http.StatusCreated {
		t.Fatalf("first application: expected 201, got %d", w.Code)
	}

	req := newJSONRequest(t, http.MethodPost, "/api/v1/jobs/brand-designer/apply", body,
		map[string]string{"slug": "brand-designer"})
	w := executeHandler(t, h.Apply, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate application: expected 400, got %d", w.Code)
	}
	if detail := unmarshalError(t, w); !strings.Contains(detail.Message, "already applied") {
		t.Errorf("expected duplicate message, got %q", detail.Message)
	}

	var count int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM job_applications`).Scan(&count); err != nil {
		t.Fatalf("counting applications: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 application after duplicate, got %d", count)
	}
}

func TestApplyByJobID(t *testing.T) {
	db, h := testSetup(t)
	job := createTestJob(t, db, "brand-designer", true, nil)
	id := strconv.FormatInt(job.ID, 10)

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`
	req := newJSONRequest(t, http.MethodPost, "/api/v1/jobs/"+id+"/apply", body,
		map[string]string{"slug": id})
	w := executeHandler(t, h.Apply, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201 applying by ID, got %d: %s", w.Code, w.Body.String())
	}
}

func TestApplyByJobIDUnpublished(t *testing.T) {
	db, h := testSetup(t)
	job := createTestJob(t, db, "draft-role", false, nil)
	id := strconv.FormatInt(job.ID, 10)

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`
	req := newJSONRequest(t, http.MethodPost, "/api/v1/jobs/"+id+"/apply", body,
		map[string]string{"slug": id})
	w := executeHandler(t, h.Apply, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unpublished job by ID, got %d", w.Code)
	}
}

func TestApplyUnpublishedJob(t *testing.T) {
	db, h := testSetup(t)
	createTestJob(t, db, "draft-role", false, nil)

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`
	req := newJSONRequest(t, http.MethodPost, "/api/v1/jobs/draft-role/apply", body,
		map[string]string{"slug": "draft-role"})
	w := executeHandler(t, h.Apply, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unpublished job, got %d", w.Code)
	}
}

func TestApplyPastDeadline(t *testing.T) {
	db, h := testSetup(t)
	deadline := time.Now().UTC().Add(-time.Hour)
	createTestJob(t, db, "closed-role", true, &deadline)

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`
	req := newJSONRequest(t, http.MethodPost, "/api/v1/jobs/closed-role/apply", body,
		map[string]string{"slug": "closed-role"})
	w := executeHandler(t, h.Apply, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for closed job, got %d", w.Code)
	}
}

func TestApplyValidation(t *testing.T) {
	db, h := testSetup(t)
	createTestJob(t, db, "brand-designer", true, nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing first name", `{"last_name":"Lovelace","email":"ada@example.com"}`},
		{"bad email", `{"first_name":"Ada","last_name":"Lovelace","email":"not-an-email"}`},
		{"bad portfolio URL", `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","portfolio_url":"ftp://nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, http.MethodPost, "/api/v1/jobs/brand-designer/apply", tt.body,
				map[string]string{"slug": "brand-designer"})
			w := executeHandler(t, h.Apply, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			if detail := unmarshalError(t, w); detail.Code != "validation_error" {
				t.Errorf("expected validation_error, got %q", detail.Code)
			}
		})
	}
}

func TestListPublicJobsHidesClosed(t *testing.T) {
	db, h := testSetup(t)
	createTestJob(t, db, "open-role", true, nil)
	past := time.Now().UTC().Add(-time.Hour)
	createTestJob(t, db, "expired-role", true, &past)
	createTestJob(t, db, "draft-role", false, nil)

	req := newGetRequest(t, "/api/v1/jobs", nil)
	w := executeHandler(t, h.ListPublicJobs, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	jobs, _ := unmarshalList[JobResponse](t, w)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 open job, got %d", len(jobs))
	}
	if jobs[0].Slug != "open-role" {
		t.Errorf("expected open-role, got %q", jobs[0].Slug)
	}
}

func TestCreateJobGeneratesSlug(t *testing.T) {
	_, h := testSetup(t)

	body := `{"title":"Senior Motion Designer","department":"Design","location":"Oslo",` +
		`"employment_type":"full_time","description":"Animate brand systems.","published":true}`
	req := newJSONRequest(t, http.MethodPost, "/api/v1/admin/jobs", body, nil)
	w := executeHandler(t, h.CreateJob, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	job := unmarshalData[JobResponse](t, w)
	if job.Slug != "senior-motion-designer" {
		t.Errorf("expected generated slug, got %q", job.Slug)
	}
	if !job.Open {
		t.Error("expected new published job without deadline to be open")
	}
}

func TestUpdateJobEmptyPatch(t *testing.T) {
	db, h := testSetup(t)
	job := createTestJob(t, db, "brand-designer", true, nil)

	req := newJSONRequest(t, http.MethodPut, "/api/v1/admin/jobs/1", `{}`,
		map[string]string{"id": "1"})
	w := executeHandler(t, h.UpdateJob, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	got := unmarshalData[JobResponse](t, w)
	if got.Title != job.Title || got.Slug != job.Slug {
		t.Errorf("empty patch changed the job: %+v", got)
	}
}
