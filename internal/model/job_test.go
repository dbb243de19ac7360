// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"testing"
	"time"
)

func TestJobIsOpen(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name      string
		published bool
		deadline  sql.NullTime
		want      bool
	}{
		{"published without deadline", true, sql.NullTime{}, true},
		{"published with future deadline", true, sql.NullTime{Time: now.Add(time.Hour), Valid: true}, true},
		{"published with past deadline", true, sql.NullTime{Time: now.Add(-time.Hour), Valid: true}, false},
		{"unpublished", false, sql.NullTime{}, false},
		{"unpublished with future deadline", false, sql.NullTime{Time: now.Add(time.Hour), Valid: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := Job{Published: tt.published, Deadline: tt.deadline}
			if got := j.IsOpen(now); got != tt.want {
				t.Errorf("IsOpen() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateJobApplication(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
		email string
		cv    string
		folio string
		valid bool
	}{
		{"complete", "Ada", "Lovelace", "ada@example.com", "", "", true},
		{"with urls", "Ada", "Lovelace", "ada@example.com", "https://cdn.example.com/cv.pdf", "https://ada.example.com", true},
		{"missing first name", "", "Lovelace", "ada@example.com", "", "", false},
		{"missing last name", "Ada", "", "ada@example.com", "", "", false},
		{"bad email", "Ada", "Lovelace", "not-an-email", "", "", false},
		{"ftp portfolio", "Ada", "Lovelace", "ada@example.com", "", "ftp://ada.example.com", false},
		{"relative resume url", "Ada", "Lovelace", "ada@example.com", "/cv.pdf", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateJobApplication(tt.first, tt.last, tt.email, tt.cv, tt.folio)
			if v.IsValid() != tt.valid {
				t.Errorf("IsValid() = %v, want %v (errors: %v)", v.IsValid(), tt.valid, v.Errors)
			}
		})
	}
}

func TestValidateJob(t *testing.T) {
	v := ValidateJob("Brand Designer", "brand-designer", "Design", "Remote", EmploymentFullTime, "Design things.")
	if !v.IsValid() {
		t.Errorf("expected valid job, got %v", v.Errors)
	}

	v = ValidateJob("Brand Designer", "brand-designer", "Design", "Remote", "freelance", "Design things.")
	if v.IsValid() {
		t.Error("expected unknown employment type to fail")
	}

	v = ValidateJob("Brand Designer", "Bad Slug!", "Design", "Remote", EmploymentFullTime, "Design things.")
	if v.IsValid() {
		t.Error("expected malformed slug to fail")
	}
}
