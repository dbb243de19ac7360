// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"time"
)

// Service represents an agency service offering (brand strategy,
// identity design, and so on).
type Service struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	Summary   string         `json:"summary"`
	Body      string         `json:"body"`
	Icon      sql.NullString `json:"icon,omitempty"`
	Position  int64          `json:"position"`
	Featured  bool           `json:"featured"`
	Published bool           `json:"published"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ValidateService checks a service payload before it is written.
func ValidateService(title, slug, summary, body string) ValidationResult {
	var v ValidationResult
	v.requireLength("Title", title, 2, 120)
	v.requireLength("Summary", summary, 10, 500)
	v.requireLength("Body", body, 1, 0)
	if !isValidSlugString(slug) {
		v.addError("Slug must contain only lowercase letters, numbers, and hyphens")
	}
	return v
}
