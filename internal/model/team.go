// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"time"
)

// TeamMember represents a person on the about page.
type TeamMember struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Role      string         `json:"role"`
	Bio       string         `json:"bio"`
	ImageURL  sql.NullString `json:"image_url,omitempty"`
	Position  int64          `json:"position"`
	Featured  bool           `json:"featured"`
	Published bool           `json:"published"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ValidateTeamMember checks a team member payload before it is written.
func ValidateTeamMember(name, role, bio, imageURL string) ValidationResult {
	var v ValidationResult
	v.requireLength("Name", name, 2, 100)
	v.requireLength("Role", role, 2, 100)
	v.requireLength("Bio", bio, 1, 2000)
	v.optionalURL("Image URL", imageURL)
	return v
}
