// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"time"
)

// Testimonial content length bounds.
const (
	TestimonialContentMinLen = 10
	TestimonialContentMaxLen = 2000
)

// Testimonial represents a client quote shown on the site.
// Approved gates all public visibility; the homepage carousel additionally
// requires Featured.
type Testimonial struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Position  string         `json:"position"`
	Company   string         `json:"company"`
	Content   string         `json:"content"`
	Rating    int64          `json:"rating"`
	ImageURL  sql.NullString `json:"image_url,omitempty"`
	Featured  bool           `json:"featured"`
	Approved  bool           `json:"approved"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ValidateTestimonial checks a testimonial payload before it is written.
func ValidateTestimonial(name, position, company, content string, rating int64, imageURL string) ValidationResult {
	var v ValidationResult
	v.requireLength("Name", name, 2, 100)
	v.requireLength("Position", position, 2, 100)
	v.requireLength("Company", company, 1, 100)
	v.requireLength("Content", content, TestimonialContentMinLen, TestimonialContentMaxLen)
	if rating < 1 || rating > 5 {
		v.addError("Rating must be between 1 and 5")
	}
	v.optionalURL("Image URL", imageURL)
	return v
}
