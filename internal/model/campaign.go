// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"time"
)

// Campaign represents a marketing campaign with its own landing form.
type Campaign struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Active      bool         `json:"active"`
	StartsAt    sql.NullTime `json:"starts_at,omitempty"`
	EndsAt      sql.NullTime `json:"ends_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// IsRunning reports whether the campaign accepts submissions at the given time.
func (c *Campaign) IsRunning(now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.StartsAt.Valid && now.Before(c.StartsAt.Time) {
		return false
	}
	if c.EndsAt.Valid && now.After(c.EndsAt.Time) {
		return false
	}
	return true
}

// CampaignSubmission represents a form submission tied to a campaign.
type CampaignSubmission struct {
	ID         int64          `json:"id"`
	CampaignID int64          `json:"campaign_id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Message    string         `json:"message"`
	IPAddress  sql.NullString `json:"ip_address,omitempty"`
	UserAgent  sql.NullString `json:"user_agent,omitempty"`
	Country    sql.NullString `json:"country,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ValidateCampaign checks a campaign payload before it is written.
func ValidateCampaign(name, slug, description string) ValidationResult {
	var v ValidationResult
	v.requireLength("Name", name, 2, 120)
	v.requireLength("Description", description, 1, 2000)
	if !isValidSlugString(slug) {
		v.addError("Slug must contain only lowercase letters, numbers, and hyphens")
	}
	return v
}

// ValidateCampaignSubmission checks a submission payload before it is written.
func ValidateCampaignSubmission(name, email, message string) ValidationResult {
	var v ValidationResult
	v.requireLength("Name", name, 2, 100)
	v.requireEmail("Email", email)
	v.requireLength("Message", message, 5, 5000)
	return v
}
