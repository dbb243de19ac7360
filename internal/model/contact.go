// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"time"
)

// Contact statuses
const (
	ContactStatusNew      = "new"
	ContactStatusRead     = "read"
	ContactStatusReplied  = "replied"
	ContactStatusArchived = "archived"
)

// ValidContactStatuses returns all valid contact statuses.
func ValidContactStatuses() []string {
	return []string{
		ContactStatusNew,
		ContactStatusRead,
		ContactStatusReplied,
		ContactStatusArchived,
	}
}

// IsValidContactStatus checks if a contact status is valid.
func IsValidContactStatus(status string) bool {
	for _, s := range ValidContactStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// Contact represents a message submitted through the public contact form.
type Contact struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     sql.NullString `json:"phone,omitempty"`
	Subject   sql.NullString `json:"subject,omitempty"`
	Message   string         `json:"message"`
	Status    string         `json:"status"`
	IPAddress sql.NullString `json:"ip_address,omitempty"`
	UserAgent sql.NullString `json:"user_agent,omitempty"`
	Browser   sql.NullString `json:"browser,omitempty"`
	Country   sql.NullString `json:"country,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ValidateContact checks a contact submission before it is written.
func ValidateContact(name, email, message string) ValidationResult {
	var v ValidationResult
	v.requireLength("Name", name, 2, 100)
	v.requireEmail("Email", email)
	v.requireLength("Message", message, 10, 5000)
	return v
}
