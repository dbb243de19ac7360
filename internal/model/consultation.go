// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"time"
)

// Consultation statuses
const (
	ConsultationStatusPending   = "pending"
	ConsultationStatusConfirmed = "confirmed"
	ConsultationStatusCompleted = "completed"
	ConsultationStatusCancelled = "cancelled"
)

// Consultation types
const (
	ConsultationTypeBrandStrategy     = "brand_strategy"
	ConsultationTypeDigitalStrategy   = "digital_strategy"
	ConsultationTypeCreativeDirection = "creative_direction"
)

// Main challenge options offered on the booking form.
const (
	ChallengePositioning     = "positioning"
	ChallengeIdentity        = "identity"
	ChallengeDigitalPresence = "digital_presence"
	ChallengeGrowth          = "growth"
	ChallengeOther           = "other"
)

// IsValidConsultationStatus checks if a consultation status is valid.
func IsValidConsultationStatus(status string) bool {
	switch status {
	case ConsultationStatusPending, ConsultationStatusConfirmed,
		ConsultationStatusCompleted, ConsultationStatusCancelled:
		return true
	}
	return false
}

// IsValidConsultationType checks if a consultation type is valid.
func IsValidConsultationType(t string) bool {
	switch t {
	case ConsultationTypeBrandStrategy, ConsultationTypeDigitalStrategy,
		ConsultationTypeCreativeDirection:
		return true
	}
	return false
}

// IsValidChallenge checks if a main-challenge option is valid.
func IsValidChallenge(c string) bool {
	switch c {
	case ChallengePositioning, ChallengeIdentity, ChallengeDigitalPresence,
		ChallengeGrowth, ChallengeOther:
		return true
	}
	return false
}

// Consultation represents a booked strategy session request.
type Consultation struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Phone            sql.NullString `json:"phone,omitempty"`
	Company          sql.NullString `json:"company,omitempty"`
	Website          sql.NullString `json:"website,omitempty"`
	Role             sql.NullString `json:"role,omitempty"`
	MainChallenge    string         `json:"main_challenge"`
	OtherChallenge   sql.NullString `json:"other_challenge,omitempty"`
	SessionGoal      string         `json:"session_goal"`
	PreferredAt      sql.NullTime   `json:"preferred_at,omitempty"`
	ConsultationType string         `json:"consultation_type"`
	Status           string         `json:"status"`
	IPAddress        sql.NullString `json:"ip_address,omitempty"`
	UserAgent        sql.NullString `json:"user_agent,omitempty"`
	Country          sql.NullString `json:"country,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// ValidateConsultation checks a booking payload before it is written.
// The "other" challenge must carry a description; the enum options must not.
func ValidateConsultation(name, email, website, mainChallenge, otherChallenge, sessionGoal, consultationType string) ValidationResult {
	var v ValidationResult
	v.requireLength("Name", name, 2, 100)
	v.requireEmail("Email", email)
	v.optionalURL("Website", website)
	if !IsValidChallenge(mainChallenge) {
		v.addError("Main challenge is not a recognized option")
	}
	if mainChallenge == ChallengeOther && otherChallenge == "" {
		v.addError("Please describe your challenge when selecting \"other\"")
	}
	v.requireLength("Session goal", sessionGoal, 10, 2000)
	if !IsValidConsultationType(consultationType) {
		v.addError("Consultation type is not a recognized option")
	}
	return v
}
