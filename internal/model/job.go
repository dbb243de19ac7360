// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"time"
)

// Employment types
const (
	EmploymentFullTime   = "full_time"
	EmploymentPartTime   = "part_time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"
)

// IsValidEmploymentType checks if an employment type is valid.
func IsValidEmploymentType(t string) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

// Job represents an open position.
type Job struct {
	ID                int64        `json:"id"`
	Title             string       `json:"title"`
	Slug              string       `json:"slug"`
	Department        string       `json:"department"`
	Location          string       `json:"location"`
	EmploymentType    string       `json:"employment_type"`
	Description       string       `json:"description"`
	Deadline          sql.NullTime `json:"deadline,omitempty"`
	AllowCvSubmission bool         `json:"allow_cv_submission"`
	Published         bool         `json:"published"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// IsOpen reports whether the job accepts applications at the given time.
func (j *Job) IsOpen(now time.Time) bool {
	if !j.Published {
		return false
	}
	if j.Deadline.Valid && now.After(j.Deadline.Time) {
		return false
	}
	return true
}

// JobApplication represents a public application for a job.
// A given email may apply to a given job only once; the store enforces
// this with a unique index on (job_id, email).
type JobApplication struct {
	ID           int64          `json:"id"`
	JobID        int64          `json:"job_id"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Email        string         `json:"email"`
	Phone        sql.NullString `json:"phone,omitempty"`
	CoverLetter  sql.NullString `json:"cover_letter,omitempty"`
	ResumeURL    sql.NullString `json:"resume_url,omitempty"`
	PortfolioURL sql.NullString `json:"portfolio_url,omitempty"`
	IPAddress    sql.NullString `json:"ip_address,omitempty"`
	UserAgent    sql.NullString `json:"user_agent,omitempty"`
	Country      sql.NullString `json:"country,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ValidateJob checks a job payload before it is written.
func ValidateJob(title, slug, department, location, employmentType, description string) ValidationResult {
	var v ValidationResult
	v.requireLength("Title", title, 2, 120)
	v.requireLength("Department", department, 2, 100)
	v.requireLength("Location", location, 2, 100)
	if !IsValidEmploymentType(employmentType) {
		v.addError("Employment type is not a recognized option")
	}
	v.requireLength("Description", description, 1, 0)
	if !isValidSlugString(slug) {
		v.addError("Slug must contain only lowercase letters, numbers, and hyphens")
	}
	return v
}

// ValidateJobApplication checks an application payload before it is written.
func ValidateJobApplication(firstName, lastName, email, resumeURL, portfolioURL string) ValidationResult {
	var v ValidationResult
	v.requireLength("First name", firstName, 1, 100)
	v.requireLength("Last name", lastName, 1, 100)
	v.requireEmail("Email", email)
	v.optionalURL("Resume URL", resumeURL)
	v.optionalURL("Portfolio URL", portfolioURL)
	return v
}
