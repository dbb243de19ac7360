// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

// Package model contains domain models, enum constants, and the pure
// field-validation rules shared by all write paths.
package model

import (
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValidationResult is the outcome of validating a request payload.
type ValidationResult struct {
	Errors []string
}

// IsValid reports whether validation produced no errors.
func (v ValidationResult) IsValid() bool {
	return len(v.Errors) == 0
}

func (v *ValidationResult) addError(msg string) {
	v.Errors = append(v.Errors, msg)
}

// requireLength appends an error unless the field's rune count is within
// [min, max]. A max of 0 means unbounded.
func (v *ValidationResult) requireLength(field, value string, min, max int) {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < min {
		if min == 1 {
			v.addError(field + " is required")
		} else {
			v.addError(field + " must be at least " + strconv.Itoa(min) + " characters")
		}
		return
	}
	if max > 0 && n > max {
		v.addError(field + " must be at most " + strconv.Itoa(max) + " characters")
	}
}

// requireEmail appends an error unless value parses as an address.
func (v *ValidationResult) requireEmail(field, value string) {
	if _, err := mail.ParseAddress(strings.TrimSpace(value)); err != nil {
		v.addError(field + " must be a valid email address")
	}
}

// optionalURL appends an error if value is non-empty and not an absolute
// http(s) URL.
func (v *ValidationResult) optionalURL(field, value string) {
	if value == "" {
		return
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		v.addError(field + " must be a valid http(s) URL")
	}
}
