// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"testing"
	"time"
)

func TestCampaignIsRunning(t *testing.T) {
	now := time.Now().UTC()
	hour := time.Hour

	tests := []struct {
		name     string
		active   bool
		startsAt sql.NullTime
		endsAt   sql.NullTime
		want     bool
	}{
		{"active without window", true, sql.NullTime{}, sql.NullTime{}, true},
		{"active within window", true,
			sql.NullTime{Time: now.Add(-hour), Valid: true},
			sql.NullTime{Time: now.Add(hour), Valid: true}, true},
		{"active before start", true,
			sql.NullTime{Time: now.Add(hour), Valid: true}, sql.NullTime{}, false},
		{"active after end", true,
			sql.NullTime{}, sql.NullTime{Time: now.Add(-hour), Valid: true}, false},
		{"inactive within window", false,
			sql.NullTime{Time: now.Add(-hour), Valid: true},
			sql.NullTime{Time: now.Add(hour), Valid: true}, false},
		{"active with only past start", true,
			sql.NullTime{Time: now.Add(-hour), Valid: true}, sql.NullTime{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Campaign{Active: tt.active, StartsAt: tt.startsAt, EndsAt: tt.endsAt}
			if got := c.IsRunning(now); got != tt.want {
				t.Errorf("IsRunning() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateCampaignSubmission(t *testing.T) {
	if v := ValidateCampaignSubmission("Jane", "jane@example.com", "Tell me more."); !v.IsValid() {
		t.Errorf("expected valid submission, got %v", v.Errors)
	}
	if v := ValidateCampaignSubmission("J", "jane@example.com", "Tell me more."); v.IsValid() {
		t.Error("expected one-letter name to fail")
	}
	if v := ValidateCampaignSubmission("Jane", "jane@example.com", "Hey"); v.IsValid() {
		t.Error("expected short message to fail")
	}
}
