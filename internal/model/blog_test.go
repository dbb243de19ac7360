// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package model

import (
	"strings"
	"testing"
)

func TestReadingTimeMinutes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"one word", "hello", 1},
		{"exactly one minute", strings.Repeat("word ", 200), 1},
		{"just over one minute", strings.Repeat("word ", 201), 2},
		{"three minutes", strings.Repeat("word ", 550), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BlogPost{Content: tt.content}
			if got := p.ReadingTimeMinutes(); got != tt.want {
				t.Errorf("ReadingTimeMinutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateBlogPost(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		slug    string
		excerpt string
		content string
		image   string
		valid   bool
	}{
		{"complete", "A Valid Title", "a-valid-title", "A long enough excerpt.", "Body.", "", true},
		{"short title", "Hi", "hi", "A long enough excerpt.", "Body.", "", false},
		{"short excerpt", "A Valid Title", "a-valid-title", "Short", "Body.", "", false},
		{"missing content", "A Valid Title", "a-valid-title", "A long enough excerpt.", "", "", false},
		{"bad slug", "A Valid Title", "Bad Slug!", "A long enough excerpt.", "Body.", "", false},
		{"bad image url", "A Valid Title", "a-valid-title", "A long enough excerpt.", "Body.", "not-a-url", false},
		{"good image url", "A Valid Title", "a-valid-title", "A long enough excerpt.", "Body.", "https://cdn.example.com/a.webp", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateBlogPost(tt.title, tt.slug, tt.excerpt, tt.content, tt.image)
			if v.IsValid() != tt.valid {
				t.Errorf("IsValid() = %v, want %v (errors: %v)", v.IsValid(), tt.valid, v.Errors)
			}
		})
	}
}
