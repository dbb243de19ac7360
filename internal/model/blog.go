// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package model

import (
	"database/sql"
	"strings"
	"time"
)

// Blog post field length bounds.
const (
	BlogTitleMinLen   = 3
	BlogTitleMaxLen   = 200
	BlogExcerptMinLen = 10
	BlogExcerptMaxLen = 500
)

// WordsPerMinute is the reading speed used for estimated reading time.
const WordsPerMinute = 200

// BlogPost represents an article on the blog.
type BlogPost struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	Excerpt   string         `json:"excerpt"`
	Content   string         `json:"content"`
	ImageURL  sql.NullString `json:"image_url,omitempty"`
	Published bool           `json:"published"`
	Tags      []string       `json:"tags"`
	AuthorID  sql.NullInt64  `json:"author_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ReadingTimeMinutes estimates reading time from the content word count.
// Always at least one minute for non-empty content.
func (p *BlogPost) ReadingTimeMinutes() int {
	words := len(strings.Fields(p.Content))
	if words == 0 {
		return 0
	}
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ValidateBlogPost checks a blog post payload before it is written.
func ValidateBlogPost(title, slug, excerpt, content, imageURL string) ValidationResult {
	var v ValidationResult
	v.requireLength("Title", title, BlogTitleMinLen, BlogTitleMaxLen)
	v.requireLength("Excerpt", excerpt, BlogExcerptMinLen, BlogExcerptMaxLen)
	v.requireLength("Content", content, 1, 0)
	if !isValidSlugString(slug) {
		v.addError("Slug must contain only lowercase letters, numbers, and hyphens")
	}
	v.optionalURL("Image URL", imageURL)
	return v
}

// isValidSlugString mirrors util.IsValidSlug; model does not import util.
func isValidSlugString(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' || strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	return true
}
