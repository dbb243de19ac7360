// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package service

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer sanitizes rendered HTML. UGCPolicy allows the safe
// subset of tags needed for blog and service bodies.
var htmlSanitizer = bluemonday.UGCPolicy()

// RenderMarkdown converts markdown content to sanitized HTML.
// Blog posts and service bodies are authored in markdown by admins,
// but the output is still sanitized so a compromised admin account
// cannot inject script into the public site.
func RenderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}

// SanitizeHTML strips unsafe markup from an HTML fragment.
func SanitizeHTML(content string) string {
	return htmlSanitizer.Sanitize(content)
}
