// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package service

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("# Heading\n\nSome **bold** text.")
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Heading</h1>")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestRenderMarkdownStripsScript(t *testing.T) {
	html, err := RenderMarkdown("Hello <script>alert(1)</script> world")
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "Hello")
}

func TestRenderMarkdownStripsEventHandlers(t *testing.T) {
	html, err := RenderMarkdown(`<img src="x.png" onerror="alert(1)">`)
	require.NoError(t, err)

	assert.NotContains(t, html, "onerror")
}

func TestSanitizeHTML(t *testing.T) {
	assert.Equal(t, "<p>ok</p>", SanitizeHTML(`<p onclick="x()">ok</p>`))
	assert.Equal(t, "plain", SanitizeHTML("plain"))
}

func TestCollectRequestMeta(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/v1/contact", nil)
	req.RemoteAddr = "203.0.113.9:4711"
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0")

	meta := CollectRequestMeta(req, nil)

	assert.Equal(t, "203.0.113.9", meta.IPAddress)
	assert.Contains(t, meta.Browser, "Firefox")
	assert.Empty(t, meta.Country)
}

func TestCollectRequestMetaEmptyUserAgent(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/v1/contact", nil)
	req.RemoteAddr = "203.0.113.9:4711"

	meta := CollectRequestMeta(req, nil)

	assert.Empty(t, meta.Browser)
}
