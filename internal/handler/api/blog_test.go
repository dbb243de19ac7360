// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/northboundstudio/brandsite/internal/cache"
	"github.com/northboundstudio/brandsite/internal/mailer"
	"github.com/northboundstudio/brandsite/internal/store"
)

func createTestPost(t *testing.T, db *sql.DB, slug string, published bool) {
	t.Helper()
	_, err := store.New(db).CreateBlogPost(context.Background(), store.CreateBlogPostParams{
		Title:     "Why Brand Voice Matters",
		Slug:      slug,
		Excerpt:   "A look at how tone shapes perception.",
		Content:   "Voice is the part of a brand people remember.",
		Published: published,
		Tags:      []string{"strategy"},
	})
	if err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
}

func TestGetPublicBlogPostHidesDrafts(t *testing.T) {
	db, h := testSetup(t)
	createTestPost(t, db, "draft-post", false)

	req := newGetRequest(t, "/api/v1/blog/draft-post", map[string]string{"slug": "draft-post"})
	w := executeHandler(t, h.GetPublicBlogPost, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for draft, got %d", w.Code)
	}
}

func TestListPublicBlogPosts(t *testing.T) {
	db, h := testSetup(t)
	createTestPost(t, db, "published-post", true)
	createTestPost(t, db, "draft-post", false)

	req := newGetRequest(t, "/api/v1/blog", nil)
	w := executeHandler(t, h.ListPublicBlogPosts, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	posts, meta := unmarshalList[BlogPostResponse](t, w)
	if len(posts) != 1 {
		t.Fatalf("expected 1 published post, got %d", len(posts))
	}
	if posts[0].Slug != "published-post" {
		t.Errorf("expected published-post, got %q", posts[0].Slug)
	}
	if posts[0].Content != "" {
		t.Error("list view should not include content")
	}
	if meta == nil || meta.Total != 1 {
		t.Errorf("expected meta total 1, got %+v", meta)
	}
}

func TestListPublicBlogPostsCachedMetaTotal(t *testing.T) {
	db := testDB(t)
	h := NewHandler(Options{
		DB:     db,
		Cache:  cache.NewSimpleMemoryCache(time.Minute),
		Mailer: mailer.New(mailer.Options{}),
	})
	createTestPost(t, db, "published-post", true)

	first := executeHandler(t, h.ListPublicBlogPosts, newGetRequest(t, "/api/v1/blog", nil))
	second := executeHandler(t, h.ListPublicBlogPosts, newGetRequest(t, "/api/v1/blog", nil))

	for i, w := range []*httptest.ResponseRecorder{first, second} {
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
		posts, meta := unmarshalList[BlogPostResponse](t, w)
		if len(posts) != 1 {
			t.Fatalf("request %d: expected 1 post, got %d", i+1, len(posts))
		}
		if meta == nil || meta.Total != 1 {
			t.Errorf("request %d: expected meta total 1, got %+v", i+1, meta)
		}
	}
}

func TestCreateBlogPostSlugConflict(t *testing.T) {
	db, h := testSetup(t)
	createTestPost(t, db, "brand-voice", true)

	body := `{"title":"Another Take","slug":"brand-voice","excerpt":"Same slug, different post.",` +
		`"content":"Body text."}`
	req := newJSONRequest(t, http.MethodPost, "/api/v1/admin/blog", body, nil)
	w := executeHandler(t, h.CreateBlogPost, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate slug, got %d", w.Code)
	}
	if detail := unmarshalError(t, w); detail.Details["slug"] == "" {
		t.Errorf("expected slug detail, got %+v", detail.Details)
	}
}

func TestCreateBlogPostValidation(t *testing.T) {
	_, h := testSetup(t)

	tests := []struct {
		name string
		body string
	}{
		{"short title", `{"title":"Hi","excerpt":"A long enough excerpt.","content":"Body."}`},
		{"short excerpt", `{"title":"A Valid Title","excerpt":"Short","content":"Body."}`},
		{"missing content", `{"title":"A Valid Title","excerpt":"A long enough excerpt."}`},
		{"bad slug", `{"title":"A Valid Title","slug":"Bad Slug!","excerpt":"A long enough excerpt.","content":"Body."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, http.MethodPost, "/api/v1/admin/blog", tt.body, nil)
			w := executeHandler(t, h.CreateBlogPost, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetPublicBlogPostRendersMarkdown(t *testing.T) {
	db, h := testSetup(t)
	_, err := store.New(db).CreateBlogPost(context.Background(), store.CreateBlogPostParams{
		Title:     "Formatting Test",
		Slug:      "formatting-test",
		Excerpt:   "Checks markdown rendering.",
		Content:   "# Heading\n\nSome **bold** text.",
		Published: true,
	})
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	req := newGetRequest(t, "/api/v1/blog/formatting-test", map[string]string{"slug": "formatting-test"})
	w := executeHandler(t, h.GetPublicBlogPost, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	post := unmarshalData[BlogPostResponse](t, w)
	if post.HTML == "" {
		t.Fatal("expected rendered HTML")
	}
	if post.Content == "" {
		t.Error("detail view should include raw content")
	}
}
