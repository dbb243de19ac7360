// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/northboundstudio/brandsite/internal/cache"
	"github.com/northboundstudio/brandsite/internal/middleware"
	"github.com/northboundstudio/brandsite/internal/model"
	"github.com/northboundstudio/brandsite/internal/service"
	"github.com/northboundstudio/brandsite/internal/store"
	"github.com/northboundstudio/brandsite/internal/util"
)

// BlogPostResponse represents a blog post in API responses.
type BlogPostResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content,omitempty"`
	HTML        string    `json:"html,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Published   bool      `json:"published"`
	Tags        []string  `json:"tags"`
	AuthorID    *int64    `json:"author_id,omitempty"`
	ReadingTime int       `json:"reading_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// blogPostToResponse converts a post. When includeContent is false the
// raw markdown and rendered HTML are omitted (list views).
func blogPostToResponse(p model.BlogPost, includeContent bool) BlogPostResponse {
	resp := BlogPostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		ImageURL:    p.ImageURL.String,
		Published:   p.Published,
		Tags:        p.Tags,
		ReadingTime: p.ReadingTimeMinutes(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.AuthorID.Valid {
		resp.AuthorID = &p.AuthorID.Int64
	}
	if includeContent {
		resp.Content = p.Content
		if html, err := service.RenderMarkdown(p.Content); err == nil {
			resp.HTML = html
		}
	}
	return resp
}

// cachedPostList is the cache payload for the public blog list. The
// total rides along so cache hits report the same meta as misses.
type cachedPostList struct {
	Posts []BlogPostResponse `json:"posts"`
	Total int64              `json:"total"`
}

// ListPublicBlogPosts handles GET /api/v1/blog (public).
func (h *Handler) ListPublicBlogPosts(w http.ResponseWriter, r *http.Request) {
	limit, offset, meta := pagination(r)
	tag := r.URL.Query().Get("tag")

	// Only the unfiltered first page is cached; it is what the site
	// renders on every blog visit.
	useCache := tag == "" && offset == 0
	if useCache {
		var cached cachedPostList
		if h.cachedJSON(r, cache.KeyPublishedPosts, &cached) {
			meta.Total = cached.Total
			WriteSuccess(w, cached.Posts, meta)
			return
		}
	}

	published := true
	filter := store.BlogPostFilter{Published: &published, Limit: limit, Offset: offset}
	if tag != "" {
		filter.Tag = &tag
	}

	posts, err := h.queries.ListBlogPosts(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to list blog posts")
		return
	}
	total, err := h.queries.CountBlogPosts(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to count blog posts")
		return
	}
	meta.Total = total

	resp := make([]BlogPostResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, blogPostToResponse(p, false))
	}

	if useCache {
		h.storeJSON(r, cache.KeyPublishedPosts, cachedPostList{Posts: resp, Total: total})
	}
	WriteSuccess(w, resp, meta)
}

// GetPublicBlogPost handles GET /api/v1/blog/{slug} (public).
// Drafts are invisible here: an unpublished slug yields 404.
func (h *Handler) GetPublicBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.queries.GetBlogPostBySlug(r.Context(), slug, true)
	if err != nil {
		WriteNotFound(w, "Blog post not found")
		return
	}
	WriteSuccess(w, blogPostToResponse(post, true), nil)
}

// ListBlogPosts handles GET /api/v1/admin/blog.
func (h *Handler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	limit, offset, meta := pagination(r)

	filter := store.BlogPostFilter{Limit: limit, Offset: offset}
	if s := r.URL.Query().Get("published"); s == "true" || s == "false" {
		published := s == "true"
		filter.Published = &published
	}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		filter.Tag = &tag
	}

	posts, err := h.queries.ListBlogPosts(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to list blog posts")
		return
	}
	total, err := h.queries.CountBlogPosts(r.Context(), filter)
	if err != nil {
		WriteInternalError(w, "Failed to count blog posts")
		return
	}
	meta.Total = total

	resp := make([]BlogPostResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, blogPostToResponse(p, false))
	}
	WriteSuccess(w, resp, meta)
}

// GetBlogPost handles GET /api/v1/admin/blog/{id}. Admins see drafts.
func (h *Handler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "blog post", func(id int64) (model.BlogPost, error) {
		return h.queries.GetBlogPostByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, blogPostToResponse(post, true), nil)
}

// CreateBlogPostRequest is the admin payload for a new blog post.
type CreateBlogPostRequest struct {
	Title     string   `json:"title"`
	Slug      string   `json:"slug,omitempty"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content"`
	ImageURL  string   `json:"image_url,omitempty"`
	Published bool     `json:"published"`
	Tags      []string `json:"tags,omitempty"`
}

// CreateBlogPost handles POST /api/v1/admin/blog.
// An omitted slug is derived from the title.
func (h *Handler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req CreateBlogPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}

	if v := model.ValidateBlogPost(req.Title, req.Slug, req.Excerpt, req.Content, req.ImageURL); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	count, err := h.queries.CountBlogPostsBySlug(r.Context(), req.Slug, 0)
	if err != nil {
		WriteInternalError(w, "Failed to check slug")
		return
	}
	if count > 0 {
		WriteBadRequest(w, "Slug already exists", map[string]string{"slug": "Slug already exists"})
		return
	}

	post, err := h.queries.CreateBlogPost(r.Context(), store.CreateBlogPostParams{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		ImageURL:  util.NullStringFromValue(req.ImageURL),
		Published: req.Published,
		Tags:      req.Tags,
		AuthorID:  util.NullInt64FromPtr(authorIDFromRequest(r)),
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteBadRequest(w, "Slug already exists", map[string]string{"slug": "Slug already exists"})
			return
		}
		WriteInternalError(w, "Failed to create blog post")
		return
	}

	h.invalidateCache(r, cache.KeyPublishedPosts)
	WriteCreated(w, blogPostToResponse(post, true))
}

// UpdateBlogPostRequest is the admin patch payload for a blog post.
type UpdateBlogPostRequest struct {
	Title     *string   `json:"title,omitempty"`
	Slug      *string   `json:"slug,omitempty"`
	Excerpt   *string   `json:"excerpt,omitempty"`
	Content   *string   `json:"content,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	Published *bool     `json:"published,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
}

// UpdateBlogPost handles PUT /api/v1/admin/blog/{id}.
func (h *Handler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid blog post ID", nil)
		return
	}

	var req UpdateBlogPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	current, err := h.queries.GetBlogPostByID(r.Context(), id)
	if err != nil {
		WriteNotFound(w, "Blog post not found")
		return
	}

	merged := current
	if req.Title != nil {
		merged.Title = *req.Title
	}
	if req.Slug != nil {
		merged.Slug = *req.Slug
	}
	if req.Excerpt != nil {
		merged.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		merged.Content = *req.Content
	}
	imageURL := merged.ImageURL.String
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	if v := model.ValidateBlogPost(merged.Title, merged.Slug, merged.Excerpt, merged.Content, imageURL); !v.IsValid() {
		WriteValidationFailed(w, v)
		return
	}

	if req.Slug != nil && *req.Slug != current.Slug {
		count, countErr := h.queries.CountBlogPostsBySlug(r.Context(), *req.Slug, id)
		if countErr != nil {
			WriteInternalError(w, "Failed to check slug")
			return
		}
		if count > 0 {
			WriteBadRequest(w, "Slug already exists", map[string]string{"slug": "Slug already exists"})
			return
		}
	}

	post, err := h.queries.UpdateBlogPost(r.Context(), id, store.BlogPostPatch{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Published: req.Published,
		Tags:      req.Tags,
	})
	if err != nil {
		writeUpdateError(w, err, "blog post")
		return
	}

	h.invalidateCache(r, cache.KeyPublishedPosts)
	WriteSuccess(w, blogPostToResponse(post, true), nil)
}

// DeleteBlogPost handles DELETE /api/v1/admin/blog/{id}.
func (h *Handler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	deleteEntityByID(w, r, "blog post", func(id int64) (bool, error) {
		deleted, err := h.queries.DeleteBlogPost(r.Context(), id)
		if err == nil && deleted {
			h.invalidateCache(r, cache.KeyPublishedPosts)
		}
		return deleted, err
	})
}

// authorIDFromRequest returns the session user's ID, or nil when
// unauthenticated.
func authorIDFromRequest(r *http.Request) *int64 {
	if id := middleware.GetUserID(r); id != 0 {
		return &id
	}
	return nil
}
