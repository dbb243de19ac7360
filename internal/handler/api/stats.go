// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/northboundstudio/brandsite/internal/store"
)

// DashboardStats aggregates the counts shown on the admin dashboard.
type DashboardStats struct {
	Contacts      map[string]int64 `json:"contacts"`
	Consultations map[string]int64 `json:"consultations"`
	Applications  map[int64]int64  `json:"applications"`
	BlogPosts     int64            `json:"blog_posts"`
	PublishedJobs int64            `json:"published_jobs"`
}

// Dashboard handles GET /api/v1/admin/stats.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contacts, err := h.queries.ContactStats(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to load dashboard stats")
		return
	}
	consultations, err := h.queries.ConsultationStats(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to load dashboard stats")
		return
	}
	applications, err := h.queries.ApplicationStats(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to load dashboard stats")
		return
	}
	posts, err := h.queries.CountBlogPosts(ctx, store.BlogPostFilter{})
	if err != nil {
		WriteInternalError(w, "Failed to load dashboard stats")
		return
	}
	published := true
	jobs, err := h.queries.CountJobs(ctx, store.JobFilter{Published: &published})
	if err != nil {
		WriteInternalError(w, "Failed to load dashboard stats")
		return
	}

	WriteSuccess(w, DashboardStats{
		Contacts:      contacts,
		Consultations: consultations,
		Applications:  applications,
		BlogPosts:     posts,
		PublishedJobs: jobs,
	}, nil)
}
