// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/northboundstudio/brandsite/internal/model"
)

// testDB opens an in-memory database and runs the embedded migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func createJob(t *testing.T, q *Queries, slug string, published bool, deadline sql.NullTime) model.Job {
	t.Helper()
	job, err := q.CreateJob(context.Background(), CreateJobParams{
		Title:             "Brand Designer",
		Slug:              slug,
		Department:        "Design",
		Location:          "Remote",
		EmploymentType:    model.EmploymentFullTime,
		Description:       "Design brand identities.",
		Deadline:          deadline,
		AllowCvSubmission: true,
		Published:         published,
	})
	if err != nil {
		t.Fatalf("creating job: %v", err)
	}
	return job
}

func TestContactRoundTrip(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	created, err := q.CreateContact(ctx, CreateContactParams{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "We need a rebrand for our product line.",
	})
	if err != nil {
		t.Fatalf("creating contact: %v", err)
	}
	if created.Status != model.ContactStatusNew {
		t.Errorf("expected status new, got %q", created.Status)
	}

	got, err := q.GetContactByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("fetching contact: %v", err)
	}
	if got.Email != "jane@example.com" {
		t.Errorf("unexpected email %q", got.Email)
	}
}

func TestUpdateContactEmptyPatch(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	created, err := q.CreateContact(ctx, CreateContactParams{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "We need a rebrand for our product line.",
	})
	if err != nil {
		t.Fatalf("creating contact: %v", err)
	}

	got, err := q.UpdateContact(ctx, created.ID, ContactPatch{})
	if err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	if got.Name != created.Name || got.Status != created.Status {
		t.Errorf("empty patch changed the row: %+v", got)
	}
}

func TestContactStats(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := q.CreateContact(ctx, CreateContactParams{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Message: "We need a rebrand for our product line.",
		})
		if err != nil {
			t.Fatalf("creating contact: %v", err)
		}
	}
	status := model.ContactStatusReplied
	if _, err := q.UpdateContact(ctx, 1, ContactPatch{Status: &status}); err != nil {
		t.Fatalf("updating status: %v", err)
	}

	stats, err := q.ContactStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats[model.ContactStatusNew] != 2 || stats[model.ContactStatusReplied] != 1 {
		t.Errorf("unexpected stats: %v", stats)
	}
}

func TestCreateJobApplicationDuplicate(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()
	job := createJob(t, q, "brand-designer", true, sql.NullTime{})

	params := CreateJobApplicationParams{
		JobID:     job.ID,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}
	if _, err := q.CreateJobApplication(ctx, params); err != nil {
		t.Fatalf("first application: %v", err)
	}

	_, err := q.CreateJobApplication(ctx, params)
	if err == nil {
		t.Fatal("expected duplicate application to fail")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got %v", err)
	}

	// A different email on the same job is fine.
	params.Email = "grace@example.com"
	if _, err := q.CreateJobApplication(ctx, params); err != nil {
		t.Errorf("second applicant: %v", err)
	}
}

func TestUnpublishExpiredJobs(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	expired := createJob(t, q, "expired-role", true,
		sql.NullTime{Time: now.Add(-time.Hour), Valid: true})
	open := createJob(t, q, "open-role", true,
		sql.NullTime{Time: now.Add(time.Hour), Valid: true})
	evergreen := createJob(t, q, "evergreen-role", true, sql.NullTime{})

	n, err := q.UnpublishExpiredJobs(ctx, now)
	if err != nil {
		t.Fatalf("unpublishing: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 job unpublished, got %d", n)
	}

	for _, tc := range []struct {
		id   int64
		want bool
	}{
		{expired.ID, false},
		{open.ID, true},
		{evergreen.ID, true},
	} {
		job, err := q.GetJobByID(ctx, tc.id)
		if err != nil {
			t.Fatalf("fetching job %d: %v", tc.id, err)
		}
		if job.Published != tc.want {
			t.Errorf("job %q: published = %v, want %v", job.Slug, job.Published, tc.want)
		}
	}
}

func TestUpdateJobEmptyPatch(t *testing.T) {
	q := New(testDB(t))
	job := createJob(t, q, "brand-designer", true, sql.NullTime{})

	got, err := q.UpdateJob(context.Background(), job.ID, JobPatch{})
	if err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	if got.Title != job.Title || got.Slug != job.Slug || got.UpdatedAt != job.UpdatedAt {
		t.Errorf("empty patch changed the row: %+v", got)
	}
}

func TestDeleteJobCascadesApplications(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()
	job := createJob(t, q, "brand-designer", true, sql.NullTime{})

	_, err := q.CreateJobApplication(ctx, CreateJobApplicationParams{
		JobID:     job.ID,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	if err != nil {
		t.Fatalf("creating application: %v", err)
	}

	deleted, err := q.DeleteJob(ctx, job.ID)
	if err != nil || !deleted {
		t.Fatalf("deleting job: deleted=%v err=%v", deleted, err)
	}

	var count int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM job_applications`).Scan(&count); err != nil {
		t.Fatalf("counting applications: %v", err)
	}
	if count != 0 {
		t.Errorf("expected cascade delete, %d applications remain", count)
	}
}

func TestPruneEventsBefore(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	for _, age := range []time.Duration{-100 * 24 * time.Hour, -time.Hour} {
		_, err := q.CreateEvent(ctx, CreateEventParams{
			Level:     model.EventLevelWarning,
			Category:  model.EventCategorySystem,
			Message:   "disk usage high",
			Metadata:  "{}",
			CreatedAt: now.Add(age),
		})
		if err != nil {
			t.Fatalf("creating event: %v", err)
		}
	}

	n, err := q.PruneEventsBefore(ctx, now.Add(-90*24*time.Hour))
	if err != nil {
		t.Fatalf("pruning: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 event pruned, got %d", n)
	}

	events, err := q.ListEvents(ctx, EventFilter{})
	if err != nil {
		t.Fatalf("listing events: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event remaining, got %d", len(events))
	}
}

func TestUpsertSettingOverwrites(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()

	if err := q.UpsertSetting(ctx, model.SettingTagline, "first"); err != nil {
		t.Fatalf("upserting: %v", err)
	}
	if err := q.UpsertSetting(ctx, model.SettingTagline, "second"); err != nil {
		t.Fatalf("upserting again: %v", err)
	}

	value, err := q.GetSetting(ctx, model.SettingTagline)
	if err != nil {
		t.Fatalf("reading setting: %v", err)
	}
	if value != "second" {
		t.Errorf("expected overwritten value, got %q", value)
	}
}

func TestGetJobBySlugPublishedOnly(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()
	createJob(t, q, "draft-role", false, sql.NullTime{})

	_, err := q.GetJobBySlug(ctx, "draft-role", true)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for unpublished slug, got %v", err)
	}

	if _, err := q.GetJobBySlug(ctx, "draft-role", false); err != nil {
		t.Errorf("expected draft visible without filter, got %v", err)
	}
}

func createBlogPost(t *testing.T, q *Queries, slug string, published bool, tags []string) model.BlogPost {
	t.Helper()
	post, err := q.CreateBlogPost(context.Background(), CreateBlogPostParams{
		Title:     "Why Brand Voice Matters",
		Slug:      slug,
		Excerpt:   "A look at how tone shapes perception.",
		Content:   "Voice is the part of a brand people remember.",
		Published: published,
		Tags:      tags,
	})
	if err != nil {
		t.Fatalf("creating blog post: %v", err)
	}
	return post
}

func TestCountBlogPostsMatchesList(t *testing.T) {
	q := New(testDB(t))
	ctx := context.Background()
	createBlogPost(t, q, "voice-guide", true, []string{"branding"})
	createBlogPost(t, q, "color-theory", true, []string{"design"})
	createBlogPost(t, q, "draft-notes", false, []string{"branding"})

	published := true
	tag := "branding"
	filter := BlogPostFilter{Published: &published, Tag: &tag}

	posts, err := q.ListBlogPosts(ctx, filter)
	if err != nil {
		t.Fatalf("listing posts: %v", err)
	}
	count, err := q.CountBlogPosts(ctx, filter)
	if err != nil {
		t.Fatalf("counting posts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post for tag filter, got %d", len(posts))
	}
	if count != int64(len(posts)) {
		t.Errorf("count %d does not match list length %d for the same filter", count, len(posts))
	}
}
