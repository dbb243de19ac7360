// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/northboundstudio/brandsite/internal/model"
)

const blogPostColumns = `id, title, slug, excerpt, content, image_url,
	published, tags, author_id, created_at, updated_at`

func scanBlogPost(row interface{ Scan(...any) error }) (model.BlogPost, error) {
	var p model.BlogPost
	var tags string
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content,
		&p.ImageURL, &p.Published, &tags, &p.AuthorID,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		p.Tags = nil
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

func marshalTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// CreateBlogPostParams holds the fields for a new blog post.
type CreateBlogPostParams struct {
	Title     string
	Slug      string
	Excerpt   string
	Content   string
	ImageURL  sql.NullString
	Published bool
	Tags      []string
	AuthorID  sql.NullInt64
}

// CreateBlogPost inserts a post. A duplicate slug surfaces as a UNIQUE
// constraint error; use IsUniqueViolation to detect it.
func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (model.BlogPost, error) {
	now := time.Now().UTC()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO blog_posts (title, slug, excerpt, content, image_url,
			published, tags, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+blogPostColumns,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.ImageURL,
		arg.Published, marshalTags(arg.Tags), arg.AuthorID, now, now)
	return scanBlogPost(row)
}

// GetBlogPostByID returns a post or sql.ErrNoRows.
func (q *Queries) GetBlogPostByID(ctx context.Context, id int64) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE id = ?`, id)
	return scanBlogPost(row)
}

// GetBlogPostBySlug returns a post by slug. When publishedOnly is set,
// drafts yield sql.ErrNoRows just like missing posts.
func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug string, publishedOnly bool) (model.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE slug = ?`
	if publishedOnly {
		query += ` AND published = 1`
	}
	row := q.db.QueryRowContext(ctx, query, slug)
	return scanBlogPost(row)
}

// CountBlogPostsBySlug counts posts carrying the slug, excluding one id
// (0 to exclude nothing). Used for pre-insert slug checks.
func (q *Queries) CountBlogPostsBySlug(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_posts WHERE slug = ? AND id != ?`,
		slug, excludeID).Scan(&count)
	return count, err
}

// BlogPostFilter narrows ListBlogPosts; nil fields are ignored.
type BlogPostFilter struct {
	Published *bool
	Tag       *string
	Limit     int64
	Offset    int64
}

// ListBlogPosts returns posts newest first.
func (q *Queries) ListBlogPosts(ctx context.Context, filter BlogPostFilter) ([]model.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts`
	var conds []string
	var args []any
	if filter.Published != nil {
		conds = append(conds, `published = ?`)
		args = append(args, *filter.Published)
	}
	if filter.Tag != nil {
		// Tags are stored as a JSON array of strings; match the quoted value.
		conds = append(conds, `tags LIKE '%' || ? || '%'`)
		args = append(args, `"`+*filter.Tag+`"`)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + joinConds(conds)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountBlogPosts counts posts matching the filter.
func (q *Queries) CountBlogPosts(ctx context.Context, filter BlogPostFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM blog_posts`
	var conds []string
	var args []any
	if filter.Published != nil {
		conds = append(conds, `published = ?`)
		args = append(args, *filter.Published)
	}
	if filter.Tag != nil {
		conds = append(conds, `tags LIKE '%' || ? || '%'`)
		args = append(args, `"`+*filter.Tag+`"`)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + joinConds(conds)
	}
	var count int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// BlogPostPatch carries a partial update; nil fields are left untouched.
type BlogPostPatch struct {
	Title     *string
	Slug      *string
	Excerpt   *string
	Content   *string
	ImageURL  *string
	Published *bool
	Tags      *[]string
	AuthorID  *int64
}

// UpdateBlogPost applies the non-nil patch fields and returns the updated row.
func (q *Queries) UpdateBlogPost(ctx context.Context, id int64, patch BlogPostPatch) (model.BlogPost, error) {
	var sets []string
	var args []any
	addSet := func(col string, val any) {
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	if patch.Title != nil {
		addSet("title", *patch.Title)
	}
	if patch.Slug != nil {
		addSet("slug", *patch.Slug)
	}
	if patch.Excerpt != nil {
		addSet("excerpt", *patch.Excerpt)
	}
	if patch.Content != nil {
		addSet("content", *patch.Content)
	}
	if patch.ImageURL != nil {
		addSet("image_url", *patch.ImageURL)
	}
	if patch.Published != nil {
		addSet("published", *patch.Published)
	}
	if patch.Tags != nil {
		addSet("tags", marshalTags(*patch.Tags))
	}
	if patch.AuthorID != nil {
		addSet("author_id", *patch.AuthorID)
	}
	if len(sets) == 0 {
		return q.GetBlogPostByID(ctx, id)
	}
	addSet("updated_at", time.Now().UTC())
	args = append(args, id)

	row := q.db.QueryRowContext(ctx,
		`UPDATE blog_posts SET `+joinSets(sets)+` WHERE id = ? RETURNING `+blogPostColumns,
		args...)
	return scanBlogPost(row)
}

// DeleteBlogPost removes a post. Returns false if no row matched.
func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
