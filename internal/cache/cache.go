// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

// Package cache provides the caching layer for hot public reads.
package cache

import (
	"context"
	"time"
)

// Cache defines the interface for cache implementations.
// All implementations must be thread-safe.
// Values are []byte so memory and Redis backends are interchangeable.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns nil and ErrCacheMiss if not found or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the specified TTL.
	// If TTL is 0, uses the default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries from the cache.
	Clear(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

// Cache keys used by the API handlers. Writes to an entity delete the
// matching key so public reads never serve stale content past a write.
const (
	KeyPublishedPosts       = "public:blog"
	KeyPublishedServices    = "public:services"
	KeyPublishedTeam        = "public:team"
	KeyFeaturedTestimonials = "public:testimonials:featured"
	KeyApprovedTestimonials = "public:testimonials"
	KeyPublicSettings       = "public:settings"
)
