// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package cache

import (
	"log/slog"
	"time"
)

// Options selects and configures the cache backend.
type Options struct {
	// RedisURL selects the Redis backend when non-empty.
	RedisURL string

	// Prefix is the Redis key prefix.
	Prefix string

	// DefaultTTL is the default TTL for cache entries.
	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for the memory cache.
	MaxSize int
}

// New creates a cache from the options. When Redis is configured but
// unreachable, it logs a warning and falls back to the memory cache so
// the site keeps serving.
func New(opts Options) Cache {
	if opts.RedisURL != "" {
		redisOpts := DefaultRedisCacheOptions()
		redisOpts.URL = opts.RedisURL
		if opts.Prefix != "" {
			redisOpts.Prefix = opts.Prefix
		}
		if opts.DefaultTTL > 0 {
			redisOpts.DefaultTTL = opts.DefaultTTL
		}

		c, err := NewRedisCache(redisOpts)
		if err == nil {
			slog.Info("using redis cache", "prefix", redisOpts.Prefix)
			return c
		}
		slog.Warn("redis cache unavailable, falling back to memory", "error", err)
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      opts.DefaultTTL,
		MaxSize:         opts.MaxSize,
		CleanupInterval: time.Minute,
	})
}
