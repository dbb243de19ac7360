// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer c.Close()

	_, err := c.Get(context.Background(), "absent")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(time.Millisecond)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected expired entry to miss, got %v", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected miss after delete, got %v", err)
	}
}

func TestMemoryCacheMaxSize(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute, MaxSize: 1})
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "a", []byte("1"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	// New key is refused once full, existing key may still be overwritten.
	if err := c.Set(ctx, "b", []byte("2"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, err := c.Get(ctx, "b"); !errors.Is(err, ErrCacheMiss) {
		t.Error("expected new key to be refused at capacity")
	}
	if err := c.Set(ctx, "a", []byte("3"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err := c.Get(ctx, "a")
	if err != nil || string(got) != "3" {
		t.Errorf("expected overwrite at capacity, got %q err %v", got, err)
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	_ = c.Close()

	if err := c.Set(context.Background(), "k", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
}
