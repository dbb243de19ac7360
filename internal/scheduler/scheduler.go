// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

// Package scheduler runs periodic maintenance: closing job postings
// past their deadline and pruning old event log entries.
package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/northboundstudio/brandsite/internal/store"
)

// EventRetention is how long event log entries are kept.
const EventRetention = 90 * 24 * time.Hour

// Scheduler owns the cron runner for background maintenance tasks.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the maintenance jobs and begins the cron runner.
func (s *Scheduler) Start() error {
	// Close expired job postings every minute so a posting never shows
	// as open past its deadline for more than a minute.
	_, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.closeExpiredJobs(); err != nil {
			s.logger.Error("failed to close expired job postings", "error", err)
		}
	})
	if err != nil {
		return err
	}

	// Prune old events hourly.
	_, err = s.cron.AddFunc("0 * * * *", func() {
		if err := s.pruneEvents(); err != nil {
			s.logger.Error("failed to prune events", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// closeExpiredJobs unpublishes job postings whose deadline has passed.
func (s *Scheduler) closeExpiredJobs() error {
	ctx := context.Background()
	queries := store.New(s.db)

	now := time.Now().UTC()
	n, err := queries.UnpublishExpiredJobs(ctx, now)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	s.logger.Info("closed expired job postings", "count", n)

	metadata, _ := json.Marshal(map[string]any{
		"count":     n,
		"closed_at": now.Format(time.RFC3339),
	})
	if _, err := queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     "info",
		Category:  "content",
		Message:   "Expired job postings closed by scheduler",
		Metadata:  string(metadata),
		CreatedAt: now,
	}); err != nil {
		s.logger.Warn("failed to log job close event", "error", err)
	}
	return nil
}

// pruneEvents deletes event log entries older than the retention window.
func (s *Scheduler) pruneEvents() error {
	ctx := context.Background()
	queries := store.New(s.db)

	cutoff := time.Now().UTC().Add(-EventRetention)
	n, err := queries.PruneEventsBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("pruned old events", "count", n, "cutoff", cutoff.Format(time.RFC3339))
	}
	return nil
}
