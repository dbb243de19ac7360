// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/northboundstudio/brandsite/internal/auth"
	"github.com/northboundstudio/brandsite/internal/model"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates the initial admin account and default site settings.
// Safe to run repeatedly.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	if err := seedAdmin(ctx, queries); err != nil {
		return err
	}
	return seedSettings(ctx, queries)
}

func seedAdmin(ctx context.Context, queries *Queries) error {
	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Name:         DefaultAdminName,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
	)

	return nil
}

func seedSettings(ctx context.Context, queries *Queries) error {
	defaults := map[string]string{
		model.SettingSiteName: "Northbound Studio",
		model.SettingTagline:  "Brands that point true north.",
	}

	for key, value := range defaults {
		_, err := queries.GetSetting(ctx, key)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking setting %q: %w", key, err)
		}
		if err := queries.UpsertSetting(ctx, key, value); err != nil {
			return fmt.Errorf("seeding setting %q: %w", key, err)
		}
	}

	return nil
}
