// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

// Package config loads the application configuration from environment
// variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"BRANDSITE_DB_PATH" envDefault:"./data/brandsite.db"`
	SessionSecret string `env:"BRANDSITE_SESSION_SECRET,required"`
	ServerHost    string `env:"BRANDSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"BRANDSITE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"BRANDSITE_ENV" envDefault:"development"`
	LogLevel      string `env:"BRANDSITE_LOG_LEVEL" envDefault:"info"`
	BaseURL       string `env:"BRANDSITE_BASE_URL" envDefault:"http://localhost:8080"`
	UploadsDir    string `env:"BRANDSITE_UPLOADS_DIR" envDefault:"./uploads"`

	// Cache configuration
	RedisURL     string `env:"BRANDSITE_REDIS_URL"`                       // Optional Redis URL for distributed caching
	CachePrefix  string `env:"BRANDSITE_CACHE_PREFIX" envDefault:"bs:"`   // Redis key prefix
	CacheTTL     int    `env:"BRANDSITE_CACHE_TTL" envDefault:"300"`      // Default cache TTL in seconds
	CacheMaxSize int    `env:"BRANDSITE_CACHE_MAX_SIZE" envDefault:"1000"` // Max memory cache entries

	// Outbound email. Email is skipped (logged only) when SMTPHost is empty.
	SMTPHost        string `env:"BRANDSITE_SMTP_HOST"`
	SMTPPort        int    `env:"BRANDSITE_SMTP_PORT" envDefault:"587"`
	SMTPUsername    string `env:"BRANDSITE_SMTP_USERNAME"`
	SMTPPassword    string `env:"BRANDSITE_SMTP_PASSWORD"`
	EmailFrom       string `env:"BRANDSITE_EMAIL_FROM" envDefault:"no-reply@northboundstudio.com"`
	NotifyRecipient string `env:"BRANDSITE_NOTIFY_RECIPIENT"`

	// GeoIP configuration
	GeoIPDBPath string `env:"BRANDSITE_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Seeding configuration
	DoSeed bool `env:"BRANDSITE_DO_SEED" envDefault:"true"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// EmailEnabled returns true if outbound email is configured.
func (c Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("BRANDSITE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	if strings.TrimSpace(cfg.EmailFrom) == "" {
		return nil, fmt.Errorf("BRANDSITE_EMAIL_FROM must not be blank")
	}

	return cfg, nil
}
