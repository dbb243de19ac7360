// Copyright (c) 2025-2026 Northbound Studio
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/northboundstudio/brandsite/internal/cache"
	"github.com/northboundstudio/brandsite/internal/config"
	"github.com/northboundstudio/brandsite/internal/geoip"
	"github.com/northboundstudio/brandsite/internal/handler/api"
	"github.com/northboundstudio/brandsite/internal/logging"
	"github.com/northboundstudio/brandsite/internal/mailer"
	"github.com/northboundstudio/brandsite/internal/middleware"
	"github.com/northboundstudio/brandsite/internal/model"
	"github.com/northboundstudio/brandsite/internal/scheduler"
	"github.com/northboundstudio/brandsite/internal/service"
	"github.com/northboundstudio/brandsite/internal/session"
	"github.com/northboundstudio/brandsite/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "brandsite - Northbound Studio site backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BRANDSITE_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BRANDSITE_DB_PATH          SQLite database path (default: ./data/brandsite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BRANDSITE_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BRANDSITE_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BRANDSITE_REDIS_URL       Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BRANDSITE_SMTP_HOST       SMTP server for outbound email (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BRANDSITE_GEOIP_DB_PATH   GeoLite2-Country.mmdb path (optional)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("brandsite %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := logging.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	queries := store.New(db)

	// Session manager backed by the same SQLite database
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Cache backend: Redis when configured, in-memory otherwise
	appCache := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	})

	// GeoIP lookup for form submission metadata; disabled without a database
	geo, err := geoip.NewLookup(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("geoip lookup unavailable", "error", err)
		geo, _ = geoip.NewLookup("")
	}
	defer geo.Close()

	// Site name and notification recipient come from settings, with
	// config fallbacks so a fresh database still sends mail.
	siteName := "Northbound Studio"
	if v, err := queries.GetSetting(ctx, model.SettingSiteName); err == nil && v != "" {
		siteName = v
	}
	recipient := cfg.NotifyRecipient
	if v, err := queries.GetSetting(ctx, model.SettingContactRecipient); err == nil && v != "" {
		recipient = v
	}

	mail := mailer.New(mailer.Options{
		SMTPHost:  cfg.SMTPHost,
		SMTPPort:  cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		From:      cfg.EmailFrom,
		FromName:  siteName,
		Recipient: recipient,
		SiteName:  siteName,
		BaseURL:   cfg.BaseURL,
	})
	slog.Info("mailer initialized", "enabled", mail.Enabled())

	uploads := service.NewUploadService(cfg.UploadsDir)

	// Background maintenance: close expired job postings, prune events
	sched := scheduler.New(db, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized",
		"ip_rate_limit", "0.5 req/s",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	apiHandler := api.NewHandler(api.Options{
		DB:         db,
		Cache:      appCache,
		Mailer:     mail,
		Geo:        geo,
		Uploads:    uploads,
		Protection: loginProtection,
		Sessions:   sessionManager,
	})

	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	csrfMiddleware := middleware.CSRF(csrfConfig)

	// Public form submissions: 2 req/s per IP with burst of 5
	formRateLimiter := middleware.NewIPRateLimiter(2, 5)
	// Public reads: 50 req/s per IP with burst of 100
	readRateLimiter := middleware.NewIPRateLimiter(50, 100)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", apiHandler.Status)

		// Public read endpoints
		r.Group(func(r chi.Router) {
			r.Use(readRateLimiter.Middleware())
			r.Get("/settings", apiHandler.GetPublicSettings)
			r.Get("/services", apiHandler.ListPublicServices)
			r.Get("/services/{slug}", apiHandler.GetPublicService)
			r.Get("/team", apiHandler.ListPublicTeamMembers)
			r.Get("/testimonials", apiHandler.ListPublicTestimonials)
			r.Get("/blog", apiHandler.ListPublicBlogPosts)
			r.Get("/blog/{slug}", apiHandler.GetPublicBlogPost)
			r.Get("/jobs", apiHandler.ListPublicJobs)
			r.Get("/jobs/{slug}", apiHandler.GetPublicJob)
			r.Get("/campaigns/{slug}", apiHandler.GetPublicCampaign)
		})

		// Public form endpoints, rate limited per IP
		r.Group(func(r chi.Router) {
			r.Use(formRateLimiter.Middleware())
			r.Post("/contact", apiHandler.CreateContact)
			r.Post("/consultations", apiHandler.CreateConsultation)
			r.Post("/jobs/{slug}/apply", apiHandler.Apply)
			r.Post("/campaigns/{slug}/submissions", apiHandler.CreateCampaignSubmission)
			r.Post("/uploads/resumes", apiHandler.UploadResume)
		})

		// Admin auth endpoints. Login gets IP rate limiting plus account
		// lockout; the rest only need a session.
		r.Group(func(r chi.Router) {
			r.Use(sessionManager.LoadAndSave)
			r.Use(csrfMiddleware)

			r.With(loginProtection.Middleware()).Post("/admin/login", apiHandler.Login)

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.Auth(sessionManager, db))

				r.Post("/logout", apiHandler.Logout)
				r.Get("/me", apiHandler.Me)
				r.Post("/me/password", apiHandler.ChangePassword)

				// Editor routes (editor + admin)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(model.RoleEditor))

					r.Get("/stats", apiHandler.Dashboard)

					r.Get("/contacts", apiHandler.ListContacts)
					r.Get("/contacts/stats", apiHandler.ContactStats)
					r.Get("/contacts/{id}", apiHandler.GetContact)
					r.Put("/contacts/{id}", apiHandler.UpdateContact)
					r.Delete("/contacts/{id}", apiHandler.DeleteContact)

					r.Get("/consultations", apiHandler.ListConsultations)
					r.Get("/consultations/stats", apiHandler.ConsultationStats)
					r.Get("/consultations/{id}", apiHandler.GetConsultation)
					r.Put("/consultations/{id}", apiHandler.UpdateConsultation)
					r.Delete("/consultations/{id}", apiHandler.DeleteConsultation)

					r.Get("/testimonials", apiHandler.ListTestimonials)
					r.Post("/testimonials", apiHandler.CreateTestimonial)
					r.Get("/testimonials/{id}", apiHandler.GetTestimonial)
					r.Put("/testimonials/{id}", apiHandler.UpdateTestimonial)
					r.Delete("/testimonials/{id}", apiHandler.DeleteTestimonial)

					r.Get("/services", apiHandler.ListServices)
					r.Post("/services", apiHandler.CreateService)
					r.Get("/services/{id}", apiHandler.GetService)
					r.Put("/services/{id}", apiHandler.UpdateService)
					r.Delete("/services/{id}", apiHandler.DeleteService)

					r.Get("/team", apiHandler.ListTeamMembers)
					r.Post("/team", apiHandler.CreateTeamMember)
					r.Get("/team/{id}", apiHandler.GetTeamMember)
					r.Put("/team/{id}", apiHandler.UpdateTeamMember)
					r.Delete("/team/{id}", apiHandler.DeleteTeamMember)

					r.Get("/blog", apiHandler.ListBlogPosts)
					r.Post("/blog", apiHandler.CreateBlogPost)
					r.Get("/blog/{id}", apiHandler.GetBlogPost)
					r.Put("/blog/{id}", apiHandler.UpdateBlogPost)
					r.Delete("/blog/{id}", apiHandler.DeleteBlogPost)

					r.Get("/jobs", apiHandler.ListJobs)
					r.Get("/jobs/stats", apiHandler.ApplicationStats)
					r.Post("/jobs", apiHandler.CreateJob)
					r.Get("/jobs/{id}", apiHandler.GetJob)
					r.Put("/jobs/{id}", apiHandler.UpdateJob)
					r.Delete("/jobs/{id}", apiHandler.DeleteJob)
					r.Get("/jobs/{id}/applications", apiHandler.ListJobApplications)
					r.Delete("/applications/{id}", apiHandler.DeleteJobApplication)

					r.Get("/campaigns", apiHandler.ListCampaigns)
					r.Post("/campaigns", apiHandler.CreateCampaign)
					r.Get("/campaigns/{id}", apiHandler.GetCampaign)
					r.Put("/campaigns/{id}", apiHandler.UpdateCampaign)
					r.Delete("/campaigns/{id}", apiHandler.DeleteCampaign)
					r.Get("/campaigns/{id}/submissions", apiHandler.ListCampaignSubmissions)

					r.Post("/uploads/images", apiHandler.UploadImage)
					r.Delete("/uploads/{uuid}", apiHandler.DeleteUpload)
				})

				// Admin-only routes
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin())

					r.Get("/settings", apiHandler.ListSettings)
					r.Put("/settings/{key}", apiHandler.UpsertSetting)
					r.Delete("/settings/{key}", apiHandler.DeleteSetting)

					r.Get("/events", apiHandler.ListEvents)
				})
			})
		})
	})
	slog.Info("REST API v1 mounted at /api/v1")

	// Serve uploaded files (processed images, thumbnails, resumes)
	uploadsFS := http.Dir(cfg.UploadsDir)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(uploadsFS)))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
