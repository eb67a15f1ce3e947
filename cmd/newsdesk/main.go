// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command newsdesk serves the newsdesk admin API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/newsdesk/internal/cache"
	"github.com/olegiv/newsdesk/internal/config"
	"github.com/olegiv/newsdesk/internal/logging"
	"github.com/olegiv/newsdesk/internal/scheduler"
	"github.com/olegiv/newsdesk/internal/server"
	"github.com/olegiv/newsdesk/internal/service"
	"github.com/olegiv/newsdesk/internal/store"
	"github.com/olegiv/newsdesk/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "newsdesk - news site admin API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_SERVER_PORT    Server port (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_SERVER_HOST    Listen host (default: all interfaces)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_DB_PATH        SQLite database path (default: ./data/newsdesk.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_UPLOADS_DIR    Attachment directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_ENV            Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_LOG_LEVEL      debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_CORS_ORIGINS   Comma separated allowed origins (default: *)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_REDIS_URL      Redis URL for the list cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_CACHE_TTL      List cache TTL in seconds (default: 300)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_SWEEP_SCHEDULE Orphaned upload sweep, cron spec or off (default: @daily)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("newsdesk %s\n", version.Get())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.Env)
	slog.SetDefault(logger)

	// Persistence must be ready before any request is accepted
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("closing database", "error", err)
		}
	}()
	logger.Info("database ready", "path", cfg.DBPath)

	attachments, err := service.NewAttachmentStore(cfg.UploadsDir, logger)
	if err != nil {
		return err
	}

	if cfg.SweepEnabled() {
		sched := scheduler.New(logger)
		sweeper := service.NewOrphanSweeper(db, attachments, service.DefaultSweepGrace, logger)
		if err := sched.Add("orphan-sweep", cfg.SweepSchedule, func(ctx context.Context) error {
			_, err := sweeper.Run(ctx)
			return err
		}); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	listCache, err := cache.New(startCtx, cache.Config{
		RedisURL:         cfg.RedisURL,
		Prefix:           cfg.CachePrefix,
		DefaultTTL:       cfg.CacheDuration(),
		CleanupInterval:  time.Minute,
		FallbackToMemory: true,
	}, logger)
	cancelStart()
	if err != nil {
		return fmt.Errorf("creating cache: %w", err)
	}
	defer func() { _ = listCache.Close() }()

	ttl := cfg.CacheDuration()
	router := server.NewRouter(server.Options{
		DB:             db,
		Attachments:    attachments,
		Admins:         service.NewAdminService(db, logger),
		Articles:       service.NewContentService(service.ArticleKind(db), attachments, listCache, ttl, logger),
		Carousel:       service.NewContentService(service.CarouselKind(db), attachments, listCache, ttl, logger),
		CORSOrigins:    cfg.CORSOrigins,
		IsDevelopment:  cfg.IsDevelopment(),
		RequestLogging: true,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       30 * time.Second, // Multipart uploads up to the size limit
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Get().Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case sig := <-quit:
		logger.Info("shutting down server...", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// Let in-flight attachment removals finish before the process exits
	attachments.Wait()

	logger.Info("server stopped")
	return nil
}
