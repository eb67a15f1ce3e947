// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package server assembles the newsdesk HTTP router.
package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/newsdesk/internal/handler"
	"github.com/olegiv/newsdesk/internal/handler/api"
	"github.com/olegiv/newsdesk/internal/middleware"
	"github.com/olegiv/newsdesk/internal/service"
)

// uploadsMaxAge is the Cache-Control max-age for stored attachments.
const uploadsMaxAge = 604800 // 7 days

// Options carries everything the router serves.
type Options struct {
	DB          *sql.DB
	Attachments *service.AttachmentStore
	Admins      *service.AdminService
	Articles    *service.ArticleService
	Carousel    *service.CarouselService

	CORSOrigins   []string
	IsDevelopment bool
	// RequestLogging enables chi's access log.
	RequestLogging bool
	Logger         *slog.Logger
}

// NewRouter returns the complete HTTP handler: middleware, health checks,
// static attachments and the admin API.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if opts.RequestLogging {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(opts.IsDevelopment)))
	r.Use(middleware.CORS(opts.CORSOrigins, 3600))

	health := handler.NewHealthHandler(opts.DB, opts.Attachments.Dir())
	r.Get("/health", health.Health)
	r.Get("/health/live", health.Liveness)

	uploads := http.StripPrefix(service.URLPrefix, http.FileServer(http.Dir(opts.Attachments.Dir())))
	r.With(middleware.StaticCache(uploadsMaxAge)).Handle(service.URLPrefix+"*", noDirectoryListing(uploads))

	apiHandler := api.NewHandler(opts.Admins, opts.Articles, opts.Carousel, opts.Logger)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NoStore)
		apiHandler.Routes(r)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

// noDirectoryListing answers 404 for directory paths so the upload
// directory cannot be enumerated.
func noDirectoryListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
