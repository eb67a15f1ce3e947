// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler holds HTTP handlers shared by every newsdesk surface.
package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/olegiv/newsdesk/internal/store"
	"github.com/olegiv/newsdesk/internal/version"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db         *sql.DB
	uploadsDir string
	startTime  time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB, uploadsDir string) *HealthHandler {
	return &HealthHandler{
		db:         db,
		uploadsDir: uploadsDir,
		startTime:  time.Now(),
	}
}

// HealthStatus is the health response body.
type HealthStatus struct {
	Status  string           `json:"status"`
	Uptime  string           `json:"uptime,omitempty"`
	Version string           `json:"version,omitempty"`
	Checks  map[string]Check `json:"checks,omitempty"`
	Records map[string]int64 `json:"records,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /health. It answers 200 when the database and the
// upload directory are usable and 503 otherwise. Details are only
// included with ?verbose=true.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"database": h.checkDatabase(r.Context()),
		"uploads":  h.checkUploads(),
	}

	status := HealthStatus{Status: "healthy"}
	code := http.StatusOK
	for _, c := range checks {
		if c.Status != "healthy" {
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	if r.URL.Query().Get("verbose") == "true" {
		status.Uptime = time.Since(h.startTime).Round(time.Second).String()
		status.Version = version.Get().Version
		status.Checks = checks
		if checks["database"].Status == "healthy" {
			status.Records = h.countRecords(r.Context())
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "alive",
	})
}

// checkDatabase verifies database connectivity.
func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{Status: "unhealthy", Message: "database unreachable"}
	}
	return Check{Status: "healthy", Latency: latency.Round(time.Microsecond).String()}
}

// countRecords reports the size of each collection. Failed counts are
// left out.
func (h *HealthHandler) countRecords(ctx context.Context) map[string]int64 {
	q := store.New(h.db)
	counters := map[string]func(context.Context) (int64, error){
		"articles":       q.CountArticles,
		"carousel_items": q.CountCarouselItems,
	}

	records := make(map[string]int64, len(counters))
	for name, count := range counters {
		if n, err := count(ctx); err == nil {
			records[name] = n
		}
	}
	return records
}

// checkUploads verifies the attachment directory exists.
func (h *HealthHandler) checkUploads() Check {
	info, err := os.Stat(h.uploadsDir)
	if err != nil {
		return Check{Status: "unhealthy", Message: "upload directory missing"}
	}
	if !info.IsDir() {
		return Check{Status: "unhealthy", Message: fmt.Sprintf("%s is not a directory", h.uploadsDir)}
	}
	return Check{Status: "healthy"}
}
