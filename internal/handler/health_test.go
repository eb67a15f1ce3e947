// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/olegiv/newsdesk/internal/store"
	"github.com/olegiv/newsdesk/internal/testutil"
)

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthStatus {
	t.Helper()
	var status HealthStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return status
}

func TestHealth_Healthy(t *testing.T) {
	db := testutil.TestDB(t)
	h := NewHealthHandler(db, t.TempDir())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	status := decodeHealth(t, rec)
	if status.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", status.Status)
	}
	if status.Checks != nil {
		t.Error("checks should only be included in verbose mode")
	}
}

func TestHealth_Verbose(t *testing.T) {
	db := testutil.TestDB(t)
	h := NewHealthHandler(db, t.TempDir())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health?verbose=true", nil))

	status := decodeHealth(t, rec)
	if len(status.Checks) != 2 {
		t.Errorf("len(Checks) = %d, want 2", len(status.Checks))
	}
	if status.Version == "" {
		t.Error("Version should be set in verbose mode")
	}
	if n, ok := status.Records["carousel_items"]; !ok || n != 0 {
		t.Errorf("Records[carousel_items] = %d (present %v), want 0", n, ok)
	}
}

func TestHealth_VerboseCountsRecords(t *testing.T) {
	db := testutil.TestDB(t)
	now := time.Now().UTC()
	if _, err := store.New(db).CreateArticle(context.Background(), store.CreateArticleParams{
		ID: "a1", Title: "T", Category: "c", Content: "x", CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	h := NewHealthHandler(db, t.TempDir())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health?verbose=true", nil))

	status := decodeHealth(t, rec)
	if status.Records["articles"] != 1 {
		t.Errorf("Records[articles] = %d, want 1", status.Records["articles"])
	}
}

func TestHealth_DatabaseClosed(t *testing.T) {
	db := testutil.TestDB(t)
	_ = db.Close()
	h := NewHealthHandler(db, t.TempDir())

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if status := decodeHealth(t, rec); status.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", status.Status)
	}
}

func TestHealth_UploadsMissing(t *testing.T) {
	db := testutil.TestDB(t)
	dir := t.TempDir()
	if err := os.Remove(dir); err != nil {
		t.Fatal(err)
	}
	h := NewHealthHandler(db, dir)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(nil, "")

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
