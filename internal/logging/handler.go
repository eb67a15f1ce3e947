// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging builds the process-wide slog logger.
// Development uses the human-readable text handler; production emits JSON
// so log shippers can index the key/value attributes.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel converts a configured level name to a slog.Level.
// Unknown names fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler returns the slog.Handler for the given environment.
func NewHandler(w io.Writer, level, env string) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if env == "production" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// New returns a logger tagged with the service name.
func New(w io.Writer, level, env string) *slog.Logger {
	return slog.New(NewHandler(w, level, env)).With("service", "newsdesk")
}

// Discard returns a logger that drops every record. Used by tests and tools
// that only care about return values.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

type discardHandler struct{}

func (discardHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (discardHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler         { return h }
func (h discardHandler) WithGroup(string) slog.Handler              { return h }
