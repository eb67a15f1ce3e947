// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Typed wraps a Cache and stores values of type T as JSON under one key.
// Backend failures are logged and treated as misses, so a broken cache
// only costs a reload.
type Typed[T any] struct {
	cache  Cache
	key    string
	ttl    time.Duration
	logger *slog.Logger

	// mu orders a load's write against Invalidate; gen counts invalidations.
	mu  sync.Mutex
	gen uint64
}

// NewTyped creates a typed view of key in c.
func NewTyped[T any](c Cache, key string, ttl time.Duration, logger *slog.Logger) *Typed[T] {
	return &Typed[T]{cache: c, key: key, ttl: ttl, logger: logger}
}

// GetOrLoad returns the cached value, or calls load and caches its result.
// Errors from load are returned unchanged and nothing is cached. A result
// loaded while Invalidate ran is returned but not cached.
func (t *Typed[T]) GetOrLoad(ctx context.Context, load func(context.Context) (T, error)) (T, error) {
	gen := t.generation()

	data, err := t.cache.Get(ctx, t.key)
	if err == nil {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
		t.logger.Warn("discarding undecodable cache entry", "key", t.key)
	} else if !errors.Is(err, ErrCacheMiss) {
		t.logger.Warn("cache read failed", "key", t.key, "error", err)
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	data, err = json.Marshal(v)
	if err != nil {
		t.logger.Warn("encoding cache entry failed", "key", t.key, "error", err)
		return v, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gen != gen {
		t.logger.Debug("skipping cache write after invalidation", "key", t.key)
		return v, nil
	}
	if err := t.cache.Set(ctx, t.key, data, t.ttl); err != nil {
		t.logger.Warn("cache write failed", "key", t.key, "error", err)
	}

	return v, nil
}

// Invalidate drops the cached value. Loads that started before the call
// will not write their result back.
func (t *Typed[T]) Invalidate(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if err := t.cache.Delete(ctx, t.key); err != nil {
		t.logger.Warn("cache invalidation failed", "key", t.key, "error", err)
	}
}

func (t *Typed[T]) generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}
