// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"fmt"
	"log/slog"
)

// Storage backend names.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// StorageConfig holds configuration for storage creation.
type StorageConfig struct {
	// Backend is "file", "redis" or "memory".
	Backend string

	// Path is the session document location (file backend, and the
	// fallback when Redis is unreachable).
	Path string

	// RedisURL is the Redis connection URL (redis backend only).
	RedisURL string

	// RedisPrefix is the key prefix for Redis.
	RedisPrefix string

	// FallbackToFile uses the file backend when Redis cannot be reached.
	FallbackToFile bool
}

// NewStorage creates the storage selected by cfg.
func NewStorage(ctx context.Context, cfg StorageConfig, logger *slog.Logger) (Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStorage(), nil
	case BackendRedis:
		rs, err := NewRedisStorage(ctx, RedisOptions{URL: cfg.RedisURL, Prefix: cfg.RedisPrefix})
		if err == nil {
			return rs, nil
		}
		if !cfg.FallbackToFile || cfg.Path == "" {
			return nil, fmt.Errorf("connecting to redis session storage: %w", err)
		}
		logger.Warn("redis session storage unavailable, using file", "error", err, "path", cfg.Path)
		return NewFileStorage(cfg.Path)
	case BackendFile, "":
		return NewFileStorage(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
