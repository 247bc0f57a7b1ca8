// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session holds the authenticated identity of the dashboard: the
// bearer token and the user profile returned at login. The session is
// persisted so it survives process restarts and is restored without a
// network call.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/olegiv/newsdesk/internal/model"
)

// Persisted keys.
const (
	KeyToken         = "bearer_token"
	KeyUser          = "user"
	KeyAuthenticated = "isAuthenticated"
)

// ErrEmptyToken is returned by Login when no token is given.
var ErrEmptyToken = errors.New("session token is empty")

// Store is the single source of truth for the current session.
// It satisfies apiclient.TokenSource.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	logger  *slog.Logger

	token string
	user  *model.User
}

// Open restores the persisted session, if any. A stored token restores the
// session optimistically; it is not revalidated against the server.
func Open(ctx context.Context, storage Storage, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{storage: storage, logger: logger}

	token, err := storage.Get(ctx, KeyToken)
	switch {
	case errors.Is(err, ErrNotFound):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("loading session token: %w", err)
	}
	s.token = token

	raw, err := storage.Get(ctx, KeyUser)
	switch {
	case errors.Is(err, ErrNotFound):
		logger.Warn("session token restored without a user profile")
	case err != nil:
		return nil, fmt.Errorf("loading session user: %w", err)
	default:
		var u model.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			logger.Warn("discarding unreadable session user", "error", err)
		} else {
			s.user = &u
		}
	}

	return s, nil
}

// Login persists the token and user and marks the session authenticated.
// Nothing changes in memory unless persistence succeeds.
func (s *Store) Login(ctx context.Context, user model.User, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding session user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, KeyToken, token); err != nil {
		return fmt.Errorf("saving session token: %w", err)
	}
	if err := s.storage.Set(ctx, KeyUser, string(data)); err != nil {
		_ = s.storage.Delete(ctx, KeyToken)
		return fmt.Errorf("saving session user: %w", err)
	}
	if err := s.storage.Set(ctx, KeyAuthenticated, "true"); err != nil {
		_ = s.storage.Delete(ctx, KeyToken, KeyUser)
		return fmt.Errorf("saving session marker: %w", err)
	}

	s.token = token
	s.user = &user
	s.logger.Debug("logged in", "user_id", user.ID)
	return nil
}

// Logout removes every persisted key and clears the in-memory session.
// No server call is made.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil
	if err := s.storage.Delete(ctx, KeyToken, KeyUser, KeyAuthenticated); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the logged-in user.
func (s *Store) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// Close releases the underlying storage.
func (s *Store) Close() error {
	return s.storage.Close()
}
