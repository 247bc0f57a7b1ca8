// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package devapi

import (
	"net/http"

	"github.com/olegiv/newsdesk/internal/model"
)

type loginResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	errs := Errors{}
	email := required(errs, p, "email")
	password := p.str("password")
	if password == "" {
		errs.Add("password", "The password field is required.")
	}
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}

	user, hash, found := s.store.UserByEmail(email)
	if !found {
		s.logger.Info("login failed", "email", email, "reason", "unknown email")
		WriteUnauthorized(w, "Invalid credentials")
		return
	}
	valid, err := s.hasher.Verify(password, hash)
	if err != nil || !valid {
		s.logger.Info("login failed", "email", email, "reason", "wrong password")
		WriteUnauthorized(w, "Invalid credentials")
		return
	}
	if !user.IsActive() {
		WriteForbidden(w, "Your account has been deactivated.")
		return
	}

	if s.hasher.NeedsRehash(hash) {
		if fresh, err := s.hasher.Hash(password); err == nil {
			s.store.rehash(user.ID, fresh)
		}
	}

	_, version, err := s.store.User(user.ID)
	if err != nil {
		s.writeStoreError(w, err, "User")
		return
	}
	token, err := s.tokens.Issue(user.ID, version)
	if err != nil {
		s.logger.Error("issuing token", "error", err)
		WriteInternalError(w)
		return
	}
	s.logger.Info("login", "user_id", user.ID)
	WriteSuccess(w, "Login successful", loginResponse{User: user, Token: token})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	user, _ := CurrentUser(r.Context())
	WriteSuccess(w, "", user)
}
