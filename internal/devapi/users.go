// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package devapi

import (
	"errors"
	"net/http"
	"net/mail"
	"unicode/utf8"

	"github.com/olegiv/newsdesk/internal/model"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	f := UserFilter{
		Role:   filterValue(p, "role"),
		Status: filterValue(p, "status"),
		Search: p.str("search"),
	}
	page, perPage := p.page(s.perPage)
	WritePage(w, s.store.ListUsers(f), page, perPage)
}

func (s *Server) showUser(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := requireID(w, p)
	if !ok {
		return
	}
	u, _, err := s.store.User(id)
	if err != nil {
		s.writeStoreError(w, err, "User")
		return
	}
	WriteSuccess(w, "", u)
}

// userParams validates a user body. The password is required only when
// creating.
func userParams(p *params, u model.User, creating bool) (model.User, string, Errors) {
	errs := Errors{}
	u.Name = required(errs, p, "name")
	if u.Email = required(errs, p, "email"); u.Email != "" {
		if addr, err := mail.ParseAddress(u.Email); err != nil || addr.Address != u.Email {
			errs.Add("email", "The email must be a valid email address.")
		}
	}

	password := p.str("password")
	switch {
	case password == "" && creating:
		errs.Add("password", "The password field is required.")
	case password != "" && utf8.RuneCountInString(password) < MinPasswordLength:
		errs.Add("password", "The password must be at least 6 characters.")
	}

	u.Role = model.Role(p.str("role"))
	switch {
	case u.Role == "":
		errs.Add("role", "The role field is required.")
	case !u.Role.IsValid():
		invalid(errs, "role")
	}

	u.Status = status(errs, p, u.Status)
	return u, password, errs
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	u, password, errs := userParams(p, model.User{Status: model.StatusActive}, true)
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("hashing password", "error", err)
		WriteInternalError(w)
		return
	}
	u.CreatedAt = model.NewTime(s.now())
	created, err := s.store.AddUser(u, hash)
	if err != nil {
		s.writeUserError(w, err)
		return
	}
	WriteCreated(w, "User created successfully", created)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := requireID(w, p)
	if !ok {
		return
	}
	existing, _, err := s.store.User(id)
	if err != nil {
		s.writeStoreError(w, err, "User")
		return
	}
	u, password, errs := userParams(p, existing, false)
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}

	current, _ := CurrentUser(r.Context())
	if current.ID == id && (u.Status != model.StatusActive || u.Role != model.RoleAdmin) {
		WriteUnprocessable(w, "You cannot demote or deactivate your own account")
		return
	}

	var hash string
	if password != "" {
		if hash, err = s.hasher.Hash(password); err != nil {
			s.logger.Error("hashing password", "error", err)
			WriteInternalError(w)
			return
		}
	}
	updated, err := s.store.UpdateUser(u, hash)
	if err != nil {
		s.writeUserError(w, err)
		return
	}
	WriteSuccess(w, "User updated successfully", updated)
}

func (s *Server) writeUserError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrDuplicate) {
		WriteValidationError(w, Errors{"email": "The email has already been taken."})
		return
	}
	s.writeStoreError(w, err, "User")
}

// targetUser reads the id of a user other than the caller.
func targetUser(w http.ResponseWriter, r *http.Request, p *params, verb string) (int64, bool) {
	id, ok := requireID(w, p)
	if !ok {
		return 0, false
	}
	if current, _ := CurrentUser(r.Context()); current.ID == id {
		WriteUnprocessable(w, "You cannot "+verb+" your own account")
		return 0, false
	}
	return id, true
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := targetUser(w, r, p, "delete")
	if !ok {
		return
	}
	if err := s.store.DeleteUser(id); err != nil {
		s.writeStoreError(w, err, "User")
		return
	}
	WriteSuccess(w, "User deleted successfully", nil)
}

func (s *Server) activateUser(w http.ResponseWriter, r *http.Request) {
	s.setUserStatus(w, r, model.StatusActive, "activate", "User activated successfully")
}

func (s *Server) deactivateUser(w http.ResponseWriter, r *http.Request) {
	s.setUserStatus(w, r, model.StatusInactive, "deactivate", "User deactivated successfully")
}

func (s *Server) setUserStatus(w http.ResponseWriter, r *http.Request, to model.Status, verb, message string) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := targetUser(w, r, p, verb)
	if !ok {
		return
	}
	if err := s.store.SetUserStatus(id, to); err != nil {
		s.writeStoreError(w, err, "User")
		return
	}
	s.logger.Info("user status changed", "user_id", id, "status", to)
	WriteSuccess(w, message, nil)
}
