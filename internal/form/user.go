// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package form

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/olegiv/newsdesk/internal/model"
	"github.com/olegiv/newsdesk/internal/resource"
)

// MinPasswordLength is the shortest password accepted.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// UserForm edits a user account. Password is write-only: it starts blank
// when editing and is left unchanged if still blank on submit.
type UserForm struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

// NewUserForm returns the defaults for a new account.
func NewUserForm() *UserForm {
	return &UserForm{Role: model.RoleEditor}
}

// UserFormFrom populates a form from an existing account.
func UserFormFrom(u model.User) *UserForm {
	role := u.Role
	if role == "" {
		role = model.RoleEditor
	}
	return &UserForm{Name: u.Name, Email: u.Email, Role: role}
}

// Validate implements Form.
func (f *UserForm) Validate(mode Mode) Errors {
	errs := Errors{}
	if blank(f.Name) {
		errs.Add("name", "Name is required")
	}
	switch {
	case blank(f.Email):
		errs.Add("email", "Email is required")
	case !emailPattern.MatchString(f.Email):
		errs.Add("email", "Email is invalid")
	}
	switch {
	case f.Password == "" && mode == ModeCreate:
		errs.Add("password", "Password is required")
	case f.Password != "" && utf8.RuneCountInString(f.Password) < MinPasswordLength:
		errs.Add("password", "Password must be at least 6 characters")
	}
	switch {
	case f.Role == "":
		errs.Add("role", "Role is required")
	case !f.Role.IsValid():
		errs.Add("role", "Role is invalid")
	}
	return errs
}

// Input implements Form.
func (f *UserForm) Input() resource.UserInput {
	return resource.UserInput{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
		Role:     f.Role,
	}
}
