// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the entities exchanged with the news publishing API
// (categories, sub-categories, news, flash news, users) and the value types
// they share: statuses, timestamps and image uploads.
package model

import "strings"

// Role is the permission level of a dashboard account.
type Role string

// User roles as the API spells them.
const (
	RoleAdmin    Role = "Admin"
	RoleEditor   Role = "Editor"
	RoleReporter Role = "Reporter"
)

// Roles lists all valid roles in display order.
var Roles = []Role{RoleAdmin, RoleEditor, RoleReporter}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole matches s against the known roles ignoring case.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, known := range Roles {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// User is a dashboard account. The password is write-only and never decoded.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Status    Status `json:"status,omitempty"`
	CreatedAt Time   `json:"created_at,omitzero"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return strings.EqualFold(string(u.Role), string(RoleAdmin))
}

// IsActive reports whether the account is active. Accounts without a status
// (login payloads omit it) are treated as active.
func (u *User) IsActive() bool {
	return u.Status == "" || u.Status == StatusActive
}

// Initials returns up to two upper-case initials of the user's name.
func (u *User) Initials() string {
	fields := strings.Fields(u.Name)
	if len(fields) == 0 {
		return "U"
	}
	var initials []rune
	for _, f := range fields {
		initials = append(initials, []rune(strings.ToUpper(f))[0])
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}
