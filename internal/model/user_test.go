// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"
)

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{name: "admin role", role: RoleAdmin, want: true},
		{name: "lowercase admin", role: "admin", want: true},
		{name: "editor role", role: RoleEditor, want: false},
		{name: "reporter role", role: RoleReporter, want: false},
		{name: "empty role", role: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			if got := u.IsAdmin(); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, r := range Roles {
		if !r.IsValid() {
			t.Errorf("%q.IsValid() = false", r)
		}
	}
	for _, r := range []Role{"", "admin", "Owner"} {
		if r.IsValid() {
			t.Errorf("%q.IsValid() = true", r)
		}
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in     string
		want   Role
		wantOK bool
	}{
		{"Admin", RoleAdmin, true},
		{"editor", RoleEditor, true},
		{" REPORTER ", RoleReporter, true},
		{"owner", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseRole(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestUserInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "U"},
		{"jane", "J"},
		{"Jane Doe", "JD"},
		{"jane mary doe", "JM"},
		{"émile zola", "ÉZ"},
	}

	for _, tt := range tests {
		u := &User{Name: tt.name}
		if got := u.Initials(); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestUserIsActive(t *testing.T) {
	if !(&User{}).IsActive() {
		t.Error("user without status should be active")
	}
	if (&User{Status: StatusInactive}).IsActive() {
		t.Error("inactive user reported active")
	}
}
