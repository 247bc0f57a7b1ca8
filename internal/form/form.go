// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package form holds the editable state behind each create/edit dialog:
// defaults, population from an existing entity, client-side validation and
// conversion to the input a resource client sends.
//
// Field errors are keyed by wire field names, so server-side validation
// errors land on the same keys.
package form

import (
	"sort"
	"strings"
)

// Mode says whether a form creates a new entity or edits an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Form is implemented by every entity form.
type Form[In any] interface {
	// Validate checks the form locally and returns field errors.
	Validate(mode Mode) Errors
	// Input converts the form to the payload for the resource client.
	Input() In
}

// Errors maps wire field names to messages.
type Errors map[string]string

// Add records msg for field unless the field already has an error.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Has reports whether field has an error.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Merge overlays other onto a copy of e. Later messages win.
func (e Errors) Merge(other map[string]string) Errors {
	out := make(Errors, len(e)+len(other))
	for k, v := range e {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Fields returns the field names in sorted order.
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Err returns nil when there are no errors, or a *ValidationError.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return &ValidationError{Errors: e}
}

// ValidationError is returned when local validation blocks a submit.
type ValidationError struct {
	Errors Errors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, field := range e.Errors.Fields() {
		parts = append(parts, field+": "+e.Errors[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
