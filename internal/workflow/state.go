// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package workflow

import (
	"context"
	"errors"
	"maps"

	"github.com/olegiv/newsdesk/internal/form"
)

// ListState is the lifecycle of the list half of a screen.
type ListState int

const (
	ListIdle ListState = iota
	ListLoading
	ListLoaded
	ListError
)

func (s ListState) String() string {
	switch s {
	case ListLoading:
		return "loading"
	case ListLoaded:
		return "loaded"
	case ListError:
		return "error"
	default:
		return "idle"
	}
}

// FormState is the lifecycle of the create/edit dialog.
type FormState int

const (
	FormClosed FormState = iota
	FormOpen
	FormSubmitting
	FormError
)

func (s FormState) String() string {
	switch s {
	case FormOpen:
		return "open"
	case FormSubmitting:
		return "submitting"
	case FormError:
		return "error"
	default:
		return "closed"
	}
}

var (
	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("cancelled")

	// ErrSuperseded is returned by a fetch whose result was discarded
	// because a newer fetch started.
	ErrSuperseded = errors.New("superseded by a newer request")

	// ErrNoForm is returned by Submit when no form is open.
	ErrNoForm = errors.New("no form is open")

	// ErrUnknownAction is returned by Run for an unregistered action.
	ErrUnknownAction = errors.New("unknown action")
)

// Filters holds structured list filters by wire name. Empty values and
// "all" mean no filter.
type Filters map[string]string

// Clone returns a copy.
func (f Filters) Clone() Filters {
	if f == nil {
		return Filters{}
	}
	return maps.Clone(f)
}

// Query is what a list fetch asks for. Page is zero-based.
type Query struct {
	Page    int
	PerPage int
	Filters Filters
	Search  string
}

// WirePage returns the 1-based page number sent to the API.
func (q Query) WirePage() int {
	return q.Page + 1
}

// Page is one fetched page of rows.
type Page[T any] struct {
	Rows      []T
	TotalRows int
}

// Prompt is the wording of a confirmation. An empty Title means a plain
// blocking yes/no question.
type Prompt struct {
	Title   string
	Message string
	Confirm string
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, p Prompt) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) (bool, error) {
	return f(ctx, p)
}

// AlwaysConfirm approves every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, Prompt) (bool, error) {
	return true, nil
})

// NeverConfirm declines every prompt. It is the default of a controller
// configured without a Confirmer.
var NeverConfirm Confirmer = ConfirmFunc(func(context.Context, Prompt) (bool, error) {
	return false, nil
})

// Snapshot is a copy of a controller's state.
type Snapshot[T any] struct {
	List      ListState
	Rows      []T
	TotalRows int
	Page      int
	PerPage   int
	Filters   Filters
	Search    string
	LoadError error

	Form        FormState
	FormMode    form.Mode
	EditingID   int64
	FieldErrors form.Errors
	SubmitError string
}

// ActionError is a failed delete or row action. Message is ready to show.
type ActionError struct {
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	return e.Message
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
