// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"bytes"
	"encoding/json"

	"github.com/olegiv/newsdesk/internal/model"
)

// Pagination is the page metadata of a list response.
type Pagination struct {
	Total       model.FlexInt `json:"total"`
	CurrentPage model.FlexInt `json:"current_page"`
	PerPage     model.FlexInt `json:"per_page"`
	LastPage    model.FlexInt `json:"last_page"`
}

// ListResult is the envelope of a paginated list response.
type ListResult[T any] struct {
	Success    bool       `json:"success"`
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
	Message    string     `json:"message,omitempty"`
}

// TotalRows returns the total row count across all pages.
func (r ListResult[T]) TotalRows() int {
	return int(r.Pagination.Total)
}

// UnmarshalJSON decodes the envelope defensively: a null data field becomes
// an empty slice, and a paginator object in data ({"data": [...], "total": n})
// is flattened.
func (r *ListResult[T]) UnmarshalJSON(b []byte) error {
	var raw struct {
		Success    bool            `json:"success"`
		Data       json.RawMessage `json:"data"`
		Pagination *Pagination     `json:"pagination"`
		Message    string          `json:"message"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	r.Success = raw.Success
	r.Message = raw.Message
	r.Data = []T{}
	if raw.Pagination != nil {
		r.Pagination = *raw.Pagination
	}

	data := bytes.TrimSpace(raw.Data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
	case data[0] == '[':
		if err := json.Unmarshal(data, &r.Data); err != nil {
			return err
		}
	case data[0] == '{':
		var page struct {
			Data []T `json:"data"`
			Pagination
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		if page.Data != nil {
			r.Data = page.Data
		}
		if raw.Pagination == nil {
			r.Pagination = page.Pagination
		}
	}

	if r.Pagination.Total == 0 && len(r.Data) > 0 {
		r.Pagination.Total = model.FlexInt(len(r.Data))
	}
	return nil
}

// Result is the envelope of a single-entity response.
type Result[T any] struct {
	Success bool        `json:"success"`
	Data    T           `json:"data"`
	Message string      `json:"message,omitempty"`
	Errors  FieldErrors `json:"errors,omitempty"`
}
