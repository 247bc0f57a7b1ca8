// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// DefaultErrorMessage is used when the server gives no explanation.
const DefaultErrorMessage = "An error occurred"

// APIError is a failed API call: a non-2xx status or a response whose
// envelope reports success=false.
type APIError struct {
	Message string
	Errors  FieldErrors
	Status  int
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return "api error: " + e.Message
}

// HasFieldErrors reports whether the server returned per-field messages.
func (e *APIError) HasFieldErrors() bool {
	return len(e.Errors) > 0
}

// AsAPIError unwraps err to *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == status
}

func newAPIError(status int, env envelope) *APIError {
	apiErr := &APIError{Status: status, Message: env.Message}

	raw := bytes.TrimSpace(env.Errors)
	hasErrors := len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
	if hasErrors {
		var fe FieldErrors
		if err := json.Unmarshal(raw, &fe); err == nil {
			apiErr.Errors = fe
		}
	}

	if apiErr.Message == "" {
		if hasErrors {
			var compact bytes.Buffer
			if err := json.Compact(&compact, raw); err == nil {
				apiErr.Message = compact.String()
			} else {
				apiErr.Message = string(raw)
			}
		} else {
			apiErr.Message = DefaultErrorMessage
		}
	}
	return apiErr
}

// FieldErrors maps wire field names to a single human-readable message.
type FieldErrors map[string]string

// UnmarshalJSON accepts {"field": "msg"} and {"field": ["msg", ...]}; the
// first message of a list is kept.
func (fe *FieldErrors) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*fe = nil
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(FieldErrors, len(raw))
	for field, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			out[field] = s
			continue
		}
		var list []string
		if err := json.Unmarshal(value, &list); err == nil {
			if len(list) > 0 {
				out[field] = list[0]
			}
			continue
		}
		out[field] = string(value)
	}
	*fe = out
	return nil
}

// Fields returns the field names in sorted order.
func (fe FieldErrors) Fields() []string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
