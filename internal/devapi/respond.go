// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package devapi

import (
	"encoding/json"
	"net/http"
)

// ValidationMessage is the top-level message of a 422 response.
const ValidationMessage = "The given data was invalid."

// Response is the success envelope.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes one page of a list.
type Pagination struct {
	Total       int `json:"total"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	LastPage    int `json:"last_page"`
}

// ErrorResponse is the failure envelope. Errors maps field names to
// messages, as Laravel renders them.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a 200 response carrying data.
func WriteSuccess(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// WriteCreated writes a 201 response carrying data.
func WriteCreated(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// WritePage slices rows to the requested page and writes it with its
// pagination block.
func WritePage[T any](w http.ResponseWriter, rows []T, page, perPage int) {
	total := len(rows)
	lastPage := max((total+perPage-1)/perPage, 1)

	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)

	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    rows[start:end],
		Pagination: &Pagination{
			Total:       total,
			CurrentPage: page,
			PerPage:     perPage,
			LastPage:    lastPage,
		},
	})
}

// WriteError writes a failure envelope.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Message: message})
}

// WriteNotFound writes a 404 response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteUnauthorized writes a 401 response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message)
}

// WriteForbidden writes a 403 response.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message)
}

// WriteInternalError writes a 500 response.
func WriteInternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "Server error")
}

// WriteValidationError writes a 422 response with field errors.
func WriteValidationError(w http.ResponseWriter, errs Errors) {
	out := make(map[string][]string, len(errs))
	for field, msg := range errs {
		out[field] = []string{msg}
	}
	WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Message: ValidationMessage, Errors: out})
}

// WriteUnprocessable writes a 422 response with a message and no field
// errors.
func WriteUnprocessable(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnprocessableEntity, message)
}
