// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package devapi

import (
	"net/http"

	"github.com/olegiv/newsdesk/internal/model"
)

// publicCategories lists every active category without pagination.
func (s *Server) publicCategories(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, "", s.store.ListCategories(string(model.StatusActive)))
}

// publicSubCategories lists active sub-categories, optionally of one
// category.
func (s *Server) publicSubCategories(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	categoryID, _ := p.integer("category_id")
	WriteSuccess(w, "", s.store.ListSubCategories(categoryID, string(model.StatusActive)))
}
