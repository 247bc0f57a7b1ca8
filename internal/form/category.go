// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package form

import (
	"strings"

	"github.com/olegiv/newsdesk/internal/model"
	"github.com/olegiv/newsdesk/internal/resource"
)

// CategoryForm edits a category.
type CategoryForm struct {
	Name   string
	Status model.Status
	Icon   model.Upload
	Banner model.Upload
}

// NewCategoryForm returns the defaults for a new category.
func NewCategoryForm() *CategoryForm {
	return &CategoryForm{Status: model.StatusActive}
}

// CategoryFormFrom populates a form from an existing category. Hosted
// images are kept as Unchanged.
func CategoryFormFrom(c model.Category) *CategoryForm {
	status := c.Status
	if status == "" {
		status = model.StatusActive
	}
	return &CategoryForm{
		Name:   c.Name,
		Status: status,
		Icon:   model.Unchanged(c.IconURL),
		Banner: model.Unchanged(c.BannerImageURL),
	}
}

// Validate implements Form.
func (f *CategoryForm) Validate(Mode) Errors {
	errs := Errors{}
	if blank(f.Name) {
		errs.Add("name", "Category name is required")
	}
	if !f.Status.IsValid() {
		errs.Add("status", "Status must be active or inactive")
	}
	return errs
}

// Input implements Form.
func (f *CategoryForm) Input() resource.CategoryInput {
	return resource.CategoryInput{
		Name:   strings.TrimSpace(f.Name),
		Status: f.Status,
		Icon:   f.Icon,
		Banner: f.Banner,
	}
}
