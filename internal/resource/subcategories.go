// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"

	"github.com/olegiv/newsdesk/internal/apiclient"
	"github.com/olegiv/newsdesk/internal/model"
)

// SubCategoryFilter narrows a sub-category list. Zero CategoryID means all.
type SubCategoryFilter struct {
	CategoryID int64
	Status     string
}

// SubCategoryInput is the writable part of a sub-category.
type SubCategoryInput struct {
	Name       string       `json:"name"`
	CategoryID int64        `json:"category_id"`
	Status     model.Status `json:"status"`
}

type subCategoryUpdate struct {
	ID int64 `json:"id"`
	SubCategoryInput
}

// SubCategories manages /sub-categories.
type SubCategories struct {
	c *apiclient.Client
}

// List returns one page of sub-categories.
func (r *SubCategories) List(ctx context.Context, page PageRequest, f SubCategoryFilter) (apiclient.ListResult[model.SubCategory], error) {
	body := page.body()
	setID(body, "category_id", f.CategoryID)
	setFilter(body, "status", f.Status)
	return list[model.SubCategory](ctx, r.c, "/sub-categories/list", body)
}

// Show returns one sub-category.
func (r *SubCategories) Show(ctx context.Context, id int64) (model.SubCategory, error) {
	return show[model.SubCategory](ctx, r.c, "/sub-categories/show", id)
}

// Create adds a sub-category.
func (r *SubCategories) Create(ctx context.Context, in SubCategoryInput) (model.SubCategory, error) {
	return postJSON[model.SubCategory](ctx, r.c, "/sub-categories/create", in)
}

// Update replaces the sub-category with the given ID.
func (r *SubCategories) Update(ctx context.Context, id int64, in SubCategoryInput) (model.SubCategory, error) {
	return postJSON[model.SubCategory](ctx, r.c, "/sub-categories/update", subCategoryUpdate{ID: id, SubCategoryInput: in})
}

// Delete removes a sub-category.
func (r *SubCategories) Delete(ctx context.Context, id int64) error {
	return byID(ctx, r.c, "/sub-categories/delete", id)
}
