// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"

	"github.com/olegiv/newsdesk/internal/apiclient"
	"github.com/olegiv/newsdesk/internal/model"
)

// CategoryFilter narrows a category list.
type CategoryFilter struct {
	Status string
}

// CategoryInput is the writable part of a category.
type CategoryInput struct {
	Name   string
	Status model.Status
	Icon   model.Upload
	Banner model.Upload
}

// Fields renders the input as a multipart payload. Images are sent only
// when replaced.
func (in CategoryInput) Fields() apiclient.Fields {
	return apiclient.Fields{}.
		Add("name", in.Name).
		Add("status", in.Status).
		Add("icon", in.Icon).
		Add("banner_image", in.Banner)
}

// Categories manages /categories.
type Categories struct {
	c *apiclient.Client
}

// List returns one page of categories.
func (r *Categories) List(ctx context.Context, page PageRequest, f CategoryFilter) (apiclient.ListResult[model.Category], error) {
	body := page.body()
	setFilter(body, "status", f.Status)
	return list[model.Category](ctx, r.c, "/categories/list", body)
}

// Show returns one category.
func (r *Categories) Show(ctx context.Context, id int64) (model.Category, error) {
	return show[model.Category](ctx, r.c, "/categories/show", id)
}

// Create adds a category.
func (r *Categories) Create(ctx context.Context, in CategoryInput) (model.Category, error) {
	return postMultipart[model.Category](ctx, r.c, "/categories/create", in.Fields())
}

// Update replaces the category with the given ID.
func (r *Categories) Update(ctx context.Context, id int64, in CategoryInput) (model.Category, error) {
	fields := apiclient.Fields{}.Add("id", id)
	return postMultipart[model.Category](ctx, r.c, "/categories/update", append(fields, in.Fields()...))
}

// Delete removes a category.
func (r *Categories) Delete(ctx context.Context, id int64) error {
	return byID(ctx, r.c, "/categories/delete", id)
}
