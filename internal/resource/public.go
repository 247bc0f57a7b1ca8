// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"

	"github.com/olegiv/newsdesk/internal/apiclient"
	"github.com/olegiv/newsdesk/internal/model"
)

// Public serves the unpaginated lookups used to fill dropdowns.
type Public struct {
	c *apiclient.Client
}

// Categories returns every category.
func (r *Public) Categories(ctx context.Context) ([]model.Category, error) {
	res, err := list[model.Category](ctx, r.c, "/public/categories", map[string]any{})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// SubCategories returns the sub-categories of categoryID, or all of them when
// categoryID is zero.
func (r *Public) SubCategories(ctx context.Context, categoryID int64) ([]model.SubCategory, error) {
	body := map[string]any{}
	setID(body, "category_id", categoryID)
	res, err := list[model.SubCategory](ctx, r.c, "/public/sub-categories", body)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}
