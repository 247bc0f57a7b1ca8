// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package resource provides typed clients for each entity of the news
// publishing API. Every call goes through apiclient; errors are returned
// unchanged and never swallowed.
package resource

import (
	"context"

	"github.com/olegiv/newsdesk/internal/apiclient"
	"github.com/olegiv/newsdesk/internal/model"
)

// DefaultPerPage is the page size used when none is given.
const DefaultPerPage = 15

// PageRequest selects one page of a list. Page is 1-based, as on the wire.
type PageRequest struct {
	Page    int
	PerPage int
}

func (p PageRequest) body() map[string]any {
	page, perPage := p.Page, p.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return map[string]any{"page": page, "per_page": perPage}
}

// setFilter adds a string filter unless it is empty or "all".
func setFilter(body map[string]any, key, value string) {
	if value == "" || value == model.FilterAll {
		return
	}
	body[key] = value
}

// setID adds an ID filter unless it is zero.
func setID(body map[string]any, key string, id int64) {
	if id != 0 {
		body[key] = id
	}
}

type idPayload struct {
	ID int64 `json:"id"`
}

// API bundles the resource clients that share one transport.
type API struct {
	Auth          *Auth
	Categories    *Categories
	SubCategories *SubCategories
	News          *News
	FlashNews     *FlashNews
	Users         *Users
	Public        *Public
}

// NewAPI creates every resource client on top of c.
func NewAPI(c *apiclient.Client) *API {
	return &API{
		Auth:          &Auth{c: c},
		Categories:    &Categories{c: c},
		SubCategories: &SubCategories{c: c},
		News:          &News{c: c},
		FlashNews:     &FlashNews{c: c},
		Users:         &Users{c: c},
		Public:        &Public{c: c},
	}
}

func list[T any](ctx context.Context, c *apiclient.Client, endpoint string, body map[string]any) (apiclient.ListResult[T], error) {
	var res apiclient.ListResult[T]
	if err := c.PostJSON(ctx, endpoint, body, &res); err != nil {
		return apiclient.ListResult[T]{}, err
	}
	return res, nil
}

func show[T any](ctx context.Context, c *apiclient.Client, endpoint string, id int64) (T, error) {
	var res apiclient.Result[T]
	if err := c.PostJSON(ctx, endpoint, idPayload{ID: id}, &res); err != nil {
		var zero T
		return zero, err
	}
	return res.Data, nil
}

func postJSON[T any](ctx context.Context, c *apiclient.Client, endpoint string, body any) (T, error) {
	var res apiclient.Result[T]
	if err := c.PostJSON(ctx, endpoint, body, &res); err != nil {
		var zero T
		return zero, err
	}
	return res.Data, nil
}

func postMultipart[T any](ctx context.Context, c *apiclient.Client, endpoint string, fields apiclient.Fields) (T, error) {
	var res apiclient.Result[T]
	if err := c.PostMultipart(ctx, endpoint, fields, &res); err != nil {
		var zero T
		return zero, err
	}
	return res.Data, nil
}

func byID(ctx context.Context, c *apiclient.Client, endpoint string, id int64) error {
	return c.PostJSON(ctx, endpoint, idPayload{ID: id}, nil)
}
