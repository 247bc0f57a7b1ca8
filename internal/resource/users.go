// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"

	"github.com/olegiv/newsdesk/internal/apiclient"
	"github.com/olegiv/newsdesk/internal/model"
)

// UserFilter narrows a user list.
type UserFilter struct {
	Role   string
	Search string
	Status string
}

// UserInput is the writable part of a user account. An empty Password is
// not sent, which keeps the current password on update.
type UserInput struct {
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Password string       `json:"password,omitempty"`
	Role     model.Role   `json:"role"`
	Status   model.Status `json:"status,omitempty"`
}

type userUpdate struct {
	ID int64 `json:"id"`
	UserInput
}

// Users manages /users.
type Users struct {
	c *apiclient.Client
}

// List returns one page of users.
func (r *Users) List(ctx context.Context, page PageRequest, f UserFilter) (apiclient.ListResult[model.User], error) {
	body := page.body()
	setFilter(body, "role", f.Role)
	setFilter(body, "search", f.Search)
	setFilter(body, "status", f.Status)
	return list[model.User](ctx, r.c, "/users/list", body)
}

// Show returns one user.
func (r *Users) Show(ctx context.Context, id int64) (model.User, error) {
	return show[model.User](ctx, r.c, "/users/show", id)
}

// Create adds a user.
func (r *Users) Create(ctx context.Context, in UserInput) (model.User, error) {
	return postJSON[model.User](ctx, r.c, "/users/create", in)
}

// Update replaces the user with the given ID.
func (r *Users) Update(ctx context.Context, id int64, in UserInput) (model.User, error) {
	return postJSON[model.User](ctx, r.c, "/users/update", userUpdate{ID: id, UserInput: in})
}

// Delete permanently removes a user.
func (r *Users) Delete(ctx context.Context, id int64) error {
	return byID(ctx, r.c, "/users/delete", id)
}

// Activate restores access for a user.
func (r *Users) Activate(ctx context.Context, id int64) error {
	return byID(ctx, r.c, "/users/activate", id)
}

// Deactivate revokes access for a user until reactivated.
func (r *Users) Deactivate(ctx context.Context, id int64) error {
	return byID(ctx, r.c, "/users/deactivate", id)
}
