// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"

	"github.com/olegiv/newsdesk/internal/apiclient"
	"github.com/olegiv/newsdesk/internal/model"
)

// LoginFailedMessage is reported when the server accepts the request but
// returns no session.
const LoginFailedMessage = "Login failed. Please try again."

// LoginResult is the session issued by a successful login.
type LoginResult struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Auth exchanges credentials for a session.
type Auth struct {
	c *apiclient.Client
}

// Login posts the credentials to /auth/login.
func (a *Auth) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var res apiclient.Result[*LoginResult]
	if err := a.c.PostJSON(ctx, "/auth/login", body, &res); err != nil {
		return LoginResult{}, err
	}
	if res.Data == nil || res.Data.Token == "" {
		msg := res.Message
		if msg == "" {
			msg = LoginFailedMessage
		}
		return LoginResult{}, &apiclient.APIError{Message: msg}
	}
	return *res.Data, nil
}
