// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/olegiv/newsdesk/internal/apiclient"
	"github.com/olegiv/newsdesk/internal/dashboard"
)

// dispatch runs the command named by args[0].
func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("no command given, run \"newsdesk -h\" for usage")
	}

	name, rest := args[0], args[1:]
	switch name {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx, rest)
	case "whoami":
		return a.whoami(rest)
	case "dashboard":
		return a.dashboard(ctx, rest)
	}
	if r, ok := entities()[name]; ok {
		return r.run(ctx, a, rest)
	}
	return fmt.Errorf("unknown command %q, run \"newsdesk -h\" for usage", name)
}

func (a *app) login(ctx context.Context, args []string) error {
	c := newCommand("login", a.out, false)
	email := c.fs.String("email", "", "Account email (prompted for when omitted)")
	password := c.fs.String("password", "", "Account password (prompted for when omitted)")
	if err := c.parse(args); err != nil {
		return err
	}
	if err := c.noArgs(); err != nil {
		return err
	}

	var err error
	if *email == "" {
		if *email, err = a.prompt("Email"); err != nil {
			return err
		}
	}
	if *password == "" {
		if *password, err = a.prompt("Password"); err != nil {
			return err
		}
	}
	if strings.TrimSpace(*email) == "" || *password == "" {
		a.view.Printf("Please enter both email and password\n")
		return errFailed
	}

	res, err := a.api.Auth.Login(ctx, strings.TrimSpace(*email), *password)
	if err != nil {
		if apiErr, ok := apiclient.AsAPIError(err); ok {
			return a.reportSubmit(err, apiErr.Errors, "")
		}
		return fmt.Errorf("login: %w", err)
	}
	if err := a.sess.Login(ctx, res.User, res.Token); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	a.logger.Info("logged in", "user_id", res.User.ID, "role", res.User.Role)
	a.view.Printf("Logged in as %s (%s).\n", res.User.Name, a.view.Label(string(res.User.Role)))
	return nil
}

func (a *app) logout(ctx context.Context, args []string) error {
	c := newCommand("logout", a.out, false)
	if err := c.parse(args); err != nil {
		return err
	}
	if err := c.noArgs(); err != nil {
		return err
	}
	if err := a.sess.Logout(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	a.view.Printf("Logged out.\n")
	return nil
}

func (a *app) whoami(args []string) error {
	c := newCommand("whoami", a.out, false)
	if err := c.parse(args); err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	u, _ := a.sess.User()
	return a.view.Record(a.view.UserRecord(u))
}

func (a *app) dashboard(ctx context.Context, args []string) error {
	c := newCommand("dashboard", a.out, false)
	if err := c.parse(args); err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	sum, err := dashboard.Load(ctx, a.api)
	if err != nil {
		return a.reportLoad(err, "Failed to load dashboard")
	}
	return a.view.Dashboard(sum)
}

// commandNames lists every top-level command for the usage text.
func commandNames() []string {
	lines := []string{
		"login [-email e] [-password p]",
		"logout",
		"whoami",
		"dashboard",
	}
	var groups []string
	for _, r := range entities() {
		groups = append(groups, r.usage())
	}
	sort.Strings(groups)
	return append(lines, groups...)
}
