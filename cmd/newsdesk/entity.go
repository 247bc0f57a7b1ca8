// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/olegiv/newsdesk/internal/form"
	"github.com/olegiv/newsdesk/internal/pagination"
	"github.com/olegiv/newsdesk/internal/render"
	"github.com/olegiv/newsdesk/internal/resource"
	"github.com/olegiv/newsdesk/internal/workflow"
)

// runner is one entity command group, e.g. "newsdesk news ...".
type runner interface {
	run(ctx context.Context, a *app, args []string) error
	usage() string
}

// filterFlag maps a list flag to a filter key.
type filterFlag struct {
	flag  string
	key   string
	usage string
}

// binder copies explicitly given flags onto an open form.
type binder[F any] func(ctx context.Context, a *app, f F, set map[string]bool) error

// entity drives one workflow controller from the command line.
type entity[T any, F form.Form[In], In any] struct {
	name    string
	noun    string
	newCtrl func(api *resource.API, opts workflow.Options) *workflow.Controller[T, F, In]
	show    func(api *resource.API) func(ctx context.Context, id int64) (T, error)
	table   func(r *render.Renderer, rows []T) render.Table
	record  func(r *render.Renderer, row T) []render.Field
	filters []filterFlag
	search  bool
	actions []string
	flags   func(fs *flag.FlagSet) binder[F]
}

func (e *entity[T, F, In]) usage() string {
	verbs := append([]string{"list", "show", "create", "update", "delete"}, e.actions...)
	return fmt.Sprintf("%s %s", e.name, strings.Join(verbs, "|"))
}

func (e *entity[T, F, In]) run(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: newsdesk %s", e.usage())
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	verb, args := args[0], args[1:]
	switch verb {
	case "list":
		return e.list(ctx, a, args)
	case "show":
		return e.showOne(ctx, a, args)
	case "create":
		return e.save(ctx, a, args, form.ModeCreate)
	case "update":
		return e.save(ctx, a, args, form.ModeEdit)
	case "delete":
		return e.remove(ctx, a, args)
	}
	if slices.Contains(e.actions, verb) {
		return e.action(ctx, a, verb, args)
	}
	return fmt.Errorf("unknown command %q, usage: newsdesk %s", verb, e.usage())
}

func (e *entity[T, F, In]) controller(a *app, c *command) *workflow.Controller[T, F, In] {
	a.assumeYes = c.assumeYes()
	return e.newCtrl(a.api, a.options())
}

func (e *entity[T, F, In]) list(ctx context.Context, a *app, args []string) error {
	c := newCommand(e.name+" list", a.out, false)
	page := c.fs.Int("page", 1, "Page number")
	perPage := c.fs.Int("per-page", a.cfg.PerPage, "Rows per page")
	var search *string
	if e.search {
		search = c.fs.String("search", "", "Search text")
	}
	values := make([]*string, len(e.filters))
	for i, f := range e.filters {
		values[i] = c.fs.String(f.flag, "", f.usage)
	}
	if err := c.parse(args); err != nil {
		return err
	}
	if err := c.noArgs(); err != nil {
		return err
	}
	if *page < 1 || *perPage < 1 {
		return errors.New("-page and -per-page must be at least 1")
	}

	q := workflow.Query{Page: *page - 1, PerPage: *perPage, Filters: workflow.Filters{}}
	for i, f := range e.filters {
		q.Filters[f.key] = strings.TrimSpace(*values[i])
	}
	if search != nil {
		q.Search = *search
	}

	ctrl := e.controller(a, c)
	defer ctrl.Close()
	if err := ctrl.Apply(ctx, q); err != nil {
		return a.reportLoad(err, "Failed to load "+e.name)
	}

	snap := ctrl.Snapshot()
	p := pagination.Build(snap.Page, snap.PerPage, snap.TotalRows)
	return a.view.Table(e.table(a.view, snap.Rows), &p)
}

func (e *entity[T, F, In]) fetch(ctx context.Context, a *app, c *command) (T, error) {
	id, err := c.id()
	if err != nil {
		var zero T
		return zero, err
	}
	row, err := e.show(a.api)(ctx, id)
	if err != nil {
		return row, a.reportLoad(err, fmt.Sprintf("Failed to load %s %d", e.noun, id))
	}
	return row, nil
}

func (e *entity[T, F, In]) showOne(ctx context.Context, a *app, args []string) error {
	c := newCommand(e.name+" show", a.out, false)
	if err := c.parse(args); err != nil {
		return err
	}
	row, err := e.fetch(ctx, a, c)
	if err != nil {
		return err
	}
	return a.view.Record(e.record(a.view, row))
}

func (e *entity[T, F, In]) save(ctx context.Context, a *app, args []string, mode form.Mode) error {
	verb := "create"
	if mode == form.ModeEdit {
		verb = "update"
	}
	c := newCommand(e.name+" "+verb, a.out, false)
	bind := e.flags(c.fs)
	if err := c.parse(args); err != nil {
		return err
	}

	ctrl := e.controller(a, c)
	defer ctrl.Close()

	var f F
	if mode == form.ModeEdit {
		row, err := e.fetch(ctx, a, c)
		if err != nil {
			return err
		}
		f = ctrl.OpenEdit(row)
	} else {
		if err := c.noArgs(); err != nil {
			return err
		}
		f = ctrl.OpenCreate()
	}

	if err := bind(ctx, a, f, c.visited()); err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			return a.reportSubmit(err, verr.Errors, "")
		}
		return err
	}

	if err := ctrl.Submit(ctx); err != nil {
		snap := ctrl.Snapshot()
		if snap.Form == workflow.FormClosed {
			// Saved; only the refetch afterwards failed.
			a.logger.Warn("list refresh after save failed", "error", err)
		} else {
			var verr *form.ValidationError
			if errors.As(err, &verr) {
				return a.reportSubmit(err, verr.Errors, "")
			}
			return a.reportSubmit(err, snap.FieldErrors, snap.SubmitError)
		}
	}

	if mode == form.ModeEdit {
		a.view.Printf("Updated %s.\n", e.noun)
	} else {
		a.view.Printf("Created %s.\n", e.noun)
	}
	return nil
}

func (e *entity[T, F, In]) remove(ctx context.Context, a *app, args []string) error {
	c := newCommand(e.name+" delete", a.out, true)
	if err := c.parse(args); err != nil {
		return err
	}
	row, err := e.fetch(ctx, a, c)
	if err != nil {
		return err
	}
	if !c.assumeYes() {
		if err := a.view.Record(e.record(a.view, row)); err != nil {
			return err
		}
	}

	ctrl := e.controller(a, c)
	defer ctrl.Close()
	return a.reportAction(ctrl.Delete(ctx, row), fmt.Sprintf("Deleted %s.", e.noun))
}

func (e *entity[T, F, In]) action(ctx context.Context, a *app, verb string, args []string) error {
	c := newCommand(e.name+" "+verb, a.out, true)
	if err := c.parse(args); err != nil {
		return err
	}
	row, err := e.fetch(ctx, a, c)
	if err != nil {
		return err
	}

	ctrl := e.controller(a, c)
	defer ctrl.Close()
	return a.reportAction(ctrl.Run(ctx, verb, row), fmt.Sprintf("%sd %s.", strings.ToUpper(verb[:1])+verb[1:], e.noun))
}
