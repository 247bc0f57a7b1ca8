// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/newsdesk/internal/apiclient"
	"github.com/olegiv/newsdesk/internal/config"
	"github.com/olegiv/newsdesk/internal/render"
	"github.com/olegiv/newsdesk/internal/resource"
	"github.com/olegiv/newsdesk/internal/session"
	"github.com/olegiv/newsdesk/internal/workflow"
)

// errNoSession is returned by authenticated commands before login.
var errNoSession = errors.New("not logged in: run \"newsdesk login\" first")

// errFailed marks an error already reported to the user.
var errFailed = errors.New("command failed")

// app carries everything a command needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	sess   *session.Store
	api    *resource.API
	in     *bufio.Reader
	out    io.Writer
	view   *render.Renderer
	now    func() time.Time

	// assumeYes skips confirmation prompts.
	assumeYes bool
}

func newApp(ctx context.Context, cfg *config.Config, storage session.Storage, logger *slog.Logger, userAgent string, in io.Reader, out io.Writer) (*app, error) {
	sess, err := session.Open(ctx, storage, logger)
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}

	client := apiclient.New(cfg.APIURL, sess,
		apiclient.WithTimeout(cfg.HTTPTimeout),
		apiclient.WithLogger(logger),
		apiclient.WithStoragePrefix(cfg.StoragePrefix),
		apiclient.WithUserAgent(userAgent),
	)

	return &app{
		cfg:    cfg,
		logger: logger,
		sess:   sess,
		api:    resource.NewAPI(client),
		in:     bufio.NewReader(in),
		out:    out,
		view:   render.New(out),
		now:    time.Now,
	}, nil
}

func (a *app) close() {
	if err := a.sess.Close(); err != nil {
		a.logger.Warn("closing session storage", "error", err)
	}
}

// requireSession guards authenticated commands.
func (a *app) requireSession() error {
	if !a.sess.IsAuthenticated() {
		return errNoSession
	}
	return nil
}

// options are the shared controller settings.
func (a *app) options() workflow.Options {
	return workflow.Options{
		PerPage:   a.cfg.PerPage,
		Debounce:  a.cfg.SearchDebounce,
		Confirmer: a.confirmer(),
		Logger:    a.logger,
		Now:       a.now,
	}
}

// confirmer asks on the terminal unless -yes was given.
func (a *app) confirmer() workflow.Confirmer {
	if a.assumeYes {
		return workflow.AlwaysConfirm
	}
	return workflow.ConfirmFunc(func(_ context.Context, p workflow.Prompt) (bool, error) {
		if p.Title != "" {
			a.view.Printf("%s\n", p.Title)
		}
		label := p.Confirm
		if label == "" {
			label = "Delete"
		}
		a.view.Printf("%s\n%s? [y/N] ", p.Message, label)
		answer, err := a.readLine()
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	})
}

func (a *app) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	return strings.TrimSpace(line), err
}

// prompt reads one line after printing label.
func (a *app) prompt(label string) (string, error) {
	a.view.Printf("%s: ", label)
	line, err := a.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}

// reportSubmit prints what blocked a save and returns errFailed.
func (a *app) reportSubmit(err error, fieldErrors map[string]string, message string) error {
	if apiErr, ok := apiclient.AsAPIError(err); ok && message == "" {
		message = apiErr.Message
	}
	if message != "" {
		a.view.Printf("Error: %s\n", message)
	} else if len(fieldErrors) > 0 {
		a.view.Printf("Please fix the following:\n")
	}
	a.view.FieldErrors(fieldErrors)
	if message == "" && len(fieldErrors) == 0 {
		return err
	}
	return errFailed
}

// reportLoad prints a failed fetch. API errors carry a message for the
// user; anything else is returned wrapped.
func (a *app) reportLoad(err error, fallback string) error {
	if apiErr, ok := apiclient.AsAPIError(err); ok {
		message := apiErr.Message
		if message == "" {
			message = fallback
		}
		a.view.Printf("Error: %s\n", message)
		return errFailed
	}
	return fmt.Errorf("%s: %w", strings.ToLower(fallback[:1])+fallback[1:], err)
}

// reportAction prints the outcome of a confirmed row action.
func (a *app) reportAction(err error, done string) error {
	var actionErr *workflow.ActionError
	switch {
	case err == nil:
		a.view.Printf("%s\n", done)
		return nil
	case errors.Is(err, workflow.ErrCancelled):
		a.view.Printf("Cancelled.\n")
		return nil
	case errors.As(err, &actionErr):
		a.view.Printf("Error: %s\n", actionErr.Message)
		return errFailed
	}
	return err
}
