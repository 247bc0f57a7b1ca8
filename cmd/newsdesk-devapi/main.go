// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/newsdesk/internal/config"
	"github.com/olegiv/newsdesk/internal/demo"
	"github.com/olegiv/newsdesk/internal/devapi"
	"github.com/olegiv/newsdesk/internal/logging"
	"github.com/olegiv/newsdesk/internal/scheduler"
	"github.com/olegiv/newsdesk/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	seed := flag.Bool("demo", false, "Seed sample categories, news, flash news and staff accounts")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "newsdesk-devapi - in-memory news API for development\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_DEVAPI_SECRET          Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_DEVAPI_ADMIN_PASSWORD  Password of the seeded admin (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_DEVAPI_ADMIN_EMAIL     Admin email (default: admin@example.com)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_DEVAPI_HOST            Listen host (default: 127.0.0.1)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_DEVAPI_PORT            Listen port (default: 8000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_DEVAPI_TOKEN_TTL       Bearer token lifetime (default: 24h)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_DEVAPI_EXPIRY_SPEC     Housekeeping cron spec (default: @every 1m)\n")
	}
	flag.Parse()

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("newsdesk-devapi %s\n", info)
		os.Exit(0)
	}

	if err := run(*seed); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(seed bool) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.LoadDevAPI()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)

	srv, err := devapi.New(devapi.Options{
		Secret:        cfg.Secret,
		TokenTTL:      cfg.TokenTTL,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("creating api: %w", err)
	}

	if seed {
		if _, err := demo.Seed(srv, time.Now(), logger); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}

	sched := scheduler.New(srv.Store(), cfg.ExpirySpec, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	httpSrv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           srv.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "admin", cfg.AdminEmail)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
