// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command newsdesk is the terminal front-end of the news admin dashboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/olegiv/newsdesk/internal/config"
	"github.com/olegiv/newsdesk/internal/logging"
	"github.com/olegiv/newsdesk/internal/session"
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

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "newsdesk - news admin dashboard\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [flags]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Commands:\n")
		for _, line := range commandNames() {
			_, _ = fmt.Fprintf(os.Stderr, "  %s\n", line)
		}
		_, _ = fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_API_URL          API base URL (default: http://127.0.0.1:8000/api)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_SESSION_BACKEND  file, redis or memory (default: file)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_SESSION_PATH     Session file (default: user config dir)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_REDIS_URL        Redis URL for the redis session backend\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_PER_PAGE         Default rows per page (default: 15)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_LOG_LEVEL        debug, info, warn or error (default: warn)\n")
	}
	flag.Parse()

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
	if *showVersion {
		_, _ = fmt.Printf("newsdesk %s\n", info)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, flag.Args(), info.UserAgent("newsdesk"))
	stop()

	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errFailed):
		os.Exit(1)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, userAgent string) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	storage, err := session.NewStorage(ctx, session.StorageConfig{
		Backend:        cfg.SessionBackend,
		Path:           cfg.SessionPath,
		RedisURL:       cfg.RedisURL,
		RedisPrefix:    cfg.RedisPrefix,
		FallbackToFile: cfg.RedisFallback,
	}, logger)
	if err != nil {
		return fmt.Errorf("opening session storage: %w", err)
	}

	a, err := newApp(ctx, cfg, storage, logger, userAgent, os.Stdin, os.Stdout)
	if err != nil {
		_ = storage.Close()
		return err
	}
	defer a.close()

	return a.dispatch(ctx, args)
}
