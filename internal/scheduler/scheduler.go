// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the development API's periodic housekeeping:
// switching expired flash news off and publishing scheduled news once its
// publication time has passed.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSpec runs the housekeeping job every minute.
const DefaultSpec = "@every 1m"

// Store is the state the jobs act on.
type Store interface {
	// ExpireFlashNews switches off every flash news item that is on and
	// expired at now, returning the affected IDs.
	ExpireFlashNews(now time.Time) []int64
	// PublishDueNews publishes every scheduled article whose publication
	// time is at or before now, returning the affected IDs.
	PublishDueNews(now time.Time) []int64
}

// Scheduler handles scheduled housekeeping of the dev API store.
type Scheduler struct {
	store  Store
	spec   string
	cron   *cron.Cron
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new scheduler instance. An empty spec means DefaultSpec.
func New(store Store, spec string, logger *slog.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		store:  store,
		spec:   spec,
		cron:   cron.New(),
		logger: logger,
		now:    time.Now,
	}
}

// Start registers the housekeeping job and starts the cron runner.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce()
	})
	if err != nil {
		return fmt.Errorf("scheduling housekeeping %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "spec", s.spec, "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunOnce performs one housekeeping pass immediately.
func (s *Scheduler) RunOnce() (expired, published []int64) {
	now := s.now()

	expired = s.store.ExpireFlashNews(now)
	if len(expired) > 0 {
		s.logger.Info("switched off expired flash news", "count", len(expired), "ids", expired)
	}

	published = s.store.PublishDueNews(now)
	if len(published) > 0 {
		s.logger.Info("published scheduled news", "count", len(published), "ids", published)
	}
	return expired, published
}
