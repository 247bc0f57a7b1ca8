// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package dashboard loads the overview screen: headline counts and the most
// recent news.
package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/newsdesk/internal/model"
	"github.com/olegiv/newsdesk/internal/resource"
)

// RecentLimit is the number of recent articles shown.
const RecentLimit = 10

// FailureMessage is shown when any part of the dashboard fails to load.
const FailureMessage = "Failed to load dashboard data"

// Stat titles in display order.
const (
	StatTotalNews        = "Total News"
	StatActiveCategories = "Active Categories"
	StatActiveSubs       = "Active Subcategories"
	StatFlashNews        = "Today's Flash News"
	StatFeatured         = "Featured News Count"
)

// Stat is one headline count.
type Stat struct {
	Title string
	Value int
}

// Summary is everything the dashboard shows.
type Summary struct {
	Stats  []Stat
	Recent []model.News
}

// Stat returns the value of the stat with the given title.
func (s Summary) Stat(title string) (int, bool) {
	for _, st := range s.Stats {
		if st.Title == title {
			return st.Value, true
		}
	}
	return 0, false
}

// countPage asks for a single row; only the pagination total is used.
var countPage = resource.PageRequest{Page: 1, PerPage: 1}

// Load fetches all counts and the recent news concurrently. Any failure
// fails the whole dashboard.
func Load(ctx context.Context, api *resource.API) (Summary, error) {
	var (
		totalNews, activeCats, activeSubs, flashOn, featured int
		recent                                               []model.News
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := api.News.List(ctx, countPage, resource.NewsFilter{})
		totalNews = res.TotalRows()
		return wrap(StatTotalNews, err)
	})
	g.Go(func() error {
		res, err := api.Categories.List(ctx, countPage, resource.CategoryFilter{Status: string(model.StatusActive)})
		activeCats = res.TotalRows()
		return wrap(StatActiveCategories, err)
	})
	g.Go(func() error {
		res, err := api.SubCategories.List(ctx, countPage, resource.SubCategoryFilter{Status: string(model.StatusActive)})
		activeSubs = res.TotalRows()
		return wrap(StatActiveSubs, err)
	})
	g.Go(func() error {
		res, err := api.FlashNews.List(ctx, countPage, resource.FlashNewsFilter{Status: string(model.FlashOn)})
		flashOn = res.TotalRows()
		return wrap(StatFlashNews, err)
	})
	g.Go(func() error {
		res, err := api.News.List(ctx, countPage, resource.NewsFilter{NewsType: string(model.NewsFeatured)})
		featured = res.TotalRows()
		return wrap(StatFeatured, err)
	})
	g.Go(func() error {
		res, err := api.News.List(ctx, resource.PageRequest{Page: 1, PerPage: RecentLimit}, resource.NewsFilter{})
		recent = res.Data
		return wrap("recent news", err)
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	if recent == nil {
		recent = []model.News{}
	}
	return Summary{
		Stats: []Stat{
			{Title: StatTotalNews, Value: totalNews},
			{Title: StatActiveCategories, Value: activeCats},
			{Title: StatActiveSubs, Value: activeSubs},
			{Title: StatFlashNews, Value: flashOn},
			{Title: StatFeatured, Value: featured},
		},
		Recent: recent,
	}, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("loading %s: %w", what, err)
}
