// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package demo fills a development API server with sample newsroom content
// so the dashboard has something to list right after startup.
package demo

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/newsdesk/internal/devapi"
	"github.com/olegiv/newsdesk/internal/model"
)

// Password is the password of every seeded staff account.
const Password = "demo-pass"

// Counts reports how much was seeded.
type Counts struct {
	Users         int
	Categories    int
	SubCategories int
	News          int
	FlashNews     int
}

type categorySeed struct {
	name   string
	status model.Status
	subs   []string
}

var categories = []categorySeed{
	{"Politics", model.StatusActive, []string{"Elections", "Parliament"}},
	{"Economy", model.StatusActive, []string{"Markets", "Budget"}},
	{"Sport", model.StatusActive, []string{"Football", "Tennis"}},
	{"Technology", model.StatusActive, []string{"Startups"}},
	{"Archive", model.StatusInactive, nil},
}

type newsSeed struct {
	title, short string
	category     string
	sub          string
	tags         []string
	newsType     model.NewsType
	status       model.PublishStatus
	// age is how long ago the article was (or will be, if negative)
	// published.
	age time.Duration
}

var articles = []newsSeed{
	{"Turnout hits record high", "Polling stations stayed open late", "Politics", "Elections", []string{"elections", "turnout"}, model.NewsFeatured, model.PublishPublished, 2 * time.Hour},
	{"Budget vote set for Friday", "The finance committee cleared the draft", "Politics", "Parliament", []string{"budget", "parliament"}, model.NewsNormal, model.PublishPublished, 5 * time.Hour},
	{"Markets close higher", "Tech shares led the rally", "Economy", "Markets", []string{"markets", "stocks"}, model.NewsTrending, model.PublishPublished, 26 * time.Hour},
	{"What the new budget means for you", "A guide to the tax changes", "Economy", "Budget", []string{"budget", "economy", "tax"}, model.NewsFeatured, model.PublishScheduled, -3 * time.Hour},
	{"Cup final preview", "Both sides are at full strength", "Sport", "Football", []string{"football"}, model.NewsNormal, model.PublishDraft, 0},
	{"Local hero reaches semi-final", "A straight-sets win on centre court", "Sport", "Tennis", []string{"tennis"}, model.NewsTrending, model.PublishPublished, 50 * time.Hour},
	{"Startup raises seed round", "The team plans to hire twenty engineers", "Technology", "Startups", []string{"startups", "funding"}, model.NewsNormal, model.PublishPublished, 72 * time.Hour},
}

var staff = []model.User{
	{Name: "Erin Editor", Email: "editor@example.com", Role: model.RoleEditor},
	{Name: "Rory Reporter", Email: "reporter@example.com", Role: model.RoleReporter},
}

// Seed adds the sample accounts and content to srv. It fails on a store
// that already holds any of the sample names.
func Seed(srv *devapi.Server, now time.Time, logger *slog.Logger) (Counts, error) {
	if logger == nil {
		logger = slog.Default()
	}
	store := srv.Store()
	var n Counts

	for _, u := range staff {
		if _, err := srv.CreateUser(u.Name, u.Email, Password, u.Role); err != nil {
			return n, fmt.Errorf("seeding user %s: %w", u.Email, err)
		}
		n.Users++
	}

	cats := make(map[string]model.Category)
	subs := make(map[string]model.SubCategory)
	for _, c := range categories {
		saved, err := store.SaveCategory(model.Category{Name: c.name, Status: c.status}, now)
		if err != nil {
			return n, fmt.Errorf("seeding category %s: %w", c.name, err)
		}
		cats[c.name] = saved
		n.Categories++

		for _, name := range c.subs {
			sub, err := store.SaveSubCategory(model.SubCategory{Name: name, CategoryID: saved.ID, Status: model.StatusActive}, now)
			if err != nil {
				return n, fmt.Errorf("seeding sub-category %s: %w", name, err)
			}
			subs[name] = sub
			n.SubCategories++
		}
	}

	for _, a := range articles {
		item := model.News{
			Title:            a.title,
			ShortDescription: a.short,
			FullDescription:  "<p>" + a.short + ".</p>",
			CategoryID:       cats[a.category].ID,
			SubCategoryID:    subs[a.sub].ID,
			Tags:             a.tags,
			NewsType:         a.newsType,
			PublishStatus:    a.status,
			AuthorName:       staff[1].Name,
		}
		if a.status != model.PublishDraft {
			item.PublishedAt = model.NewTime(now.Add(-a.age))
		}
		if _, err := store.SaveNews(item, now); err != nil {
			return n, fmt.Errorf("seeding news %q: %w", a.title, err)
		}
		n.News++
	}

	flash := []model.FlashNews{
		{Title: "Polls close at 10pm tonight", Status: model.FlashOn, ExpiresAt: model.NewTime(now.Add(12 * time.Hour))},
		{Title: "Severe weather warning lifted", Status: model.FlashOn, ExpiresAt: model.NewTime(now.Add(-time.Hour))},
	}
	for _, f := range flash {
		if _, err := store.SaveFlashNews(f); err != nil {
			return n, fmt.Errorf("seeding flash news: %w", err)
		}
		n.FlashNews++
	}

	logger.Info("demo content seeded",
		"users", n.Users,
		"categories", n.Categories,
		"sub_categories", n.SubCategories,
		"news", n.News,
		"flash_news", n.FlashNews,
	)
	return n, nil
}
