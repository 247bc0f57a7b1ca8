// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"fmt"
	"strings"

	"github.com/olegiv/newsdesk/internal/dashboard"
	"github.com/olegiv/newsdesk/internal/model"
)

const titleWidth = 48

func id(n int64) string { return fmt.Sprint(n) }

func refName(ref *model.CategoryRef) string {
	if ref == nil || ref.Name == "" {
		return Placeholder
	}
	return ref.Name
}

// Categories builds the category list.
func (r *Renderer) Categories(rows []model.Category) Table {
	t := Table{Headers: []string{"ID", "NAME", "STATUS", "ICON", "BANNER", "CREATED"}}
	for _, c := range rows {
		t.Rows = append(t.Rows, []string{
			id(c.ID), c.Name, r.Label(string(c.Status)),
			yesNo(c.IconURL != ""), yesNo(c.BannerImageURL != ""),
			FormatDate(c.CreatedAt),
		})
	}
	return t
}

// SubCategories builds the sub-category list.
func (r *Renderer) SubCategories(rows []model.SubCategory) Table {
	t := Table{Headers: []string{"ID", "NAME", "CATEGORY", "STATUS", "CREATED"}}
	for _, s := range rows {
		t.Rows = append(t.Rows, []string{
			id(s.ID), s.Name, refName(s.Category), r.Label(string(s.Status)), FormatDate(s.CreatedAt),
		})
	}
	return t
}

// News builds the news list.
func (r *Renderer) News(rows []model.News) Table {
	t := Table{Headers: []string{"ID", "TITLE", "CATEGORY", "TYPE", "STATUS", "PUBLISHED"}}
	for _, n := range rows {
		t.Rows = append(t.Rows, []string{
			id(n.ID), Truncate(n.Title, titleWidth), refName(n.Category),
			r.Label(string(n.NewsType)), r.Label(string(n.PublishStatus)), FormatDateTime(n.PublishedAt),
		})
	}
	return t
}

// FlashNews builds the flash news list. Banners past their expiry are
// marked.
func (r *Renderer) FlashNews(rows []model.FlashNews) Table {
	now := r.now()
	t := Table{Headers: []string{"ID", "HEADLINE", "EXPIRES", "STATUS"}}
	for _, f := range rows {
		expires := FormatDateTime(f.ExpiresAt)
		if f.Expired(now) {
			expires += " (expired)"
		}
		t.Rows = append(t.Rows, []string{id(f.ID), Truncate(f.Title, titleWidth), expires, r.Label(string(f.Status))})
	}
	return t
}

// Users builds the user list.
func (r *Renderer) Users(rows []model.User) Table {
	t := Table{Headers: []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS", "CREATED"}}
	for _, u := range rows {
		status := u.Status
		if status == "" {
			status = model.StatusActive
		}
		t.Rows = append(t.Rows, []string{
			id(u.ID), u.Name, u.Email, string(u.Role), r.Label(string(status)), FormatDate(u.CreatedAt),
		})
	}
	return t
}

// CategoryRecord is the detail view of a category.
func (r *Renderer) CategoryRecord(c model.Category) []Field {
	return []Field{
		{"ID", id(c.ID)},
		{"Name", c.Name},
		{"Status", r.Label(string(c.Status))},
		{"Icon", c.IconURL},
		{"Banner", c.BannerImageURL},
		{"Created", FormatDateTime(c.CreatedAt)},
	}
}

// SubCategoryRecord is the detail view of a sub-category.
func (r *Renderer) SubCategoryRecord(s model.SubCategory) []Field {
	return []Field{
		{"ID", id(s.ID)},
		{"Name", s.Name},
		{"Category", fmt.Sprintf("%s (#%d)", refName(s.Category), s.ParentID())},
		{"Status", r.Label(string(s.Status))},
		{"Created", FormatDateTime(s.CreatedAt)},
	}
}

// NewsRecord is the detail view of an article.
func (r *Renderer) NewsRecord(n model.News) []Field {
	categoryID, subCategoryID := n.ParentIDs()
	return []Field{
		{"ID", id(n.ID)},
		{"Title", n.Title},
		{"Summary", n.ShortDescription},
		{"Category", fmt.Sprintf("%s (#%d)", refName(n.Category), categoryID)},
		{"Sub-category", fmt.Sprintf("%s (#%d)", refName(n.SubCategory), subCategoryID)},
		{"Tags", strings.Join(n.Tags, ", ")},
		{"Type", r.Label(string(n.NewsType))},
		{"Status", r.Label(string(n.PublishStatus))},
		{"Published", FormatDateTime(n.PublishedAt)},
		{"Author", n.AuthorName},
		{"Thumbnail", n.ThumbnailImageURL},
		{"Gallery", r.Number(len(n.GalleryImageURLs)) + " image(s)"},
		{"SEO title", n.SEOTitle},
		{"SEO description", n.SEODescription},
		{"SEO keywords", n.SEOKeywords},
	}
}

// FlashNewsRecord is the detail view of a flash news banner.
func (r *Renderer) FlashNewsRecord(f model.FlashNews) []Field {
	return []Field{
		{"ID", id(f.ID)},
		{"Headline", f.Title},
		{"Expires", FormatDateTime(f.ExpiresAt)},
		{"Status", r.Label(string(f.Status))},
		{"Expired", yesNo(f.Expired(r.now()))},
	}
}

// UserRecord is the detail view of a user.
func (r *Renderer) UserRecord(u model.User) []Field {
	return []Field{
		{"ID", id(u.ID)},
		{"Name", u.Name},
		{"Initials", u.Initials()},
		{"Email", u.Email},
		{"Role", string(u.Role)},
		{"Status", r.Label(string(u.Status))},
		{"Created", FormatDateTime(u.CreatedAt)},
	}
}

// Dashboard writes the headline counts and the recent news list.
func (r *Renderer) Dashboard(sum dashboard.Summary) error {
	stats := make([]Field, 0, len(sum.Stats))
	for _, st := range sum.Stats {
		stats = append(stats, Field{Label: st.Title, Value: r.Number(st.Value)})
	}
	if err := r.Record(stats); err != nil {
		return err
	}

	r.Printf("\nRecent News\n")
	t := Table{Headers: []string{"TITLE", "CATEGORY", "STATUS", "PUBLISHED"}}
	for _, n := range sum.Recent {
		t.Rows = append(t.Rows, []string{
			Truncate(n.Title, titleWidth), refName(n.Category), r.Label(string(n.PublishStatus)), FormatDate(n.PublishedAt),
		})
	}
	return r.Table(t, nil)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
