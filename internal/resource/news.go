// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package resource

import (
	"context"

	"github.com/olegiv/newsdesk/internal/apiclient"
	"github.com/olegiv/newsdesk/internal/model"
)

// NewsFilter narrows a news list. Zero IDs and empty or "all" strings are
// not sent.
type NewsFilter struct {
	Search        string
	CategoryID    int64
	SubCategoryID int64
	NewsType      string
	PublishStatus string
	Tags          []string
}

// NewsInput is the writable part of a news article.
type NewsInput struct {
	Title            string
	ShortDescription string
	FullDescription  string
	CategoryID       int64
	SubCategoryID    int64
	PublishStatus    model.PublishStatus
	PublishedAt      model.Time
	AuthorName       string
	NewsType         model.NewsType
	Tags             []string
	SEOTitle         string
	SEODescription   string
	SEOKeywords      string
	Thumbnail        model.Upload
	Gallery          []model.Upload
}

// Fields renders the input as a multipart payload. Tags are left out when
// empty; the thumbnail and gallery only carry replaced images.
func (in NewsInput) Fields() apiclient.Fields {
	f := apiclient.Fields{}.
		Add("title", in.Title).
		Add("short_description", in.ShortDescription).
		Add("full_description", in.FullDescription).
		Add("category_id", in.CategoryID).
		Add("sub_category_id", in.SubCategoryID).
		Add("publish_status", in.PublishStatus).
		Add("published_at", in.PublishedAt).
		Add("author_name", in.AuthorName).
		Add("news_type", in.NewsType)
	if len(in.Tags) > 0 {
		f = f.Add("tags", in.Tags)
	}
	return f.
		Add("seo_title", in.SEOTitle).
		Add("seo_description", in.SEODescription).
		Add("seo_keywords", in.SEOKeywords).
		Add("thumbnail_image", in.Thumbnail).
		Add("gallery_images", in.Gallery)
}

// News manages /news.
type News struct {
	c *apiclient.Client
}

// List returns one page of news.
func (r *News) List(ctx context.Context, page PageRequest, f NewsFilter) (apiclient.ListResult[model.News], error) {
	body := page.body()
	setID(body, "category_id", f.CategoryID)
	setID(body, "sub_category_id", f.SubCategoryID)
	setFilter(body, "news_type", f.NewsType)
	setFilter(body, "publish_status", f.PublishStatus)
	setFilter(body, "search", f.Search)
	if len(f.Tags) > 0 {
		body["tags"] = f.Tags
	}
	return list[model.News](ctx, r.c, "/news/list", body)
}

// Show returns one article.
func (r *News) Show(ctx context.Context, id int64) (model.News, error) {
	return show[model.News](ctx, r.c, "/news/show", id)
}

// Create adds an article.
func (r *News) Create(ctx context.Context, in NewsInput) (model.News, error) {
	return postMultipart[model.News](ctx, r.c, "/news/create", in.Fields())
}

// Update replaces the article with the given ID.
func (r *News) Update(ctx context.Context, id int64, in NewsInput) (model.News, error) {
	fields := apiclient.Fields{}.Add("id", id)
	return postMultipart[model.News](ctx, r.c, "/news/update", append(fields, in.Fields()...))
}

// Delete removes an article.
func (r *News) Delete(ctx context.Context, id int64) error {
	return byID(ctx, r.c, "/news/delete", id)
}
