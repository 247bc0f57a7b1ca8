// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package form

import (
	"slices"
	"strings"
	"time"

	"github.com/olegiv/newsdesk/internal/model"
	"github.com/olegiv/newsdesk/internal/resource"
	"github.com/olegiv/newsdesk/internal/richtext"
)

// NewsForm edits a news article. FullDescription holds rich-text HTML.
type NewsForm struct {
	Title            string
	ShortDescription string
	FullDescription  string
	CategoryID       int64
	SubCategoryID    int64
	Tags             []string
	Thumbnail        model.Upload
	Gallery          []model.Upload
	PublishStatus    model.PublishStatus
	PublishedAt      time.Time
	AuthorName       string
	NewsType         model.NewsType
	SEOTitle         string
	SEODescription   string
	SEOKeywords      string
}

// NewNewsForm returns the defaults for a new article: a normal draft.
func NewNewsForm() *NewsForm {
	return &NewsForm{
		PublishStatus: model.PublishDraft,
		NewsType:      model.NewsNormal,
	}
}

// NewsFormFrom populates a form from an existing article. Hosted thumbnail
// and gallery images are kept as Unchanged.
func NewsFormFrom(n model.News) *NewsForm {
	categoryID, subCategoryID := n.ParentIDs()

	f := &NewsForm{
		Title:            n.Title,
		ShortDescription: n.ShortDescription,
		FullDescription:  n.FullDescription,
		CategoryID:       categoryID,
		SubCategoryID:    subCategoryID,
		Tags:             slices.Clone([]string(n.Tags)),
		Thumbnail:        model.Unchanged(n.ThumbnailImageURL),
		Gallery:          model.UnchangedAll(n.GalleryImageURLs),
		PublishStatus:    n.PublishStatus,
		PublishedAt:      n.PublishedAt.Time,
		AuthorName:       n.AuthorName,
		NewsType:         n.NewsType,
		SEOTitle:         n.SEOTitle,
		SEODescription:   n.SEODescription,
		SEOKeywords:      n.SEOKeywords,
	}
	if f.PublishStatus == "" {
		f.PublishStatus = model.PublishDraft
	}
	if f.NewsType == "" {
		f.NewsType = model.NewsNormal
	}
	return f
}

// AddTag appends a tag unless it is blank or already present.
func (f *NewsForm) AddTag(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(f.Tags, tag) {
		return
	}
	f.Tags = append(f.Tags, tag)
}

// RemoveTag drops a tag.
func (f *NewsForm) RemoveTag(tag string) {
	f.Tags = slices.DeleteFunc(f.Tags, func(t string) bool { return t == tag })
}

// AddGalleryImage appends a new gallery binary.
func (f *NewsForm) AddGalleryImage(file model.File) {
	f.Gallery = append(f.Gallery, model.Replace(file))
}

// RemoveGalleryImage drops the gallery entry at i.
func (f *NewsForm) RemoveGalleryImage(i int) {
	if i >= 0 && i < len(f.Gallery) {
		f.Gallery = slices.Delete(f.Gallery, i, i+1)
	}
}

// Validate implements Form. A new article needs a freshly chosen thumbnail;
// a scheduled one needs a publish date.
func (f *NewsForm) Validate(mode Mode) Errors {
	errs := Errors{}
	if blank(f.Title) {
		errs.Add("title", "Title is required")
	}
	if blank(f.ShortDescription) {
		errs.Add("short_description", "Short description is required")
	}
	if richtext.IsBlank(f.FullDescription) {
		errs.Add("full_description", "Full description is required")
	}
	if f.CategoryID == 0 {
		errs.Add("category_id", "Category is required")
	}
	if f.SubCategoryID == 0 {
		errs.Add("sub_category_id", "Sub-category is required")
	}
	if mode == ModeCreate && !f.Thumbnail.IsReplace() {
		errs.Add("thumbnail_image", "Thumbnail image is required")
	}
	if !f.PublishStatus.IsValid() {
		errs.Add("publish_status", "Publish status is invalid")
	}
	if f.PublishStatus == model.PublishScheduled && f.PublishedAt.IsZero() {
		errs.Add("published_at", "Scheduled publish date is required")
	}
	if !f.NewsType.IsValid() {
		errs.Add("news_type", "News type is invalid")
	}
	return errs
}

// Input implements Form. The description is sent as plain text.
func (f *NewsForm) Input() resource.NewsInput {
	return resource.NewsInput{
		Title:            strings.TrimSpace(f.Title),
		ShortDescription: strings.TrimSpace(f.ShortDescription),
		FullDescription:  richtext.PlainText(f.FullDescription),
		CategoryID:       f.CategoryID,
		SubCategoryID:    f.SubCategoryID,
		PublishStatus:    f.PublishStatus,
		PublishedAt:      model.NewTime(f.PublishedAt),
		AuthorName:       f.AuthorName,
		NewsType:         f.NewsType,
		Tags:             slices.Clone(f.Tags),
		SEOTitle:         f.SEOTitle,
		SEODescription:   f.SEODescription,
		SEOKeywords:      f.SEOKeywords,
		Thumbnail:        f.Thumbnail,
		Gallery:          slices.Clone(f.Gallery),
	}
}
