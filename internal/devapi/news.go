// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package devapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/olegiv/newsdesk/internal/model"
)

func (s *Server) listNews(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	categoryID, _ := p.integer("category_id")
	subCategoryID, _ := p.integer("sub_category_id")
	f := NewsFilter{
		Search:        p.str("search"),
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		NewsType:      filterValue(p, "news_type"),
		PublishStatus: filterValue(p, "publish_status"),
		Tags:          tags(p),
	}
	page, perPage := p.page(s.perPage)
	WritePage(w, s.store.ListNews(f), page, perPage)
}

// tags accepts repeated values as well as comma-separated ones.
func tags(p *params) []string {
	var out []string
	for _, v := range p.list("tags") {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

func (s *Server) showNews(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := requireID(w, p)
	if !ok {
		return
	}
	n, err := s.store.News(id)
	if err != nil {
		s.writeStoreError(w, err, "News")
		return
	}
	WriteSuccess(w, "", n)
}

// newsParams validates a news body and applies it to n. A new article must
// carry a thumbnail. Gallery uploads are appended to the existing gallery.
func (s *Server) newsParams(w http.ResponseWriter, r *http.Request, p *params, n model.News) (model.News, bool) {
	creating := n.ID == 0
	errs := Errors{}

	n.Title = required(errs, p, "title")
	n.ShortDescription = required(errs, p, "short_description")
	n.FullDescription = required(errs, p, "full_description")

	var ok bool
	if n.CategoryID, ok = p.integer("category_id"); !ok {
		invalid(errs, "category_id")
	} else if n.CategoryID == 0 {
		errs.Add("category_id", "The category id field is required.")
	}
	if n.SubCategoryID, ok = p.integer("sub_category_id"); !ok {
		invalid(errs, "sub_category_id")
	} else if n.SubCategoryID == 0 {
		errs.Add("sub_category_id", "The sub category id field is required.")
	}

	n.PublishStatus = model.PublishStatus(p.str("publish_status"))
	if n.PublishStatus == "" {
		n.PublishStatus = model.PublishDraft
	} else if !n.PublishStatus.IsValid() {
		invalid(errs, "publish_status")
	}
	n.NewsType = model.NewsType(p.str("news_type"))
	if n.NewsType == "" {
		n.NewsType = model.NewsNormal
	} else if !n.NewsType.IsValid() {
		invalid(errs, "news_type")
	}

	publishedAt, ok := p.timestamp("published_at")
	switch {
	case !ok:
		errs.Add("published_at", "The published at is not a valid date.")
	case !publishedAt.IsZero():
		n.PublishedAt = model.NewTime(publishedAt)
	case n.PublishStatus != model.PublishPublished:
		n.PublishedAt = model.Time{}
	}
	if n.PublishStatus == model.PublishScheduled && n.PublishedAt.IsZero() {
		errs.Add("published_at", "The published at field is required when publish status is scheduled.")
	}

	n.Tags = tags(p)
	n.AuthorName = p.str("author_name")
	n.SEOTitle = p.str("seo_title")
	n.SEODescription = p.str("seo_description")
	n.SEOKeywords = p.str("seo_keywords")

	thumb := p.file("thumbnail_image")
	if creating && thumb == nil {
		errs.Add("thumbnail_image", "The thumbnail image field is required.")
	}
	checkUpload(errs, "thumbnail_image", thumb)
	gallery := p.fileList("gallery_images")
	for _, u := range gallery {
		checkUpload(errs, "gallery_images", u)
	}
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return n, false
	}

	if thumb != nil {
		url, err := s.saveUpload(r, thumb)
		if err != nil {
			WriteValidationError(w, Errors{"thumbnail_image": err.Error()})
			return n, false
		}
		n.ThumbnailImageURL = url
	}
	urls := append([]string(nil), n.GalleryImageURLs...)
	for _, u := range gallery {
		url, err := s.saveUpload(r, u)
		if err != nil {
			WriteValidationError(w, Errors{"gallery_images": err.Error()})
			return n, false
		}
		urls = append(urls, url)
	}
	n.GalleryImageURLs = urls
	return n, true
}

func (s *Server) createNews(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	n, ok := s.newsParams(w, r, p, model.News{})
	if !ok {
		return
	}
	s.saveNews(w, n, true)
}

func (s *Server) updateNews(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := requireID(w, p)
	if !ok {
		return
	}
	existing, err := s.store.News(id)
	if err != nil {
		s.writeStoreError(w, err, "News")
		return
	}
	n, ok := s.newsParams(w, r, p, existing)
	if !ok {
		return
	}
	s.saveNews(w, n, false)
}

func (s *Server) saveNews(w http.ResponseWriter, n model.News, created bool) {
	saved, err := s.store.SaveNews(n, s.now())
	switch {
	case errors.Is(err, ErrUnknownCategory):
		WriteValidationError(w, Errors{"category_id": "The selected category id is invalid."})
	case errors.Is(err, ErrUnknownSubCategory):
		WriteValidationError(w, Errors{"sub_category_id": "The selected sub category id is invalid."})
	case err != nil:
		s.writeStoreError(w, err, "News")
	case created:
		WriteCreated(w, "News created successfully", saved)
	default:
		WriteSuccess(w, "News updated successfully", saved)
	}
}

func (s *Server) deleteNews(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := requireID(w, p)
	if !ok {
		return
	}
	if err := s.store.DeleteNews(id); err != nil {
		s.writeStoreError(w, err, "News")
		return
	}
	WriteSuccess(w, "News deleted successfully", nil)
}
