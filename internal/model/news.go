// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"time"
)

// News is a news article.
type News struct {
	ID                int64         `json:"id"`
	Title             string        `json:"title"`
	ShortDescription  string        `json:"short_description"`
	FullDescription   string        `json:"full_description"`
	CategoryID        int64         `json:"category_id"`
	SubCategoryID     int64         `json:"sub_category_id"`
	Tags              Tags          `json:"tags"`
	ThumbnailImageURL string        `json:"thumbnail_image_url,omitempty"`
	GalleryImageURLs  []string      `json:"gallery_images_urls,omitempty"`
	PublishStatus     PublishStatus `json:"publish_status"`
	PublishedAt       Time          `json:"published_at,omitzero"`
	AuthorName        string        `json:"author_name,omitempty"`
	NewsType          NewsType      `json:"news_type"`
	SEOTitle          string        `json:"seo_title,omitempty"`
	SEODescription    string        `json:"seo_description,omitempty"`
	SEOKeywords       string        `json:"seo_keywords,omitempty"`
	CreatedAt         Time          `json:"created_at,omitzero"`

	Category    *CategoryRef `json:"category,omitempty"`
	SubCategory *CategoryRef `json:"sub_category,omitempty"`
}

// ParentIDs returns the category and sub-category IDs, falling back to the
// embedded references.
func (n News) ParentIDs() (categoryID, subCategoryID int64) {
	categoryID, subCategoryID = n.CategoryID, n.SubCategoryID
	if categoryID == 0 && n.Category != nil {
		categoryID = n.Category.ID
	}
	if subCategoryID == 0 && n.SubCategory != nil {
		subCategoryID = n.SubCategory.ID
	}
	return categoryID, subCategoryID
}

// Tags decodes either a list of strings or a list of {"tag": "..."} objects.
type Tags []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Tags, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		var obj struct {
			Tag  string `json:"tag"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return err
		}
		if obj.Tag != "" {
			out = append(out, obj.Tag)
		} else if obj.Name != "" {
			out = append(out, obj.Name)
		}
	}
	*t = out
	return nil
}

// FlashNews is a short-lived headline banner.
type FlashNews struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	ExpiresAt Time        `json:"expires_at,omitzero"`
	Status    FlashStatus `json:"status"`
}

// IsOn reports whether the banner is switched on.
func (f FlashNews) IsOn() bool {
	return f.Status == FlashOn
}

// Expired reports whether the banner expiry is before now.
func (f FlashNews) Expired(now time.Time) bool {
	return !f.ExpiresAt.IsZero() && f.ExpiresAt.Before(now)
}
