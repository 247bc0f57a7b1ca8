// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Status is the active/inactive flag shared by categories, sub-categories
// and users.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsValid reports whether s is active or inactive.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// FlashStatus is the on/off switch of a flash news banner.
type FlashStatus string

const (
	FlashOn  FlashStatus = "on"
	FlashOff FlashStatus = "off"
)

// FlashStatusFromBool maps a toggle to on/off.
func FlashStatusFromBool(on bool) FlashStatus {
	if on {
		return FlashOn
	}
	return FlashOff
}

// PublishStatus is the publication state of a news article.
type PublishStatus string

const (
	PublishDraft     PublishStatus = "draft"
	PublishPublished PublishStatus = "published"
	PublishScheduled PublishStatus = "scheduled"
)

// IsValid reports whether p is a known publish status.
func (p PublishStatus) IsValid() bool {
	switch p {
	case PublishDraft, PublishPublished, PublishScheduled:
		return true
	}
	return false
}

// NewsType is the editorial placement of a news article.
type NewsType string

const (
	NewsNormal   NewsType = "normal"
	NewsFeatured NewsType = "featured"
	NewsTrending NewsType = "trending"
)

// IsValid reports whether t is a known news type.
func (t NewsType) IsValid() bool {
	switch t {
	case NewsNormal, NewsFeatured, NewsTrending:
		return true
	}
	return false
}

// FilterAll is the sentinel the list screens use for "no filter".
const FilterAll = "all"
