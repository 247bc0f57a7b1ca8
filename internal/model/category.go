// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"strconv"
)

// Category is a top-level news section with optional icon and banner images.
type Category struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Status         Status `json:"status"`
	IconURL        string `json:"icon_url,omitempty"`
	BannerImageURL string `json:"banner_image_url,omitempty"`
	CreatedAt      Time   `json:"created_at,omitzero"`
}

// SubCategory belongs to exactly one Category.
type SubCategory struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
	Status     Status `json:"status"`
	CreatedAt  Time   `json:"created_at,omitzero"`

	// Category is the parent when the API embeds it.
	Category *CategoryRef `json:"category,omitempty"`
}

// ParentID returns the parent category ID, falling back to the embedded
// parent when category_id is absent.
func (s SubCategory) ParentID() int64 {
	if s.CategoryID != 0 {
		return s.CategoryID
	}
	if s.Category != nil {
		return s.Category.ID
	}
	return 0
}

// CategoryRef is the short form of a category embedded in other entities.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts either an object or a bare numeric ID.
func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	var id FlexInt
	if err := json.Unmarshal(data, &id); err == nil {
		c.ID = int64(id)
		return nil
	}
	type plain CategoryRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = CategoryRef(p)
	return nil
}

// FlexInt decodes a JSON number or a numeric string.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = 0
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		v, err := num.Int64()
		if err != nil {
			return err
		}
		*n = FlexInt(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*n = FlexInt(v)
	return nil
}
