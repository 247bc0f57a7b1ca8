// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package form

import (
	"strings"
	"time"

	"github.com/olegiv/newsdesk/internal/model"
	"github.com/olegiv/newsdesk/internal/resource"
)

// DefaultFlashExpiry is how long a new banner stays up by default.
const DefaultFlashExpiry = 24 * time.Hour

// FlashNewsForm edits a flash news banner.
type FlashNewsForm struct {
	Title     string
	ExpiresAt time.Time
	On        bool

	now func() time.Time
}

// NewFlashNewsForm returns the defaults for a new banner: switched off and
// expiring a day from now.
func NewFlashNewsForm(now func() time.Time) *FlashNewsForm {
	if now == nil {
		now = time.Now
	}
	return &FlashNewsForm{ExpiresAt: now().Add(DefaultFlashExpiry), now: now}
}

// FlashNewsFormFrom populates a form from an existing banner.
func FlashNewsFormFrom(f model.FlashNews, now func() time.Time) *FlashNewsForm {
	if now == nil {
		now = time.Now
	}
	expires := f.ExpiresAt.Time
	if expires.IsZero() {
		expires = now().Add(DefaultFlashExpiry)
	}
	return &FlashNewsForm{Title: f.Title, ExpiresAt: expires, On: f.IsOn(), now: now}
}

// Validate implements Form. A new banner must expire in the future.
func (f *FlashNewsForm) Validate(mode Mode) Errors {
	errs := Errors{}
	if blank(f.Title) {
		errs.Add("title", "Headline is required")
	}
	switch {
	case f.ExpiresAt.IsZero():
		errs.Add("expires_at", "Expiry time is required")
	case mode == ModeCreate && !f.ExpiresAt.After(f.clock()):
		errs.Add("expires_at", "Expiry time must be in the future")
	}
	return errs
}

// Input implements Form.
func (f *FlashNewsForm) Input() resource.FlashNewsInput {
	return resource.FlashNewsInput{
		Title:     strings.TrimSpace(f.Title),
		ExpiresAt: model.NewTime(f.ExpiresAt),
		Status:    model.FlashStatusFromBool(f.On),
	}
}

func (f *FlashNewsForm) clock() time.Time {
	if f.now == nil {
		return time.Now()
	}
	return f.now()
}
