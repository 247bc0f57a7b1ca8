// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package devapi

import (
	"net/http"

	"github.com/olegiv/newsdesk/internal/model"
)

func (s *Server) listFlashNews(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	page, perPage := p.page(s.perPage)
	WritePage(w, s.store.ListFlashNews(filterValue(p, "status")), page, perPage)
}

func (s *Server) showFlashNews(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := requireID(w, p)
	if !ok {
		return
	}
	f, err := s.store.FlashNews(id)
	if err != nil {
		s.writeStoreError(w, err, "Flash news")
		return
	}
	WriteSuccess(w, "", f)
}

// flashStatus accepts on/off and boolean spellings.
func flashStatus(v string) (model.FlashStatus, bool) {
	switch v {
	case "", "on", "true", "1":
		return model.FlashOn, true
	case "off", "false", "0":
		return model.FlashOff, true
	}
	return "", false
}

func flashNewsParams(p *params, f model.FlashNews) (model.FlashNews, Errors) {
	errs := Errors{}
	f.Title = required(errs, p, "title")

	expires, ok := p.timestamp("expires_at")
	switch {
	case !ok:
		errs.Add("expires_at", "The expires at is not a valid date.")
	case expires.IsZero():
		errs.Add("expires_at", "The expires at field is required.")
	default:
		f.ExpiresAt = model.NewTime(expires)
	}

	if f.Status, ok = flashStatus(p.str("status")); !ok {
		invalid(errs, "status")
	}
	return f, errs
}

func (s *Server) createFlashNews(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	f, errs := flashNewsParams(p, model.FlashNews{})
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	saved, err := s.store.SaveFlashNews(f)
	if err != nil {
		s.writeStoreError(w, err, "Flash news")
		return
	}
	WriteCreated(w, "Flash news created successfully", saved)
}

func (s *Server) updateFlashNews(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := requireID(w, p)
	if !ok {
		return
	}
	existing, err := s.store.FlashNews(id)
	if err != nil {
		s.writeStoreError(w, err, "Flash news")
		return
	}
	f, errs := flashNewsParams(p, existing)
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	saved, err := s.store.SaveFlashNews(f)
	if err != nil {
		s.writeStoreError(w, err, "Flash news")
		return
	}
	WriteSuccess(w, "Flash news updated successfully", saved)
}

func (s *Server) deleteFlashNews(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := requireID(w, p)
	if !ok {
		return
	}
	if err := s.store.DeleteFlashNews(id); err != nil {
		s.writeStoreError(w, err, "Flash news")
		return
	}
	WriteSuccess(w, "Flash news deleted successfully", nil)
}
