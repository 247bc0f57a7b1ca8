// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package devapi

import (
	"errors"
	"net/http"

	"github.com/olegiv/newsdesk/internal/model"
)

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	page, perPage := p.page(s.perPage)
	WritePage(w, s.store.ListCategories(filterValue(p, "status")), page, perPage)
}

func (s *Server) showCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := requireID(w, p)
	if !ok {
		return
	}
	c, err := s.store.Category(id)
	if err != nil {
		s.writeStoreError(w, err, "Category")
		return
	}
	WriteSuccess(w, "", c)
}

// categoryParams validates a create or update body and applies it to c.
// Uploads are stored only once the whole body is valid.
func (s *Server) categoryParams(w http.ResponseWriter, r *http.Request, p *params, c model.Category) (model.Category, bool) {
	errs := Errors{}
	c.Name = required(errs, p, "name")
	c.Status = status(errs, p, model.StatusActive)

	icon, banner := p.file("icon"), p.file("banner_image")
	checkUpload(errs, "icon", icon)
	checkUpload(errs, "banner_image", banner)
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return c, false
	}

	var err error
	if icon != nil {
		if c.IconURL, err = s.saveUpload(r, icon); err != nil {
			WriteValidationError(w, Errors{"icon": err.Error()})
			return c, false
		}
	}
	if banner != nil {
		if c.BannerImageURL, err = s.saveUpload(r, banner); err != nil {
			WriteValidationError(w, Errors{"banner_image": err.Error()})
			return c, false
		}
	}
	return c, true
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	c, ok := s.categoryParams(w, r, p, model.Category{})
	if !ok {
		return
	}
	s.saveCategory(w, c, true)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := requireID(w, p)
	if !ok {
		return
	}
	existing, err := s.store.Category(id)
	if err != nil {
		s.writeStoreError(w, err, "Category")
		return
	}
	c, ok := s.categoryParams(w, r, p, existing)
	if !ok {
		return
	}
	s.saveCategory(w, c, false)
}

func (s *Server) saveCategory(w http.ResponseWriter, c model.Category, created bool) {
	saved, err := s.store.SaveCategory(c, s.now())
	switch {
	case errors.Is(err, ErrDuplicate):
		WriteValidationError(w, Errors{"name": "The name has already been taken."})
	case err != nil:
		s.writeStoreError(w, err, "Category")
	case created:
		WriteCreated(w, "Category created successfully", saved)
	default:
		WriteSuccess(w, "Category updated successfully", saved)
	}
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := requireID(w, p)
	if !ok {
		return
	}
	err := s.store.DeleteCategory(id)
	switch {
	case errors.Is(err, ErrConflict):
		WriteUnprocessable(w, "Cannot delete a category that still has sub-categories or news")
	case err != nil:
		s.writeStoreError(w, err, "Category")
	default:
		WriteSuccess(w, "Category deleted successfully", nil)
	}
}

func (s *Server) listSubCategories(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	categoryID, _ := p.integer("category_id")
	page, perPage := p.page(s.perPage)
	WritePage(w, s.store.ListSubCategories(categoryID, filterValue(p, "status")), page, perPage)
}

func (s *Server) showSubCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := requireID(w, p)
	if !ok {
		return
	}
	c, err := s.store.SubCategory(id)
	if err != nil {
		s.writeStoreError(w, err, "Sub-category")
		return
	}
	WriteSuccess(w, "", c)
}

func subCategoryParams(p *params, sub model.SubCategory) (model.SubCategory, Errors) {
	errs := Errors{}
	sub.Name = required(errs, p, "name")
	categoryID, ok := p.integer("category_id")
	switch {
	case !ok:
		invalid(errs, "category_id")
	case categoryID == 0:
		errs.Add("category_id", "The category id field is required.")
	}
	sub.CategoryID = categoryID
	sub.Status = status(errs, p, model.StatusActive)
	return sub, errs
}

func (s *Server) createSubCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	sub, errs := subCategoryParams(p, model.SubCategory{})
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	s.saveSubCategory(w, sub, true)
}

func (s *Server) updateSubCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := requireID(w, p)
	if !ok {
		return
	}
	existing, err := s.store.SubCategory(id)
	if err != nil {
		s.writeStoreError(w, err, "Sub-category")
		return
	}
	sub, errs := subCategoryParams(p, existing)
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}
	s.saveSubCategory(w, sub, false)
}

func (s *Server) saveSubCategory(w http.ResponseWriter, sub model.SubCategory, created bool) {
	saved, err := s.store.SaveSubCategory(sub, s.now())
	switch {
	case errors.Is(err, ErrDuplicate):
		WriteValidationError(w, Errors{"name": "The name has already been taken."})
	case errors.Is(err, ErrUnknownCategory):
		WriteValidationError(w, Errors{"category_id": "The selected category id is invalid."})
	case err != nil:
		s.writeStoreError(w, err, "Sub-category")
	case created:
		WriteCreated(w, "Sub-category created successfully", saved)
	default:
		WriteSuccess(w, "Sub-category updated successfully", saved)
	}
}

func (s *Server) deleteSubCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parse(w, r)
	if !ok {
		return
	}
	id, ok := requireID(w, p)
	if !ok {
		return
	}
	err := s.store.DeleteSubCategory(id)
	switch {
	case errors.Is(err, ErrConflict):
		WriteUnprocessable(w, "Cannot delete a sub-category that still has news")
	case err != nil:
		s.writeStoreError(w, err, "Sub-category")
	default:
		WriteSuccess(w, "Sub-category deleted successfully", nil)
	}
}
