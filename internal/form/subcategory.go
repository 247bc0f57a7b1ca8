package form

import (
	"strings"

	"github.com/olegiv/newsdesk/internal/model"
	"github.com/olegiv/newsdesk/internal/resource"
)

// SubCategoryForm edits a sub-category.
type SubCategoryForm struct {
	Name       string
	CategoryID int64
	Status     model.Status
}

// NewSubCategoryForm returns the defaults for a new sub-category.
func NewSubCategoryForm() *SubCategoryForm {
	return &SubCategoryForm{Status: model.StatusActive}
}

// SubCategoryFormFrom populates a form from an existing sub-category.
func SubCategoryFormFrom(s model.SubCategory) *SubCategoryForm {
	status := s.Status
	if status == "" {
		status = model.StatusActive
	}
	return &SubCategoryForm{Name: s.Name, CategoryID: s.ParentID(), Status: status}
}

// Validate implements Form.
func (f *SubCategoryForm) Validate(Mode) Errors {
	errs := Errors{}
	if blank(f.Name) {
		errs.Add("name", "Sub-category name is required")
	}
	if f.CategoryID == 0 {
		errs.Add("category_id", "Parent category is required")
	}
	if !f.Status.IsValid() {
		errs.Add("status", "Status must be active or inactive")
	}
	return errs
}

// Input implements Form.
func (f *SubCategoryForm) Input() resource.SubCategoryInput {
	return resource.SubCategoryInput{
		Name:       strings.TrimSpace(f.Name),
		CategoryID: f.CategoryID,
		Status:     f.Status,
	}
}
