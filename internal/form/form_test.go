// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package form

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/newsdesk/internal/apiclient"
	"github.com/olegiv/newsdesk/internal/model"
)

func TestErrors(t *testing.T) {
	errs := Errors{}
	require.NoError(t, errs.Err())

	errs.Add("name", "first")
	errs.Add("name", "second")
	assert.Equal(t, "first", errs["name"])
	assert.True(t, errs.Has("name"))

	merged := errs.Merge(map[string]string{"name": "taken", "email": "bad"})
	assert.Equal(t, Errors{"name": "taken", "email": "bad"}, merged)
	assert.Equal(t, "first", errs["name"], "Merge must not modify the receiver")
	assert.Equal(t, []string{"email", "name"}, merged.Fields())

	var vErr *ValidationError
	require.True(t, errors.As(merged.Err(), &vErr))
	assert.Equal(t, "validation failed: email: bad; name: taken", vErr.Error())
}

func TestCategoryForm(t *testing.T) {
	f := NewCategoryForm()
	errs := f.Validate(ModeCreate)
	assert.Equal(t, "Category name is required", errs["name"])
	assert.Equal(t, model.StatusActive, f.Status)

	f.Name = "  Sport  "
	assert.Empty(t, f.Validate(ModeCreate))
	assert.Equal(t, "Sport", f.Input().Name)
}

func TestCategoryEditKeepsHostedImages(t *testing.T) {
	f := CategoryFormFrom(model.Category{
		ID: 3, Name: "World", Status: model.StatusInactive,
		IconURL: "https://cdn.example.com/icon.png",
	})

	in := f.Input()
	assert.Equal(t, model.UploadUnchanged, in.Icon.Kind())
	assert.Equal(t, model.UploadCleared, in.Banner.Kind())
	assert.Equal(t, model.StatusInactive, in.Status)

	body, ct, err := apiclient.EncodeMultipart(in.Fields(), apiclient.DefaultStoragePrefix)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "icon")
	assert.NotContains(t, string(body), "banner_image")
	assert.True(t, strings.HasPrefix(ct, "multipart/form-data"))
}

func TestSubCategoryForm(t *testing.T) {
	f := NewSubCategoryForm()
	errs := f.Validate(ModeCreate)
	assert.Equal(t, "Sub-category name is required", errs["name"])
	assert.Equal(t, "Parent category is required", errs["category_id"])

	f = SubCategoryFormFrom(model.SubCategory{Name: "Cricket", Category: &model.CategoryRef{ID: 4}})
	assert.Equal(t, int64(4), f.CategoryID)
	assert.Empty(t, f.Validate(ModeEdit))
}

func validNews() *NewsForm {
	f := NewNewsForm()
	f.Title = "Budget passes"
	f.ShortDescription = "Parliament votes"
	f.FullDescription = "<p>The <b>budget</b> passed.</p>"
	f.CategoryID = 1
	f.SubCategoryID = 2
	f.Thumbnail = model.Replace(model.File{Name: "t.jpg", Data: []byte{1}})
	return f
}

func TestNewsFormRequiredFields(t *testing.T) {
	errs := NewNewsForm().Validate(ModeCreate)
	for _, field := range []string{
		"title", "short_description", "full_description",
		"category_id", "sub_category_id", "thumbnail_image",
	} {
		assert.True(t, errs.Has(field), "missing error for %s", field)
	}

	assert.Empty(t, validNews().Validate(ModeCreate))
}

func TestNewsFormThumbnailRules(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		thumbnail model.Upload
		wantError bool
	}{
		{"create with new file", ModeCreate, model.Replace(model.File{Name: "a.jpg"}), false},
		{"create with hosted url", ModeCreate, model.Unchanged("https://cdn/a.jpg"), true},
		{"create without image", ModeCreate, model.Cleared(), true},
		{"edit keeps hosted url", ModeEdit, model.Unchanged("https://cdn/a.jpg"), false},
		{"edit without image", ModeEdit, model.Cleared(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validNews()
			f.Thumbnail = tt.thumbnail
			errs := f.Validate(tt.mode)
			assert.Equal(t, tt.wantError, errs.Has("thumbnail_image"))
		})
	}
}

func TestNewsFormBlankRichText(t *testing.T) {
	f := validNews()
	f.FullDescription = "<p><br></p>"
	assert.Equal(t, "Full description is required", f.Validate(ModeCreate)["full_description"])
}

func TestNewsFormScheduled(t *testing.T) {
	f := validNews()
	f.PublishStatus = model.PublishScheduled
	assert.Equal(t, "Scheduled publish date is required", f.Validate(ModeCreate)["published_at"])

	f.PublishedAt = time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	assert.Empty(t, f.Validate(ModeCreate))
}

func TestNewsFormInput(t *testing.T) {
	f := validNews()
	f.AddTag(" economy ")
	f.AddTag("economy")
	f.AddTag("")
	f.AddTag("politics")
	f.RemoveTag("politics")

	in := f.Input()
	assert.Equal(t, "The budget passed.", in.FullDescription)
	assert.Equal(t, []string{"economy"}, in.Tags)
	assert.True(t, in.Thumbnail.IsReplace())
	assert.True(t, in.PublishedAt.IsZero())
}

func TestNewsFormFromEntity(t *testing.T) {
	n := model.News{
		ID:                7,
		Title:             "T",
		Tags:              model.Tags{"a"},
		ThumbnailImageURL: "/storage/t.jpg",
		GalleryImageURLs:  []string{"/storage/g1.jpg", "/storage/g2.jpg"},
		Category:          &model.CategoryRef{ID: 3},
		SubCategoryID:     9,
	}
	f := NewsFormFrom(n)

	assert.Equal(t, int64(3), f.CategoryID)
	assert.Equal(t, int64(9), f.SubCategoryID)
	assert.Equal(t, model.PublishDraft, f.PublishStatus)
	assert.Equal(t, model.NewsNormal, f.NewsType)
	assert.Equal(t, model.UploadUnchanged, f.Thumbnail.Kind())
	require.Len(t, f.Gallery, 2)

	f.RemoveGalleryImage(0)
	f.AddGalleryImage(model.File{Name: "g3.jpg", Data: []byte{1}})
	require.Len(t, f.Gallery, 2)
	assert.Equal(t, "/storage/g2.jpg", f.Gallery[0].URL())
	assert.True(t, f.Gallery[1].IsReplace())

	f.Tags = append(f.Tags, "b")
	assert.Equal(t, model.Tags{"a"}, n.Tags, "form must not alias the entity tags")
}

func TestFlashNewsForm(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	f := NewFlashNewsForm(clock)
	assert.Equal(t, now.Add(24*time.Hour), f.ExpiresAt)
	assert.False(t, f.On)
	assert.Equal(t, "Headline is required", f.Validate(ModeCreate)["title"])

	f.Title = "Breaking"
	assert.Empty(t, f.Validate(ModeCreate))

	f.ExpiresAt = now.Add(-time.Minute)
	assert.Equal(t, "Expiry time must be in the future", f.Validate(ModeCreate)["expires_at"])
	assert.Empty(t, f.Validate(ModeEdit), "past expiry is allowed on edit")

	f.ExpiresAt = time.Time{}
	assert.Equal(t, "Expiry time is required", f.Validate(ModeEdit)["expires_at"])

	f.ExpiresAt = now.Add(time.Hour)
	f.On = true
	in := f.Input()
	assert.Equal(t, model.FlashOn, in.Status)
	assert.Equal(t, "2025-05-01 13:00:00", model.FormatWire(in.ExpiresAt.Time))
}

func TestFlashNewsFormFrom(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	f := FlashNewsFormFrom(model.FlashNews{Title: "x", Status: model.FlashOn}, func() time.Time { return now })
	assert.True(t, f.On)
	assert.Equal(t, now.Add(DefaultFlashExpiry), f.ExpiresAt)
}

func TestUserForm(t *testing.T) {
	tests := []struct {
		name   string
		form   UserForm
		mode   Mode
		errors Errors
	}{
		{
			name: "all missing on create",
			form: UserForm{},
			mode: ModeCreate,
			errors: Errors{
				"name":     "Name is required",
				"email":    "Email is required",
				"password": "Password is required",
				"role":     "Role is required",
			},
		},
		{
			name:   "bad email",
			form:   UserForm{Name: "A", Email: "a@b", Password: "secret1", Role: model.RoleAdmin},
			mode:   ModeCreate,
			errors: Errors{"email": "Email is invalid"},
		},
		{
			name:   "short password",
			form:   UserForm{Name: "A", Email: "a@b.co", Password: "12345", Role: model.RoleAdmin},
			mode:   ModeEdit,
			errors: Errors{"password": "Password must be at least 6 characters"},
		},
		{
			name:   "blank password on edit",
			form:   UserForm{Name: "A", Email: "a@b.co", Role: model.RoleReporter},
			mode:   ModeEdit,
			errors: Errors{},
		},
		{
			name:   "unknown role",
			form:   UserForm{Name: "A", Email: "a@b.co", Password: "123456", Role: "Owner"},
			mode:   ModeCreate,
			errors: Errors{"role": "Role is invalid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.errors, tt.form.Validate(tt.mode))
		})
	}
}

func TestUserFormDefaults(t *testing.T) {
	assert.Equal(t, model.RoleEditor, NewUserForm().Role)

	f := UserFormFrom(model.User{Name: "Ann", Email: "ann@example.com", Role: model.RoleAdmin})
	assert.Empty(t, f.Password)
	assert.Empty(t, f.Input().Password)
}
