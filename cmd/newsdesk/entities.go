// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/olegiv/newsdesk/internal/form"
	"github.com/olegiv/newsdesk/internal/imaging"
	"github.com/olegiv/newsdesk/internal/model"
	"github.com/olegiv/newsdesk/internal/render"
	"github.com/olegiv/newsdesk/internal/resource"
	"github.com/olegiv/newsdesk/internal/richtext"
	"github.com/olegiv/newsdesk/internal/workflow"
)

// entities returns the entity command groups by name.
func entities() map[string]runner {
	return map[string]runner{
		"categories": &entity[model.Category, *form.CategoryForm, resource.CategoryInput]{
			name:    "categories",
			noun:    "category",
			newCtrl: workflow.NewCategories,
			show: func(api *resource.API) func(context.Context, int64) (model.Category, error) {
				return api.Categories.Show
			},
			table:  (*render.Renderer).Categories,
			record: (*render.Renderer).CategoryRecord,
			filters: []filterFlag{
				{flag: "status", key: workflow.FilterStatus, usage: "active, inactive or all"},
			},
			search: true,
			flags:  categoryFlags,
		},
		"subcategories": &entity[model.SubCategory, *form.SubCategoryForm, resource.SubCategoryInput]{
			name:    "subcategories",
			noun:    "sub-category",
			newCtrl: workflow.NewSubCategories,
			show: func(api *resource.API) func(context.Context, int64) (model.SubCategory, error) {
				return api.SubCategories.Show
			},
			table:  (*render.Renderer).SubCategories,
			record: (*render.Renderer).SubCategoryRecord,
			filters: []filterFlag{
				{flag: "category", key: workflow.FilterCategoryID, usage: "Parent category ID"},
				{flag: "status", key: workflow.FilterStatus, usage: "active, inactive or all"},
			},
			search: true,
			flags:  subCategoryFlags,
		},
		"news": &entity[model.News, *form.NewsForm, resource.NewsInput]{
			name:    "news",
			noun:    "news",
			newCtrl: workflow.NewNews,
			show: func(api *resource.API) func(context.Context, int64) (model.News, error) {
				return api.News.Show
			},
			table:  (*render.Renderer).News,
			record: (*render.Renderer).NewsRecord,
			filters: []filterFlag{
				{flag: "category", key: workflow.FilterCategoryID, usage: "Category ID"},
				{flag: "sub-category", key: workflow.FilterSubCategoryID, usage: "Sub-category ID"},
				{flag: "type", key: workflow.FilterNewsType, usage: "normal, featured or trending"},
				{flag: "publish-status", key: workflow.FilterPublishStatus, usage: "draft, published or scheduled"},
				{flag: "tags", key: workflow.FilterTags, usage: "Comma separated tags, any of which must match"},
			},
			search: true,
			flags:  newsFlags,
		},
		"flash": &entity[model.FlashNews, *form.FlashNewsForm, resource.FlashNewsInput]{
			name:    "flash",
			noun:    "flash news",
			newCtrl: workflow.NewFlashNews,
			show: func(api *resource.API) func(context.Context, int64) (model.FlashNews, error) {
				return api.FlashNews.Show
			},
			table:  (*render.Renderer).FlashNews,
			record: (*render.Renderer).FlashNewsRecord,
			filters: []filterFlag{
				{flag: "status", key: workflow.FilterStatus, usage: "on, off or all"},
			},
			flags: flashNewsFlags,
		},
		"users": &entity[model.User, *form.UserForm, resource.UserInput]{
			name:    "users",
			noun:    "user",
			newCtrl: workflow.NewUsers,
			show: func(api *resource.API) func(context.Context, int64) (model.User, error) {
				return api.Users.Show
			},
			table:  (*render.Renderer).Users,
			record: (*render.Renderer).UserRecord,
			filters: []filterFlag{
				{flag: "role", key: workflow.FilterRole, usage: "Admin, Editor, Reporter (any case) or all"},
				{flag: "status", key: workflow.FilterStatus, usage: "active, inactive or all"},
			},
			search:  true,
			actions: []string{workflow.ActionActivate, workflow.ActionDeactivate},
			flags:   userFlags,
		},
	}
}

// fieldError fails a form bind with one field error.
func fieldError(field, msg string) error {
	return &form.ValidationError{Errors: form.Errors{field: msg}}
}

func categoryFlags(fs *flag.FlagSet) binder[*form.CategoryForm] {
	name := fs.String("name", "", "Category name")
	status := fs.String("status", "", "active or inactive")
	icon := fs.String("icon", "", "Path to the icon image")
	banner := fs.String("banner", "", "Path to the banner image")

	return func(_ context.Context, a *app, f *form.CategoryForm, set map[string]bool) error {
		if set["name"] {
			f.Name = *name
		}
		if set["status"] {
			f.Status = model.Status(*status)
		}
		if set["icon"] {
			u, err := a.image("icon", *icon)
			if err != nil {
				return err
			}
			f.Icon = u
		}
		if set["banner"] {
			u, err := a.image("banner_image", *banner)
			if err != nil {
				return err
			}
			f.Banner = u
		}
		return nil
	}
}

func subCategoryFlags(fs *flag.FlagSet) binder[*form.SubCategoryForm] {
	name := fs.String("name", "", "Sub-category name")
	category := fs.String("category", "", "Parent category ID")
	status := fs.String("status", "", "active or inactive")

	return func(_ context.Context, _ *app, f *form.SubCategoryForm, set map[string]bool) error {
		if set["name"] {
			f.Name = *name
		}
		if set["category"] {
			id, err := parseID("category", *category)
			if err != nil {
				return err
			}
			f.CategoryID = id
		}
		if set["status"] {
			f.Status = model.Status(*status)
		}
		return nil
	}
}

func newsFlags(fs *flag.FlagSet) binder[*form.NewsForm] {
	title := fs.String("title", "", "Headline")
	short := fs.String("short", "", "Short description")
	body := fs.String("body", "", "Full description as HTML")
	bodyMD := fs.String("body-md", "", "Full description as Markdown")
	category := fs.String("category", "", "Category ID")
	subCategory := fs.String("sub-category", "", "Sub-category ID")
	tags := fs.String("tags", "", "Comma separated tags, replacing the current ones")
	thumbnail := fs.String("thumbnail", "", "Path to the thumbnail image")
	var gallery stringList
	fs.Var(&gallery, "gallery", "Path to a gallery image to add (repeatable)")
	publishStatus := fs.String("publish-status", "", "draft, published or scheduled")
	publishedAt := fs.String("published-at", "", "Publish time, "+TimeLayout)
	author := fs.String("author", "", "Author name")
	newsType := fs.String("type", "", "normal, featured or trending")
	seoTitle := fs.String("seo-title", "", "SEO title")
	seoDescription := fs.String("seo-description", "", "SEO description")
	seoKeywords := fs.String("seo-keywords", "", "SEO keywords")

	return func(ctx context.Context, a *app, f *form.NewsForm, set map[string]bool) error {
		if set["title"] {
			f.Title = *title
		}
		if set["short"] {
			f.ShortDescription = *short
		}
		if set["body"] && set["body-md"] {
			return errors.New("-body and -body-md cannot be combined")
		}
		if set["body"] {
			f.FullDescription = *body
		}
		if set["body-md"] {
			html, err := richtext.FromMarkdown(*bodyMD)
			if err != nil {
				return fmt.Errorf("-body-md: %w", err)
			}
			f.FullDescription = html
		}
		if set["tags"] {
			f.Tags = nil
			for _, t := range splitTags(*tags) {
				f.AddTag(t)
			}
		}
		if set["thumbnail"] {
			u, err := a.image("thumbnail_image", *thumbnail)
			if err != nil {
				return err
			}
			f.Thumbnail = u
		}
		for _, path := range gallery {
			u, err := a.image("gallery_images", path)
			if err != nil {
				return err
			}
			f.Gallery = append(f.Gallery, u)
		}
		if set["publish-status"] {
			f.PublishStatus = model.PublishStatus(*publishStatus)
		}
		if set["published-at"] {
			t, err := parseLocalTime(*publishedAt)
			if err != nil {
				return fieldError("published_at", err.Error())
			}
			f.PublishedAt = t
		}
		if set["author"] {
			f.AuthorName = *author
		}
		if set["type"] {
			f.NewsType = model.NewsType(*newsType)
		}
		if set["seo-title"] {
			f.SEOTitle = *seoTitle
		}
		if set["seo-description"] {
			f.SEODescription = *seoDescription
		}
		if set["seo-keywords"] {
			f.SEOKeywords = *seoKeywords
		}

		if !set["category"] && !set["sub-category"] {
			return nil
		}
		if set["category"] {
			id, err := parseID("category", *category)
			if err != nil {
				return err
			}
			f.CategoryID = id
		}
		if set["sub-category"] {
			id, err := parseID("sub-category", *subCategory)
			if err != nil {
				return err
			}
			f.SubCategoryID = id
		}
		return a.checkSubCategory(ctx, f)
	}
}

// checkSubCategory keeps the sub-category only if it belongs to the
// chosen category, the same way the selector in the edit dialog does.
func (a *app) checkSubCategory(ctx context.Context, f *form.NewsForm) error {
	if f.CategoryID == 0 || f.SubCategoryID == 0 {
		return nil
	}
	sel := workflow.NewCategorySelector(a.api)
	if err := sel.Restore(ctx, f.CategoryID, f.SubCategoryID); err != nil {
		return a.reportLoad(err, "Failed to load sub-categories")
	}
	if sel.Child() != f.SubCategoryID {
		return fieldError("sub_category_id", "Sub-category does not belong to the selected category")
	}
	return nil
}

func flashNewsFlags(fs *flag.FlagSet) binder[*form.FlashNewsForm] {
	title := fs.String("title", "", "Headline")
	expires := fs.String("expires", "", "Expiry time, "+TimeLayout)
	status := fs.String("status", "", "on or off")

	return func(_ context.Context, _ *app, f *form.FlashNewsForm, set map[string]bool) error {
		if set["title"] {
			f.Title = *title
		}
		if set["expires"] {
			t, err := parseLocalTime(*expires)
			if err != nil {
				return fieldError("expires_at", err.Error())
			}
			f.ExpiresAt = t
		}
		if set["status"] {
			switch model.FlashStatus(strings.ToLower(*status)) {
			case model.FlashOn:
				f.On = true
			case model.FlashOff:
				f.On = false
			default:
				return fieldError("status", "Status must be on or off")
			}
		}
		return nil
	}
}

func userFlags(fs *flag.FlagSet) binder[*form.UserForm] {
	name := fs.String("name", "", "Full name")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (left unchanged on update when omitted)")
	role := fs.String("role", "", "Admin, Editor or Reporter (any case)")

	return func(_ context.Context, a *app, f *form.UserForm, set map[string]bool) error {
		if set["name"] {
			f.Name = *name
		}
		if set["email"] {
			f.Email = *email
		}
		if set["password"] {
			f.Password = *password
		}
		if set["role"] {
			r, ok := model.ParseRole(*role)
			if !ok {
				return fieldError("role", "Role must be Admin, Editor or Reporter")
			}
			f.Role = r
		}
		return nil
	}
}

// image loads path as an upload for field. An empty path clears the field.
func (a *app) image(field, path string) (model.Upload, error) {
	if strings.TrimSpace(path) == "" {
		return model.Cleared(), nil
	}
	opts := imaging.DefaultOptions()
	if a.cfg.ImageMaxDim > 0 {
		opts.MaxDimension = a.cfg.ImageMaxDim
	}
	file, err := imaging.LoadFile(path, opts)
	if err != nil {
		return model.Upload{}, fieldError(field, err.Error())
	}
	return model.Replace(file), nil
}
