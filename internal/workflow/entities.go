// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package workflow

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/newsdesk/internal/apiclient"
	"github.com/olegiv/newsdesk/internal/form"
	"github.com/olegiv/newsdesk/internal/model"
	"github.com/olegiv/newsdesk/internal/resource"
)

// Filter keys understood by the entity controllers.
const (
	FilterStatus        = "status"
	FilterCategoryID    = "category_id"
	FilterSubCategoryID = "sub_category_id"
	FilterNewsType      = "news_type"
	FilterPublishStatus = "publish_status"
	FilterTags          = "tags"
	FilterRole          = "role"
)

// User row actions.
const (
	ActionActivate   = "activate"
	ActionDeactivate = "deactivate"
)

// Options are shared by every entity controller.
type Options struct {
	PerPage   int
	Debounce  time.Duration
	Confirmer Confirmer
	Logger    *slog.Logger
	// Now is the clock used by the flash news form.
	Now func() time.Time
}

type (
	CategoryController    = Controller[model.Category, *form.CategoryForm, resource.CategoryInput]
	SubCategoryController = Controller[model.SubCategory, *form.SubCategoryForm, resource.SubCategoryInput]
	NewsController        = Controller[model.News, *form.NewsForm, resource.NewsInput]
	FlashNewsController   = Controller[model.FlashNews, *form.FlashNewsForm, resource.FlashNewsInput]
	UserController        = Controller[model.User, *form.UserForm, resource.UserInput]
)

func pageRequest(q Query) resource.PageRequest {
	return resource.PageRequest{Page: q.WirePage(), PerPage: q.PerPage}
}

func toPage[T any](res apiclient.ListResult[T]) Page[T] {
	return Page[T]{Rows: res.Data, TotalRows: res.TotalRows()}
}

func filterID(f Filters, key string) int64 {
	id, _ := strconv.ParseInt(f[key], 10, 64)
	return id
}

func deletePrompt[T any](noun string) func(T) Prompt {
	return func(T) Prompt {
		return Prompt{Message: "Are you sure you want to delete this " + noun + "?"}
	}
}

// matchName narrows a fetched page by a case-insensitive name match. The
// backend has no search parameter for categories and sub-categories.
func matchName[T any](page Page[T], search string, name func(T) string) Page[T] {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return page
	}
	rows := make([]T, 0, len(page.Rows))
	for _, row := range page.Rows {
		if strings.Contains(strings.ToLower(name(row)), search) {
			rows = append(rows, row)
		}
	}
	return Page[T]{Rows: rows, TotalRows: len(rows)}
}

// NewCategories wires the category screen.
func NewCategories(api *resource.API, opts Options) *CategoryController {
	return New(Config[model.Category, *form.CategoryForm, resource.CategoryInput]{
		Noun: "category",
		Verbs: Verbs[model.Category, resource.CategoryInput]{
			List: func(ctx context.Context, q Query) (Page[model.Category], error) {
				res, err := api.Categories.List(ctx, pageRequest(q), resource.CategoryFilter{Status: q.Filters[FilterStatus]})
				if err != nil {
					return Page[model.Category]{}, err
				}
				return matchName(toPage(res), q.Search, func(c model.Category) string { return c.Name }), nil
			},
			Create: func(ctx context.Context, in resource.CategoryInput) error {
				_, err := api.Categories.Create(ctx, in)
				return err
			},
			Update: func(ctx context.Context, id int64, in resource.CategoryInput) error {
				_, err := api.Categories.Update(ctx, id, in)
				return err
			},
			Delete: api.Categories.Delete,
		},
		ID:           func(c model.Category) int64 { return c.ID },
		NewForm:      form.NewCategoryForm,
		EditForm:     form.CategoryFormFrom,
		DeletePrompt: deletePrompt[model.Category]("category"),
		PerPage:      opts.PerPage,
		Debounce:     opts.Debounce,
		Confirmer:    opts.Confirmer,
		Logger:       opts.Logger,
	})
}

// NewSubCategories wires the sub-category screen.
func NewSubCategories(api *resource.API, opts Options) *SubCategoryController {
	return New(Config[model.SubCategory, *form.SubCategoryForm, resource.SubCategoryInput]{
		Noun: "sub-category",
		Verbs: Verbs[model.SubCategory, resource.SubCategoryInput]{
			List: func(ctx context.Context, q Query) (Page[model.SubCategory], error) {
				res, err := api.SubCategories.List(ctx, pageRequest(q), resource.SubCategoryFilter{
					CategoryID: filterID(q.Filters, FilterCategoryID),
					Status:     q.Filters[FilterStatus],
				})
				if err != nil {
					return Page[model.SubCategory]{}, err
				}
				return matchName(toPage(res), q.Search, func(s model.SubCategory) string { return s.Name }), nil
			},
			Create: func(ctx context.Context, in resource.SubCategoryInput) error {
				_, err := api.SubCategories.Create(ctx, in)
				return err
			},
			Update: func(ctx context.Context, id int64, in resource.SubCategoryInput) error {
				_, err := api.SubCategories.Update(ctx, id, in)
				return err
			},
			Delete: api.SubCategories.Delete,
		},
		ID:           func(s model.SubCategory) int64 { return s.ID },
		NewForm:      form.NewSubCategoryForm,
		EditForm:     form.SubCategoryFormFrom,
		DeletePrompt: deletePrompt[model.SubCategory]("sub-category"),
		PerPage:      opts.PerPage,
		Debounce:     opts.Debounce,
		Confirmer:    opts.Confirmer,
		Logger:       opts.Logger,
	})
}

// NewNews wires the news screen. Search and filters are applied server
// side.
func NewNews(api *resource.API, opts Options) *NewsController {
	return New(Config[model.News, *form.NewsForm, resource.NewsInput]{
		Noun: "news",
		Verbs: Verbs[model.News, resource.NewsInput]{
			List: func(ctx context.Context, q Query) (Page[model.News], error) {
				res, err := api.News.List(ctx, pageRequest(q), newsFilter(q))
				if err != nil {
					return Page[model.News]{}, err
				}
				return toPage(res), nil
			},
			Create: func(ctx context.Context, in resource.NewsInput) error {
				_, err := api.News.Create(ctx, in)
				return err
			},
			Update: func(ctx context.Context, id int64, in resource.NewsInput) error {
				_, err := api.News.Update(ctx, id, in)
				return err
			},
			Delete: api.News.Delete,
		},
		ID:           func(n model.News) int64 { return n.ID },
		NewForm:      form.NewNewsForm,
		EditForm:     form.NewsFormFrom,
		DeletePrompt: deletePrompt[model.News]("news"),
		PerPage:      opts.PerPage,
		Debounce:     opts.Debounce,
		Confirmer:    opts.Confirmer,
		Logger:       opts.Logger,
	})
}

func newsFilter(q Query) resource.NewsFilter {
	f := resource.NewsFilter{
		Search:        strings.TrimSpace(q.Search),
		CategoryID:    filterID(q.Filters, FilterCategoryID),
		SubCategoryID: filterID(q.Filters, FilterSubCategoryID),
		NewsType:      q.Filters[FilterNewsType],
		PublishStatus: q.Filters[FilterPublishStatus],
	}
	for _, tag := range strings.Split(q.Filters[FilterTags], ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			f.Tags = append(f.Tags, tag)
		}
	}
	return f
}

// NewFlashNews wires the flash news screen.
func NewFlashNews(api *resource.API, opts Options) *FlashNewsController {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return New(Config[model.FlashNews, *form.FlashNewsForm, resource.FlashNewsInput]{
		Noun: "flash news",
		Verbs: Verbs[model.FlashNews, resource.FlashNewsInput]{
			List: func(ctx context.Context, q Query) (Page[model.FlashNews], error) {
				res, err := api.FlashNews.List(ctx, pageRequest(q), resource.FlashNewsFilter{Status: q.Filters[FilterStatus]})
				if err != nil {
					return Page[model.FlashNews]{}, err
				}
				return toPage(res), nil
			},
			Create: func(ctx context.Context, in resource.FlashNewsInput) error {
				_, err := api.FlashNews.Create(ctx, in)
				return err
			},
			Update: func(ctx context.Context, id int64, in resource.FlashNewsInput) error {
				_, err := api.FlashNews.Update(ctx, id, in)
				return err
			},
			Delete: api.FlashNews.Delete,
		},
		ID: func(f model.FlashNews) int64 { return f.ID },
		NewForm: func() *form.FlashNewsForm {
			return form.NewFlashNewsForm(now)
		},
		EditForm: func(f model.FlashNews) *form.FlashNewsForm {
			return form.FlashNewsFormFrom(f, now)
		},
		DeletePrompt: deletePrompt[model.FlashNews]("flash news"),
		PerPage:      opts.PerPage,
		Debounce:     opts.Debounce,
		Confirmer:    opts.Confirmer,
		Logger:       opts.Logger,
	})
}

// NewUsers wires the user management screen, including the activate and
// deactivate row actions.
func NewUsers(api *resource.API, opts Options) *UserController {
	return New(Config[model.User, *form.UserForm, resource.UserInput]{
		Noun: "user",
		Verbs: Verbs[model.User, resource.UserInput]{
			List: func(ctx context.Context, q Query) (Page[model.User], error) {
				res, err := api.Users.List(ctx, pageRequest(q), resource.UserFilter{
					Role:   roleFilter(q.Filters[FilterRole]),
					Search: strings.TrimSpace(q.Search),
					Status: q.Filters[FilterStatus],
				})
				if err != nil {
					return Page[model.User]{}, err
				}
				return toPage(res), nil
			},
			Create: func(ctx context.Context, in resource.UserInput) error {
				_, err := api.Users.Create(ctx, in)
				return err
			},
			Update: func(ctx context.Context, id int64, in resource.UserInput) error {
				_, err := api.Users.Update(ctx, id, in)
				return err
			},
			Delete: api.Users.Delete,
		},
		ID:       func(u model.User) int64 { return u.ID },
		NewForm:  form.NewUserForm,
		EditForm: form.UserFormFrom,
		DeletePrompt: func(model.User) Prompt {
			return Prompt{
				Title:   "Delete User",
				Message: "Are you sure you want to permanently delete this user? This action cannot be undone.",
				Confirm: "Delete",
			}
		},
		Actions: map[string]Action[model.User]{
			ActionDeactivate: {
				Prompt: func(model.User) Prompt {
					return Prompt{
						Title:   "Deactivate User",
						Message: "Are you sure you want to deactivate this user? They will lose access to the platform until reactivated.",
						Confirm: "Deactivate",
					}
				},
				Run:     api.Users.Deactivate,
				Failure: "Failed to deactivate user",
			},
			ActionActivate: {
				Prompt: func(model.User) Prompt {
					return Prompt{
						Title:   "Activate User",
						Message: "Are you sure you want to activate this user? They will regain access to the platform.",
						Confirm: "Activate",
					}
				},
				Run:     api.Users.Activate,
				Failure: "Failed to activate user",
			},
		},
		PerPage:   opts.PerPage,
		Debounce:  opts.Debounce,
		Confirmer: opts.Confirmer,
		Logger:    opts.Logger,
	})
}

// roleFilter spells a known role the way the API does and passes anything
// else through.
func roleFilter(v string) string {
	if r, ok := model.ParseRole(v); ok {
		return string(r)
	}
	return v
}
