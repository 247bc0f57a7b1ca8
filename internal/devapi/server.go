// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package devapi is an in-memory implementation of the news REST API used
// for local development and integration tests. It speaks the same wire
// contract as the production backend: POST endpoints under /api, bearer
// tokens, {success, message, data} envelopes, paginated lists and Laravel
// style validation errors.
package devapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/olegiv/newsdesk/internal/auth"
	"github.com/olegiv/newsdesk/internal/model"
)

// Defaults for Options.
const (
	DefaultPerPage    = 15
	DefaultAdminName  = "Administrator"
	DefaultLoginRate  = rate.Limit(1)
	DefaultLoginBurst = 5
)

// Options configures a Server.
type Options struct {
	Secret   string
	TokenTTL time.Duration

	// AdminEmail and AdminPassword seed the first administrator when both
	// are set.
	AdminEmail    string
	AdminName     string
	AdminPassword string

	// HasherParams defaults to auth.DefaultParams.
	HasherParams *auth.Params

	LoginRate  rate.Limit
	LoginBurst int
	PerPage    int

	Logger *slog.Logger
	Now    func() time.Time
}

// Server serves the REST API from a Store.
type Server struct {
	store   *Store
	tokens  *auth.Tokens
	hasher  *auth.Hasher
	limiter *ipLimiter
	logger  *slog.Logger
	now     func() time.Time
	perPage int
}

// New creates a server with an empty store and seeds the administrator.
func New(opts Options) (*Server, error) {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	tokens, err := auth.NewTokens(opts.Secret, opts.TokenTTL)
	if err != nil {
		return nil, err
	}
	params := auth.DefaultParams
	if opts.HasherParams != nil {
		params = *opts.HasherParams
	}
	if opts.LoginRate == 0 {
		opts.LoginRate = DefaultLoginRate
	}
	if opts.LoginBurst <= 0 {
		opts.LoginBurst = DefaultLoginBurst
	}
	if opts.PerPage <= 0 {
		opts.PerPage = DefaultPerPage
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		store:   NewStore(),
		tokens:  tokens,
		hasher:  auth.NewHasher(params),
		limiter: newIPLimiter(opts.LoginRate, opts.LoginBurst, opts.Now),
		logger:  opts.Logger,
		now:     opts.Now,
		perPage: opts.PerPage,
	}

	if opts.AdminEmail != "" && opts.AdminPassword != "" {
		name := opts.AdminName
		if name == "" {
			name = DefaultAdminName
		}
		if _, err := s.CreateUser(name, opts.AdminEmail, opts.AdminPassword, model.RoleAdmin); err != nil {
			return nil, fmt.Errorf("seeding admin user: %w", err)
		}
	}
	return s, nil
}

// Store returns the backing store.
func (s *Server) Store() *Store {
	return s.store
}

// CreateUser adds an active account with a hashed password.
func (s *Server) CreateUser(name, email, password string, role model.Role) (model.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.User{}, err
	}
	return s.store.AddUser(model.User{
		Name:      name,
		Email:     email,
		Role:      role,
		Status:    model.StatusActive,
		CreatedAt: model.NewTime(s.now()),
	}, hash)
}

// Handler returns the HTTP handler serving /api and /storage.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get(StoragePath+"{name}", s.serveFile)

	r.Route("/api", func(r chi.Router) {
		r.With(s.limiter.rateLimit).Post("/auth/login", s.login)

		r.Post("/public/categories", s.publicCategories)
		r.Post("/public/sub-categories", s.publicSubCategories)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/auth/me", s.me)

			r.Route("/categories", func(r chi.Router) {
				r.Post("/list", s.listCategories)
				r.Post("/show", s.showCategory)
				r.Post("/create", s.createCategory)
				r.Post("/update", s.updateCategory)
				r.Post("/delete", s.deleteCategory)
			})
			r.Route("/sub-categories", func(r chi.Router) {
				r.Post("/list", s.listSubCategories)
				r.Post("/show", s.showSubCategory)
				r.Post("/create", s.createSubCategory)
				r.Post("/update", s.updateSubCategory)
				r.Post("/delete", s.deleteSubCategory)
			})
			r.Route("/news", func(r chi.Router) {
				r.Post("/list", s.listNews)
				r.Post("/show", s.showNews)
				r.Post("/create", s.createNews)
				r.Post("/update", s.updateNews)
				r.Post("/delete", s.deleteNews)
			})
			r.Route("/flash-news", func(r chi.Router) {
				r.Post("/list", s.listFlashNews)
				r.Post("/show", s.showFlashNews)
				r.Post("/create", s.createFlashNews)
				r.Post("/update", s.updateFlashNews)
				r.Post("/delete", s.deleteFlashNews)
			})
			r.Route("/users", func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/list", s.listUsers)
				r.Post("/show", s.showUser)
				r.Post("/create", s.createUser)
				r.Post("/update", s.updateUser)
				r.Post("/delete", s.deleteUser)
				r.Post("/activate", s.activateUser)
				r.Post("/deactivate", s.deactivateUser)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteNotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

// parse decodes the request body, writing 400 on malformed input.
func (s *Server) parse(w http.ResponseWriter, r *http.Request) (*params, bool) {
	p, err := readParams(r)
	if err != nil {
		s.logger.Debug("bad request body", "path", r.URL.Path, "error", err)
		WriteError(w, http.StatusBadRequest, "Malformed request body")
		return nil, false
	}
	return p, true
}

// requireID reads the id field, writing 422 when it is missing.
func requireID(w http.ResponseWriter, p *params) (int64, bool) {
	id, ok := p.integer("id")
	if !ok || id <= 0 {
		WriteValidationError(w, Errors{"id": "The id field is required."})
		return 0, false
	}
	return id, true
}

// writeStoreError maps store errors onto responses. noun names the entity
// in 404 messages.
func (s *Server) writeStoreError(w http.ResponseWriter, err error, noun string) {
	switch {
	case errors.Is(err, ErrNotFound):
		WriteNotFound(w, noun+" not found")
	default:
		s.logger.Error("store error", "entity", noun, "error", err)
		WriteInternalError(w)
	}
}

// label renders a wire field name the way validation messages show it.
func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func required(errs Errors, p *params, field string) string {
	v := p.str(field)
	if v == "" {
		errs.Add(field, fmt.Sprintf("The %s field is required.", label(field)))
	}
	return v
}

func invalid(errs Errors, field string) {
	errs.Add(field, fmt.Sprintf("The selected %s is invalid.", label(field)))
}

// status reads an active/inactive status, defaulting to fallback.
func status(errs Errors, p *params, fallback model.Status) model.Status {
	v := model.Status(p.str("status"))
	if v == "" {
		return fallback
	}
	if !v.IsValid() {
		invalid(errs, "status")
	}
	return v
}

// filterValue returns key unless it is empty or "all".
func filterValue(p *params, key string) string {
	v := p.str(key)
	if v == model.FilterAll {
		return ""
	}
	return v
}
