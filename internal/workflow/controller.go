// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package workflow implements the list-and-edit workflow shared by every
// admin screen: paginated, filtered and searchable lists, a create/edit
// form with local and remote validation, and confirmed destructive actions.
// One generic Controller is configured per entity.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/olegiv/newsdesk/internal/apiclient"
	"github.com/olegiv/newsdesk/internal/debounce"
	"github.com/olegiv/newsdesk/internal/form"
	"github.com/olegiv/newsdesk/internal/model"
)

// DefaultPerPage is the initial rows-per-page of every list.
const DefaultPerPage = 15

// Verbs is the set of remote operations a controller drives.
type Verbs[T, In any] struct {
	List   func(ctx context.Context, q Query) (Page[T], error)
	Create func(ctx context.Context, in In) error
	Update func(ctx context.Context, id int64, in In) error
	Delete func(ctx context.Context, id int64) error
}

// Action is an extra confirmed row operation, such as deactivating a user.
type Action[T any] struct {
	Prompt  func(row T) Prompt
	Run     func(ctx context.Context, id int64) error
	Failure string
}

// Config describes one entity screen.
type Config[T any, F form.Form[In], In any] struct {
	// Noun names the entity in messages, e.g. "category".
	Noun  string
	Verbs Verbs[T, In]
	ID    func(row T) int64

	NewForm  func() F
	EditForm func(row T) F

	DeletePrompt func(row T) Prompt
	Actions      map[string]Action[T]

	PerPage  int
	Debounce time.Duration
	// Confirmer approves deletes and row actions. Nil declines them all.
	Confirmer Confirmer
	Logger    *slog.Logger
}

// Controller owns the state of one entity screen. It is safe for concurrent
// use; the debounced search fetch runs on its own goroutine.
type Controller[T any, F form.Form[In], In any] struct {
	cfg    Config[T, F, In]
	search *debounce.Timer
	logger *slog.Logger

	mu        sync.Mutex
	seq       uint64
	cancel    context.CancelFunc
	list      ListState
	rows      []T
	totalRows int
	page      int
	perPage   int
	filters   Filters
	query     string
	loadErr   error

	formState   FormState
	formMode    form.Mode
	form        F
	editingID   int64
	fieldErrors form.Errors
	submitError string

	subs   map[int]func(Snapshot[T])
	nextID int
}

// New creates a controller. Nothing is fetched until Mount.
func New[T any, F form.Form[In], In any](cfg Config[T, F, In]) *Controller[T, F, In] {
	if cfg.PerPage <= 0 {
		cfg.PerPage = DefaultPerPage
	}
	if cfg.Confirmer == nil {
		cfg.Confirmer = NeverConfirm
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller[T, F, In]{
		cfg:     cfg,
		search:  debounce.New(cfg.Debounce),
		logger:  logger.With("entity", cfg.Noun),
		perPage: cfg.PerPage,
		filters: Filters{},
		subs:    make(map[int]func(Snapshot[T])),
	}
}

// Noun returns the entity name used in messages.
func (c *Controller[T, F, In]) Noun() string {
	return c.cfg.Noun
}

// Snapshot returns a copy of the current state.
func (c *Controller[T, F, In]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[T, F, In]) snapshotLocked() Snapshot[T] {
	var fieldErrors form.Errors
	if c.fieldErrors != nil {
		fieldErrors = c.fieldErrors.Merge(nil)
	}
	return Snapshot[T]{
		List:        c.list,
		Rows:        slices.Clone(c.rows),
		TotalRows:   c.totalRows,
		Page:        c.page,
		PerPage:     c.perPage,
		Filters:     c.filters.Clone(),
		Search:      c.query,
		LoadError:   c.loadErr,
		Form:        c.formState,
		FormMode:    c.formMode,
		EditingID:   c.editingID,
		FieldErrors: fieldErrors,
		SubmitError: c.submitError,
	}
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function removes the subscription.
func (c *Controller[T, F, In]) Subscribe(fn func(Snapshot[T])) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// unlockAndNotify releases the lock and delivers the new state.
func (c *Controller[T, F, In]) unlockAndNotify() {
	snap := c.snapshotLocked()
	subs := make([]func(Snapshot[T]), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// Mount performs the initial fetch.
func (c *Controller[T, F, In]) Mount(ctx context.Context) error {
	return c.fetch(ctx)
}

// Refresh refetches the current page.
func (c *Controller[T, F, In]) Refresh(ctx context.Context) error {
	return c.fetch(ctx)
}

// Apply replaces the whole list view (page, page size, filters and search)
// and fetches once. A pending debounced search is dropped. Empty and "all"
// filter values are ignored.
func (c *Controller[T, F, In]) Apply(ctx context.Context, q Query) error {
	c.search.Cancel()
	if q.PerPage <= 0 {
		q.PerPage = c.cfg.PerPage
	}
	filters := Filters{}
	for k, v := range q.Filters {
		if v != "" && v != model.FilterAll {
			filters[k] = v
		}
	}
	c.mu.Lock()
	c.page = max(q.Page, 0)
	c.perPage = q.PerPage
	c.filters = filters
	c.query = q.Search
	c.mu.Unlock()
	return c.fetch(ctx)
}

// SetPage moves to the zero-based page and fetches it.
func (c *Controller[T, F, In]) SetPage(ctx context.Context, page int) error {
	if page < 0 {
		page = 0
	}
	c.mu.Lock()
	c.page = page
	c.mu.Unlock()
	return c.fetch(ctx)
}

// SetRowsPerPage changes the page size, returns to the first page and
// fetches.
func (c *Controller[T, F, In]) SetRowsPerPage(ctx context.Context, n int) error {
	if n <= 0 {
		n = c.cfg.PerPage
	}
	c.mu.Lock()
	c.perPage = n
	c.page = 0
	c.mu.Unlock()
	return c.fetch(ctx)
}

// SetFilter sets one structured filter and fetches. The current page is
// kept.
func (c *Controller[T, F, In]) SetFilter(ctx context.Context, key, value string) error {
	c.mu.Lock()
	if value == "" || value == model.FilterAll {
		delete(c.filters, key)
	} else {
		c.filters[key] = value
	}
	c.mu.Unlock()
	return c.fetch(ctx)
}

// SetSearch updates the free-text search, returns to the first page and
// schedules a fetch after the quiet period. Each call cancels the previous
// pending fetch.
func (c *Controller[T, F, In]) SetSearch(ctx context.Context, text string) {
	c.mu.Lock()
	c.query = text
	c.page = 0
	c.unlockAndNotify()

	c.search.Schedule(func() {
		if err := c.fetch(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
			c.logger.Debug("search fetch failed", "error", err)
		}
	})
}

// FlushSearch runs a pending search fetch immediately. It reports whether
// one was pending.
func (c *Controller[T, F, In]) FlushSearch() bool {
	return c.search.Flush()
}

// SearchPending reports whether a debounced search fetch is waiting.
func (c *Controller[T, F, In]) SearchPending() bool {
	return c.search.Pending()
}

// Close cancels pending and in-flight fetches.
func (c *Controller[T, F, In]) Close() {
	c.search.Stop()
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	c.mu.Unlock()
}

// fetch loads the page described by the current state. A newer fetch
// cancels this one's request; if this one's response still arrives it is
// discarded and ErrSuperseded is returned.
func (c *Controller[T, F, In]) fetch(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	q := Query{Page: c.page, PerPage: c.perPage, Filters: c.filters.Clone(), Search: c.query}
	c.list = ListLoading
	c.unlockAndNotify()

	page, err := c.cfg.Verbs.List(fetchCtx, q)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		cancel()
		return ErrSuperseded
	}
	cancel()
	c.cancel = nil

	if err != nil {
		c.list = ListError
		c.loadErr = err
		c.unlockAndNotify()
		c.logger.Warn("list fetch failed", "page", q.WirePage(), "error", err)
		return err
	}

	c.list = ListLoaded
	c.loadErr = nil
	c.rows = page.Rows
	if c.rows == nil {
		c.rows = []T{}
	}
	c.totalRows = page.TotalRows
	c.unlockAndNotify()
	return nil
}

// OpenCreate opens an empty form with create defaults.
func (c *Controller[T, F, In]) OpenCreate() F {
	f := c.cfg.NewForm()
	c.mu.Lock()
	c.openLocked(f, form.ModeCreate, 0)
	c.unlockAndNotify()
	return f
}

// OpenEdit opens a form populated from row. Hosted images become
// Unchanged uploads.
func (c *Controller[T, F, In]) OpenEdit(row T) F {
	f := c.cfg.EditForm(row)
	c.mu.Lock()
	c.openLocked(f, form.ModeEdit, c.cfg.ID(row))
	c.unlockAndNotify()
	return f
}

func (c *Controller[T, F, In]) openLocked(f F, mode form.Mode, id int64) {
	c.form = f
	c.formMode = mode
	c.editingID = id
	c.formState = FormOpen
	c.fieldErrors = nil
	c.submitError = ""
}

// Form returns the open form.
func (c *Controller[T, F, In]) Form() (F, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form, c.formState != FormClosed
}

// CloseForm discards the open form.
func (c *Controller[T, F, In]) CloseForm() {
	c.mu.Lock()
	var zero F
	c.form = zero
	c.formState = FormClosed
	c.editingID = 0
	c.fieldErrors = nil
	c.submitError = ""
	c.unlockAndNotify()
}

// Submit validates the open form and, if it passes, creates or updates the
// entity. Local validation failures return *form.ValidationError without
// any network call. Remote failures keep the form open with the server's
// field errors merged in. On success the form closes and the current page
// is refetched.
func (c *Controller[T, F, In]) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.formState == FormClosed || c.formState == FormSubmitting {
		c.mu.Unlock()
		return ErrNoForm
	}
	f, mode, id := c.form, c.formMode, c.editingID

	local := f.Validate(mode)
	if err := local.Err(); err != nil {
		c.formState = FormError
		c.fieldErrors = local
		c.submitError = ""
		c.unlockAndNotify()
		return err
	}

	c.formState = FormSubmitting
	c.fieldErrors = nil
	c.submitError = ""
	c.unlockAndNotify()

	in := f.Input()
	var err error
	if mode == form.ModeEdit {
		err = c.cfg.Verbs.Update(ctx, id, in)
	} else {
		err = c.cfg.Verbs.Create(ctx, in)
	}

	if err != nil {
		c.mu.Lock()
		c.formState = FormError
		c.fieldErrors = form.Errors{}
		c.submitError = c.failure(err, "Failed to save "+c.cfg.Noun)
		if apiErr, ok := apiclient.AsAPIError(err); ok && apiErr.HasFieldErrors() {
			c.fieldErrors = c.fieldErrors.Merge(apiErr.Errors)
		}
		c.unlockAndNotify()
		c.logger.Info("save failed", "mode", mode.String(), "id", id, "error", err)
		return err
	}

	c.CloseForm()
	c.logger.Info("saved", "mode", mode.String(), "id", id)
	if err := c.fetch(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		return fmt.Errorf("refreshing list: %w", err)
	}
	return nil
}

// Delete asks for confirmation and deletes row, then refetches. A declined
// confirmation returns ErrCancelled; a failed delete returns *ActionError
// and leaves the list as it was.
func (c *Controller[T, F, In]) Delete(ctx context.Context, row T) error {
	prompt := Prompt{Message: fmt.Sprintf("Are you sure you want to delete this %s?", c.cfg.Noun)}
	if c.cfg.DeletePrompt != nil {
		prompt = c.cfg.DeletePrompt(row)
	}
	return c.confirmAndRun(ctx, row, prompt, c.cfg.Verbs.Delete, "Failed to delete "+c.cfg.Noun)
}

// Run performs the named row action after confirmation.
func (c *Controller[T, F, In]) Run(ctx context.Context, name string, row T) error {
	action, ok := c.cfg.Actions[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	failure := action.Failure
	if failure == "" {
		failure = fmt.Sprintf("Failed to %s %s", name, c.cfg.Noun)
	}
	return c.confirmAndRun(ctx, row, action.Prompt(row), action.Run, failure)
}

// Actions returns the names of the registered row actions.
func (c *Controller[T, F, In]) Actions() []string {
	names := make([]string, 0, len(c.cfg.Actions))
	for name := range c.cfg.Actions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c *Controller[T, F, In]) confirmAndRun(ctx context.Context, row T, prompt Prompt, run func(context.Context, int64) error, failure string) error {
	ok, err := c.cfg.Confirmer.Confirm(ctx, prompt)
	if err != nil {
		return fmt.Errorf("confirmation: %w", err)
	}
	if !ok {
		return ErrCancelled
	}

	id := c.cfg.ID(row)
	if err := run(ctx, id); err != nil {
		c.logger.Info("row action failed", "id", id, "error", err)
		return &ActionError{Message: c.failure(err, failure), Err: err}
	}

	if err := c.fetch(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		return fmt.Errorf("refreshing list: %w", err)
	}
	return nil
}

// failure picks the message shown for err: the server's message when there
// is one, otherwise fallback.
func (c *Controller[T, F, In]) failure(err error, fallback string) string {
	if apiErr, ok := apiclient.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
