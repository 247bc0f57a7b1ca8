// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package workflow

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/olegiv/newsdesk/internal/model"
	"github.com/olegiv/newsdesk/internal/resource"
)

// ErrInvalidChild is returned when a child is selected that does not belong
// to the selected parent.
var ErrInvalidChild = errors.New("selection does not belong to the selected parent")

// Option is one choice in a selector.
type Option struct {
	ID   int64
	Name string
}

// Dependent is a parent/child selector pair such as category and
// sub-category. The child options are refetched whenever the parent
// changes, and a child selection that is not among the new options is
// cleared.
type Dependent struct {
	fetch func(ctx context.Context, parentID int64) ([]Option, error)

	mu       sync.Mutex
	seq      uint64
	cancel   context.CancelFunc
	parent   int64
	child    int64
	options  []Option
	loading  bool
	fetchErr error
}

// NewDependent creates a selector whose child options come from fetch.
func NewDependent(fetch func(ctx context.Context, parentID int64) ([]Option, error)) *Dependent {
	return &Dependent{fetch: fetch}
}

// NewCategorySelector returns a category/sub-category selector backed by
// the public lookup endpoint.
func NewCategorySelector(api *resource.API) *Dependent {
	return NewDependent(func(ctx context.Context, categoryID int64) ([]Option, error) {
		subs, err := api.Public.SubCategories(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		opts := make([]Option, 0, len(subs))
		for _, s := range subs {
			opts = append(opts, Option{ID: s.ID, Name: s.Name})
		}
		return opts, nil
	})
}

// CategoryOptions fetches the parent choices for NewCategorySelector.
func CategoryOptions(ctx context.Context, api *resource.API) ([]Option, error) {
	cats, err := api.Public.Categories(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(cats))
	for _, c := range cats {
		if c.Status != "" && c.Status != model.StatusActive {
			continue
		}
		opts = append(opts, Option{ID: c.ID, Name: c.Name})
	}
	return opts, nil
}

// SelectParent changes the parent and refetches the child options. Zero
// clears both selections. If the fetch fails the child is cleared and the
// error returned; a fetch overtaken by a newer SelectParent returns
// ErrSuperseded.
func (d *Dependent) SelectParent(ctx context.Context, parentID int64) error {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.seq++
	seq := d.seq
	d.parent = parentID
	d.options = nil
	d.fetchErr = nil

	if parentID == 0 {
		d.child = 0
		d.loading = false
		d.mu.Unlock()
		return nil
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.loading = true
	d.mu.Unlock()

	opts, err := d.fetch(fetchCtx, parentID)

	d.mu.Lock()
	defer d.mu.Unlock()
	cancel()
	if seq != d.seq {
		return ErrSuperseded
	}
	d.cancel = nil
	d.loading = false

	if err != nil {
		d.child = 0
		d.fetchErr = err
		return err
	}
	d.options = opts
	if d.child != 0 && !containsOption(opts, d.child) {
		d.child = 0
	}
	return nil
}

// SelectChild selects a child option. Zero clears the selection.
func (d *Dependent) SelectChild(childID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if childID != 0 && (d.parent == 0 || !containsOption(d.options, childID)) {
		return ErrInvalidChild
	}
	d.child = childID
	return nil
}

// Restore sets both selections from a saved record, such as an article
// being edited. The child survives only if it belongs to the parent.
func (d *Dependent) Restore(ctx context.Context, parentID, childID int64) error {
	d.mu.Lock()
	d.child = childID
	d.mu.Unlock()
	return d.SelectParent(ctx, parentID)
}

// Parent returns the selected parent ID.
func (d *Dependent) Parent() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.parent
}

// Child returns the selected child ID.
func (d *Dependent) Child() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.child
}

// Options returns the child options for the current parent.
func (d *Dependent) Options() []Option {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.options)
}

// Loading reports whether child options are being fetched.
func (d *Dependent) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Err returns the error of the last child fetch, if it failed.
func (d *Dependent) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fetchErr
}

func containsOption(opts []Option, id int64) bool {
	return slices.ContainsFunc(opts, func(o Option) bool { return o.ID == id })
}
