// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var subsByCategory = map[int64][]Option{
	1: {{ID: 10, Name: "Football"}, {ID: 11, Name: "Tennis"}},
	2: {{ID: 20, Name: "Elections"}},
}

func fakeSubs(_ context.Context, parentID int64) ([]Option, error) {
	if parentID == 3 {
		return nil, errors.New("lookup failed")
	}
	return subsByCategory[parentID], nil
}

func TestDependentSelectParent(t *testing.T) {
	ctx := context.Background()
	d := NewDependent(fakeSubs)

	require.NoError(t, d.SelectParent(ctx, 1))
	assert.Equal(t, int64(1), d.Parent())
	assert.Len(t, d.Options(), 2)
	assert.False(t, d.Loading())

	require.NoError(t, d.SelectChild(11))
	assert.Equal(t, int64(11), d.Child())
}

func TestDependentParentChangeClearsInvalidChild(t *testing.T) {
	ctx := context.Background()
	d := NewDependent(fakeSubs)

	require.NoError(t, d.SelectParent(ctx, 1))
	require.NoError(t, d.SelectChild(10))

	require.NoError(t, d.SelectParent(ctx, 2))
	assert.Zero(t, d.Child(), "sub-category of another category must be cleared")
	assert.Equal(t, []Option{{ID: 20, Name: "Elections"}}, d.Options())
}

func TestDependentClearParent(t *testing.T) {
	ctx := context.Background()
	d := NewDependent(fakeSubs)
	require.NoError(t, d.SelectParent(ctx, 1))
	require.NoError(t, d.SelectChild(10))

	require.NoError(t, d.SelectParent(ctx, 0))
	assert.Zero(t, d.Parent())
	assert.Zero(t, d.Child())
	assert.Empty(t, d.Options())
}

func TestDependentFetchFailureClearsChild(t *testing.T) {
	ctx := context.Background()
	d := NewDependent(fakeSubs)
	require.NoError(t, d.SelectParent(ctx, 1))
	require.NoError(t, d.SelectChild(10))

	err := d.SelectParent(ctx, 3)
	require.Error(t, err)
	assert.Equal(t, err, d.Err())
	assert.Zero(t, d.Child())
	assert.Empty(t, d.Options())
}

func TestDependentRejectsForeignChild(t *testing.T) {
	ctx := context.Background()
	d := NewDependent(fakeSubs)

	assert.ErrorIs(t, d.SelectChild(10), ErrInvalidChild, "no parent selected")

	require.NoError(t, d.SelectParent(ctx, 2))
	assert.ErrorIs(t, d.SelectChild(10), ErrInvalidChild)
	assert.NoError(t, d.SelectChild(0))
}

func TestDependentRestore(t *testing.T) {
	ctx := context.Background()
	d := NewDependent(fakeSubs)

	require.NoError(t, d.Restore(ctx, 1, 11))
	assert.Equal(t, int64(1), d.Parent())
	assert.Equal(t, int64(11), d.Child())

	require.NoError(t, d.Restore(ctx, 2, 11))
	assert.Zero(t, d.Child())
}

func TestDependentSupersededFetch(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	d := NewDependent(func(ctx context.Context, parentID int64) ([]Option, error) {
		if parentID == 1 {
			close(started)
			<-ctx.Done()
			return subsByCategory[1], nil
		}
		return subsByCategory[parentID], nil
	})

	first := make(chan error, 1)
	go func() { first <- d.SelectParent(ctx, 1) }()
	<-started

	require.NoError(t, d.SelectParent(ctx, 2))
	assert.ErrorIs(t, <-first, ErrSuperseded)
	assert.Equal(t, int64(2), d.Parent())
	assert.Equal(t, subsByCategory[2], d.Options())
}
