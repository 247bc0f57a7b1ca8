// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bufio"
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/newsdesk/internal/auth"
	"github.com/olegiv/newsdesk/internal/config"
	"github.com/olegiv/newsdesk/internal/demo"
	"github.com/olegiv/newsdesk/internal/devapi"
	"github.com/olegiv/newsdesk/internal/model"
	"github.com/olegiv/newsdesk/internal/session"
)

const (
	testSecret    = "a-test-secret-that-is-long-enough-1234"
	adminEmail    = "admin@example.com"
	adminPassword = "admin-pass"
)

type harness struct {
	srv *devapi.Server
	app *app
	out *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv, err := devapi.New(devapi.Options{
		Secret:        testSecret,
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
		HasherParams:  &auth.Params{Time: 1, Memory: 64, Threads: 1, KeyLen: 16, SaltLen: 8},
		Logger:        discard,
	})
	require.NoError(t, err)
	_, err = demo.Seed(srv, time.Now(), discard)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cfg := &config.Config{
		APIURL:        ts.URL + "/api",
		StoragePrefix: "/storage/",
		PerPage:       15,
		ImageMaxDim:   512,
	}
	out := &bytes.Buffer{}
	a, err := newApp(context.Background(), cfg, session.NewMemoryStorage(), discard, "newsdesk/test", strings.NewReader(""), out)
	require.NoError(t, err)
	t.Cleanup(a.close)

	return &harness{srv: srv, app: a, out: out}
}

// exec runs one command with input as the terminal and returns what it
// printed.
func (h *harness) exec(input string, args ...string) (string, error) {
	h.out.Reset()
	h.app.in = bufio.NewReader(strings.NewReader(input))
	h.app.assumeYes = false
	err := h.app.dispatch(context.Background(), args)
	return h.out.String(), err
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	_, err := h.exec("", "login", "-email", adminEmail, "-password", adminPassword)
	require.NoError(t, err)
}

func (h *harness) categoryID(t *testing.T, name string) int64 {
	t.Helper()
	for _, c := range h.srv.Store().ListCategories("") {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("category %q not found", name)
	return 0
}

func (h *harness) subCategoryID(t *testing.T, category, name string) int64 {
	t.Helper()
	for _, s := range h.srv.Store().ListSubCategories(h.categoryID(t, category), "") {
		if s.Name == name {
			return s.ID
		}
	}
	t.Fatalf("sub-category %q not found", name)
	return 0
}

func idArg(id int64) string {
	return strconv.FormatInt(id, 10)
}

func writePNG(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	require.NoError(t, f.Close())
	return path
}

func TestCommandsRequireSession(t *testing.T) {
	h := newHarness(t)

	for _, args := range [][]string{
		{"whoami"},
		{"dashboard"},
		{"categories", "list"},
		{"users", "deactivate", "2"},
	} {
		_, err := h.exec("", args...)
		assert.ErrorIs(t, err, errNoSession, strings.Join(args, " "))
	}
}

func TestLoginAndLogout(t *testing.T) {
	h := newHarness(t)

	out, err := h.exec("", "login", "-email", adminEmail, "-password", adminPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Administrator (Admin).")

	out, err = h.exec("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, adminEmail)
	assert.Contains(t, out, "admin")

	out, err = h.exec("", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")
	assert.False(t, h.app.sess.IsAuthenticated())
}

func TestLoginPromptsForMissingCredentials(t *testing.T) {
	h := newHarness(t)

	out, err := h.exec(demo.Password+"\n", "login", "-email", "editor@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Logged in as Erin Editor (Editor).")
}

func TestLoginInvalidCredentials(t *testing.T) {
	h := newHarness(t)

	out, err := h.exec("", "login", "-email", adminEmail, "-password", "wrong")
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "Error: Invalid credentials")
	assert.False(t, h.app.sess.IsAuthenticated())

	out, err = h.exec("\n\n", "login")
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "Please enter both email and password")
}

func TestDashboard(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out, err := h.exec("", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Total News")
	assert.Contains(t, out, "Active Categories")
	assert.Contains(t, out, "Turnout hits record high")
}

func TestCategoryCommands(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out, err := h.exec("", "categories", "create", "-name", "Culture", "-icon", writePNG(t, "icon.png"))
	require.NoError(t, err)
	assert.Contains(t, out, "Created category.")
	id := h.categoryID(t, "Culture")

	stored, err := h.srv.Store().Category(id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, stored.Status)
	assert.NotEmpty(t, stored.IconURL)

	out, err = h.exec("", "categories", "list", "-search", "cult")
	require.NoError(t, err)
	assert.Contains(t, out, "Culture")
	assert.NotContains(t, out, "Politics")

	out, err = h.exec("", "categories", "list", "-status", "inactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Archive")
	assert.NotContains(t, out, "Culture")

	out, err = h.exec("", "categories", "update", idArg(id), "-name", "Arts", "-status", "inactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated category.")

	out, err = h.exec("", "categories", "show", idArg(id))
	require.NoError(t, err)
	assert.Contains(t, out, "Arts")
	assert.Contains(t, out, "Inactive")

	out, err = h.exec("", "categories", "delete", "-yes", idArg(id))
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted category.")
	_, err = h.srv.Store().Category(id)
	assert.ErrorIs(t, err, devapi.ErrNotFound)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	id := h.categoryID(t, "Archive")

	out, err := h.exec("n\n", "categories", "delete", idArg(id))
	require.NoError(t, err)
	assert.Contains(t, out, "? [y/N]")
	assert.Contains(t, out, "Cancelled.")
	_, err = h.srv.Store().Category(id)
	require.NoError(t, err)

	out, err = h.exec("y\n", "categories", "delete", idArg(id))
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted category.")
	_, err = h.srv.Store().Category(id)
	assert.ErrorIs(t, err, devapi.ErrNotFound)
}

func TestDeleteFailureShowsServerMessage(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out, err := h.exec("", "categories", "delete", "-yes", idArg(h.categoryID(t, "Politics")))
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "Error: Cannot delete a category that still has sub-categories or news")
}

func TestCreateReportsFieldErrors(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out, err := h.exec("", "categories", "create", "-status", "active")
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "Please fix the following:")
	assert.Contains(t, out, "name: Category name is required")

	out, err = h.exec("", "categories", "create", "-name", "Politics")
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "Error: The given data was invalid.")
	assert.Contains(t, out, "name: The name has already been taken.")

	past := time.Now().Add(-time.Hour).Format(TimeLayout)
	out, err = h.exec("", "flash", "create", "-title", "Storm warning", "-expires", past)
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "expires_at: Expiry time must be in the future")
}

func TestSubCategoryCommands(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	sport := h.categoryID(t, "Sport")

	out, err := h.exec("", "subcategories", "create", "-name", "Cycling", "-category", idArg(sport))
	require.NoError(t, err)
	assert.Contains(t, out, "Created sub-category.")

	out, err = h.exec("", "subcategories", "list", "-category", idArg(sport))
	require.NoError(t, err)
	assert.Contains(t, out, "Cycling")
	assert.Contains(t, out, "Tennis")
	assert.NotContains(t, out, "Markets")
}

func TestNewsCommands(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	politics := h.categoryID(t, "Politics")
	elections := h.subCategoryID(t, "Politics", "Elections")
	football := h.subCategoryID(t, "Sport", "Football")

	out, err := h.exec("", "news", "create",
		"-title", "Rates on hold",
		"-short", "The central bank kept rates unchanged",
		"-body-md", "The bank **held** rates.",
		"-category", idArg(politics),
		"-sub-category", idArg(football),
		"-thumbnail", writePNG(t, "thumb.png"),
	)
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "sub_category_id: Sub-category does not belong to the selected category")

	out, err = h.exec("", "news", "create",
		"-title", "Rates on hold",
		"-short", "The central bank kept rates unchanged",
		"-body-md", "The bank **held** rates.",
		"-category", idArg(politics),
		"-sub-category", idArg(elections),
		"-tags", "rates, bank",
		"-thumbnail", writePNG(t, "thumb.png"),
		"-gallery", writePNG(t, "one.png"),
		"-gallery", writePNG(t, "two.png"),
		"-publish-status", "published",
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Created news.")

	found := h.srv.Store().ListNews(devapi.NewsFilter{Search: "Rates on hold"})
	require.Len(t, found, 1)
	n := found[0]
	assert.Equal(t, []string{"rates", "bank"}, []string(n.Tags))
	assert.Len(t, n.GalleryImageURLs, 2)
	assert.Equal(t, model.PublishPublished, n.PublishStatus)
	assert.False(t, n.PublishedAt.IsZero())

	out, err = h.exec("", "news", "list", "-tags", "bank")
	require.NoError(t, err)
	assert.Contains(t, out, "Rates on hold")
	assert.NotContains(t, out, "Cup final preview")

	out, err = h.exec("", "news", "update", idArg(n.ID), "-type", "featured")
	require.NoError(t, err, out)
	updated, err := h.srv.Store().News(n.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NewsFeatured, updated.NewsType)
	assert.Equal(t, n.ThumbnailImageURL, updated.ThumbnailImageURL)
}

func TestFlashNewsCommands(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	expires := time.Now().Add(2 * time.Hour).Format(TimeLayout)
	out, err := h.exec("", "flash", "create", "-title", "Polls close at 8pm", "-expires", expires, "-status", "on")
	require.NoError(t, err)
	assert.Contains(t, out, "Created flash news.")

	out, err = h.exec("", "flash", "list", "-status", "on")
	require.NoError(t, err)
	assert.Contains(t, out, "Polls close at 8pm")
}

func TestUserCommands(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out, err := h.exec("", "users", "create", "-name", "Nia Newcomer", "-email", "nia@example.com", "-password", "secret-pass", "-role", "reporter")
	require.NoError(t, err)
	assert.Contains(t, out, "Created user.")

	u, _, ok := h.srv.Store().UserByEmail("nia@example.com")
	require.True(t, ok)
	assert.Equal(t, model.RoleReporter, u.Role)

	out, err = h.exec("", "users", "deactivate", "-yes", idArg(u.ID))
	require.NoError(t, err)
	assert.Contains(t, out, "Deactivated user.")
	u, _, _ = h.srv.Store().UserByEmail("nia@example.com")
	assert.Equal(t, model.StatusInactive, u.Status)

	out, err = h.exec("", "users", "list", "-role", "reporter")
	require.NoError(t, err)
	assert.Contains(t, out, "nia@example.com")
	assert.NotContains(t, out, "editor@example.com")

	out, err = h.exec("", "users", "create", "-name", "Olu Owner", "-email", "olu@example.com", "-password", "secret-pass", "-role", "owner")
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "role: Role must be Admin, Editor or Reporter")

	out, err = h.exec("", "users", "list", "-status", "inactive")
	require.NoError(t, err)
	assert.Contains(t, out, "nia@example.com")

	out, err = h.exec("y\n", "users", "activate", idArg(u.ID))
	require.NoError(t, err)
	assert.Contains(t, out, "Activate User")
	assert.Contains(t, out, "Activated user.")
}

func TestUnknownCommands(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	_, err := h.exec("", "publish")
	assert.ErrorContains(t, err, `unknown command "publish"`)

	_, err = h.exec("", "categories", "activate", "1")
	assert.ErrorContains(t, err, `unknown command "activate"`)

	_, err = h.exec("", "categories", "show", "abc")
	assert.ErrorContains(t, err, "invalid ID")

	out, err := h.exec("", "news", "show", "9999")
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "Error: News not found")
}
