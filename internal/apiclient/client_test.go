// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/newsdesk/internal/model"
)

type captured struct {
	method string
	path   string
	header http.Header
	body   []byte
}

func newServer(t *testing.T, status int, response string) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.method = r.Method
		c.path = r.URL.Path
		c.header = r.Header.Clone()
		c.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func TestPostJSONHeaders(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"success":true,"data":{"id":3,"name":"World"}}`)

	c := New(srv.URL+"/api/", StaticToken("tok-123"))
	var out Result[model.Category]
	err := c.PostJSON(context.Background(), "/categories/show", map[string]int{"id": 3}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/categories/show", got.path)
	assert.Equal(t, "application/json", got.header.Get("Accept"))
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	assert.Equal(t, "Bearer tok-123", got.header.Get("Authorization"))
	assert.JSONEq(t, `{"id":3}`, string(got.body))

	assert.True(t, out.Success)
	assert.Equal(t, "World", out.Data.Name)
}

func TestUserAgent(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"success":true}`)

	c := New(srv.URL, nil, WithUserAgent("newsdesk/v1.2.0"))
	require.NoError(t, c.PostJSON(context.Background(), "/x", nil, nil))
	assert.Equal(t, "newsdesk/v1.2.0", got.header.Get("User-Agent"))
}

func TestRequestWithoutToken(t *testing.T) {
	for _, tokens := range []TokenSource{nil, StaticToken("")} {
		srv, got := newServer(t, http.StatusOK, `{"success":true}`)
		c := New(srv.URL, tokens)
		require.NoError(t, c.PostJSON(context.Background(), "/public/categories", struct{}{}, nil))
		assert.Empty(t, got.header.Get("Authorization"))
	}
}

func TestPostMultipartContentType(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"success":true}`)

	c := New(srv.URL, StaticToken("t"))
	fields := Fields{}.Add("name", "Sport").Add("icon", model.Unchanged("https://cdn/x.png"))
	require.NoError(t, c.PostMultipart(context.Background(), "/categories/create", fields, nil))

	ct := got.header.Get("Content-Type")
	assert.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="), ct)
	parts := decodeParts(t, got.body, ct)
	assert.Equal(t, []string{"name"}, names(parts))
}

func TestRequestErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantErrors  FieldErrors
	}{
		{
			name:        "message preferred",
			status:      http.StatusUnprocessableEntity,
			body:        `{"message":"The given data was invalid.","errors":{"name":["The name field is required."]}}`,
			wantMessage: "The given data was invalid.",
			wantErrors:  FieldErrors{"name": "The name field is required."},
		},
		{
			name:        "errors stringified without message",
			status:      http.StatusUnprocessableEntity,
			body:        `{"errors": {"email": "taken"}}`,
			wantMessage: `{"email":"taken"}`,
			wantErrors:  FieldErrors{"email": "taken"},
		},
		{
			name:        "default message",
			status:      http.StatusInternalServerError,
			body:        `{}`,
			wantMessage: DefaultErrorMessage,
		},
		{
			name:        "success false on 200",
			status:      http.StatusOK,
			body:        `{"success":false,"message":"Invalid credentials"}`,
			wantMessage: "Invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, tt.status, tt.body)
			c := New(srv.URL, nil)

			err := c.PostJSON(context.Background(), "/x", nil, nil)
			require.Error(t, err)

			apiErr, ok := AsAPIError(err)
			require.True(t, ok, "want *APIError, got %T", err)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantErrors, apiErr.Errors)
			assert.True(t, IsStatus(err, tt.status))
		})
	}
}

func TestRequestInvalidJSON(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)
	c := New(srv.URL, nil)

	err := c.PostJSON(context.Background(), "/x", nil, nil)
	require.Error(t, err)
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)

	var syntaxErr *json.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
	assert.IsType(t, &json.SyntaxError{}, err, "parse errors are not wrapped")
}

func TestRequestMismatchedData(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"success":true,"data":"not an object"}`)
	c := New(srv.URL, nil)

	var out struct {
		Data struct{ ID int64 } `json:"data"`
	}
	err := c.PostJSON(context.Background(), "/x", nil, &out)
	assert.IsType(t, &json.UnmarshalTypeError{}, err)
}

func TestRequestCancelled(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"success":true}`)
	c := New(srv.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.PostJSON(ctx, "/x", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListResultDecoding(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantLen   int
		wantTotal int
	}{
		{
			name:      "flat envelope",
			body:      `{"success":true,"data":[{"id":1},{"id":2}],"pagination":{"total":"42","current_page":1,"per_page":2,"last_page":21}}`,
			wantLen:   2,
			wantTotal: 42,
		},
		{
			name:      "null data",
			body:      `{"success":true,"data":null,"pagination":{"total":0}}`,
			wantLen:   0,
			wantTotal: 0,
		},
		{
			name:      "paginator object",
			body:      `{"success":true,"data":{"data":[{"id":1}],"total":7,"current_page":1,"per_page":1,"last_page":7}}`,
			wantLen:   1,
			wantTotal: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res ListResult[model.Category]
			require.NoError(t, json.Unmarshal([]byte(tt.body), &res))
			require.NotNil(t, res.Data)
			assert.Len(t, res.Data, tt.wantLen)
			assert.Equal(t, tt.wantTotal, res.TotalRows())
		})
	}
}
