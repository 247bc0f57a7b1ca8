// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/newsdesk/internal/apiclient"
	"github.com/olegiv/newsdesk/internal/resource"
)

func newAPI(t *testing.T, handler http.HandlerFunc) *resource.API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return resource.NewAPI(apiclient.New(srv.URL, apiclient.StaticToken("tok")))
}

func writeTotal(w http.ResponseWriter, total int, rows string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"success":true,"data":%s,"pagination":{"total":%d,"current_page":1,"per_page":1,"last_page":%d}}`, rows, total, total)
}

func TestLoad(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch r.URL.Path {
		case "/news/list":
			switch {
			case body["news_type"] == "featured":
				writeTotal(w, 4, `[]`)
			case body["per_page"] == float64(RecentLimit):
				writeTotal(w, 120, `[{"id":1,"title":"Budget passed"},{"id":2,"title":"Storm warning"}]`)
			default:
				writeTotal(w, 120, `[]`)
			}
		case "/categories/list":
			assert.Equal(t, "active", body["status"])
			writeTotal(w, 8, `[]`)
		case "/sub-categories/list":
			assert.Equal(t, "active", body["status"])
			writeTotal(w, 21, `[]`)
		case "/flash-news/list":
			assert.Equal(t, "on", body["status"])
			writeTotal(w, 3, `[]`)
		default:
			http.NotFound(w, r)
		}
	})

	sum, err := Load(context.Background(), api)
	require.NoError(t, err)

	want := map[string]int{
		StatTotalNews:        120,
		StatActiveCategories: 8,
		StatActiveSubs:       21,
		StatFlashNews:        3,
		StatFeatured:         4,
	}
	require.Len(t, sum.Stats, len(want))
	for title, value := range want {
		got, ok := sum.Stat(title)
		assert.True(t, ok, title)
		assert.Equal(t, value, got, title)
	}
	assert.Equal(t, StatTotalNews, sum.Stats[0].Title, "display order")

	require.Len(t, sum.Recent, 2)
	assert.Equal(t, "Budget passed", sum.Recent[0].Title)
}

func TestLoadFailsAsAWhole(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/flash-news/list" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"message":"flash table locked"}`))
			return
		}
		writeTotal(w, 1, `[]`)
	})

	_, err := Load(context.Background(), api)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Today's Flash News")

	apiErr, ok := apiclient.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "flash table locked", apiErr.Message)
}

func TestLoadEmptyBackend(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":null}`))
	})

	sum, err := Load(context.Background(), api)
	require.NoError(t, err)
	for _, st := range sum.Stats {
		assert.Zero(t, st.Value, st.Title)
	}
	assert.NotNil(t, sum.Recent)
	assert.Empty(t, sum.Recent)
}
