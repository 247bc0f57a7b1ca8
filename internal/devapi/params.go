// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package devapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/newsdesk/internal/model"
)

const (
	maxJSONBody      = 1 << 20
	maxMultipartBody = 32 << 20
)

// Errors maps wire field names to a validation message.
type Errors map[string]string

// Add records msg for field unless the field already has one.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// upload is one file part of a multipart request.
type upload struct {
	header *multipart.FileHeader
}

// params is a decoded request body. JSON and multipart bodies expose the
// same accessors.
type params struct {
	values map[string][]string
	files  map[string][]*multipart.FileHeader
}

// readParams decodes r's body according to its content type. An empty body
// yields empty params.
func readParams(r *http.Request) (*params, error) {
	p := &params{values: map[string][]string{}, files: map[string][]*multipart.FileHeader{}}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartBody); err != nil {
			return nil, fmt.Errorf("parsing multipart body: %w", err)
		}
		for k, v := range r.MultipartForm.Value {
			p.values[strings.TrimSuffix(k, "[]")] = append(p.values[strings.TrimSuffix(k, "[]")], v...)
		}
		for k, v := range r.MultipartForm.File {
			p.files[strings.TrimSuffix(k, "[]")] = append(p.files[strings.TrimSuffix(k, "[]")], v...)
		}
		return p, nil
	default:
		dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
		dec.UseNumber()
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return p, nil
			}
			return nil, fmt.Errorf("parsing json body: %w", err)
		}
		for k, v := range raw {
			p.values[k] = flatten(v)
		}
		return p, nil
	}
}

func flatten(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return []string{t}
	case json.Number:
		return []string{t.String()}
	case bool:
		return []string{strconv.FormatBool(t)}
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, flatten(item)...)
		}
		return out
	}
	data, _ := json.Marshal(v)
	return []string{string(data)}
}

func (p *params) has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// str returns the trimmed first value of key.
func (p *params) str(key string) string {
	if v := p.values[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// list returns every non-empty value of key.
func (p *params) list(key string) []string {
	var out []string
	for _, v := range p.values[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// integer returns key as an integer. Missing or blank values are zero; ok is
// false only for a value that is present and not a number.
func (p *params) integer(key string) (int64, bool) {
	s := p.str(key)
	if s == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

// timestamp returns key parsed with the accepted wire layouts.
func (p *params) timestamp(key string) (time.Time, bool) {
	s := p.str(key)
	if s == "" {
		return time.Time{}, true
	}
	t, err := model.ParseTime(s)
	return t, err == nil
}

func (p *params) file(key string) *upload {
	if fh := p.files[key]; len(fh) > 0 {
		return &upload{header: fh[0]}
	}
	return nil
}

func (p *params) fileList(key string) []*upload {
	out := make([]*upload, 0, len(p.files[key]))
	for _, fh := range p.files[key] {
		out = append(out, &upload{header: fh})
	}
	return out
}

// page returns the 1-based page and page size of a list request.
func (p *params) page(defaultPerPage int) (page, perPage int) {
	pg, _ := p.integer("page")
	pp, _ := p.integer("per_page")
	page, perPage = int(pg), int(pp)
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return page, min(perPage, 100)
}
