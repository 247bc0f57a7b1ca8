// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/newsdesk/internal/model"
)

// Field is one named value of a multipart payload.
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered multipart payload. Order is preserved on the wire.
type Fields []Field

// Add appends a value under key.
func (f Fields) Add(key string, value any) Fields {
	return append(f, Field{Key: key, Value: value})
}

// Set replaces the first value under key, or appends it.
func (f Fields) Set(key string, value any) Fields {
	for i := range f {
		if f[i].Key == key {
			f[i].Value = value
			return f
		}
	}
	return f.Add(key, value)
}

// Get returns the first value under key.
func (f Fields) Get(key string) (any, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// IsHostedURL reports whether s points at a file the backend already has:
// an absolute http(s) URL or a path under storagePrefix. Such strings are
// never re-sent as field values.
func IsHostedURL(s, storagePrefix string) bool {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return true
	}
	return storagePrefix != "" && strings.HasPrefix(s, storagePrefix)
}

// EncodeMultipart renders fields as a multipart/form-data body and returns it
// with its content type (including the boundary).
//
// Per value: nil is omitted; strings that look like hosted URLs are omitted;
// slices become repeated key[] parts holding strings and files only;
// model.File becomes a binary part; model.Upload is sent only when it is a
// Replace; time values use the wire layout; maps and structs are JSON
// encoded; other scalars use their default string form.
func EncodeMultipart(fields Fields, storagePrefix string) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	enc := &multipartEncoder{mw: mw, storagePrefix: storagePrefix}

	for _, field := range fields {
		if err := enc.field(field.Key, field.Value); err != nil {
			return nil, "", fmt.Errorf("field %q: %w", field.Key, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

type multipartEncoder struct {
	mw            *multipart.Writer
	storagePrefix string
}

func (e *multipartEncoder) field(key string, value any) error {
	if isNil(value) {
		return nil
	}

	switch v := value.(type) {
	case string:
		return e.text(key, v)
	case model.Upload:
		if f, ok := v.File(); ok {
			return e.file(key, f)
		}
		return nil
	case *model.Upload:
		return e.field(key, *v)
	case model.File:
		return e.file(key, v)
	case *model.File:
		return e.file(key, *v)
	case model.Time:
		if v.IsZero() {
			return nil
		}
		return e.mw.WriteField(key, model.FormatWire(v.Time))
	case time.Time:
		return e.mw.WriteField(key, model.FormatWire(v))
	case *time.Time:
		return e.mw.WriteField(key, model.FormatWire(*v))
	case json.RawMessage:
		return e.mw.WriteField(key, string(v))
	case fmt.Stringer:
		return e.text(key, v.String())
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return e.text(key, rv.String())
	case reflect.Slice, reflect.Array:
		return e.list(key, rv)
	case reflect.Map, reflect.Struct:
		data, err := json.Marshal(rv.Interface())
		if err != nil {
			return err
		}
		return e.mw.WriteField(key, string(data))
	case reflect.Bool:
		return e.mw.WriteField(key, strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.mw.WriteField(key, strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return e.mw.WriteField(key, strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		return e.mw.WriteField(key, strconv.FormatFloat(rv.Float(), 'f', -1, 64))
	}
	return e.mw.WriteField(key, fmt.Sprint(rv.Interface()))
}

// list writes each usable element under key[]. Only strings and files
// survive; every other element type is dropped.
func (e *multipartEncoder) list(key string, rv reflect.Value) error {
	name := key + "[]"
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Interface || elem.Kind() == reflect.Pointer {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}

		var err error
		switch v := elem.Interface().(type) {
		case model.File:
			err = e.file(name, v)
		case model.Upload:
			if f, ok := v.File(); ok {
				err = e.file(name, f)
			}
		default:
			if elem.Kind() == reflect.String {
				err = e.text(name, elem.String())
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *multipartEncoder) text(key, value string) error {
	if IsHostedURL(value, e.storagePrefix) {
		return nil
	}
	return e.mw.WriteField(key, value)
}

func (e *multipartEncoder) file(key string, f model.File) error {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	name := f.Name
	if name == "" {
		name = "blob"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(key), quoteEscaper.Replace(name)))
	h.Set("Content-Type", contentType)

	part, err := e.mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(f.Data)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
