// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package devapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/olegiv/newsdesk/internal/imaging"
	"github.com/olegiv/newsdesk/internal/model"
	"github.com/olegiv/newsdesk/internal/util"
)

// StoragePath is the URL prefix uploaded files are served under.
const StoragePath = "/storage/"

var extensions = map[string]string{
	model.MimeTypeJPEG: ".jpg",
	model.MimeTypePNG:  ".png",
	model.MimeTypeGIF:  ".gif",
	model.MimeTypeWebP: ".webp",
}

// read returns the contents of the upload and its sniffed MIME type.
func (u *upload) read() ([]byte, string, error) {
	if u.header.Size > imaging.MaxFileSize {
		return nil, "", fmt.Errorf("file exceeds %d bytes", imaging.MaxFileSize)
	}
	f, err := u.header.Open()
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, imaging.MaxFileSize+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > imaging.MaxFileSize {
		return nil, "", fmt.Errorf("file exceeds %d bytes", imaging.MaxFileSize)
	}
	mimeType := imaging.DetectMimeType(data)
	if !imaging.IsSupportedType(mimeType) {
		return nil, "", fmt.Errorf("unsupported file type %s", mimeType)
	}
	return data, mimeType, nil
}

// checkUpload validates u for field without storing it.
func checkUpload(errs Errors, field string, u *upload) {
	if u == nil {
		return
	}
	if _, _, err := u.read(); err != nil {
		errs.Add(field, fmt.Sprintf("The %s must be an image (jpeg, png, gif, webp).", label(field)))
	}
}

// saveUpload stores u and returns its public URL.
func (s *Server) saveUpload(r *http.Request, u *upload) (string, error) {
	data, mimeType, err := u.read()
	if err != nil {
		return "", err
	}
	name := uuid.NewString() + "-" + util.SafeFileName(u.header.Filename, extensions[mimeType], "image")
	s.store.PutFile(name, data, mimeType)
	return publicURL(r, StoragePath+name), nil
}

func publicURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}

// serveFile streams a stored upload.
func (s *Server) serveFile(w http.ResponseWriter, r *http.Request) {
	data, contentType, ok := s.store.File(chi.URLParam(r, "name"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	_, _ = w.Write(data)
}
