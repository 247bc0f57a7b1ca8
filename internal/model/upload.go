// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Supported image MIME types.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// File is binary content to be sent as a multipart file part.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadKind tags the intent of an image field.
type UploadKind int

const (
	// UploadCleared means no image. Nothing is sent.
	UploadCleared UploadKind = iota
	// UploadUnchanged keeps the image already hosted at URL. Nothing is sent.
	UploadUnchanged
	// UploadReplace sends File as the new image.
	UploadReplace
)

// Upload is the state of an image field in a form: an existing hosted
// image, a replacement binary, or nothing.
type Upload struct {
	kind UploadKind
	url  string
	file File
}

// Unchanged keeps the image hosted at url. An empty url is Cleared.
func Unchanged(url string) Upload {
	if url == "" {
		return Cleared()
	}
	return Upload{kind: UploadUnchanged, url: url}
}

// Replace uploads f in place of whatever the field held.
func Replace(f File) Upload {
	return Upload{kind: UploadReplace, file: f}
}

// Cleared is an empty image field.
func Cleared() Upload {
	return Upload{kind: UploadCleared}
}

// Kind returns the tag.
func (u Upload) Kind() UploadKind { return u.kind }

// URL returns the hosted URL for Unchanged uploads.
func (u Upload) URL() string { return u.url }

// File returns the binary for Replace uploads.
func (u Upload) File() (File, bool) {
	return u.file, u.kind == UploadReplace
}

// IsReplace reports whether a new binary will be sent.
func (u Upload) IsReplace() bool { return u.kind == UploadReplace }

// IsEmpty reports whether the field holds neither a hosted image nor a file.
func (u Upload) IsEmpty() bool { return u.kind == UploadCleared }

// UnchangedAll wraps hosted URLs, skipping empty ones.
func UnchangedAll(urls []string) []Upload {
	out := make([]Upload, 0, len(urls))
	for _, url := range urls {
		if url != "" {
			out = append(out, Unchanged(url))
		}
	}
	return out
}
