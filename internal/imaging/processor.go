// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging turns local image files into upload binaries: it sniffs
// the format, applies EXIF orientation, bounds the dimensions and picks a
// safe file name.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/olegiv/newsdesk/internal/model"
	"github.com/olegiv/newsdesk/internal/util"
)

// ErrUnsupportedFormat is returned for anything but JPEG, PNG, GIF and WebP.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Default processing settings.
const (
	DefaultMaxDimension = 2048
	DefaultQuality      = 85
	// MaxFileSize bounds how much of a file is read.
	MaxFileSize = 20 << 20
)

// Options controls how an upload is prepared.
type Options struct {
	// MaxDimension bounds width and height. Zero disables resizing.
	MaxDimension int
	// Quality is the JPEG quality used when re-encoding.
	Quality int
}

// DefaultOptions returns the default processing settings.
func DefaultOptions() Options {
	return Options{MaxDimension: DefaultMaxDimension, Quality: DefaultQuality}
}

// LoadFile reads the image at path and prepares it for upload.
func LoadFile(path string, opts Options) (model.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.File{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return model.File{}, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) > MaxFileSize {
		return model.File{}, fmt.Errorf("image %s exceeds %d bytes", filepath.Base(path), MaxFileSize)
	}
	return Prepare(data, filepath.Base(path), opts)
}

// Prepare validates raw image bytes and returns the upload. The original
// bytes are kept when the image needs neither rotation nor resizing; WebP
// is always re-encoded as JPEG.
func Prepare(data []byte, filename string, opts Options) (model.File, error) {
	format := detectFormat(data)
	if format == "" {
		return model.File{}, ErrUnsupportedFormat
	}
	if opts.Quality <= 0 {
		opts.Quality = DefaultQuality
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return model.File{}, fmt.Errorf("failed to decode image: %w", err)
	}

	orientation := 1
	if format == "jpeg" {
		orientation = readExifOrientation(bytes.NewReader(data))
	}

	bounds := img.Bounds()
	oversized := opts.MaxDimension > 0 &&
		(bounds.Dx() > opts.MaxDimension || bounds.Dy() > opts.MaxDimension)

	outFormat := format
	if format == "webp" {
		outFormat = "jpeg"
	}

	if orientation == 1 && !oversized && outFormat == format {
		return model.File{
			Name:        util.SafeFileName(filename, extensionFor(format), "image"),
			ContentType: formatToMimeType(format),
			Data:        data,
		}, nil
	}

	img = applyOrientation(img, orientation)
	if oversized {
		img = imaging.Fit(img, opts.MaxDimension, opts.MaxDimension, imaging.Lanczos)
	}

	encoded, err := encodeImage(img, outFormat, opts.Quality)
	if err != nil {
		return model.File{}, fmt.Errorf("failed to encode image: %w", err)
	}

	return model.File{
		Name:        util.SafeFileName(filename, extensionFor(outFormat), "image"),
		ContentType: formatToMimeType(outFormat),
		Data:        encoded,
	}, nil
}

// Dimensions returns the width and height encoded in an image header.
func Dimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// IsSupportedType reports whether mimeType is an accepted upload type.
func IsSupportedType(mimeType string) bool {
	switch mimeType {
	case model.MimeTypeJPEG, model.MimeTypePNG, model.MimeTypeGIF, model.MimeTypeWebP:
		return true
	}
	return false
}

// DetectMimeType sniffs the MIME type of data.
func DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	// http.DetectContentType returns types like "image/jpeg; charset=utf-8"
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation undoes the camera orientation recorded in EXIF.
// 2 and 4 are mirrors, 3 is upside down, 5 to 8 are quarter turns
// (5 and 7 also mirrored).
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer

	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := DetectMimeType(data)
	// Explicitly reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch contentType {
	case model.MimeTypeJPEG:
		return "jpeg"
	case model.MimeTypePNG:
		return "png"
	case model.MimeTypeGIF:
		return "gif"
	case model.MimeTypeWebP:
		return "webp"
	default:
		return ""
	}
}

func extensionFor(format string) string {
	if format == "jpeg" {
		return ".jpg"
	}
	return "." + format
}

func formatToMimeType(format string) string {
	switch format {
	case "png":
		return model.MimeTypePNG
	case "gif":
		return model.MimeTypeGIF
	case "webp":
		return model.MimeTypeWebP
	default:
		return model.MimeTypeJPEG
	}
}
