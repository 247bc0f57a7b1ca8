// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/olegiv/newsdesk/internal/model"
)

// createTestImage creates a simple test image with the given dimensions.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestPrepareKeepsSmallImage(t *testing.T) {
	data := encodePNG(t, createTestImage(40, 30))

	f, err := Prepare(data, "Front Page.PNG", DefaultOptions())
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if f.Name != "front-page.png" {
		t.Errorf("Name = %q", f.Name)
	}
	if f.ContentType != model.MimeTypePNG {
		t.Errorf("ContentType = %q", f.ContentType)
	}
	if !bytes.Equal(f.Data, data) {
		t.Error("small image should be uploaded unchanged")
	}
}

func TestPrepareDownscales(t *testing.T) {
	data := encodePNG(t, createTestImage(400, 200))

	f, err := Prepare(data, "wide.png", Options{MaxDimension: 100})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	w, h, err := Dimensions(f.Data)
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if w != 100 || h != 50 {
		t.Errorf("dimensions = %dx%d, want 100x50", w, h)
	}
	if f.ContentType != model.MimeTypePNG {
		t.Errorf("ContentType = %q", f.ContentType)
	}
}

func TestPrepareJPEGName(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, createTestImage(20, 20), nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}

	f, err := Prepare(buf.Bytes(), "photo.jpeg", DefaultOptions())
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if f.Name != "photo.jpg" || f.ContentType != model.MimeTypeJPEG {
		t.Errorf("got %q %q", f.Name, f.ContentType)
	}
}

func TestPrepareRejectsUnsupported(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("hello, world")},
		{"tiff", []byte("II*\x00\x08\x00\x00\x00")},
		{"pdf", []byte("%PDF-1.7\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Prepare(tt.data, "x", DefaultOptions())
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("err = %v, want ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Banner Image.png")
	if err := os.WriteFile(path, encodePNG(t, createTestImage(10, 10)), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := LoadFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if f.Name != "banner-image.png" {
		t.Errorf("Name = %q", f.Name)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.png"), DefaultOptions()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyOrientation(t *testing.T) {
	img := createTestImage(40, 20)

	tests := []struct {
		orientation int
		wantW       int
		wantH       int
	}{
		{1, 40, 20},
		{2, 40, 20},
		{3, 40, 20},
		{6, 20, 40},
		{8, 20, 40},
	}
	for _, tt := range tests {
		got := applyOrientation(img, tt.orientation).Bounds()
		if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
			t.Errorf("orientation %d: %dx%d, want %dx%d", tt.orientation, got.Dx(), got.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestIsSupportedType(t *testing.T) {
	for _, mt := range []string{model.MimeTypeJPEG, model.MimeTypePNG, model.MimeTypeGIF, model.MimeTypeWebP} {
		if !IsSupportedType(mt) {
			t.Errorf("IsSupportedType(%q) = false", mt)
		}
	}
	if IsSupportedType("application/pdf") {
		t.Error("pdf should not be supported")
	}
}
