// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides slug and upload file name helpers with Unicode
// transliteration.
package util

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// slugRegex matches non-alphanumeric characters (except hyphens)
	slugRegex = regexp.MustCompile(`[^a-z0-9-]+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// maxSlugLength caps generated slugs.
const maxSlugLength = 80

// Slugify converts a string to a lowercase ASCII slug. Accents are stripped
// and other scripts are transliterated, so "Über München" becomes
// "uber-munchen" and "Новости" becomes "novosti".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = unidecode.Unidecode(result)
	result = strings.ToLower(result)
	result = strings.Join(strings.Fields(result), "-")
	result = slugRegex.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > maxSlugLength {
		result = strings.TrimRight(result[:maxSlugLength], "-")
	}
	return result
}

// SafeFileName turns an arbitrary local file name into an upload name: a
// slugified base and a lowercase extension. ext, when non-empty, replaces
// the original extension. An empty base becomes fallback.
func SafeFileName(name, ext, fallback string) string {
	base := filepath.Base(name)
	origExt := filepath.Ext(base)
	base = strings.TrimSuffix(base, origExt)

	if ext == "" {
		ext = origExt
	}
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	slug := Slugify(base)
	if slug == "" {
		slug = fallback
	}
	return slug + ext
}
