// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package richtext converts between the rich-text HTML produced by editors,
// Markdown typed at a terminal and the plain text the API stores.
package richtext

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	// stripPolicy removes every tag and keeps text content.
	stripPolicy = bluemonday.StrictPolicy()

	// ugcPolicy allows the formatting tags an editor produces.
	ugcPolicy = bluemonday.UGCPolicy()

	// blockBoundary matches tags that end a line of text.
	blockBoundary = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|li|h[1-6]|blockquote|pre|tr)>`)

	// blankLines matches runs of empty lines.
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// PlainText returns the text content of an HTML fragment. Block boundaries
// become line breaks and entities are decoded.
func PlainText(fragment string) string {
	if fragment == "" {
		return ""
	}
	s := blockBoundary.ReplaceAllString(fragment, "$0\n")
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// IsBlank reports whether an HTML fragment has no visible text, as with an
// editor left at "<p><br></p>".
func IsBlank(fragment string) bool {
	return PlainText(fragment) == ""
}

// Sanitize keeps safe formatting markup and drops scripts, event handlers
// and other active content.
func Sanitize(fragment string) string {
	return ugcPolicy.Sanitize(fragment)
}

// FromMarkdown renders Markdown to sanitized HTML.
func FromMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return Sanitize(buf.String()), nil
}
