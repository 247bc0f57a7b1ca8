// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package richtext

import (
	"strings"
	"testing"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Just text", "Just text"},
		{"inline tags", "<p>The <strong>budget</strong> passed</p>", "The budget passed"},
		{"paragraphs", "<p>First</p><p>Second</p>", "First\nSecond"},
		{"line break", "one<br>two<br/>three", "one\ntwo\nthree"},
		{"entities", "<p>Tom &amp; Jerry &lt;3</p>", "Tom & Jerry <3"},
		{"script dropped", "<p>ok</p><script>alert(1)</script>", "ok"},
		{"empty editor", "<p><br></p>", ""},
		{"list", "<ul><li>a</li><li>b</li></ul>", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank("<p> &nbsp; </p>") {
		t.Error("whitespace-only fragment should be blank")
	}
	if IsBlank("<p>x</p>") {
		t.Error("fragment with text should not be blank")
	}
}

func TestFromMarkdown(t *testing.T) {
	got, err := FromMarkdown("# Title\n\nSome **bold** text.\n\n<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("FromMarkdown: %v", err)
	}
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("unexpected HTML: %q", got)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("script survived: %q", got)
	}
}
