// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render writes lists, records, forms errors and the dashboard to a
// terminal.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/olegiv/newsdesk/internal/model"
	"github.com/olegiv/newsdesk/internal/pagination"
)

const (
	// EmptyText is shown in place of rows when a list is empty.
	EmptyText = "No data available"
	// Placeholder stands in for a missing value.
	Placeholder = "-"

	DateLayout     = "Jan 02, 2006"
	DateTimeLayout = "Jan 02, 2006 15:04"
)

// FormatDate formats t as "Mar 04, 2026", or Placeholder when unset.
func FormatDate(t model.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format(DateLayout)
}

// FormatDateTime formats t as "Mar 04, 2026 09:30", or Placeholder when
// unset.
func FormatDateTime(t model.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format(DateTimeLayout)
}

// Truncate shortens s to at most length runes, marking the cut with "...".
func Truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	if length <= 3 {
		return string(r[:length])
	}
	return string(r[:length-3]) + "..."
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// Renderer writes human-readable output.
type Renderer struct {
	w       io.Writer
	printer *message.Printer
	caser   cases.Caser
	now     func() time.Time
}

// New returns a Renderer writing to w with English number formatting.
func New(w io.Writer) *Renderer {
	return &Renderer{
		w:       w,
		printer: message.NewPrinter(language.English),
		caser:   cases.Title(language.English),
		now:     time.Now,
	}
}

// Number formats n with thousands separators.
func (r *Renderer) Number(n int) string {
	return r.printer.Sprintf("%d", n)
}

// Label turns a wire value such as "sub_category" or "published" into a
// display label.
func (r *Renderer) Label(s string) string {
	if s == "" {
		return Placeholder
	}
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return r.caser.String(s)
}

// Printf writes formatted text.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

// Table is a list screen: a header row and cell rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Table writes t as aligned columns. An empty table shows EmptyText. The
// pagination footer is written only when page is non-nil and has rows.
func (r *Renderer) Table(t Table, page *pagination.Page) error {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, strings.Join(t.Headers, "\t")); err != nil {
		return err
	}
	if len(t.Rows) == 0 {
		if _, err := fmt.Fprintln(tw, EmptyText); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if page == nil || !page.ShouldShow() {
		return nil
	}
	_, err := fmt.Fprintf(r.w, "\nPage %d of %d  |  %s  |  Rows per page: %d\n",
		page.Number(), page.TotalPages, page.Range(), page.PerPage)
	return err
}

// Field is one labelled value of a record view.
type Field struct {
	Label string
	Value string
}

// Record writes fields as an aligned label/value list.
func (r *Renderer) Record(fields []Field) error {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	for _, f := range fields {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", f.Label, orPlaceholder(f.Value)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// FieldErrors writes validation errors one per line, sorted by field.
func (r *Renderer) FieldErrors(errs map[string]string) {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.Printf("  %s: %s\n", name, errs[name])
	}
}
