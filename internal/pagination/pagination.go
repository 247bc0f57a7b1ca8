// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pagination computes the page controls shown under a list: total
// pages, visible page links and the empty-state decision. Page indexes are
// zero-based, as held by list controllers; page numbers are 1-based, as shown
// to users and sent on the wire.
package pagination

import "fmt"

// RowsPerPageOptions are the page sizes offered to the user.
var RowsPerPageOptions = []int{5, 10, 15, 25, 50}

// Page holds pagination data for one rendered list page.
type Page struct {
	Index      int
	PerPage    int
	TotalRows  int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	Links      []Link
}

// Link represents a single page link.
type Link struct {
	Number     int
	IsCurrent  bool
	IsEllipsis bool
}

// Build creates pagination data for the zero-based page index.
// At most five page numbers around the current one are listed, with the
// first and last pages and ellipses added as needed.
func Build(index, perPage, totalRows int) Page {
	totalPages := CalculateTotalPages(totalRows, perPage)
	current := ClampPage(index+1, totalPages)

	p := Page{
		Index:      current - 1,
		PerPage:    perPage,
		TotalRows:  totalRows,
		TotalPages: totalPages,
		HasPrev:    current > 1,
		HasNext:    current < totalPages,
	}

	start := current - 2
	end := current + 2
	if start < 1 {
		start = 1
		end = 5
	}
	if end > totalPages {
		end = totalPages
		start = end - 4
		if start < 1 {
			start = 1
		}
	}

	if start > 1 {
		p.Links = append(p.Links, Link{Number: 1})
		if start > 2 {
			p.Links = append(p.Links, Link{IsEllipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		p.Links = append(p.Links, Link{Number: i, IsCurrent: i == current})
	}
	if end < totalPages {
		if end < totalPages-1 {
			p.Links = append(p.Links, Link{IsEllipsis: true})
		}
		p.Links = append(p.Links, Link{Number: totalPages})
	}

	return p
}

// Number returns the 1-based page number.
func (p Page) Number() int {
	return p.Index + 1
}

// IsEmpty reports whether there are no rows at all. Lists render an
// empty-state row instead of pagination controls in that case.
func (p Page) IsEmpty() bool {
	return p.TotalRows <= 0
}

// ShouldShow reports whether pagination controls are displayed.
func (p Page) ShouldShow() bool {
	return !p.IsEmpty()
}

// Range describes the rows on the current page, e.g. "11-20 of 42".
func (p Page) Range() string {
	if p.IsEmpty() {
		return "0 of 0"
	}
	start := p.Index*p.PerPage + 1
	end := (p.Index + 1) * p.PerPage
	if end > p.TotalRows {
		end = p.TotalRows
	}
	return fmt.Sprintf("%d-%d of %d", start, end, p.TotalRows)
}

// CalculateTotalPages returns the number of pages, at least 1.
func CalculateTotalPages(totalItems, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	return totalPages
}

// ClampPage ensures the page number is within the valid range [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Window returns the half-open slice bounds [start, end) of a 1-based page
// over totalItems rows. The page is clamped first.
func Window(page, perPage, totalItems int) (start, end int) {
	if perPage <= 0 {
		return 0, totalItems
	}
	page = ClampPage(page, CalculateTotalPages(totalItems, perPage))
	start = (page - 1) * perPage
	if start > totalItems {
		start = totalItems
	}
	end = start + perPage
	if end > totalItems {
		end = totalItems
	}
	return start, end
}
