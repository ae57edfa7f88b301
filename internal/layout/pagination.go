// Package layout splits an invoice into fixed-capacity print pages.
// It is the single source of truth for how many line items fit on a page.
package layout

import (
	"fmt"

	"smartinvoice/internal/model"
)

// DefaultCapacity matches an A4 page: the first page carries the full header and party blocks.
var DefaultCapacity = Capacity{First: 8, Continuation: 15}

// Capacity is the maximum number of line items on the first page and on every later page.
type Capacity struct {
	First        int `json:"first"`
	Continuation int `json:"continuation"`
}

// Validate requires at least one row on the first page and more room on continuation pages.
func (c Capacity) Validate() error {
	if c.First < 1 {
		return fmt.Errorf("first page capacity must be positive, got %d", c.First)
	}
	if c.Continuation <= c.First {
		return fmt.Errorf("continuation capacity (%d) must exceed first page capacity (%d)", c.Continuation, c.First)
	}
	return nil
}

// Page is one print page. Offset is the number of items on all preceding pages.
type Page struct {
	Index   int              `json:"index"`
	IsFirst bool             `json:"isFirst"`
	IsLast  bool             `json:"isLast"`
	Offset  int              `json:"offset"`
	Items   []model.LineItem `json:"items"`
}

// Number returns the display number of the item at local position i.
func (p Page) Number(i int) int {
	return p.Offset + i + 1
}

// Empty reports whether the page renders the "no items" placeholder.
func (p Page) Empty() bool {
	return len(p.Items) == 0
}

// Paginate fills the first page up to c.First items, then continuation pages up to
// c.Continuation each. Zero items still yield a single empty page. Item order is preserved
// and slices alias the input. An invalid capacity falls back to DefaultCapacity.
func Paginate(items []model.LineItem, c Capacity) []Page {
	if c.Validate() != nil {
		c = DefaultCapacity
	}
	if len(items) == 0 {
		return []Page{{Index: 0, IsFirst: true, IsLast: true, Items: []model.LineItem{}}}
	}

	pages := make([]Page, 0, PageCount(len(items), c))
	offset := 0
	for offset < len(items) {
		limit := c.Continuation
		if offset == 0 {
			limit = c.First
		}
		end := offset + limit
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, Page{
			Index:   len(pages),
			IsFirst: offset == 0,
			Offset:  offset,
			Items:   items[offset:end:end],
		})
		offset = end
	}
	pages[len(pages)-1].IsLast = true
	return pages
}

// PageCount returns len(Paginate(items, c)) without building the pages.
func PageCount(n int, c Capacity) int {
	if c.Validate() != nil {
		c = DefaultCapacity
	}
	if n <= c.First {
		return 1
	}
	rest := n - c.First
	return 1 + (rest+c.Continuation-1)/c.Continuation
}
