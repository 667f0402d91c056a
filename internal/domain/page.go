package domain

import (
	"strconv"
	"strings"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
	MaxListOffset    = 1_000_000
)

type Page struct {
	Limit  int
	Offset int
}

// CallbackPage is a single page of records plus the total count for the
// queried scope (all callbacks, or one customer's). CustomerID is set only
// on customer-scoped pages.
type CallbackPage struct {
	CustomerID string           `json:"customer_id,omitempty"`
	Total      int64            `json:"total"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
	Results    []CallbackRecord `json:"results"`
}

// ParsePage turns raw limit/offset query values into a Page. Omitted values
// fall back to defaults; explicit values must be a positive limit and a
// non-negative offset. Values beyond the maxima are clamped, not rejected.
func ParsePage(limitRaw, offsetRaw string) (Page, error) {
	page := Page{Limit: DefaultListLimit}

	if raw := strings.TrimSpace(limitRaw); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return Page{}, ErrInvalidLimit
		}
		page.Limit = limit
	}

	if raw := strings.TrimSpace(offsetRaw); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return Page{}, ErrInvalidOffset
		}
		page.Offset = offset
	}

	return page.Clamp(), nil
}

// Clamp bounds a page to the list maxima and repairs nonsensical values so
// callers holding a hand-built Page cannot request an unbounded read.
func (p Page) Clamp() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultListLimit
	}
	if p.Limit > MaxListLimit {
		p.Limit = MaxListLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Offset > MaxListOffset {
		p.Offset = MaxListOffset
	}
	return p
}
