// Package pagination slices ordered result sets into fixed-size pages and
// rebuilds query strings for the page navigation links so that every other
// active parameter (notably the search filter) is carried forward.
package pagination

import "strconv"

// PageSize is the number of records shown per list page.
const PageSize = 5

// Page is one window of an ordered result set plus navigation metadata.
type Page[T any] struct {
	Items      []T
	Number     int // 1-based, already clamped to a valid page
	TotalPages int // at least 1, even for an empty set
	TotalItems int
}

// Paginate slices items into the requested 1-based page. Out-of-range pages
// clamp to the nearest valid page rather than erroring: page < 1 becomes 1,
// page beyond the last becomes the last page.
func Paginate[T any](items []T, page int) Page[T] {
	total := len(items)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     page,
		TotalPages: totalPages,
		TotalItems: total,
	}
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// Prev returns the previous page number (valid only when HasPrev).
func (p Page[T]) Prev() int { return p.Number - 1 }

// Next returns the next page number (valid only when HasNext).
func (p Page[T]) Next() int { return p.Number + 1 }

// PageLink is one entry in the page navigation control.
type PageLink struct {
	Number  int
	Query   string // full query string for this page, filters preserved
	Current bool
}

// Links produces one link per navigable page. Each link's query string is
// the current parameters with only the page key replaced, so active filters
// survive navigation.
func Links(params Params, current, totalPages int) []PageLink {
	links := make([]PageLink, 0, totalPages)
	for n := 1; n <= totalPages; n++ {
		links = append(links, PageLink{
			Number:  n,
			Query:   params.WithValue("page", strconv.Itoa(n)).Encode(),
			Current: n == current,
		})
	}
	return links
}
