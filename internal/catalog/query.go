package catalog

import (
	"sort"
	"strconv"
	"strings"
)

// SortKey identifies the column a query is ordered by.
type SortKey int

const (
	SortNone SortKey = iota
	SortByCode
	SortByDescription
	SortByUnit
	SortByPrice
)

// QueryState holds the browser's current filter/sort/page settings.
// Use the Set* methods rather than assigning fields directly: any change to
// the filters, the sort or the page size lands back on page 1, since the old
// page number is meaningless against a reshaped result set.
type QueryState struct {
	SearchTerm string
	Category   string
	SortKey    SortKey
	SortDesc   bool
	Page       int
	PageSize   int
}

// NewQueryState returns a state showing page 1 of all categories.
func NewQueryState(pageSize int) QueryState {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return QueryState{Category: AllCategories, Page: 1, PageSize: pageSize}
}

const defaultPageSize = 10

func (s *QueryState) SetSearch(term string) {
	s.SearchTerm = term
	s.Page = 1
}

func (s *QueryState) SetCategory(category string) {
	if category == "" {
		category = AllCategories
	}
	s.Category = category
	s.Page = 1
}

// ToggleSort sorts by key ascending, or flips to descending when the key is
// already the ascending sort column.
func (s *QueryState) ToggleSort(key SortKey) {
	if s.SortKey == key && !s.SortDesc {
		s.SortDesc = true
	} else {
		s.SortKey = key
		s.SortDesc = false
	}
	s.Page = 1
}

func (s *QueryState) SetPageSize(size int) {
	if size < 1 {
		size = defaultPageSize
	}
	s.PageSize = size
	s.Page = 1
}

func (s *QueryState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.Page = page
}

// Result is one page of a filtered/sorted catalog view.
type Result struct {
	PageItems  []Item
	TotalItems int
	TotalPages int
}

// Query filters, sorts and paginates items according to state.
//
// The stages compose by narrowing and their order matters: the category
// filter runs first, then the search runs over the already category-filtered
// set, then the stable sort, then the page slice. A search term matching an
// item outside the selected category therefore never resurfaces it.
func Query(items []Item, state QueryState) Result {
	filtered := filterByCategory(items, state.Category)
	filtered = filterBySearch(filtered, state.SearchTerm)

	if state.SortKey != SortNone {
		sortItems(filtered, state.SortKey, state.SortDesc)
	}

	total := len(filtered)
	pageSize := state.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	totalPages := (total + pageSize - 1) / pageSize

	page := state.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= total {
		// A page beyond the last one is an empty page, not an error.
		return Result{TotalItems: total, TotalPages: totalPages}
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return Result{PageItems: filtered[start:end], TotalItems: total, TotalPages: totalPages}
}

func filterByCategory(items []Item, category string) []Item {
	if category == "" || category == AllCategories {
		out := make([]Item, len(items))
		copy(out, items)
		return out
	}
	var out []Item
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

func filterBySearch(items []Item, term string) []Item {
	if term == "" {
		return items
	}
	q := strings.ToLower(term)
	out := items[:0]
	for _, it := range items {
		if matchesSearch(it, q) {
			out = append(out, it)
		}
	}
	return out
}

// matchesSearch reports whether a lowercased term hits the item's code,
// description, unit, or stringified unit price.
func matchesSearch(it Item, q string) bool {
	return strings.Contains(strings.ToLower(it.Code), q) ||
		strings.Contains(strings.ToLower(it.Description), q) ||
		strings.Contains(strings.ToLower(it.Unit), q) ||
		strings.Contains(formatPrice(it.UnitPrice), q)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// sortItems stable-sorts in place so ties keep their pre-sort relative order.
func sortItems(items []Item, key SortKey, desc bool) {
	less := func(a, b Item) bool {
		switch key {
		case SortByCode:
			return a.Code < b.Code
		case SortByDescription:
			return a.Description < b.Description
		case SortByUnit:
			return a.Unit < b.Unit
		case SortByPrice:
			return a.UnitPrice < b.UnitPrice
		}
		return false
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			// Swapping operands keeps the comparator strict, so equal keys
			// still preserve insertion order.
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
