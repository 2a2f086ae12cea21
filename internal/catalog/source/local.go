package source

import (
	"context"

	"github.com/buildwise/buildwise/internal/catalog"
)

// LocalSource serves pages from a catalog already held in memory by
// delegating to the query engine. This is the fully client-side mode the
// browser uses once the whole catalog has been fetched in one go.
type LocalSource struct {
	items []catalog.Item
}

// NewLocalSource wraps the given catalog. The slice is not copied; the
// catalog is immutable by convention.
func NewLocalSource(items []catalog.Item) *LocalSource {
	return &LocalSource{items: items}
}

// DefaultLimit is the endpoint's page size when the request names none.
const DefaultLimit = 50

// Fetch answers the same contract as the remote endpoint, minus the network.
func (s *LocalSource) Fetch(_ context.Context, req Request) (Page, error) {
	limit := req.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	state := catalog.NewQueryState(limit)
	state.SetCategory(req.Category)
	state.SetSearch(req.Search)
	state.SetPage(req.Page)

	res := catalog.Query(s.items, state)
	return Page{
		Items:       res.PageItems,
		TotalItems:  res.TotalItems,
		TotalPages:  res.TotalPages,
		CurrentPage: state.Page,
	}, nil
}
