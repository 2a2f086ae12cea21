// Package source provides access to the item catalog: remotely over the
// paginated items endpoint, or locally over an already fetched catalog.
package source

import (
	"context"
	"fmt"

	"github.com/buildwise/buildwise/internal/catalog"
)

// Request selects one page of the catalog. An empty or sentinel Category
// means no category filtering; an empty Search means no text filtering.
type Request struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

// Page is one page of catalog items plus the paging envelope.
type Page struct {
	Items       []catalog.Item `json:"items"`
	TotalItems  int            `json:"totalItems"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

// Source serves pages of the catalog.
type Source interface {
	Fetch(ctx context.Context, req Request) (Page, error)
}

// FetchError marks a catalog fetch failure. It is recoverable: the browser
// presents an empty state and the user retries by reopening; selection and
// budget state are untouched.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("catalog fetch: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
