package repository

import "time"

// CatalogRow is a catalog item as stored, with bookkeeping columns the
// in-memory catalog.Item does not carry.
type CatalogRow struct {
	Code        string
	Description string
	Unit        string
	UnitPrice   float64
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
