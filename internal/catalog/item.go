// Package catalog holds the price-catalog item model and the in-memory
// query engine used by the catalog browser.
package catalog

import "sort"

// AllCategories is the sentinel category meaning "no category filter".
const AllCategories = "all"

// Item is an immutable catalog record. Code is unique across the catalog.
// Category is the catalog's own grouping label; it is unrelated to a budget
// chapter and must not be conflated with one.
type Item struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
	Category    string  `json:"category"`
}

// Categories returns the sorted unique category labels found in items,
// with the AllCategories sentinel prepended. This feeds the category
// filter dropdown.
func Categories(items []Item) []string {
	seen := make(map[string]bool, len(items))
	var cats []string
	for _, it := range items {
		if it.Category == "" || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		cats = append(cats, it.Category)
	}
	sort.Strings(cats)
	return append([]string{AllCategories}, cats...)
}
