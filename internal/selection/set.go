// Package selection holds the transient multi-select state built while
// browsing the catalog, before the chosen items are confirmed into a
// chapter.
package selection

import "github.com/buildwise/buildwise/internal/catalog"

// Set is an ordered set of catalog items keyed by code. Order is insertion
// order; toggling an item off and back on moves it to the end.
type Set struct {
	items []catalog.Item
}

// New returns an empty selection.
func New() *Set {
	return &Set{}
}

// Toggle adds the item if absent and removes it if present.
func (s *Set) Toggle(item catalog.Item) {
	for i, it := range s.items {
		if it.Code == item.Code {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
	s.items = append(s.items, item)
}

// Contains reports whether an item with the given code is selected.
func (s *Set) Contains(code string) bool {
	for _, it := range s.items {
		if it.Code == code {
			return true
		}
	}
	return false
}

// Items returns the selected items in selection order.
func (s *Set) Items() []catalog.Item {
	out := make([]catalog.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of selected items.
func (s *Set) Len() int {
	return len(s.items)
}

// Clear empties the selection.
func (s *Set) Clear() {
	s.items = nil
}
