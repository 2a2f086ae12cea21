// Package budget owns the in-memory budget: an ordered list of chapters,
// each holding catalog line items with quantities. The store lives for the
// session only; persistence is deliberately out of scope.
package budget

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/buildwise/buildwise/internal/catalog"
)

// ErrNotFound is returned when an operation references a chapter that no
// longer exists, e.g. one deleted while an edit was in flight. Callers
// recover locally; it is never fatal.
var ErrNotFound = errors.New("not found")

// DefaultChapterName is the placeholder given to freshly created chapters.
const DefaultChapterName = "New chapter (click to rename)"

// LineItem is a catalog item placed into a chapter with a quantity.
type LineItem struct {
	catalog.Item
	Quantity float64
}

// Total returns UnitPrice × Quantity for this line.
func (li LineItem) Total() float64 {
	return li.UnitPrice * li.Quantity
}

// Chapter is a named budget grouping. ID is opaque and stable for the
// chapter's lifetime; Items keeps insertion order and is unique by code.
type Chapter struct {
	ID    string
	Name  string
	Items []LineItem
}

func (c *Chapter) hasItem(code string) bool {
	for _, li := range c.Items {
		if li.Code == code {
			return true
		}
	}
	return false
}

// Store holds the ordered chapters of the current budget. All mutations run
// on a single event goroutine by contract, so the store carries no locks.
type Store struct {
	chapters []*Chapter
}

// NewStore returns an empty budget.
func NewStore() *Store {
	return &Store{}
}

// AddChapter appends a new chapter with a fresh id and the default
// placeholder name, and returns it.
func (s *Store) AddChapter() *Chapter {
	c := &Chapter{ID: uuid.NewString(), Name: DefaultChapterName}
	s.chapters = append(s.chapters, c)
	return c
}

// Chapters returns the chapters in budget order.
func (s *Store) Chapters() []*Chapter {
	return s.chapters
}

// Chapter returns the chapter with the given id, or nil.
func (s *Store) Chapter(id string) *Chapter {
	for _, c := range s.chapters {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RenameChapter replaces the chapter's display name. Empty names are
// allowed; the core imposes no validation.
func (s *Store) RenameChapter(id, name string) error {
	c := s.Chapter(id)
	if c == nil {
		return fmt.Errorf("rename chapter %s: %w", id, ErrNotFound)
	}
	c.Name = name
	return nil
}

// DeleteChapter removes the chapter and all its items. Deleting an unknown
// id is a no-op.
func (s *Store) DeleteChapter(id string) {
	for i, c := range s.chapters {
		if c.ID == id {
			s.chapters = append(s.chapters[:i], s.chapters[i+1:]...)
			return
		}
	}
}

// UpsertQuantity sets the quantity of an existing item in the chapter, or
// removes the item when qty is zero or negative. It never creates items:
// items enter a chapter only through AddItems.
func (s *Store) UpsertQuantity(chapterID, code string, qty float64) error {
	c := s.Chapter(chapterID)
	if c == nil {
		return fmt.Errorf("set quantity in chapter %s: %w", chapterID, ErrNotFound)
	}
	if qty <= 0 {
		for i, li := range c.Items {
			if li.Code == code {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return nil
			}
		}
		return nil
	}
	for i := range c.Items {
		if c.Items[i].Code == code {
			c.Items[i].Quantity = qty
			return nil
		}
	}
	return nil
}

// AddItems appends the given catalog items to the chapter as line items with
// quantity 1, preserving the given order. Items whose code is already in the
// chapter are silently skipped; quantities are never incremented, so the
// call is idempotent for already-present codes.
func (s *Store) AddItems(chapterID string, items []catalog.Item) error {
	c := s.Chapter(chapterID)
	if c == nil {
		return fmt.Errorf("add items to chapter %s: %w", chapterID, ErrNotFound)
	}
	for _, it := range items {
		if c.hasItem(it.Code) {
			continue
		}
		c.Items = append(c.Items, LineItem{Item: it, Quantity: 1})
	}
	return nil
}

// Clear discards the entire budget.
func (s *Store) Clear() {
	s.chapters = nil
}

// ChapterTotal sums UnitPrice × Quantity over the chapter's items. An empty
// or unknown chapter totals 0.
func (s *Store) ChapterTotal(id string) float64 {
	c := s.Chapter(id)
	if c == nil {
		return 0
	}
	var total float64
	for _, li := range c.Items {
		total += li.Total()
	}
	return total
}

// GrandTotal sums ChapterTotal over all chapters. Always derived, never
// stored.
func (s *Store) GrandTotal() float64 {
	var total float64
	for _, c := range s.chapters {
		total += s.ChapterTotal(c.ID)
	}
	return total
}
