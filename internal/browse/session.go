// Package browse models one open catalog-browser dialog: its query state,
// its selection, its debounced search and its single outstanding catalog
// fetch. A session lives from dialog open to dialog close; once closed,
// nothing it started may touch shared state again.
package browse

import (
	"context"
	"sync"
	"time"

	"github.com/buildwise/buildwise/internal/budget"
	"github.com/buildwise/buildwise/internal/catalog"
	"github.com/buildwise/buildwise/internal/catalog/source"
	"github.com/buildwise/buildwise/internal/selection"
)

// DefaultDebounce is how long search input must pause before the query
// re-evaluates.
const DefaultDebounce = 300 * time.Millisecond

// Session is the state of one catalog-browsing dialog.
//
// Each visible-state change bumps a generation counter and the fetch result
// is applied only when its generation is still current, so a stale response
// (a fetch that lost a race with a newer query, or with Close) is discarded
// rather than applied.
type Session struct {
	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	src      source.Source
	sel      *selection.Set
	state    catalog.QueryState
	debounce time.Duration
	timer    *time.Timer
	gen      int
	loading  bool
	page     source.Page
	err      error
	notify   func()
}

// Open starts a session against src with an empty selection, mirroring the
// dialog opening. The parent context bounds every fetch the session issues.
func Open(parent context.Context, src source.Source, pageSize int) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		ctx:      ctx,
		cancel:   cancel,
		src:      src,
		sel:      selection.New(),
		state:    catalog.NewQueryState(pageSize),
		debounce: DefaultDebounce,
	}
	s.mu.Lock()
	s.refreshLocked()
	s.mu.Unlock()
	return s
}

// SetDebounce overrides the search debounce interval. Zero disables the
// delay; useful in tests.
func (s *Session) SetDebounce(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debounce = d
}

// SetNotify registers a callback invoked (on the fetching goroutine) after
// an asynchronous result has been applied, so a renderer can refresh.
func (s *Session) SetNotify(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

// SetSearch records a search keystroke. The query re-evaluates only after
// input has paused for the debounce interval; every keystroke restarts the
// delay, and closing the session cancels it entirely.
func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetSearch(term)
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.debounce <= 0 {
		s.refreshLocked()
		return
	}
	gen := s.gen + 1
	s.gen = gen
	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.ctx.Err() != nil || s.gen != gen {
			return
		}
		s.refreshLocked()
	})
}

// SetCategory switches the category filter and re-queries immediately.
func (s *Session) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetCategory(category)
	s.refreshLocked()
}

// ToggleSort sorts by key, flipping direction on a repeated key.
func (s *Session) ToggleSort(key catalog.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ToggleSort(key)
	s.refreshLocked()
}

// SetPageSize changes the page size and lands back on page 1.
func (s *Session) SetPageSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetPageSize(size)
	s.refreshLocked()
}

// SetPage moves to the given 1-based page.
func (s *Session) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetPage(page)
	s.refreshLocked()
}

// refreshLocked issues the fetch for the current state. Callers hold s.mu.
func (s *Session) refreshLocked() {
	if s.ctx.Err() != nil {
		return
	}
	s.gen++
	gen := s.gen
	s.loading = true
	req := source.Request{
		Page:     s.state.Page,
		Limit:    s.state.PageSize,
		Search:   s.state.SearchTerm,
		Category: s.state.Category,
	}
	go func() {
		page, err := s.src.Fetch(s.ctx, req)
		s.mu.Lock()
		if s.ctx.Err() != nil || s.gen != gen {
			// Stale: a newer query superseded this fetch, or the dialog
			// closed while it was in flight.
			s.mu.Unlock()
			return
		}
		s.page = page
		s.err = err
		s.loading = false
		notify := s.notify
		s.mu.Unlock()
		if notify != nil {
			notify()
		}
	}()
}

// Snapshot is the session state a renderer needs.
type Snapshot struct {
	State    catalog.QueryState
	Page     source.Page
	Err      error
	Loading  bool
	Selected int
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:    s.state,
		Page:     s.page,
		Err:      s.err,
		Loading:  s.loading,
		Selected: s.sel.Len(),
	}
}

// Toggle flips the item in the session's selection.
func (s *Session) Toggle(item catalog.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Toggle(item)
}

// Selected reports whether the code is currently selected.
func (s *Session) Selected(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Contains(code)
}

// Selection returns the selected items in selection order.
func (s *Session) Selection() []catalog.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Items()
}

// Confirm merges the selection into the target chapter (duplicates by code
// are skipped by the store) and closes the session. A fetch error never
// blocks confirmation: the selection was built from pages that did arrive.
func (s *Session) Confirm(store *budget.Store, chapterID string) error {
	s.mu.Lock()
	items := s.sel.Items()
	s.mu.Unlock()
	if err := store.AddItems(chapterID, items); err != nil {
		return err
	}
	s.Close()
	return nil
}

// Close ends the session: the pending debounce is dropped, the in-flight
// fetch is cancelled and its late result discarded, and the selection is
// cleared.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.cancel()
	s.sel.Clear()
}
