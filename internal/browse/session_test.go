package browse

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/buildwise/buildwise/internal/budget"
	"github.com/buildwise/buildwise/internal/catalog"
	"github.com/buildwise/buildwise/internal/catalog/source"
)

func testItems() []catalog.Item {
	return []catalog.Item{
		{Code: "A1", Description: "Concrete slab", Unit: "m2", UnitPrice: 100, Category: "Structure"},
		{Code: "A2", Description: "Rebar mesh", Unit: "kg", UnitPrice: 50, Category: "Structure"},
		{Code: "B1", Description: "Interior paint", Unit: "gal", UnitPrice: 75, Category: "Finishes"},
	}
}

// fakeSource records requests and answers through a caller-supplied func.
type fakeSource struct {
	mu      sync.Mutex
	reqs    []source.Request
	respond func(ctx context.Context, req source.Request) (source.Page, error)
}

func (f *fakeSource) Fetch(ctx context.Context, req source.Request) (source.Page, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	respond := f.respond
	f.mu.Unlock()
	if respond != nil {
		return respond(ctx, req)
	}
	return source.Page{CurrentPage: req.Page}, nil
}

func (f *fakeSource) requests() []source.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]source.Request, len(f.reqs))
	copy(out, f.reqs)
	return out
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestOpenFetchesFirstPage(t *testing.T) {
	src := source.NewLocalSource(testItems())
	sess := Open(context.Background(), src, 10)
	defer sess.Close()

	waitFor(t, func() bool { return !sess.Snapshot().Loading })
	snap := sess.Snapshot()
	if snap.Err != nil {
		t.Fatalf("unexpected error: %v", snap.Err)
	}
	if snap.Page.TotalItems != 3 {
		t.Fatalf("expected full catalog, got %d items", snap.Page.TotalItems)
	}
}

func TestSearchIsDebounced(t *testing.T) {
	fake := &fakeSource{}
	sess := Open(context.Background(), fake, 10)
	defer sess.Close()
	waitFor(t, func() bool { return len(fake.requests()) == 1 })

	sess.SetDebounce(30 * time.Millisecond)
	sess.SetSearch("p")
	sess.SetSearch("pa")
	sess.SetSearch("pai")

	// Only the final term survives the restarted delay.
	waitFor(t, func() bool { return len(fake.requests()) == 2 })
	reqs := fake.requests()
	if reqs[1].Search != "pai" {
		t.Fatalf("expected the last keystroke's term, got %q", reqs[1].Search)
	}

	// And nothing else arrives once input is quiet.
	time.Sleep(80 * time.Millisecond)
	if got := len(fake.requests()); got != 2 {
		t.Fatalf("expected no further fetches, got %d total", got)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	fake := &fakeSource{}
	fake.respond = func(ctx context.Context, req source.Request) (source.Page, error) {
		if req.Category == "Structure" {
			return source.Page{TotalItems: 2, CurrentPage: req.Page}, nil
		}
		// The initial unfiltered fetch stalls until released.
		<-release
		return source.Page{TotalItems: 99, CurrentPage: req.Page}, nil
	}

	sess := Open(context.Background(), fake, 10)
	defer sess.Close()
	waitFor(t, func() bool { return len(fake.requests()) == 1 })

	// A newer query supersedes the stalled fetch.
	sess.SetCategory("Structure")
	waitFor(t, func() bool {
		snap := sess.Snapshot()
		return !snap.Loading && snap.Page.TotalItems == 2
	})

	// Let the stale response land; it must be discarded, not applied.
	close(release)
	time.Sleep(50 * time.Millisecond)
	if got := sess.Snapshot().Page.TotalItems; got != 2 {
		t.Fatalf("stale response was applied: total %d", got)
	}
}

func TestCloseDiscardsInFlightFetch(t *testing.T) {
	release := make(chan struct{})
	fake := &fakeSource{}
	fake.respond = func(ctx context.Context, req source.Request) (source.Page, error) {
		<-release
		return source.Page{TotalItems: 99}, nil
	}

	sess := Open(context.Background(), fake, 10)
	waitFor(t, func() bool { return len(fake.requests()) == 1 })

	sess.Close()
	close(release)
	time.Sleep(50 * time.Millisecond)

	if got := sess.Snapshot().Page.TotalItems; got != 0 {
		t.Fatalf("response applied after close: total %d", got)
	}
}

func TestCloseCancelsPendingDebounce(t *testing.T) {
	fake := &fakeSource{}
	sess := Open(context.Background(), fake, 10)
	waitFor(t, func() bool { return len(fake.requests()) == 1 })

	sess.SetDebounce(30 * time.Millisecond)
	sess.SetSearch("pipe")
	sess.Close()

	time.Sleep(80 * time.Millisecond)
	if got := len(fake.requests()); got != 1 {
		t.Fatalf("debounced fetch fired after close: %d requests", got)
	}
}

func TestFetchErrorIsRecoverable(t *testing.T) {
	fail := true
	fake := &fakeSource{}
	fake.respond = func(ctx context.Context, req source.Request) (source.Page, error) {
		if fail {
			return source.Page{}, &source.FetchError{Err: errors.New("boom")}
		}
		return source.Page{TotalItems: 3, CurrentPage: req.Page}, nil
	}

	sess := Open(context.Background(), fake, 10)
	waitFor(t, func() bool { return sess.Snapshot().Err != nil })

	var fe *source.FetchError
	if !errors.As(sess.Snapshot().Err, &fe) {
		t.Fatalf("expected FetchError, got %v", sess.Snapshot().Err)
	}

	// The failure corrupts nothing: selection still works.
	sess.Toggle(testItems()[0])
	if !sess.Selected("A1") {
		t.Fatal("selection must survive a fetch failure")
	}
	sess.Close()

	// Reopening retries.
	fail = false
	sess2 := Open(context.Background(), fake, 10)
	defer sess2.Close()
	waitFor(t, func() bool {
		snap := sess2.Snapshot()
		return snap.Err == nil && snap.Page.TotalItems == 3
	})
}

func TestToggleAndSelection(t *testing.T) {
	sess := Open(context.Background(), source.NewLocalSource(testItems()), 10)
	defer sess.Close()

	items := testItems()
	sess.Toggle(items[0])
	sess.Toggle(items[2])
	sess.Toggle(items[0]) // off again

	sel := sess.Selection()
	if len(sel) != 1 || sel[0].Code != "B1" {
		t.Fatalf("unexpected selection: %+v", sel)
	}
	if snap := sess.Snapshot(); snap.Selected != 1 {
		t.Fatalf("snapshot selected count wrong: %d", snap.Selected)
	}
}

func TestConfirmMergesIntoChapterAndCloses(t *testing.T) {
	store := budget.NewStore()
	ch := store.AddChapter()
	items := testItems()

	sess := Open(context.Background(), source.NewLocalSource(items), 10)
	sess.Toggle(items[0])
	sess.Toggle(items[1])

	if err := sess.Confirm(store, ch.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(ch.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(ch.Items))
	}
	if sess.Selection() != nil && len(sess.Selection()) != 0 {
		t.Fatal("confirm must clear the selection")
	}

	// Confirming into a deleted chapter surfaces NotFound and keeps the
	// session open so the user can pick another target.
	sess2 := Open(context.Background(), source.NewLocalSource(items), 10)
	defer sess2.Close()
	sess2.Toggle(items[2])
	store.DeleteChapter(ch.ID)
	if err := sess2.Confirm(store, ch.ID); !errors.Is(err, budget.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(sess2.Selection()) != 1 {
		t.Fatal("failed confirm must not drop the selection")
	}
}
