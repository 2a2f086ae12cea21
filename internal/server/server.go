// Package server exposes the catalog over HTTP: the paginated, filterable
// items endpoint the budget builder's browser consumes.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/buildwise/buildwise/internal/catalog"
	"github.com/buildwise/buildwise/internal/catalog/source"
)

// ItemLister is the slice of the repository the server needs.
type ItemLister interface {
	List(ctx context.Context) ([]catalog.Item, error)
}

// Server serves the items API.
type Server struct {
	items ItemLister
	mux   *http.ServeMux
}

// New wires the routes.
func New(items ItemLister) *Server {
	s := &Server{items: items, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /api/items", s.handleItems)
	s.mux.HandleFunc("GET /api/categories", s.handleCategories)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleItems answers GET /api/items?page=&limit=&search=&category=.
//
// category may be a comma-separated list; an empty list or one containing
// the "all" sentinel disables category filtering. Filtering applies the
// category first and the search over the already-narrowed set, the same
// order as the client-side engine.
func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	page := intQuery(r, "page", 1)
	limit := intQuery(r, "limit", source.DefaultLimit)
	search := r.URL.Query().Get("search")
	categories := splitCategories(r.URL.Query().Get("category"))

	all, err := s.items.List(r.Context())
	if err != nil {
		log.WithError(err).Error("list catalog items")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "could not read catalog"})
		return
	}

	filtered := filterByCategories(all, categories)

	state := catalog.NewQueryState(limit)
	state.SetSearch(search)
	state.SetPage(page)
	res := catalog.Query(filtered, state)
	if res.PageItems == nil {
		res.PageItems = []catalog.Item{}
	}

	writeJSON(w, http.StatusOK, source.Page{
		Items:       res.PageItems,
		TotalItems:  res.TotalItems,
		TotalPages:  res.TotalPages,
		CurrentPage: page,
	})
}

// handleCategories answers GET /api/categories with the distinct category
// labels, sentinel first.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	all, err := s.items.List(r.Context())
	if err != nil {
		log.WithError(err).Error("list catalog items")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "could not read catalog"})
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"categories": catalog.Categories(all)})
}

func filterByCategories(items []catalog.Item, categories []string) []catalog.Item {
	if len(categories) == 0 {
		return items
	}
	want := make(map[string]bool, len(categories))
	for _, c := range categories {
		if c == catalog.AllCategories {
			return items
		}
		want[c] = true
	}
	var out []catalog.Item
	for _, it := range items {
		if want[it.Category] {
			out = append(out, it)
		}
	}
	return out
}

func splitCategories(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func intQuery(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("encode response")
	}
}
