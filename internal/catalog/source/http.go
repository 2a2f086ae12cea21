package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hashicorp/go-retryablehttp"
)

// HTTPSource fetches catalog pages from the remote items endpoint.
type HTTPSource struct {
	baseURL string
	client  *retryablehttp.Client
}

// NewHTTPSource returns a source for the items endpoint at baseURL
// (e.g. "http://localhost:8080"). Transient failures are retried a few
// times before surfacing a FetchError.
func NewHTTPSource(baseURL string) *HTTPSource {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = log.New(io.Discard, "", 0)
	return &HTTPSource{baseURL: baseURL, client: client}
}

// Fetch requests one catalog page. The context bounds the whole exchange,
// so an abandoned browse session cancels its in-flight request.
func (s *HTTPSource) Fetch(ctx context.Context, req Request) (Page, error) {
	q := url.Values{}
	if req.Page > 0 {
		q.Set("page", strconv.Itoa(req.Page))
	}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.Category != "" {
		q.Set("category", req.Category)
	}

	u := s.baseURL + "/api/items?" + q.Encode()
	hreq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Page{}, &FetchError{Err: err}
	}

	resp, err := s.client.Do(hreq)
	if err != nil {
		return Page{}, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, &FetchError{Err: fmt.Errorf("items endpoint returned %s", resp.Status)}
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return Page{}, &FetchError{Err: fmt.Errorf("decode items response: %w", err)}
	}
	return page, nil
}
