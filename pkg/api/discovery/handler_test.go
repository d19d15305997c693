package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	core "reportfinder/pkg/core/discovery"
	"reportfinder/pkg/core/queryparse"
	"reportfinder/pkg/core/search"
)

type stubSearch struct {
	results []search.Result
}

func (s *stubSearch) Search(ctx context.Context, query string, num int) ([]search.Result, error) {
	return s.results, nil
}

func (s *stubSearch) Enabled() bool { return true }

type stubPages struct {
	pages map[string]string
}

func (s *stubPages) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	html, ok := s.pages[url]
	if !ok {
		return nil, fmt.Errorf("fetch %s: status 404", url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func newTestHandler() *Handler {
	searcher := &stubSearch{results: []search.Result{
		{
			Link:    "https://www.acmeports.com/",
			Title:   "Acme Ports",
			Snippet: "port operator",
		},
		{
			Link:        "https://www.acmeports.com/files/annual-report-2023.pdf",
			Title:       "Acme Ports Annual Report 2023",
			Snippet:     "audited consolidated financial statements",
			DisplayLink: "www.acmeports.com",
		},
	}}
	fetcher := &stubPages{pages: map[string]string{
		"https://www.acmeports.com/": `<html>
<head><title>Acme Ports | Home</title></head>
<body><p>Acme Ports operates maritime port terminals. Ticker: ACME listed on LSE.
Headquartered in United Kingdom.</p>
<a href="/investors/">Investor Relations</a></body></html>`,
	}}
	agent := core.NewAgent(searcher, fetcher)
	return NewHandler(agent, queryparse.NewParser(nil))
}

func postSearch(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/discovery/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.HandleSearch(rec, req)
	return rec
}

func TestHandleSearchStructuredRequest(t *testing.T) {
	handler := newTestHandler()
	rec := postSearch(t, handler, `{"company": "Acme Ports", "doc_types": ["annual report"], "start_year": 2023, "end_year": 2023}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result core.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if result.RunID == "" {
		t.Errorf("run id missing")
	}
	if len(result.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d: %s", len(result.Documents), rec.Body.String())
	}
	if result.Documents[0].Year != 2023 {
		t.Errorf("year = %d", result.Documents[0].Year)
	}
}

func TestHandleSearchFreeFormQuery(t *testing.T) {
	handler := newTestHandler()
	rec := postSearch(t, handler, `{"query": "Annual report for Acme Ports 2023"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result core.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if result.Request.DateRange != "2023-2023" {
		t.Errorf("date range = %q", result.Request.DateRange)
	}
}

func TestHandleSearchRejectsEmptyRequest(t *testing.T) {
	handler := newTestHandler()
	if rec := postSearch(t, handler, `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	if rec := postSearch(t, handler, `not json`); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleSearchRejectsWrongMethod(t *testing.T) {
	handler := newTestHandler()
	req := httptest.NewRequest("GET", "/api/discovery/search", nil)
	rec := httptest.NewRecorder()
	handler.HandleSearch(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleSearchOptionsPreflight(t *testing.T) {
	handler := newTestHandler()
	req := httptest.NewRequest("OPTIONS", "/api/discovery/search", nil)
	rec := httptest.NewRecorder()
	handler.HandleSearch(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("missing CORS header")
	}
}
