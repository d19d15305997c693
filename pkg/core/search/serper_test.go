package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchParsesOrganicResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") != "test-key" {
			t.Errorf("missing X-API-KEY header")
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"organic":[
			{"link":"https://example.com/ar2023.pdf","title":"Annual Report 2023","snippet":"Audited statements","displayLink":"example.com"},
			{"link":"https://example.com/q3.pdf","title":"Q3 Results","snippet":"","displayLink":"example.com"}
		]}`))
	}))
	defer server.Close()

	client := NewClientWithURL("test-key", server.URL, 100)
	results, err := client.Search(context.Background(), "Example annual report 2023 filetype:pdf", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Link != "https://example.com/ar2023.pdf" {
		t.Errorf("unexpected first link: %s", results[0].Link)
	}
	if results[0].Title != "Annual Report 2023" {
		t.Errorf("unexpected first title: %s", results[0].Title)
	}
}

func TestSearchNon200IsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClientWithURL("test-key", server.URL, 100)
	_, err := client.Search(context.Background(), "anything", 5)
	if err == nil {
		t.Fatalf("expected error on 429 response")
	}
}

func TestSearchMalformedJSONIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"organic": [`))
	}))
	defer server.Close()

	client := NewClientWithURL("test-key", server.URL, 100)
	_, err := client.Search(context.Background(), "anything", 5)
	if err == nil {
		t.Fatalf("expected error on malformed JSON")
	}
}

func TestDisabledClient(t *testing.T) {
	client := NewClient("", 1)
	if client.Enabled() {
		t.Errorf("client with empty key should be disabled")
	}
	if _, err := client.Search(context.Background(), "q", 5); err == nil {
		t.Errorf("disabled client should error on Search")
	}
}
