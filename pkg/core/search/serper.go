// Package search wraps the Serper web-search API used by the discovery
// pipeline for candidate document retrieval.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// SerperSearchURL is the Serper endpoint for Google organic search.
const SerperSearchURL = "https://google.serper.dev/search"

// Result is one organic search result.
type Result struct {
	Link        string `json:"link"`
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
}

type searchResponse struct {
	Organic []Result `json:"organic"`
}

// Client calls the Serper search API. A zero API key disables the client;
// callers check Enabled before spending a phase on search.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient builds a Serper client. queriesPerSecond bounds the outbound
// request rate so batch discovery stays polite.
func NewClient(apiKey string, queriesPerSecond float64) *Client {
	if queriesPerSecond <= 0 {
		queriesPerSecond = 5
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: SerperSearchURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(queriesPerSecond), 1),
	}
}

// NewClientWithURL builds a client against a custom endpoint. Used by tests.
func NewClientWithURL(apiKey, baseURL string, queriesPerSecond float64) *Client {
	c := NewClient(apiKey, queriesPerSecond)
	c.baseURL = baseURL
	return c
}

// Enabled reports whether the client has an API key to work with.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Search runs one query and returns the organic results. num caps the
// result count server-side.
func (c *Client) Search(ctx context.Context, query string, num int) ([]Result, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("serper client disabled: no API key")
	}
	if num <= 0 {
		num = 10
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(map[string]interface{}{"q": query, "num": num})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("serper returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode serper response: %w", err)
	}

	return parsed.Organic, nil
}
