// Package scrape fetches web pages and extracts the links and text the
// discovery pipeline works on.
//
// This package uses github.com/PuerkitoBio/goquery for jQuery-style HTML
// traversal.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptHeader     = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguage   = "en-US,en;q=0.9"
)

// Link is one anchor extracted from a page.
type Link struct {
	// URL is the href resolved against the page URL.
	URL string
	// Text is the anchor's visible text.
	Text string
	// Title is the anchor's title attribute, often carrying the document name.
	Title string
}

// Fetcher downloads pages with a browser-like identity.
type Fetcher struct {
	client *http.Client
}

// NewFetcher builds a Fetcher. timeout bounds each request end to end.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads a page and parses it. The caller owns the document.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// FetchHTML downloads a page and returns the raw HTML. Used where regex
// extraction over the source beats DOM traversal.
func (f *Fetcher) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", pageURL, err)
	}
	return string(body), nil
}

// IsPDFContent checks via HEAD request whether a URL serves a PDF.
func (f *Fetcher) IsPDFContent(ctx context.Context, pdfURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, pdfURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	return strings.Contains(contentType, "application/pdf")
}

// ExtractLinks pulls all anchors from a document, resolving hrefs against
// the page URL. Anchors without href are skipped.
func ExtractLinks(doc *goquery.Document, pageURL string) []Link {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	var links []Link
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		resolved := resolveURL(base, strings.TrimSpace(href))
		if resolved == "" {
			return
		}
		title, _ := sel.Attr("title")
		links = append(links, Link{
			URL:   resolved,
			Text:  strings.TrimSpace(sel.Text()),
			Title: strings.TrimSpace(title),
		})
	})
	return links
}

// VisibleText returns the page's text content with scripts and styles
// removed, lowercased for keyword matching.
func VisibleText(doc *goquery.Document) string {
	clone := doc.Selection.Clone()
	clone.Find("script, style, noscript").Remove()
	return strings.ToLower(strings.Join(strings.Fields(clone.Text()), " "))
}

// PageTitle returns the document title, trimmed.
func PageTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// MetaSiteName returns the og:site_name content, if present.
func MetaSiteName(doc *goquery.Document) string {
	content, _ := doc.Find(`meta[property="og:site_name"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// ResolvePDFURL resolves a link to a direct PDF URL. Direct .pdf hrefs are
// resolved against the page; viewer/download URLs are unwrapped via their
// file/url/pdf/path/doc query parameters. Returns "" when the link does not
// lead to a PDF.
func ResolvePDFURL(href, baseURL string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	if strings.Contains(strings.ToLower(href), ".pdf") {
		return resolveURL(base, href)
	}

	hrefLower := strings.ToLower(href)
	if strings.Contains(hrefLower, "viewer") || strings.Contains(hrefLower, "download") {
		parsed, err := url.Parse(href)
		if err != nil {
			return ""
		}
		params := parsed.Query()
		for _, key := range []string{"file", "url", "pdf", "path", "doc"} {
			if vals, ok := params[key]; ok && len(vals) > 0 {
				if strings.Contains(strings.ToLower(vals[0]), ".pdf") {
					return resolveURL(base, vals[0])
				}
			}
		}
	}

	return ""
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
