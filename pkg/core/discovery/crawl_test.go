package discovery

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// fakePages serves canned HTML per URL and records fetches.
type fakePages struct {
	pages   map[string]string
	fetched []string
}

func (f *fakePages) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	f.fetched = append(f.fetched, url)
	html, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("no page for %s", url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

const irLandingHTML = `<html><body>
<a href="/investors/reports/">Annual Reports</a>
<a href="/about-us/">About us</a>
<a href="mailto:ir@globalportsholding.com">Contact IR</a>
</body></html>`

const reportsPageHTML = `<html><body>
<a href="/files/annual-report-2023.pdf">Annual Report 2023</a>
<a href="/files/annual-report-2022.pdf">Annual Report 2022</a>
<a href="/files/annual-report-2015.pdf">Annual Report 2015</a>
<a href="https://www.spglobal.com/ratings/gph-update.pdf">S&amp;P Research Update</a>
<a href="/files/team-photo.pdf">Our team</a>
</body></html>`

func TestDeepCrawlFollowsReportSubpages(t *testing.T) {
	fetcher := &fakePages{pages: map[string]string{
		"https://www.globalportsholding.com/investors/":        irLandingHTML,
		"https://www.globalportsholding.com/investors/reports/": reportsPageHTML,
	}}

	crawler := NewCrawler(fetcher)
	docs := crawler.DeepCrawl(context.Background(), "Global Ports Holding",
		"https://www.globalportsholding.com/investors/", 2020, 2023, 0)

	// 2023 and 2022 reports pass; 2015 is out of range, the S&P update is
	// third-party research and the team photo has no official signal.
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d: %+v", len(docs), docs)
	}
	for _, doc := range docs {
		if !strings.Contains(doc.PDFURL, "annual-report-202") {
			t.Errorf("unexpected document: %s", doc.PDFURL)
		}
		if doc.SourcePage != "https://www.globalportsholding.com/investors/reports/" {
			t.Errorf("source page = %q", doc.SourcePage)
		}
	}

	// The about-us link must not be crawled, the mailto ignored.
	for _, url := range fetcher.fetched {
		if strings.Contains(url, "about-us") || strings.HasPrefix(url, "mailto:") {
			t.Errorf("crawled unwanted page: %s", url)
		}
	}

	if len(crawler.PagesChecked()) != 2 {
		t.Errorf("pages checked = %v", crawler.PagesChecked())
	}
}

func TestDeepCrawlVisitsPagesOnlyOnce(t *testing.T) {
	selfLinking := `<html><body><a href="/investors/reports/">Reports</a>
<a href="/files/annual-report-2023.pdf">Annual Report 2023</a></body></html>`
	fetcher := &fakePages{pages: map[string]string{
		"https://example.com/investors/reports/": selfLinking,
	}}

	crawler := NewCrawler(fetcher)
	crawler.DeepCrawl(context.Background(), "Example", "https://example.com/investors/reports/", 2020, 2024, 0)

	if len(fetcher.fetched) != 1 {
		t.Errorf("expected a single fetch, got %d: %v", len(fetcher.fetched), fetcher.fetched)
	}
}

func TestDeepCrawlRespectsMaxDepth(t *testing.T) {
	fetcher := &fakePages{pages: map[string]string{}}
	crawler := NewCrawler(fetcher)

	docs := crawler.DeepCrawl(context.Background(), "Example", "https://example.com/reports/", 2020, 2024, maxCrawlDepth+1)
	if docs != nil {
		t.Errorf("expected nil past max depth, got %v", docs)
	}
	if len(fetcher.fetched) != 0 {
		t.Errorf("no fetches expected past max depth")
	}
}

func TestCalculateSourceScore(t *testing.T) {
	// PDF count, path depth and the report-listing bonus all add up.
	score := calculateSourceScore("https://www.globalportsholding.com/investors/reports/", 4,
		"globalportsholding.com", "")
	// 40 pdfs + 4 depth + 50 domain + 30 listing pattern.
	if score != 124 {
		t.Errorf("score = %d, expected 124", score)
	}

	// Third-party hosts are disqualified outright.
	if score := calculateSourceScore("https://www.spglobal.com/reports/", 10, "", ""); score >= 0 {
		t.Errorf("third-party source must be negative, got %d", score)
	}

	// Shallow IR landing pages are penalized.
	landing := calculateSourceScore("https://example.com/investors/", 0, "", "")
	deep := calculateSourceScore("https://example.com/investors/reports/", 0, "", "")
	if landing >= deep {
		t.Errorf("landing page (%d) must score below deep page (%d)", landing, deep)
	}
}

func TestIsValidSourcePage(t *testing.T) {
	cases := []struct {
		url      string
		hasPDFs  bool
		expected bool
	}{
		{"https://example.com/investors/reports/", false, true},
		{"https://example.com/investors/", false, false},
		{"https://example.com/investors/", true, true},
		{"https://example.com/news/", false, false},
		{"https://example.com/news/", true, true},
	}
	for _, c := range cases {
		if got := isValidSourcePage(c.url, c.hasPDFs); got != c.expected {
			t.Errorf("isValidSourcePage(%q, %v) = %v, expected %v", c.url, c.hasPDFs, got, c.expected)
		}
	}
}
