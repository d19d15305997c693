package discovery

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"reportfinder/pkg/core/keywords"
	"reportfinder/pkg/core/scrape"
)

// irSubpageKeywords in a link's text mark pages that likely list documents.
var irSubpageKeywords = []string{
	"annual report", "annual reports",
	"reports", "report",
	"financial results", "results",
	"financial statements", "statements",
	"investor presentation", "presentations",
	"earnings", "earnings release",
	"quarterly", "quarterly report",
	"publications", "documents",
	"filings", "sec filings", "regulatory filings",
	"downloads", "pdf", "archive",
	"annual", "interim", "half-year",
	// Multilingual
	"jahresbericht", "geschäftsbericht",
	"rapport annuel",
	"informe anual",
}

// reportListingPatterns match URL paths of deep report-listing pages. These
// pages contain actual document links, not IR landing chrome.
var reportListingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/reports`),
	regexp.MustCompile(`/report[s]?[-_]?and[-_]?presentations`),
	regexp.MustCompile(`/annual[-_]?report[s]?`),
	regexp.MustCompile(`/quarterly[-_]?report[s]?`),
	regexp.MustCompile(`/quarterly[-_]?results`),
	regexp.MustCompile(`/financial[-_]?results`),
	regexp.MustCompile(`/financial[-_]?statements`),
	regexp.MustCompile(`/financial[-_]?reports`),
	regexp.MustCompile(`/earnings[-_]?release[s]?`),
	regexp.MustCompile(`/earnings[-_]?report[s]?`),
	regexp.MustCompile(`/results[-_]?and[-_]?reports`),
	regexp.MustCompile(`/publications`),
	regexp.MustCompile(`/documents`),
	regexp.MustCompile(`/document[-_]?library`),
	regexp.MustCompile(`/downloads`),
	regexp.MustCompile(`/download[-_]?center`),
	regexp.MustCompile(`/filings`),
	regexp.MustCompile(`/sec[-_]?filings`),
	regexp.MustCompile(`/regulatory[-_]?filings`),
	regexp.MustCompile(`/archive[s]?`),
	regexp.MustCompile(`/news[-_]?and[-_]?reports`),
	regexp.MustCompile(`/presentations`),
	regexp.MustCompile(`/investor[-_]?presentations`),
	regexp.MustCompile(`/investors/reports`),
	regexp.MustCompile(`/investors/financial`),
	regexp.MustCompile(`/investor[-_]?relations/reports`),
	regexp.MustCompile(`/ir/reports`),
	regexp.MustCompile(`/ir/financial`),
}

// irLandingPatterns match shallow IR landing pages. Too shallow to serve as
// a source_page; the crawler must go deeper from here.
var irLandingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/investors?/?$`),
	regexp.MustCompile(`^/investor[-_]?relations?/?$`),
	regexp.MustCompile(`^/ir/?$`),
	regexp.MustCompile(`/investors?/overview`),
	regexp.MustCompile(`/investors?/home`),
	regexp.MustCompile(`/ir/overview`),
	regexp.MustCompile(`/corporate[-_]?governance/?$`),
	regexp.MustCompile(`/about[-_]?us/?$`),
}

const (
	maxCrawlDepth   = 3
	maxSubpages     = 5
	maxPagesChecked = 10
)

// PageFetcher downloads and parses one page. *scrape.Fetcher satisfies it.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Crawler walks an investor-relations site collecting direct PDF links.
// It never stops at the IR homepage: reports pages, archives and filings
// sections are followed up to maxCrawlDepth.
type Crawler struct {
	fetcher      PageFetcher
	visited      map[string]bool
	pagesChecked []string
}

func NewCrawler(fetcher PageFetcher) *Crawler {
	return &Crawler{
		fetcher: fetcher,
		visited: make(map[string]bool),
	}
}

// PagesChecked lists the pages visited so far, capped for output.
func (c *Crawler) PagesChecked() []string {
	if len(c.pagesChecked) > maxPagesChecked {
		return c.pagesChecked[:maxPagesChecked]
	}
	return c.pagesChecked
}

// RecordPage appends an externally visited page to the checked list.
func (c *Crawler) RecordPage(url string) {
	c.pagesChecked = append(c.pagesChecked, url)
}

// DeepCrawl crawls from irURL collecting PDFs whose year falls in
// [startYear, endYear]. Crawling stays on the IR site's domain.
func (c *Crawler) DeepCrawl(ctx context.Context, company, irURL string, startYear, endYear, depth int) []Document {
	var docs []Document

	if depth > maxCrawlDepth {
		return docs
	}
	normalized := strings.ToLower(strings.TrimRight(irURL, "/"))
	if c.visited[normalized] {
		return docs
	}
	c.visited[normalized] = true
	c.pagesChecked = append(c.pagesChecked, irURL)

	fmt.Printf("[CRAWL] depth %d: %s\n", depth, irURL)
	page, err := c.fetcher.Fetch(ctx, irURL)
	if err != nil {
		fmt.Printf("[CRAWL] error fetching %s: %v\n", irURL, err)
		return docs
	}

	links := scrape.ExtractLinks(page, irURL)

	pdfDocs := c.extractPagePDFs(company, links, irURL, startYear, endYear)
	docs = append(docs, pdfDocs...)
	fmt.Printf("[CRAWL] found %d PDFs on %s\n", len(pdfDocs), irURL)

	if depth < maxCrawlDepth {
		subpages := c.findDocumentSubpages(links, irURL)
		if len(subpages) > maxSubpages {
			subpages = subpages[:maxSubpages]
		}
		for _, subpage := range subpages {
			docs = append(docs, c.DeepCrawl(ctx, company, subpage, startYear, endYear, depth+1)...)
		}
	}

	return docs
}

// extractPagePDFs collects the PDF links on one page, dropping third-party
// research and anything without an official-document signal.
func (c *Crawler) extractPagePDFs(company string, links []scrape.Link, pageURL string, startYear, endYear int) []Document {
	var docs []Document
	rejectedThirdParty := 0

	for _, link := range links {
		pdfURL := scrape.ResolvePDFURL(link.URL, pageURL)
		if pdfURL == "" {
			continue
		}

		pdfKey := strings.ToLower(pdfURL)
		if c.visited[pdfKey] {
			continue
		}
		c.visited[pdfKey] = true

		combined := link.Text + " " + link.Title + " " + pdfURL

		if isThirdPartySource(pdfURL, combined) {
			rejectedThirdParty++
			continue
		}

		// Regulator-hosted PDFs pass without a signal; everything else
		// must carry at least one official-document marker.
		if !isOfficialRegulatorDomain(pdfURL) && !hasOfficialDocumentSignal(combined, pdfURL) {
			continue
		}

		detectedYear := keywords.ExtractYear(combined)
		if detectedYear != 0 && (detectedYear < startYear || detectedYear > endYear) {
			continue
		}

		title := link.Text
		if title == "" {
			title = link.Title
		}
		if title == "" {
			title = filenameTitle(pdfURL)
		}

		docs = append(docs, buildDocument(company, title, pdfURL, pageURL, combined, detectedYear))
	}

	if rejectedThirdParty > 0 {
		fmt.Printf("[CRAWL] rejected %d third-party research PDFs on %s\n", rejectedThirdParty, pageURL)
	}
	return docs
}

// findDocumentSubpages selects same-domain links that likely lead to report
// listings, in page order without duplicates.
func (c *Crawler) findDocumentSubpages(links []scrape.Link, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var subpages []string
	for _, link := range links {
		if strings.HasSuffix(link.URL, ".pdf") {
			continue
		}
		if strings.HasPrefix(link.URL, "mailto:") || strings.HasPrefix(link.URL, "javascript:") {
			continue
		}

		textLower := strings.ToLower(link.Text)
		urlLower := strings.ToLower(link.URL)

		textMatch := firstMatch(textLower, irSubpageKeywords) != ""
		urlMatch := false
		for _, pattern := range reportListingPatterns {
			if pattern.MatchString(urlLower) {
				urlMatch = true
				break
			}
		}
		if !textMatch && !urlMatch {
			continue
		}

		parsed, err := url.Parse(link.URL)
		if err != nil || parsed.Host != base.Host {
			continue
		}

		normalized := strings.ToLower(strings.TrimRight(link.URL, "/"))
		if c.visited[normalized] || seen[normalized] {
			continue
		}
		seen[normalized] = true
		subpages = append(subpages, link.URL)
	}
	return subpages
}

// buildDocument assembles a Document with detected type, language, quarter
// and confidence for a crawled or regulator-sourced PDF.
func buildDocument(company, title, pdfURL, sourcePage, combined string, detectedYear int) Document {
	if title == "" {
		title = "Financial Document"
	}
	quarter := keywords.ExtractQuarter(title)

	period := "Unknown"
	if detectedYear != 0 {
		if quarter != "" {
			period = fmt.Sprintf("%s %d", quarter, detectedYear)
		} else {
			period = fmt.Sprintf("%d", detectedYear)
		}
	}

	return Document{
		CompanyName:     company,
		Title:           title,
		ReportingPeriod: period,
		DocType:         keywords.DetectDocumentType(combined),
		PDFURL:          pdfURL,
		SourcePage:      sourcePage,
		Language:        keywords.DetectLanguage(title, pdfURL),
		Confidence: keywords.ConfidenceScore(
			true, detectedYear != 0,
			keywords.CountTierMatches(combined),
			keywords.HasURLPathMatch(pdfURL),
		),
		Year:    detectedYear,
		Quarter: quarter,
	}
}

func filenameTitle(pdfURL string) string {
	parsed, err := url.Parse(pdfURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(parsed.Path, "/")
	name := segments[len(segments)-1]
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".pdf"), ".PDF")
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}

// calculateSourceScore ranks a candidate source page. Pages dense with
// matching PDFs on official domains win; third-party hosts are disqualified.
func calculateSourceScore(pageURL string, pdfCount int, verifiedDomain, text string) int {
	score := 10 * pdfCount

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return score
	}
	path := strings.ToLower(parsed.Path)
	domain := strings.ToLower(parsed.Host)

	depth := 0
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			depth++
		}
	}
	score += 2 * depth

	if verifiedDomain != "" && strings.Contains(domain, strings.ToLower(verifiedDomain)) {
		score += 50
	}
	if isOfficialRegulatorDomain(pageURL) {
		score += 50
	}

	if isThirdPartySource(pageURL, text) {
		score -= 1000
	}

	for _, pattern := range irLandingPatterns {
		if pattern.MatchString(path) {
			score -= 50
			break
		}
	}
	for _, pattern := range reportListingPatterns {
		if pattern.MatchString(path) {
			score += 30
			break
		}
	}

	return score
}

// isValidSourcePage reports whether a URL can serve as a document's
// source_page. Deep listing pages always qualify; landing pages only when
// they directly contain PDFs.
func isValidSourcePage(pageURL string, hasPDFs bool) bool {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(parsed.Path)

	for _, pattern := range reportListingPatterns {
		if pattern.MatchString(path) {
			return true
		}
	}
	for _, pattern := range irLandingPatterns {
		if pattern.MatchString(path) {
			return hasPDFs
		}
	}
	return hasPDFs
}
