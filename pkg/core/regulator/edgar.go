// Package regulator retrieves official filings from SEC EDGAR as the
// fallback document source when a company's own IR site yields too little.
package regulator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"reportfinder/pkg/core/discovery"
)

const (
	// SEC requires a descriptive User-Agent with a contact address.
	userAgent = "ReportFinder info@reportfinder.dev"

	defaultSubmissionsURL    = "https://data.sec.gov/submissions/CIK%s.json"
	defaultCompanyTickersURL = "https://www.sec.gov/files/company_tickers.json"
	filingBaseURL            = "https://www.sec.gov/Archives/edgar/data/%s/%s/%s"

	// regulatorConfidence is assigned to EDGAR-sourced documents: the host
	// is authoritative but the document was not matched by keyword tiers.
	regulatorConfidence = 0.85
)

// filingForms are the form types surfaced as discovery documents.
var filingForms = map[string]string{
	"10-K":   "10k",
	"10-K/A": "10k",
	"10-KA":  "10k",
	"10-Q":   "10q",
	"10-Q/A": "10q",
	"20-F":   "20f",
	"20-F/A": "20f",
}

// Client talks to SEC EDGAR. The ticker->CIK map is loaded lazily and
// cached for the client's lifetime.
type Client struct {
	client            *http.Client
	submissionsURL    string
	companyTickersURL string

	tickerCache map[string]string // ticker -> zero-padded CIK
	nameCache   map[string]string // lowercased company title -> zero-padded CIK
	cacheMutex  sync.Mutex
}

// NewClient builds an EDGAR client with the production endpoints.
func NewClient() *Client {
	return &Client{
		client:            &http.Client{Timeout: 60 * time.Second},
		submissionsURL:    defaultSubmissionsURL,
		companyTickersURL: defaultCompanyTickersURL,
	}
}

// NewClientWithURLs builds a client against custom endpoints. Used in tests.
func NewClientWithURLs(submissionsURL, companyTickersURL string) *Client {
	c := NewClient()
	c.submissionsURL = submissionsURL
	c.companyTickersURL = companyTickersURL
	return c
}

// submissionsResponse is the SEC submissions API payload.
type submissionsResponse struct {
	CIK     string        `json:"cik"`
	Name    string        `json:"name"`
	Tickers []string      `json:"tickers"`
	Filings filingsByKind `json:"filings"`
}

type filingsByKind struct {
	Recent recentFilings `json:"recent"`
}

type recentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// LookupCIK resolves a ticker symbol or company name to a zero-padded CIK
// using SEC's company_tickers.json.
func (c *Client) LookupCIK(ctx context.Context, tickerOrName string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(tickerOrName))

	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	if c.tickerCache == nil {
		if err := c.loadTickerCache(ctx); err != nil {
			return "", err
		}
	}

	if cik, ok := c.tickerCache[normalized]; ok {
		return cik, nil
	}

	// Fall back to a company-title match: every significant word of the
	// query must appear in the registered title.
	queryWords := strings.Fields(strings.ToLower(tickerOrName))
	for title, cik := range c.nameCache {
		all := true
		for _, word := range queryWords {
			if !strings.Contains(title, word) {
				all = false
				break
			}
		}
		if all && len(queryWords) > 0 {
			return cik, nil
		}
	}

	return "", fmt.Errorf("%q not found in SEC company database", tickerOrName)
}

// loadTickerCache fetches the full ticker list. The payload is an object
// keyed by row number: {"0": {"cik_str": 320193, "ticker": "AAPL", ...}}.
func (c *Client) loadTickerCache(ctx context.Context) error {
	fmt.Println("[EDGAR] loading ticker->CIK map from SEC...")
	body, err := c.fetchURL(ctx, c.companyTickersURL)
	if err != nil {
		return fmt.Errorf("fetch company tickers: %w", err)
	}

	type tickerEntry struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	var resp map[string]tickerEntry
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("parse ticker JSON: %w", err)
	}

	c.tickerCache = make(map[string]string, len(resp))
	c.nameCache = make(map[string]string, len(resp))
	for _, entry := range resp {
		cik := fmt.Sprintf("%010d", entry.CIK)
		c.tickerCache[strings.ToUpper(entry.Ticker)] = cik
		c.nameCache[strings.ToLower(entry.Title)] = cik
	}

	fmt.Printf("[EDGAR] loaded %d tickers\n", len(c.tickerCache))
	return nil
}

// FindFilings returns the company's annual and quarterly filings whose
// fiscal year falls inside [startYear, endYear], as discovery documents.
func (c *Client) FindFilings(ctx context.Context, company string, startYear, endYear int) ([]discovery.Document, error) {
	cik, err := c.LookupCIK(ctx, company)
	if err != nil {
		return nil, err
	}

	body, err := c.fetchURL(ctx, fmt.Sprintf(c.submissionsURL, cik))
	if err != nil {
		return nil, fmt.Errorf("fetch submissions for CIK %s: %w", cik, err)
	}

	var resp submissionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse submissions JSON: %w", err)
	}

	var docs []discovery.Document
	recent := resp.Filings.Recent
	for i, form := range recent.Form {
		docType, ok := filingForms[form]
		if !ok {
			continue
		}
		if i >= len(recent.AccessionNumber) || i >= len(recent.PrimaryDocument) || i >= len(recent.FilingDate) {
			break
		}

		primaryDoc := recent.PrimaryDocument[i]
		filingDate := recent.FilingDate[i]
		fiscalYear := extractFiscalYear(primaryDoc, filingDate, docType)
		if fiscalYear < startYear || fiscalYear > endYear {
			continue
		}

		accessionNoDashes := strings.ReplaceAll(recent.AccessionNumber[i], "-", "")
		filingURL := fmt.Sprintf(filingBaseURL, cik, accessionNoDashes, primaryDoc)

		period := fmt.Sprintf("FY%d", fiscalYear)
		quarter := ""
		if docType == "10q" {
			quarter = quarterFromFilingDate(filingDate)
			if quarter != "" {
				period = fmt.Sprintf("%s %d", quarter, fiscalYear)
			}
		}

		docs = append(docs, discovery.Document{
			CompanyName:     resp.Name,
			Title:           fmt.Sprintf("%s %s %d", resp.Name, form, fiscalYear),
			ReportingPeriod: period,
			DocType:         docType,
			PDFURL:          filingURL,
			SourcePage:      fmt.Sprintf("https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&CIK=%s", cik),
			Language:        "english",
			Confidence:      regulatorConfidence,
			Year:            fiscalYear,
			Quarter:         quarter,
		})
	}

	return docs, nil
}

var primaryDocDatePattern = regexp.MustCompile(`(20\d{2})(\d{2})\d{2}`)

// extractFiscalYear derives the fiscal year a filing covers. Primary
// document names usually embed the period-end date (aapl-20240928.htm);
// failing that, annual forms filed in the first half of a year cover the
// previous one.
func extractFiscalYear(primaryDoc, filingDate, docType string) int {
	if m := primaryDocDatePattern.FindStringSubmatch(primaryDoc); m != nil {
		year, _ := strconv.Atoi(m[1])
		return year
	}

	if len(filingDate) < 7 {
		return 0
	}
	year, err := strconv.Atoi(filingDate[:4])
	if err != nil {
		return 0
	}
	month, err := strconv.Atoi(filingDate[5:7])
	if err != nil {
		return 0
	}

	if docType != "10q" && month <= 6 {
		return year - 1
	}
	return year
}

// quarterFromFilingDate maps a 10-Q filing date to the quarter it most
// likely covers. 10-Qs trail the quarter end by roughly one month.
func quarterFromFilingDate(filingDate string) string {
	if len(filingDate) < 7 {
		return ""
	}
	month, err := strconv.Atoi(filingDate[5:7])
	if err != nil {
		return ""
	}
	switch {
	case month >= 4 && month <= 6:
		return "Q1"
	case month >= 7 && month <= 9:
		return "Q2"
	case month >= 10 && month <= 12:
		return "Q3"
	default:
		return "Q4"
	}
}

func (c *Client) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
