package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"reportfinder/pkg/core/identity"
	"reportfinder/pkg/core/keywords"
	"reportfinder/pkg/core/store"
)

const (
	defaultYearSpan   = 5
	defaultMaxResults = 50

	minDocsBeforeRegulatorFallback = 3

	yearSearchConcurrency    = 3
	quarterSearchConcurrency = 4
	yearSearchTimeout        = 8 * time.Second
	quarterSearchTimeout     = 10 * time.Second
)

// defaultDocTypes are searched when the request names none.
var defaultDocTypes = []string{
	"annual report", "quarterly report", "financial statements",
	"earnings", "10-K", "10-Q", "20-F",
}

// RegulatorSource retrieves official filings from a securities regulator.
type RegulatorSource interface {
	FindFilings(ctx context.Context, company string, startYear, endYear int) ([]Document, error)
}

// FallbackRetriever locates documents through an LLM when search and
// crawling come up empty.
type FallbackRetriever interface {
	RetrieveDocuments(ctx context.Context, company string, docTypes []string, startYear, endYear int) ([]Document, error)
}

// Agent orchestrates the retrieval ladder: verify the company, serve from
// cache, search for direct PDFs, deep-crawl the IR site, fall back to
// regulators and finally to an LLM. Discovery-logic failures never surface
// as errors; an empty document list with explanatory notes is a valid
// outcome.
type Agent struct {
	searcher      Searcher
	fetcher       PageFetcher
	disambiguator *identity.Disambiguator

	// Regulator and Fallback are optional ladder rungs.
	Regulator RegulatorSource
	Fallback  FallbackRetriever

	// Cache is optional. CacheMaxAge bounds how stale served entries may be.
	Cache       *store.Cache
	CacheMaxAge time.Duration
}

// NewAgent builds an Agent with the two mandatory dependencies. Optional
// rungs (regulator, LLM fallback, cache) are attached via the exported
// fields.
func NewAgent(searcher Searcher, fetcher PageFetcher) *Agent {
	return &Agent{
		searcher:      searcher,
		fetcher:       fetcher,
		disambiguator: identity.NewDisambiguator(searcher, fetcher),
		CacheMaxAge:   7 * 24 * time.Hour,
	}
}

// Discover runs the full retrieval ladder for one request.
func (a *Agent) Discover(ctx context.Context, req Request) (*Result, error) {
	now := time.Now()
	if req.EndYear == 0 {
		req.EndYear = now.Year()
	}
	if req.StartYear == 0 {
		req.StartYear = req.EndYear - defaultYearSpan
	}
	if len(req.DocTypes) == 0 {
		req.DocTypes = defaultDocTypes
	}
	if req.MaxResults == 0 {
		req.MaxResults = defaultMaxResults
	}

	result := &Result{
		RunID:   uuid.NewString(),
		Company: req.Company,
		Request: RequestEcho{
			DocTypes:  req.DocTypes,
			DateRange: dateRange(req.StartYear, req.EndYear),
		},
	}

	// Phase 0: company disambiguation. Never trust the first search hit.
	fmt.Printf("[DISCOVERY] phase 0: disambiguating %q\n", req.Company)
	var card *identity.IdentityCard
	searchCompany := req.Company

	hints := req.Hints
	if hints == (identity.Hints{}) {
		hints = identity.ExtractHints(req.Company)
	}
	verified, ambiguity, err := a.disambiguator.Disambiguate(ctx, req.Company, hints)
	switch {
	case err != nil:
		fmt.Printf("[DISCOVERY] disambiguation failed: %v, proceeding unverified\n", err)
	case ambiguity != nil:
		result.Notes = ambiguity.Message
		result.DisambiguationRequired = true
		result.Candidates = ambiguity.Candidates
		result.ClarificationOptions = ambiguity.ClarificationOptions
		return result, nil
	case verified != nil:
		card = verified
		searchCompany = card.CanonicalName
		result.VerifiedCompany = card.CanonicalName
		fmt.Printf("[DISCOVERY] verified company: %s (score %.2f)\n", card.CanonicalName, card.ConfidenceScore)
	}

	// Serve from cache when fresh entries cover the request.
	if cached := a.readCache(searchCompany, req); len(cached) > 0 {
		fmt.Printf("[DISCOVERY] serving %d documents from cache\n", len(cached))
		result.Documents = cached
		result.Notes = fmt.Sprintf("Found %d document(s) matching criteria (cached).", len(cached))
		result.MissingPeriods = missingPeriods(req, cached)
		return result, nil
	}

	var allDocs []Document
	crawler := NewCrawler(a.fetcher)

	if req.SourceURL != "" {
		// A user-supplied reports page replaces the search phases entirely.
		fmt.Printf("[DISCOVERY] crawling user-supplied page: %s\n", req.SourceURL)
		allDocs = crawler.DeepCrawl(ctx, searchCompany, req.SourceURL, req.StartYear, req.EndYear, 0)
		fmt.Printf("[DISCOVERY] user page crawl found %d documents\n", len(allDocs))
	} else {
		// Phase 1: direct PDF search.
		if a.searcher.Enabled() {
			fmt.Printf("[DISCOVERY] phase 1: direct PDF search\n")
			directDocs, missing := a.searchDirectPDFs(ctx, searchCompany, req)
			allDocs = append(allDocs, directDocs...)
			fmt.Printf("[DISCOVERY] direct search selected %d documents (%d periods missing)\n",
				len(directDocs), len(missing))
		}

		// Phase 2: find and deep-crawl the IR site.
		fmt.Printf("[DISCOVERY] phase 2: deep IR site crawl\n")
		irURL := a.resolveIRPage(ctx, searchCompany, card)
		if irURL != "" {
			crawlDocs := crawler.DeepCrawl(ctx, searchCompany, irURL, req.StartYear, req.EndYear, 0)
			allDocs = append(allDocs, crawlDocs...)
			fmt.Printf("[DISCOVERY] IR crawl found %d documents\n", len(crawlDocs))
		}
	}

	// Phase 3: regulator fallback when too few documents surfaced.
	if len(allDocs) < minDocsBeforeRegulatorFallback {
		fmt.Printf("[DISCOVERY] phase 3: regulator fallback\n")
		if a.searcher.Enabled() {
			siteDocs := a.searchRegulatorSites(ctx, searchCompany, req.StartYear, req.EndYear)
			allDocs = append(allDocs, siteDocs...)
			fmt.Printf("[DISCOVERY] regulator site search found %d documents\n", len(siteDocs))
		}
		if a.Regulator != nil {
			regDocs, err := a.Regulator.FindFilings(ctx, searchCompany, req.StartYear, req.EndYear)
			if err != nil {
				fmt.Printf("[DISCOVERY] regulator fallback failed: %v\n", err)
			} else {
				allDocs = append(allDocs, regDocs...)
				fmt.Printf("[DISCOVERY] regulator fallback found %d documents\n", len(regDocs))
			}
		}
	}

	// Phase 4: LLM fallback of last resort.
	if len(allDocs) == 0 && a.Fallback != nil {
		fmt.Printf("[DISCOVERY] phase 4: LLM fallback\n")
		llmDocs, err := a.Fallback.RetrieveDocuments(ctx, searchCompany, req.DocTypes, req.StartYear, req.EndYear)
		if err != nil {
			fmt.Printf("[DISCOVERY] LLM fallback failed: %v\n", err)
		} else {
			allDocs = append(allDocs, llmDocs...)
			fmt.Printf("[DISCOVERY] LLM fallback found %d documents\n", len(llmDocs))
		}
	}

	// Phase 5: deduplicate and filter to the requested range.
	unique := deduplicateDocuments(allDocs)
	var filtered []Document
	for _, doc := range unique {
		if doc.Year != 0 && (doc.Year < req.StartYear || doc.Year > req.EndYear) {
			continue
		}
		filtered = append(filtered, doc)
	}

	// Phase 6: English-first preference per (year, type).
	filtered = applyEnglishPreference(filtered)

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Year != filtered[j].Year {
			return filtered[i].Year > filtered[j].Year
		}
		return filtered[i].Confidence > filtered[j].Confidence
	})

	if len(filtered) > req.MaxResults {
		filtered = filtered[:req.MaxResults]
	}

	result.Documents = filtered
	result.PagesChecked = crawler.PagesChecked()
	result.MissingPeriods = missingPeriods(req, filtered)

	if len(filtered) > 0 {
		result.Notes = fmt.Sprintf("Found %d document(s) matching criteria.", len(filtered))
	} else {
		result.Notes = fmt.Sprintf(
			"No PDF documents found for %s in the requested range. Pages checked: %d. "+
				"Try checking the company's official IR site directly.",
			req.Company, len(crawler.PagesChecked()),
		)
	}

	a.writeCache(searchCompany, filtered)
	return result, nil
}

// searchDirectPDFs fans out per-period searches, classifies the hits and
// keeps one best document per period.
func (a *Agent) searchDirectPDFs(ctx context.Context, company string, req Request) ([]Document, []string) {
	reportType := ""
	if len(req.DocTypes) > 0 {
		reportType = req.DocTypes[0]
	}
	policy := SelectPolicy(reportType)

	years := make([]int, 0, req.EndYear-req.StartYear+1)
	for year := req.EndYear; year >= req.StartYear; year-- {
		years = append(years, year)
	}

	var mu sync.Mutex
	var candidates []Document

	if policy.WantsQuarter() && len(req.Quarters) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(quarterSearchConcurrency)
		for _, year := range years {
			for _, quarter := range req.Quarters {
				year, quarter := year, strings.ToUpper(quarter)
				g.Go(func() error {
					qctx, cancel := context.WithTimeout(gctx, quarterSearchTimeout)
					defer cancel()
					docs := a.searchQuarter(qctx, company, year, quarter, policy)
					mu.Lock()
					candidates = append(candidates, docs...)
					mu.Unlock()
					return nil
				})
			}
		}
		g.Wait()
		return bestPerPeriod(candidates, years, req.Quarters, company)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(yearSearchConcurrency)
	for _, year := range years {
		year := year
		g.Go(func() error {
			yctx, cancel := context.WithTimeout(gctx, yearSearchTimeout)
			defer cancel()
			docs := a.searchYear(yctx, company, year, reportType, policy, req.Quarters)
			mu.Lock()
			candidates = append(candidates, docs...)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return bestPerYear(candidates, years, company)
}

// searchYear runs the query set for one (company, year, type) and returns
// the classified candidates.
func (a *Agent) searchYear(ctx context.Context, company string, year int, reportType string, policy ReportTypePolicy, quarters []string) []Document {
	var docs []Document
	for _, query := range keywords.BuildSearchQueries(company, year, reportType) {
		results, err := a.searcher.Search(ctx, query, 10)
		if err != nil {
			fmt.Printf("[SEARCH] query failed: %v\n", err)
			continue
		}
		docs = append(docs, classifyResults(results, company, year, policy, quarters)...)
	}
	return docs
}

// searchQuarter runs targeted queries for one (year, quarter) pair.
func (a *Agent) searchQuarter(ctx context.Context, company string, year int, quarter string, policy ReportTypePolicy) []Document {
	queries := []string{
		fmt.Sprintf(`"%s" "%s %d" results pdf`, company, quarter, year),
		fmt.Sprintf(`"%s" "%s %d" financial results filetype:pdf`, company, quarter, year),
	}

	var docs []Document
	for _, query := range queries {
		results, err := a.searcher.Search(ctx, query, 10)
		if err != nil {
			fmt.Printf("[SEARCH] quarter query failed: %v\n", err)
			continue
		}
		docs = append(docs, classifyResults(results, company, year, policy, []string{quarter})...)
	}
	return docs
}

// searchRegulatorSites runs site-restricted queries against SEC hosting as
// a lighter companion to the submissions API.
func (a *Agent) searchRegulatorSites(ctx context.Context, company string, startYear, endYear int) []Document {
	queries := []string{
		fmt.Sprintf(`site:sec.gov "%s" 10-K filetype:pdf`, company),
		fmt.Sprintf(`site:sec.gov "%s" 20-F annual report`, company),
		fmt.Sprintf(`"%s" annual report %d filetype:pdf official`, company, endYear),
	}

	var docs []Document
	for _, query := range queries {
		results, err := a.searcher.Search(ctx, query, 10)
		if err != nil {
			fmt.Printf("[SEARCH] regulator query failed: %v\n", err)
			continue
		}
		for _, result := range results {
			if !strings.Contains(strings.ToLower(result.Link), ".pdf") {
				continue
			}
			combined := result.Title + " " + result.Link
			detectedYear := keywords.ExtractYear(combined)
			if detectedYear != 0 && (detectedYear < startYear || detectedYear > endYear) {
				continue
			}
			docs = append(docs, buildDocument(company, result.Title, result.Link, result.Link, combined, detectedYear))
		}
	}
	return docs
}

// resolveIRPage finds the company's IR page: the verified identity card
// first, then the cache, then a fresh multilingual search. Fresh finds are
// written back to the cache.
func (a *Agent) resolveIRPage(ctx context.Context, company string, card *identity.IdentityCard) string {
	if card != nil && card.IRURL != "" {
		return card.IRURL
	}

	if a.Cache != nil {
		cached, err := a.Cache.GetIRPage(company, a.CacheMaxAge)
		if err != nil {
			fmt.Printf("[CACHE] IR page read failed: %v\n", err)
		} else if cached != "" {
			fmt.Printf("[CACHE] IR page hit: %s\n", cached)
			return cached
		}
	}

	irURL := findInvestorRelationsPage(ctx, a.searcher, company)
	if irURL != "" && a.Cache != nil {
		if err := a.Cache.SaveIRPage(company, irURL); err != nil {
			fmt.Printf("[CACHE] IR page write failed: %v\n", err)
		}
	}
	return irURL
}

// readCache converts fresh cached rows into documents. Only rows inside the
// requested year range qualify, and only when at least one exists.
func (a *Agent) readCache(company string, req Request) []Document {
	if a.Cache == nil {
		return nil
	}
	rows, err := a.Cache.GetReports(company, 0, "", a.CacheMaxAge)
	if err != nil {
		fmt.Printf("[CACHE] report read failed: %v\n", err)
		return nil
	}

	var docs []Document
	for _, row := range rows {
		if row.Year < req.StartYear || row.Year > req.EndYear {
			continue
		}
		docs = append(docs, Document{
			CompanyName:     company,
			Title:           row.Title,
			ReportingPeriod: fyLabel(row.Year),
			DocType:         row.ReportType,
			PDFURL:          row.URL,
			SourcePage:      row.URL,
			Language:        keywords.DetectLanguage(row.Title, row.URL),
			Confidence: keywords.ConfidenceScore(
				true, true,
				keywords.CountTierMatches(row.Title+" "+row.URL),
				keywords.HasURLPathMatch(row.URL),
			),
			Year: row.Year,
		})
	}
	return docs
}

func (a *Agent) writeCache(company string, docs []Document) {
	if a.Cache == nil || len(docs) == 0 {
		return
	}
	var rows []store.CachedReport
	for _, doc := range docs {
		if doc.Year == 0 {
			continue
		}
		rows = append(rows, store.CachedReport{
			Ticker:     company,
			Year:       doc.Year,
			ReportType: doc.DocType,
			URL:        doc.PDFURL,
			Title:      doc.Title,
		})
	}
	if len(rows) == 0 {
		return
	}
	if err := a.Cache.SaveReports(rows); err != nil {
		fmt.Printf("[CACHE] report write failed: %v\n", err)
	}
}

// missingPeriods lists the requested periods no final document covers.
func missingPeriods(req Request, docs []Document) []string {
	covered := make(map[string]bool)
	for _, doc := range docs {
		if doc.Year == 0 {
			continue
		}
		if doc.Quarter != "" {
			covered[fmt.Sprintf("%s %d", strings.ToUpper(doc.Quarter), doc.Year)] = true
		}
		covered[fyLabel(doc.Year)] = true
	}

	var missing []string
	for year := req.EndYear; year >= req.StartYear; year-- {
		if len(req.Quarters) > 0 {
			for _, quarter := range req.Quarters {
				label := fmt.Sprintf("%s %d", strings.ToUpper(quarter), year)
				if !covered[label] {
					missing = append(missing, label)
				}
			}
			continue
		}
		if !covered[fyLabel(year)] {
			missing = append(missing, fyLabel(year))
		}
	}
	return missing
}
