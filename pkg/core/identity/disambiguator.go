package identity

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"reportfinder/pkg/core/scrape"
	"reportfinder/pkg/core/search"
)

// disambiguationQueries are the templates used for candidate collection.
// The first six are run per disambiguation; the rest exist for manual use.
var disambiguationQueries = []string{
	`"%s" official website`,
	`"%s" investor relations`,
	`"%s" annual report pdf`,
	`"%s" headquarters address`,
	`"%s" ticker exchange stock`,
	`"%s" wikipedia`,
	`"%s" SEC EDGAR filing`,
	`"%s" stock exchange listing`,
}

// industryKeywords group the terms used for industry mismatch detection.
// An industry counts as detected when at least two of its terms appear.
var industryKeywords = map[string][]string{
	"ports":   {"port", "terminal", "container", "shipping", "maritime", "cargo", "logistics"},
	"cruise":  {"cruise", "passenger", "tourism", "travel", "vacation"},
	"finance": {"bank", "investment", "asset", "fund", "capital", "securities"},
	"tech":    {"software", "technology", "digital", "platform", "saas", "cloud"},
	"energy":  {"oil", "gas", "energy", "power", "renewable", "solar"},
	"retail":  {"retail", "store", "shop", "consumer", "ecommerce"},
}

// blockerDomains are aggregators and directories that never count as a
// company's own site.
var blockerDomains = []string{
	"wikipedia.org",
	"bloomberg.com",
	"reuters.com",
	"yahoo.com",
	"marketwatch.com",
	"crunchbase.com",
	"linkedin.com",
	"facebook.com",
	"twitter.com",
	"glassdoor.com",
	"indeed.com",
}

// nameSuffixes are legal-form words ignored in name comparisons.
var nameSuffixes = map[string]bool{
	"plc": true, "ltd": true, "inc": true, "corp": true,
	"llc": true, "group": true, "holding": true, "holdings": true,
}

// Searcher is the slice of the search client the disambiguator needs.
type Searcher interface {
	Search(ctx context.Context, query string, num int) ([]search.Result, error)
	Enabled() bool
}

// PageFetcher is the slice of the scraper the disambiguator needs.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// candidate is one company site found during search.
type candidate struct {
	name        string
	domain      string
	url         string
	sourceQuery string
	snippet     string
}

// Disambiguator resolves a company name to a verified identity. It never
// trusts the first search result; it collects up to eight candidates across
// multiple queries and scores each one.
type Disambiguator struct {
	search  Searcher
	fetcher PageFetcher
}

// NewDisambiguator wires a disambiguator from its collaborators.
func NewDisambiguator(searcher Searcher, fetcher PageFetcher) *Disambiguator {
	return &Disambiguator{search: searcher, fetcher: fetcher}
}

// Disambiguate resolves companyName to a verified IdentityCard. Exactly one
// of the card and the ambiguity is non-nil on success; the error covers
// infrastructure failures only.
func (d *Disambiguator) Disambiguate(ctx context.Context, companyName string, hints Hints) (*IdentityCard, *Ambiguity, error) {
	fmt.Printf("[IDENTITY] Disambiguating company: %s\n", companyName)

	candidates, err := d.collectCandidates(ctx, companyName)
	if err != nil {
		return nil, nil, err
	}
	fmt.Printf("[IDENTITY] Collected %d candidates\n", len(candidates))

	if len(candidates) == 0 {
		return nil, newAmbiguity(
			fmt.Sprintf("Could not find any companies matching '%s'", companyName), nil,
		), nil
	}

	var cards []*IdentityCard
	for _, c := range candidates {
		card := d.buildIdentityCard(ctx, c, companyName)
		if card != nil && !hasHardBlockers(card, companyName) {
			cards = append(cards, card)
		}
	}
	fmt.Printf("[IDENTITY] Built %d identity cards\n", len(cards))

	if len(cards) == 0 {
		return nil, newAmbiguity(
			fmt.Sprintf("Could not verify any companies matching '%s'", companyName), nil,
		), nil
	}

	if hints.Country != "" || hints.Ticker != "" || hints.Domain != "" {
		applyHints(cards, hints)
	}

	sortCardsByScore(cards)
	top := cards[0]

	if top.MeetsThreshold() {
		if len(cards) > 1 {
			scoreDiff := top.ConfidenceScore - cards[1].ConfidenceScore
			if scoreDiff < 0.15 {
				fmt.Printf("[IDENTITY] Ambiguous: top scores %.2f vs %.2f\n", top.ConfidenceScore, cards[1].ConfidenceScore)
				return nil, newAmbiguity(
					fmt.Sprintf("Multiple companies match '%s'. Please clarify.", companyName),
					topN(cards, 3),
				), nil
			}
		}
		fmt.Printf("[IDENTITY] Verified company: %s (score: %.2f)\n", top.CanonicalName, top.ConfidenceScore)
		return top, nil, nil
	}

	return nil, newAmbiguity(
		fmt.Sprintf("Could not confidently verify '%s'. Please provide more details.", companyName),
		topN(cards, 3),
	), nil
}

// collectCandidates runs the disambiguation queries and gathers up to eight
// unique-domain candidates, skipping blockers.
func (d *Disambiguator) collectCandidates(ctx context.Context, companyName string) ([]candidate, error) {
	var candidates []candidate
	seenDomains := make(map[string]bool)

	if d.search == nil || !d.search.Enabled() {
		fmt.Println("[IDENTITY] No search key - limited candidate collection")
		return candidates, nil
	}

	for _, template := range disambiguationQueries[:6] {
		query := fmt.Sprintf(template, companyName)

		results, err := d.search.Search(ctx, query, 5)
		if err != nil {
			fmt.Printf("[IDENTITY] Search failed: %v\n", err)
			continue
		}

		if len(results) > 3 {
			results = results[:3]
		}
		for _, r := range results {
			parsed, err := url.Parse(r.Link)
			if err != nil {
				continue
			}
			domain := strings.ToLower(parsed.Host)
			if domain == "" || seenDomains[domain] {
				continue
			}
			if isBlockerDomain(domain) {
				continue
			}
			seenDomains[domain] = true

			candidates = append(candidates, candidate{
				name:        r.Title,
				domain:      domain,
				url:         r.Link,
				sourceQuery: query,
				snippet:     r.Snippet,
			})
			if len(candidates) >= 8 {
				return candidates, nil
			}
		}
	}

	return candidates, nil
}

// buildIdentityCard fetches the candidate page and scores the identity
// signals. Returns nil when the page cannot be fetched.
func (d *Disambiguator) buildIdentityCard(ctx context.Context, c candidate, searchName string) *IdentityCard {
	doc, err := d.fetcher.Fetch(ctx, c.url)
	if err != nil {
		fmt.Printf("[IDENTITY] Failed to build identity card for %s: %v\n", c.domain, err)
		return nil
	}

	pageText := scrape.VisibleText(doc)

	card := &IdentityCard{
		CanonicalName:  extractLegalName(doc, searchName),
		OfficialDomain: c.domain,
		ProofLinks:     []string{c.url},
	}

	signals := make(map[string]bool)
	score := 0.0

	// Strong signal 1: legal name match (0.25)
	nameMatch := checkNameMatch(pageText, searchName)
	signals["strong_legal_name"] = nameMatch
	if nameMatch {
		score += 0.25
	}

	// Strong signal 2: IR path exists (0.25)
	irURL := findIRLink(doc, c.url)
	signals["strong_ir_path"] = irURL != ""
	if irURL != "" {
		score += 0.25
		card.IRURL = irURL
	}

	// Strong signal 3: ticker/exchange match (0.25)
	ticker, exchange := extractTicker(pageText)
	signals["strong_ticker"] = ticker != ""
	if ticker != "" {
		score += 0.25
		card.Ticker = ticker
		card.Exchange = exchange
	}

	// Strong signal 4: contact/country match, slightly lower weight (0.15)
	country := extractCountry(pageText)
	signals["strong_contact"] = country != ""
	if country != "" {
		score += 0.15
		card.HQCountry = country
	}

	// Medium signal: industry keywords (0.10)
	industry := detectIndustry(pageText)
	signals["medium_industry"] = len(industry) > 0
	if len(industry) > 0 {
		score += 0.10
		card.IndustryKeywords = industry
	}

	card.Signals = signals
	if score > 1.0 {
		score = 1.0
	}
	card.ConfidenceScore = score

	return card
}

// hasHardBlockers rejects a candidate whose canonical name differs from the
// search name by more than two important words. Legal-form suffixes and
// short words are ignored.
func hasHardBlockers(card *IdentityCard, searchName string) bool {
	searchWords := wordSet(searchName)
	canonicalWords := wordSet(card.CanonicalName)

	importantDiffs := 0
	for w := range symmetricDiff(searchWords, canonicalWords) {
		if len(w) > 3 && !nameSuffixes[w] {
			importantDiffs++
		}
	}

	return importantDiffs > 2
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

func symmetricDiff(a, b map[string]bool) map[string]bool {
	diff := make(map[string]bool)
	for w := range a {
		if !b[w] {
			diff[w] = true
		}
	}
	for w := range b {
		if !a[w] {
			diff[w] = true
		}
	}
	return diff
}

func isBlockerDomain(domain string) bool {
	for _, blocker := range blockerDomains {
		if strings.Contains(domain, blocker) {
			return true
		}
	}
	return false
}

func sortCardsByScore(cards []*IdentityCard) {
	for i := 1; i < len(cards); i++ {
		for j := i; j > 0 && cards[j].ConfidenceScore > cards[j-1].ConfidenceScore; j-- {
			cards[j], cards[j-1] = cards[j-1], cards[j]
		}
	}
}

func topN(cards []*IdentityCard, n int) []*IdentityCard {
	if len(cards) > n {
		return cards[:n]
	}
	return cards
}

// =============================================================================
// EXTRACTION HELPERS
// =============================================================================

var titleSeparators = []string{" | ", " - ", " :: "}

// extractLegalName pulls the legal company name from og:site_name or the
// page title, falling back to the search name.
func extractLegalName(doc *goquery.Document, fallback string) string {
	if siteName := scrape.MetaSiteName(doc); siteName != "" {
		return siteName
	}

	if title := scrape.PageTitle(doc); title != "" {
		for _, sep := range titleSeparators {
			if idx := strings.Index(title, sep); idx >= 0 {
				title = title[:idx]
			}
		}
		return strings.TrimSpace(title)
	}

	return fallback
}

// checkNameMatch reports whether the search name appears on the page, either
// verbatim or as at least 70% of its significant words.
func checkNameMatch(pageText, searchName string) bool {
	searchLower := strings.ToLower(searchName)

	if strings.Contains(pageText, searchLower) {
		return true
	}

	var keyWords []string
	for _, w := range strings.Fields(searchLower) {
		if len(w) > 3 && !nameSuffixes[w] {
			keyWords = append(keyWords, w)
		}
	}
	if len(keyWords) == 0 {
		return false
	}

	matches := 0
	for _, w := range keyWords {
		if strings.Contains(pageText, w) {
			matches++
		}
	}
	return float64(matches) >= float64(len(keyWords))*0.7
}

// irLinkPatterns mark anchors that lead to an investor relations section.
var irLinkPatterns = []string{
	"investor", "investors", "ir", "investor-relations",
	"investor relations", "financial", "shareholders",
}

// findIRLink locates an investor relations link on the page, resolved
// against the page URL. Returns "" when none is found.
func findIRLink(doc *goquery.Document, baseURL string) string {
	for _, link := range scrape.ExtractLinks(doc, baseURL) {
		hrefLower := strings.ToLower(link.URL)
		textLower := strings.ToLower(link.Text)
		for _, pattern := range irLinkPatterns {
			if strings.Contains(hrefLower, pattern) || strings.Contains(textLower, pattern) {
				return link.URL
			}
		}
	}
	return ""
}

var tickerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:ticker|symbol)[\s:]+([A-Z]{2,5})`),
	regexp.MustCompile(`(?i)(?:NYSE|NASDAQ|LSE|BIST)[\s:]+([A-Z]{2,5})`),
	regexp.MustCompile(`(?i)\(([A-Z]{2,5})\)`), // (GPRT)
}

var knownExchanges = []string{"NYSE", "NASDAQ", "LSE", "BIST", "MOEX", "HKEX"}

// extractTicker pulls a ticker symbol and, when possible, the exchange it
// trades on out of page text.
func extractTicker(pageText string) (string, string) {
	for _, pattern := range tickerPatterns {
		m := pattern.FindStringSubmatch(pageText)
		if m == nil {
			continue
		}
		ticker := strings.ToUpper(m[1])

		exchange := ""
		for _, ex := range knownExchanges {
			if strings.Contains(pageText, strings.ToLower(ex)) {
				exchange = ex
				break
			}
		}
		return ticker, exchange
	}
	return "", ""
}

// knownCountries are checked in order against page text.
var knownCountries = []string{
	"turkey", "russia", "united states", "usa", "uk", "united kingdom",
	"germany", "france", "china", "japan", "india", "brazil",
	"netherlands", "switzerland", "singapore", "hong kong",
}

// extractCountry finds the headquarters country mentioned in page text.
func extractCountry(pageText string) string {
	for _, country := range knownCountries {
		if strings.Contains(pageText, country) {
			return titleCase(country)
		}
	}
	return ""
}

// industryOrder keeps industry detection deterministic.
var industryOrder = []string{"ports", "cruise", "finance", "tech", "energy", "retail"}

// detectIndustry lists the industries whose keyword groups have at least two
// hits in the page text.
func detectIndustry(pageText string) []string {
	var detected []string
	for _, industry := range industryOrder {
		matches := 0
		for _, kw := range industryKeywords[industry] {
			if strings.Contains(pageText, kw) {
				matches++
			}
		}
		if matches >= 2 {
			detected = append(detected, industry)
		}
	}
	return detected
}
