package identity

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"reportfinder/pkg/core/search"
)

// fakeSearcher serves canned results for every query.
type fakeSearcher struct {
	results []search.Result
}

func (f *fakeSearcher) Search(ctx context.Context, query string, num int) ([]search.Result, error) {
	return f.results, nil
}

func (f *fakeSearcher) Enabled() bool { return true }

// fakeFetcher serves canned HTML per URL.
type fakeFetcher struct {
	pages map[string]string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	html, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("no page for %s", url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

const strongCompanyPage = `<html>
<head><title>Global Ports Holding | Home</title></head>
<body>
<p>Global Ports Holding is the world's largest cruise port operator,
managing port and terminal infrastructure with maritime cargo services.
Headquartered in Turkey. Ticker: GPH listed on LSE.</p>
<a href="/investors/">Investor Relations</a>
</body>
</html>`

func TestExtractHints(t *testing.T) {
	hints := ExtractHints("Global Ports Holding (GPRT) Turkey globalportsholding.com")
	if hints.Ticker != "GPRT" {
		t.Errorf("expected ticker GPRT, got %q", hints.Ticker)
	}
	if hints.Country != "Turkey" {
		t.Errorf("expected country Turkey, got %q", hints.Country)
	}
	if hints.Domain != "globalportsholding.com" {
		t.Errorf("expected domain, got %q", hints.Domain)
	}

	empty := ExtractHints("Apple annual report 2023")
	if empty.Ticker != "" || empty.Country != "" || empty.Domain != "" {
		t.Errorf("expected no hints, got %+v", empty)
	}
}

func TestValidatePDFDomain(t *testing.T) {
	card := &IdentityCard{OfficialDomain: "globalportsholding.com"}

	cases := []struct {
		url      string
		expected bool
	}{
		{"https://www.globalportsholding.com/reports/ar2023.pdf", true},
		{"https://www.sec.gov/Archives/edgar/data/123/ar.pdf", true},
		{"https://londonstockexchange.com/filing.pdf", true},
		{"https://random-analyst-site.com/gph-report.pdf", false},
	}
	for _, c := range cases {
		got := ValidatePDFDomain(c.url, card)
		if got != c.expected {
			t.Errorf("ValidatePDFDomain(%q) = %v, expected %v", c.url, got, c.expected)
		}
	}
}

func TestMeetsThreshold(t *testing.T) {
	card := &IdentityCard{
		ConfidenceScore: 0.85,
		Signals: map[string]bool{
			"strong_legal_name": true,
			"strong_ir_path":    true,
			"medium_industry":   true,
		},
	}
	if !card.MeetsThreshold() {
		t.Errorf("expected threshold met with score 0.85 and 2 strong signals")
	}

	// High score but only one strong signal fails.
	card.Signals["strong_ir_path"] = false
	if card.MeetsThreshold() {
		t.Errorf("expected threshold failed with 1 strong signal")
	}

	// Two strong signals but low score fails.
	card.Signals["strong_ir_path"] = true
	card.ConfidenceScore = 0.75
	if card.MeetsThreshold() {
		t.Errorf("expected threshold failed with score 0.75")
	}
}

func TestHasHardBlockers(t *testing.T) {
	// Suffix and short-word differences are tolerated.
	card := &IdentityCard{CanonicalName: "Global Ports Holding PLC"}
	if hasHardBlockers(card, "Global Ports Holding") {
		t.Errorf("suffix-only difference should not block")
	}

	// More than two important different words block.
	card = &IdentityCard{CanonicalName: "Meridian Logistics Partners International"}
	if !hasHardBlockers(card, "Global Ports Holding") {
		t.Errorf("expected block for unrelated name")
	}
}

func TestCheckNameMatch(t *testing.T) {
	page := "welcome to global ports holding, the cruise port operator"
	if !checkNameMatch(page, "Global Ports Holding") {
		t.Errorf("exact name on page should match")
	}
	if !checkNameMatch(page, "Global Ports Holding PLC") {
		t.Errorf("70%% of key words should match")
	}
	if checkNameMatch("unrelated page about cooking", "Global Ports Holding") {
		t.Errorf("unrelated page should not match")
	}
}

func TestExtractTicker(t *testing.T) {
	ticker, exchange := extractTicker("listed on nasdaq. ticker: aapl for the company")
	if ticker != "AAPL" {
		t.Errorf("expected AAPL, got %q", ticker)
	}
	if exchange != "NASDAQ" {
		t.Errorf("expected NASDAQ, got %q", exchange)
	}

	ticker, _ = extractTicker("shares trade as (gprt) on the exchange")
	if ticker != "GPRT" {
		t.Errorf("expected GPRT from parenthesized form, got %q", ticker)
	}

	ticker, _ = extractTicker("no symbols here")
	if ticker != "" {
		t.Errorf("expected empty ticker, got %q", ticker)
	}
}

func TestDetectIndustry(t *testing.T) {
	text := "we operate port and terminal infrastructure for container shipping"
	got := detectIndustry(text)
	if len(got) != 1 || got[0] != "ports" {
		t.Errorf("expected [ports], got %v", got)
	}

	// A single keyword hit is not enough.
	if got := detectIndustry("a retail brand"); len(got) != 0 {
		t.Errorf("expected no industry from one hit, got %v", got)
	}
}

func TestApplyHintsBoostsAreUncapped(t *testing.T) {
	matched := &IdentityCard{OfficialDomain: "globalportsholding.com", Ticker: "GPH", HQCountry: "Turkey", ConfidenceScore: 0.9}
	other := &IdentityCard{OfficialDomain: "globalports.ru", ConfidenceScore: 0.9}

	applyHints([]*IdentityCard{matched, other}, Hints{Country: "Turkey", Ticker: "GPH", Domain: "globalportsholding.com"})

	// All three boosts stack on the matching card and may exceed 1.0.
	if matched.ConfidenceScore <= 1.0 {
		t.Errorf("expected stacked boosts above 1.0, got %f", matched.ConfidenceScore)
	}
	if other.ConfidenceScore != 0.9 {
		t.Errorf("unhinted card must not change, got %f", other.ConfidenceScore)
	}
}

func TestDisambiguateVerifiesStrongCandidate(t *testing.T) {
	searcher := &fakeSearcher{results: []search.Result{
		{Link: "https://www.globalportsholding.com/", Title: "Global Ports Holding", Snippet: "cruise port operator"},
	}}
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://www.globalportsholding.com/": strongCompanyPage,
	}}

	d := NewDisambiguator(searcher, fetcher)
	card, amb, err := d.Disambiguate(context.Background(), "Global Ports Holding", Hints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amb != nil {
		t.Fatalf("unexpected ambiguity: %+v", amb)
	}
	if card == nil {
		t.Fatalf("expected a verified card")
	}
	if card.OfficialDomain != "www.globalportsholding.com" {
		t.Errorf("unexpected domain: %q", card.OfficialDomain)
	}
	if !card.Signals["strong_legal_name"] {
		t.Errorf("expected strong_legal_name signal")
	}
	if !card.Signals["strong_ir_path"] {
		t.Errorf("expected strong_ir_path signal")
	}
	if card.IRURL == "" {
		t.Errorf("expected IR URL to be captured")
	}
}

const rivalCompanyPage = `<html>
<head><title>Global Ports Investments | Home</title></head>
<body>
<p>Global Ports Investments operates container facilities across Russia.
Ticker: GLPR listed on MOEX.</p>
<a href="/investors/">Investor Relations</a>
</body>
</html>`

const weakNamesakePage = `<html>
<head><title>Global Ports Magazine | News</title></head>
<body>
<p>Global Ports Magazine covers harbor news from around the globe.</p>
<a href="/investors/">Investor Relations</a>
</body>
</html>`

func TestDisambiguateCloseScoresIsAmbiguity(t *testing.T) {
	searcher := &fakeSearcher{results: []search.Result{
		{Link: "https://www.globalportsholding.com/", Title: "Global Ports Holding", Snippet: "cruise port operator"},
		{Link: "https://www.globalports.ru/", Title: "Global Ports Investments", Snippet: "container terminal operator"},
	}}
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://www.globalportsholding.com/": strongCompanyPage,
		"https://www.globalports.ru/":         rivalCompanyPage,
	}}

	d := NewDisambiguator(searcher, fetcher)
	card, amb, err := d.Disambiguate(context.Background(), "Global Ports", Hints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Two candidates within 0.15 of each other cannot be auto-resolved even
	// when the leader meets the threshold.
	if card != nil {
		t.Fatalf("expected no verified card, got %+v", card)
	}
	if amb == nil {
		t.Fatalf("expected ambiguity for close-scoring candidates")
	}
	if len(amb.Candidates) != 2 {
		t.Fatalf("expected both candidates listed, got %d", len(amb.Candidates))
	}
	domains := map[string]bool{}
	for _, c := range amb.Candidates {
		domains[c.Domain] = true
	}
	if !domains["www.globalportsholding.com"] || !domains["www.globalports.ru"] {
		t.Errorf("candidate domains = %v", domains)
	}
}

func TestDisambiguateClearLeaderWins(t *testing.T) {
	searcher := &fakeSearcher{results: []search.Result{
		{Link: "https://www.globalportsholding.com/", Title: "Global Ports Holding", Snippet: "cruise port operator"},
		{Link: "https://www.globalports-magazine.com/", Title: "Global Ports Magazine", Snippet: "industry news"},
	}}
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://www.globalportsholding.com/":   strongCompanyPage,
		"https://www.globalports-magazine.com/": weakNamesakePage,
	}}

	d := NewDisambiguator(searcher, fetcher)
	card, amb, err := d.Disambiguate(context.Background(), "Global Ports", Hints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amb != nil {
		t.Fatalf("a clear score gap must not raise ambiguity: %+v", amb)
	}
	if card == nil {
		t.Fatalf("expected a verified card")
	}
	if card.OfficialDomain != "www.globalportsholding.com" {
		t.Errorf("leader domain = %q", card.OfficialDomain)
	}
}

func TestDisambiguateNoCandidatesIsAmbiguity(t *testing.T) {
	searcher := &fakeSearcher{results: []search.Result{
		{Link: "https://en.wikipedia.org/wiki/Thing", Title: "Thing - Wikipedia"},
	}}
	d := NewDisambiguator(searcher, &fakeFetcher{pages: map[string]string{}})

	card, amb, err := d.Disambiguate(context.Background(), "Thing", Hints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card != nil {
		t.Fatalf("expected no card, got %+v", card)
	}
	if amb == nil {
		t.Fatalf("expected ambiguity for blocker-only results")
	}
	if len(amb.ClarificationOptions) == 0 {
		t.Errorf("ambiguity must carry clarification options")
	}
}
