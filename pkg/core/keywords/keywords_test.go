package keywords

import (
	"math"
	"testing"
)

func TestDetectDocumentType(t *testing.T) {
	cases := []struct {
		text     string
		expected string
	}{
		{"Apple Inc Annual Report 2024.pdf", "annual_report"},
		{"Form 10-K for fiscal year 2023", "annual_report"},
		{"Q3 Quarterly Results", "quarterly_report"},
		{"Geschäftsbericht 2024", "annual_report"},
		{"Interim Report January-June 2023", "interim_report"},
		{"Consolidated Financial Statements FY2022", "financial_statements"},
		{"Earnings Release Fourth Quarter", "quarterly_report"},
		{"Investor Presentation May 2024", "investor_presentation"},
		{"Board meeting minutes", "financial_document"},
	}

	for _, c := range cases {
		got := DetectDocumentType(c.text)
		if got != c.expected {
			t.Errorf("DetectDocumentType(%q) = %q, expected %q", c.text, got, c.expected)
		}
	}
}

func TestDetectLanguageURLWinsOverContent(t *testing.T) {
	// URL says German even though title contains an English term.
	got := DetectLanguage("Annual Report 2023", "https://example.com/de/bericht-2023.pdf")
	if got != "german" {
		t.Errorf("expected german from URL marker, got %q", got)
	}
}

func TestDetectLanguageFromContent(t *testing.T) {
	cases := []struct {
		text     string
		expected string
	}{
		{"Rapport Annuel 2022", "french"},
		{"Informe Anual 2023", "spanish"},
		{"年度报告 2023", "chinese"},
		{"Some generic PDF title", "english"},
	}
	for _, c := range cases {
		got := DetectLanguage(c.text, "")
		if got != c.expected {
			t.Errorf("DetectLanguage(%q) = %q, expected %q", c.text, got, c.expected)
		}
	}
}

func TestIsEnglishVersion(t *testing.T) {
	cases := []struct {
		url      string
		title    string
		expected bool
	}{
		{"https://example.com/en/annual-report-2023.pdf", "", true},
		{"https://example.com/ru/otchet-2023.pdf", "", false},
		{"https://example.com/reports/ar2023.pdf", "Annual Report (EN)", true},
		{"https://example.com/reports/ar2023.pdf", "", true},
	}
	for _, c := range cases {
		got := IsEnglishVersion(c.url, c.title)
		if got != c.expected {
			t.Errorf("IsEnglishVersion(%q, %q) = %v, expected %v", c.url, c.title, got, c.expected)
		}
	}
}

func TestLanguagePreferenceNote(t *testing.T) {
	if got := LanguagePreferenceNote("english", false); got != "English version" {
		t.Errorf("unexpected note: %q", got)
	}
	got := LanguagePreferenceNote("german", false)
	expected := "English version not found; returning official german original"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestExtractYear(t *testing.T) {
	cases := []struct {
		text     string
		expected int
	}{
		{"Annual Report FY2023", 2023},
		{"FY 2021 Results", 2021},
		{"Annual Report 2019.pdf", 2019},
		{"Report from 1985", 1985},
		{"No year here", 0},
		// FY pattern wins over a bare year appearing earlier.
		{"2020 archive: FY2018 annual report", 2018},
	}
	for _, c := range cases {
		got := ExtractYear(c.text)
		if got != c.expected {
			t.Errorf("ExtractYear(%q) = %d, expected %d", c.text, got, c.expected)
		}
	}
}

func TestExtractQuarter(t *testing.T) {
	cases := []struct {
		text     string
		expected string
	}{
		{"Q3 2023 Report", "Q3"},
		{"Half-year H1 2022", "H1"},
		{"Annual Report 2023", ""},
	}
	for _, c := range cases {
		got := ExtractQuarter(c.text)
		if got != c.expected {
			t.Errorf("ExtractQuarter(%q) = %q, expected %q", c.text, got, c.expected)
		}
	}
}

func TestConfidenceScoreComponents(t *testing.T) {
	// PDF + year + URL path, no tier matches.
	got := ConfidenceScore(true, true, nil, true)
	if math.Abs(got-0.6) > 1e-9 {
		t.Errorf("expected 0.6, got %f", got)
	}

	// Single tier-1 match contributes weight * 1/3.
	got = ConfidenceScore(false, false, map[int]int{1: 1}, false)
	if math.Abs(got-0.25/3) > 1e-9 {
		t.Errorf("expected %f, got %f", 0.25/3, got)
	}

	// Tier counts cap at 3.
	three := ConfidenceScore(false, false, map[int]int{1: 3}, false)
	ten := ConfidenceScore(false, false, map[int]int{1: 10}, false)
	if three != ten {
		t.Errorf("tier cap broken: 3 matches %f vs 10 matches %f", three, ten)
	}
}

func TestConfidenceScoreCappedAtOne(t *testing.T) {
	matches := map[int]int{1: 3, 2: 3, 3: 3, 4: 3, 5: 3, 8: 3}
	got := ConfidenceScore(true, true, matches, true)
	if got != 1.0 {
		t.Errorf("expected cap at 1.0, got %f", got)
	}
}

func TestCountTierMatches(t *testing.T) {
	text := "Annual Report 2023 consolidated financial statements /investors/ annual-report.pdf"
	matches := CountTierMatches(text)
	if matches[1] == 0 {
		t.Errorf("expected tier 1 matches, got none")
	}
	if matches[7] == 0 {
		t.Errorf("expected tier 7 URL path match, got none")
	}
}

func TestBuildSearchQueries(t *testing.T) {
	queries := BuildSearchQueries("Maersk", 2023, "annual")
	if len(queries) != 6 {
		t.Fatalf("expected 6 queries, got %d: %v", len(queries), queries)
	}
	if queries[0] != "Maersk annual report 2023 filetype:pdf" {
		t.Errorf("unexpected first query: %q", queries[0])
	}
	last := queries[len(queries)-1]
	if last != "Maersk SEC 10-K filing 2023 site:sec.gov" {
		t.Errorf("unexpected SEC query: %q", last)
	}

	queries = BuildSearchQueries("Maersk", 0, "quarterly")
	for _, q := range queries {
		if q == "" {
			t.Errorf("empty query produced")
		}
	}
}
