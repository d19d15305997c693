package discovery

import (
	"testing"

	"reportfinder/pkg/core/search"
)

func TestSelectPolicy(t *testing.T) {
	cases := []struct {
		reportType string
		name       string
		quarter    bool
	}{
		{"annual", "annual", false},
		{"10-K", "annual", false},
		{"financial_statements", "annual", false},
		{"quarterly", "quarterly", true},
		{"10-Q", "quarterly", true},
		{"earnings", "earnings", false},
		{"presentation", "presentation", false},
		{"", "financial_document", false},
	}
	for _, c := range cases {
		policy := SelectPolicy(c.reportType)
		if policy.Name() != c.name {
			t.Errorf("SelectPolicy(%q).Name() = %q, expected %q", c.reportType, policy.Name(), c.name)
		}
		if policy.WantsQuarter() != c.quarter {
			t.Errorf("SelectPolicy(%q).WantsQuarter() = %v", c.reportType, policy.WantsQuarter())
		}
	}
}

func TestPeriodLabel(t *testing.T) {
	if got := SelectPolicy("annual").PeriodLabel(2023, ""); got != "FY2023" {
		t.Errorf("annual label = %q", got)
	}
	if got := SelectPolicy("quarterly").PeriodLabel(2023, "Q4"); got != "Q4 2023" {
		t.Errorf("quarterly label = %q", got)
	}
	if got := SelectPolicy("quarterly").PeriodLabel(2023, ""); got != "FY2023" {
		t.Errorf("quarterly label without quarter = %q", got)
	}
}

func TestClassifyAcceptsAnnualReport(t *testing.T) {
	results := []search.Result{{
		Link:        "https://www.globalportsholding.com/reports/annual-report-2023.pdf",
		Title:       "Global Ports Holding Annual Report 2023",
		Snippet:     "Audited consolidated financial statements for the year ended 31 December 2023",
		DisplayLink: "www.globalportsholding.com",
	}}

	docs := classifyResults(results, "Global Ports Holding", 2023, SelectPolicy("annual"), nil)
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	doc := docs[0]
	if doc.ReportingPeriod != "FY2023" {
		t.Errorf("period = %q, expected FY2023", doc.ReportingPeriod)
	}
	if doc.Year != 2023 {
		t.Errorf("year = %d", doc.Year)
	}
	if doc.SourcePage != "https://www.globalportsholding.com" {
		t.Errorf("source page = %q", doc.SourcePage)
	}
	if doc.Confidence <= 0 {
		t.Errorf("confidence = %f", doc.Confidence)
	}
}

func TestClassifyRejectsNonPDF(t *testing.T) {
	results := []search.Result{{
		Link:  "https://www.globalportsholding.com/investors/",
		Title: "Global Ports Holding Investor Relations",
	}}
	if docs := classifyResults(results, "Global Ports Holding", 2023, SelectPolicy("annual"), nil); len(docs) != 0 {
		t.Errorf("expected no documents, got %d", len(docs))
	}
}

func TestClassifyRejectsWrongCompanyDomain(t *testing.T) {
	results := []search.Result{{
		Link:  "https://www.prosus.com/reports/annual-report-2023.pdf",
		Title: "Prosus Annual Report 2023",
	}}
	if docs := classifyResults(results, "Naspers", 2023, SelectPolicy("annual"), nil); len(docs) != 0 {
		t.Errorf("expected rejection for wrong company domain, got %d docs", len(docs))
	}
}

func TestClassifyExclusionsIgnoreSnippet(t *testing.T) {
	// A sustainability mention in the snippet must not reject an annual
	// report; the same phrase in the title must.
	inSnippet := []search.Result{{
		Link:        "https://www.globalportsholding.com/reports/annual-report-2023.pdf",
		Title:       "Global Ports Holding Annual Report 2023",
		Snippet:     "Includes our sustainability report section and ESG highlights",
		DisplayLink: "www.globalportsholding.com",
	}}
	if docs := classifyResults(inSnippet, "Global Ports Holding", 2023, SelectPolicy("annual"), nil); len(docs) != 1 {
		t.Errorf("snippet-only exclusion keyword must not reject, got %d docs", len(docs))
	}

	inTitle := []search.Result{{
		Link:  "https://www.globalportsholding.com/reports/sr-2023.pdf",
		Title: "Global Ports Holding Sustainability Report 2023 pdf",
	}}
	if docs := classifyResults(inTitle, "Global Ports Holding", 2023, SelectPolicy("annual"), nil); len(docs) != 0 {
		t.Errorf("title exclusion keyword must reject, got %d docs", len(docs))
	}
}

func TestClassifyRejectsInterimForAnnualRequest(t *testing.T) {
	results := []search.Result{{
		Link:  "https://www.globalportsholding.com/reports/interim-2023.pdf",
		Title: "Global Ports Holding Interim Condensed Financial Statements 2023",
	}}
	if docs := classifyResults(results, "Global Ports Holding", 2023, SelectPolicy("annual"), nil); len(docs) != 0 {
		t.Errorf("interim doc must be rejected for annual request, got %d docs", len(docs))
	}
}

func TestClassifyRejectsYearMismatch(t *testing.T) {
	results := []search.Result{{
		Link:  "https://www.globalportsholding.com/reports/annual-report-2021.pdf",
		Title: "Global Ports Holding Annual Report 2021",
	}}
	if docs := classifyResults(results, "Global Ports Holding", 2023, SelectPolicy("annual"), nil); len(docs) != 0 {
		t.Errorf("expected year-mismatch rejection, got %d docs", len(docs))
	}
}

func TestClassifyExactQuarterMatching(t *testing.T) {
	q3 := []search.Result{{
		Link:        "https://www.globalportsholding.com/results/q3-2023-results.pdf",
		Title:       "Global Ports Holding Q3 2023 Results",
		DisplayLink: "www.globalportsholding.com",
	}}

	docs := classifyResults(q3, "Global Ports Holding", 2023, SelectPolicy("quarterly"), []string{"Q3"})
	if len(docs) != 1 {
		t.Fatalf("expected Q3 acceptance, got %d docs", len(docs))
	}
	if docs[0].Quarter != "Q3" || docs[0].ReportingPeriod != "Q3 2023" {
		t.Errorf("quarter = %q, period = %q", docs[0].Quarter, docs[0].ReportingPeriod)
	}

	// Wrong quarter is rejected outright.
	if docs := classifyResults(q3, "Global Ports Holding", 2023, SelectPolicy("quarterly"), []string{"Q1"}); len(docs) != 0 {
		t.Errorf("expected wrong-quarter rejection, got %d docs", len(docs))
	}

	// Interim label without a Q1-Q4 marker does not satisfy an exact
	// quarter request.
	interim := []search.Result{{
		Link:  "https://www.globalportsholding.com/results/interim-2023.pdf",
		Title: "Global Ports Holding Interim Results 2023",
	}}
	if docs := classifyResults(interim, "Global Ports Holding", 2023, SelectPolicy("quarterly"), []string{"Q3"}); len(docs) != 0 {
		t.Errorf("expected rejection without explicit quarter label, got %d docs", len(docs))
	}
}

func TestClassifyRejectsFullYearForQuarterlyRequest(t *testing.T) {
	results := []search.Result{{
		Link:  "https://www.globalportsholding.com/reports/q4-and-full-year-2023.pdf",
		Title: "Global Ports Holding Q4 and Full Year 2023 Annual Report",
	}}
	if docs := classifyResults(results, "Global Ports Holding", 2023, SelectPolicy("quarterly"), []string{"Q4"}); len(docs) != 0 {
		t.Errorf("full-year doc must be rejected for quarterly request, got %d docs", len(docs))
	}
}

func TestClassifyRejectsSECFormsForEarningsRequest(t *testing.T) {
	results := []search.Result{{
		Link:  "https://www.globalportsholding.com/filings/earnings-results-2023.pdf",
		Title: "Global Ports Holding Form 10-K Earnings Results 2023",
	}}
	if docs := classifyResults(results, "Global Ports Holding", 2023, SelectPolicy("earnings"), nil); len(docs) != 0 {
		t.Errorf("10-K filing must be rejected for earnings request, got %d docs", len(docs))
	}

	// A genuine earnings release still passes.
	release := []search.Result{{
		Link:        "https://www.globalportsholding.com/results/q2-2023-earnings-release.pdf",
		Title:       "Global Ports Holding Q2 2023 Earnings Release",
		DisplayLink: "www.globalportsholding.com",
	}}
	docs := classifyResults(release, "Global Ports Holding", 2023, SelectPolicy("earnings"), nil)
	if len(docs) != 1 {
		t.Fatalf("expected earnings release acceptance, got %d docs", len(docs))
	}
	if docs[0].ReportingPeriod != "Q2 2023" {
		t.Errorf("period = %q, expected Q2 2023", docs[0].ReportingPeriod)
	}
}

func TestClassifyRejectsAcademicSources(t *testing.T) {
	results := []search.Result{{
		Link:  "https://www.researchgate.net/profile/paper/globalports-annual-report-2023.pdf",
		Title: "Global Ports Holding Annual Report 2023 analysis",
	}}
	if docs := classifyResults(results, "Global Ports Holding", 2023, SelectPolicy("annual"), nil); len(docs) != 0 {
		t.Errorf("expected academic-source rejection, got %d docs", len(docs))
	}
}
