package discovery

import "testing"

func TestScoreDocumentCompanyDomainBeatsExchange(t *testing.T) {
	company := "Global Ports Holding"
	onCompany := Document{
		Title:  "Annual Report 2023",
		PDFURL: "https://www.globalportsholding.com/reports/annual-report-2023.pdf",
	}
	onExchange := Document{
		Title:  "Annual Report 2023",
		PDFURL: "https://www.hkexnews.hk/listedco/filings/ar2023.pdf",
	}

	companyScore := scoreDocument(onCompany, company)
	exchangeScore := scoreDocument(onExchange, company)
	if companyScore <= exchangeScore {
		t.Errorf("company domain (%d) must outrank exchange (%d)", companyScore, exchangeScore)
	}
	// +100 domain, +50 annual title, +30 IR path.
	if companyScore != 180 {
		t.Errorf("company score = %d, expected 180", companyScore)
	}
	// -50 exchange, +50 annual title.
	if exchangeScore != 0 {
		t.Errorf("exchange score = %d, expected 0", exchangeScore)
	}
}

func TestScoreDocumentConsolidatedBonuses(t *testing.T) {
	full := Document{Title: "Consolidated Financial Statements 2023", PDFURL: "https://example.org/x.pdf"}
	partial := Document{Title: "Consolidated results 2023", PDFURL: "https://example.org/x.pdf"}
	if scoreDocument(full, "Acme") != 40 {
		t.Errorf("full phrase score = %d, expected 40", scoreDocument(full, "Acme"))
	}
	if scoreDocument(partial, "Acme") != 20 {
		t.Errorf("partial phrase score = %d, expected 20", scoreDocument(partial, "Acme"))
	}
}

func TestScoreDocumentExclusionPenalty(t *testing.T) {
	doc := Document{
		Title:  "Global Ports Holding Annual Review 2023",
		PDFURL: "https://www.globalportsholding.com/reports/review-2023.pdf",
	}
	if score := scoreDocument(doc, "Global Ports Holding"); score > 0 {
		t.Errorf("excluded title must score below zero, got %d", score)
	}
}

func TestBestPerYearPicksHighestAndReportsMissing(t *testing.T) {
	company := "Global Ports Holding"
	candidates := []Document{
		{Title: "Annual Report 2023", PDFURL: "https://www.hkexnews.hk/ar2023.pdf", Year: 2023},
		{Title: "Annual Report 2023", PDFURL: "https://www.globalportsholding.com/reports/ar2023.pdf", Year: 2023},
	}

	best, missing := bestPerYear(candidates, []int{2023, 2022}, company)
	if len(best) != 1 {
		t.Fatalf("expected 1 best doc, got %d", len(best))
	}
	if best[0].PDFURL != "https://www.globalportsholding.com/reports/ar2023.pdf" {
		t.Errorf("wrong winner: %s", best[0].PDFURL)
	}
	if len(missing) != 1 || missing[0] != "FY2022" {
		t.Errorf("missing = %v, expected [FY2022]", missing)
	}
}

func TestBestPerYearRejectsNonPositiveScores(t *testing.T) {
	candidates := []Document{
		{Title: "Sustainability highlights", PDFURL: "https://www.hkexnews.hk/esg.pdf", Year: 2023},
	}
	best, missing := bestPerYear(candidates, []int{2023}, "Global Ports Holding")
	if len(best) != 0 {
		t.Errorf("expected no docs when best score <= 0, got %d", len(best))
	}
	if len(missing) != 1 || missing[0] != "FY2023" {
		t.Errorf("missing = %v", missing)
	}
}

func TestBestPerYearTiesKeepFirstEncountered(t *testing.T) {
	company := "Global Ports Holding"
	first := Document{Title: "Annual Report 2023", PDFURL: "https://www.globalportsholding.com/a/ar-first.pdf", Year: 2023}
	second := Document{Title: "Annual Report 2023", PDFURL: "https://www.globalportsholding.com/a/ar-second.pdf", Year: 2023}

	best, _ := bestPerYear([]Document{first, second}, []int{2023}, company)
	if len(best) != 1 || best[0].PDFURL != first.PDFURL {
		t.Errorf("tie must keep the first candidate, got %v", best)
	}
}

func TestBestPerPeriod(t *testing.T) {
	company := "Global Ports Holding"
	candidates := []Document{
		{Title: "Q1 2023 Results", PDFURL: "https://www.globalportsholding.com/results/q1-2023.pdf", Year: 2023, Quarter: "Q1"},
		{Title: "Q1 2023 Results", PDFURL: "https://www.hkexnews.hk/q1-2023.pdf", Year: 2023, Quarter: "Q1"},
	}

	best, missing := bestPerPeriod(candidates, []int{2023}, []string{"Q1", "Q2"}, company)
	if len(best) != 1 {
		t.Fatalf("expected 1 best doc, got %d", len(best))
	}
	if best[0].PDFURL != "https://www.globalportsholding.com/results/q1-2023.pdf" {
		t.Errorf("wrong winner: %s", best[0].PDFURL)
	}
	if len(missing) != 1 || missing[0] != "Q2 2023" {
		t.Errorf("missing = %v, expected [Q2 2023]", missing)
	}
}
