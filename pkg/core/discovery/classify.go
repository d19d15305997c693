package discovery

import (
	"fmt"
	"strings"

	"reportfinder/pkg/core/keywords"
	"reportfinder/pkg/core/search"
)

// excludedTitleKeywords reject documents whose TITLE or URL marks a wrong
// document type. Snippets are never checked here: a snippet routinely
// mentions topics covered inside an annual report (sustainability sections,
// governance chapters) without the document being about them.
var excludedTitleKeywords = []string{
	// Sustainability-only documents
	"sustainability report", "esg report", "environmental report",
	"climate report", "carbon report",
	// Activity/non-financial reports
	"activity report", "integrated report",
	"corporate governance report",
	// Prospectus/bond documents
	"prospectus", "base prospectus", "bond offering",
	"offering circular", "offering memorandum",
	// Academic
	"thesis", "dissertation",
	// Investment trusts and third-party funds
	"form n-q", "form n-csr",
	"investment trust", "fund prospectus", "fund report",
}

// classifyResults runs every search result through the strict acceptance
// pipeline for one (company, year, report type) request and returns the
// accepted documents. The order of checks is fixed: PDF shape, company
// domain, title exclusions, academic hosts, report-type policy, company
// name, then exact year match.
func classifyResults(results []search.Result, company string, year int, policy ReportTypePolicy, requestedQuarters []string) []Document {
	var docs []Document

	for _, result := range results {
		link := result.Link
		linkLower := strings.ToLower(link)
		titleLower := strings.ToLower(result.Title)
		snippetLower := strings.ToLower(result.Snippet)
		combined := titleLower + " " + snippetLower + " " + linkLower

		if !strings.Contains(linkLower, ".pdf") && !strings.Contains(titleLower, "pdf") {
			continue
		}
		if !validatePDFURL(link) {
			continue
		}

		if !validateCompanyDomain(link, company) {
			fmt.Printf("  [X] REJECTED (wrong company domain): %s\n", truncate(result.Title, 50))
			continue
		}

		// Exclusions check title+URL only, never the snippet.
		titleAndLink := titleLower + " " + linkLower
		if kw := firstMatch(titleAndLink, excludedTitleKeywords); kw != "" {
			fmt.Printf("  [X] REJECTED (excluded keyword %q): %s\n", kw, truncate(result.Title, 50))
			continue
		}

		if isAcademicSource(link) {
			fmt.Printf("  [X] REJECTED (academic source): %s\n", truncate(result.Title, 50))
			continue
		}

		docQuarter, ok := checkReportType(combined, policy, requestedQuarters, result.Title)
		if !ok {
			continue
		}

		if !verifyCompanyName(combined, company) {
			fmt.Printf("  [X] REJECTED (company mismatch): %s\n", truncate(result.Title, 50))
			continue
		}

		reportingYear := extractReportingYear(result.Title, link, result.Snippet, year)
		if reportingYear != year {
			fmt.Printf("  [X] REJECTED (year mismatch: extracted FY%d, requested FY%d): %s\n",
				reportingYear, year, truncate(result.Title, 50))
			continue
		}

		sourcePage := ""
		if result.DisplayLink != "" {
			sourcePage = "https://" + result.DisplayLink
		}

		period := policy.PeriodLabel(reportingYear, docQuarter)
		fmt.Printf("  [OK] ACCEPTED: %s (%s)\n", truncate(result.Title, 60), period)

		docs = append(docs, Document{
			CompanyName:     company,
			Title:           result.Title,
			ReportingPeriod: period,
			DocType:         keywords.DetectDocumentType(result.Title + " " + link),
			PDFURL:          link,
			SourcePage:      sourcePage,
			Language:        keywords.DetectLanguage(result.Title, link),
			Confidence: keywords.ConfidenceScore(
				true, true,
				keywords.CountTierMatches(combined),
				keywords.HasURLPathMatch(link),
			),
			Year:    reportingYear,
			Quarter: docQuarter,
		})
	}

	return docs
}

// checkReportType applies the report-type policy to the combined text and
// returns the extracted quarter (quarterly policies only) and whether the
// document passes. Reject keywords always run before accept keywords.
func checkReportType(combined string, policy ReportTypePolicy, requestedQuarters []string, title string) (string, bool) {
	docQuarter := ""
	if policy.WantsQuarter() {
		docQuarter = extractDocQuarter(combined)
	}

	if kw := firstMatch(combined, policy.RejectKeywords()); kw != "" {
		fmt.Printf("  [X] REJECTED (wrong doc type, %q found): %s\n", kw, truncate(title, 50))
		return "", false
	}

	if policy.WantsQuarter() && len(requestedQuarters) > 0 {
		// Exact quarter matching: interim/H1/H2 labels are not enough.
		if docQuarter == "" {
			fmt.Printf("  [X] REJECTED (no specific Q1-Q4 label): %s\n", truncate(title, 50))
			return "", false
		}
		matched := false
		for _, q := range requestedQuarters {
			if strings.EqualFold(q, docQuarter) {
				matched = true
				break
			}
		}
		if !matched {
			fmt.Printf("  [X] REJECTED (wrong quarter, found %s, need %v): %s\n",
				docQuarter, requestedQuarters, truncate(title, 50))
			return "", false
		}
		return docQuarter, true
	}

	if accept := policy.AcceptKeywords(); len(accept) > 0 {
		if firstMatch(combined, accept) == "" {
			fmt.Printf("  [X] REJECTED (no %s keywords): %s\n", policy.Name(), truncate(title, 50))
			return "", false
		}
	}
	return docQuarter, true
}

func firstMatch(text string, terms []string) string {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return term
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
