package discovery

import (
	"regexp"
	"strconv"
	"strings"
)

// reportingYearPatterns match the fiscal/reporting year in priority order.
// Title phrasings win over URL fragments so "Annual Report 2020" hosted
// under /2023/ resolves to 2020.
var reportingYearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`annual\s+report\s+(\d{4})`),
	regexp.MustCompile(`(\d{4})\s+annual\s+report`),
	regexp.MustCompile(`fy\s*(\d{4})`),
	regexp.MustCompile(`fiscal\s+year\s+(\d{4})`),
	regexp.MustCompile(`(?:for\s+)?(?:the\s+)?year\s+ended\s+(?:\d+\s+\w+\s+)?(\d{4})`),
	regexp.MustCompile(`10-k\s+(\d{4})`),
	regexp.MustCompile(`(\d{4})\s+(?:form\s+)?10-k`),
	regexp.MustCompile(`form\s+10-k\s+(\d{4})`),
	regexp.MustCompile(`20-f\s+(\d{4})`),
	regexp.MustCompile(`(\d{4})\s+(?:form\s+)?20-f`),
	regexp.MustCompile(`results?\s+(\d{4})`),
	regexp.MustCompile(`fy(\d{2})\s+results?`),
	regexp.MustCompile(`/(\d{4})/`),
	regexp.MustCompile(`[_-](\d{4})[_.-]`),
	regexp.MustCompile(`(\d{4})\.pdf$`),
}

// extractReportingYear pulls the reporting period year out of a document's
// title, URL and snippet. Two-digit fiscal years expand into 20xx. Years
// outside 2000-2030 are ignored. Falls back to the search year when nothing
// matches.
func extractReportingYear(title, url, snippet string, searchYear int) int {
	combined := strings.ToLower(title + " " + url + " " + snippet)
	for _, pattern := range reportingYearPatterns {
		m := pattern.FindStringSubmatch(combined)
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if len(m[1]) == 2 {
			year += 2000
		}
		if year >= 2000 && year <= 2030 {
			return year
		}
	}
	return searchYear
}

// quarterLabelOrder fixes the evaluation order of quarter markers.
var quarterLabelOrder = []string{"Q1", "Q2", "Q3", "Q4"}

// quarterLabelMarkers map a quarter to the text markers that identify it.
var quarterLabelMarkers = map[string][]string{
	"Q1": {"q1", "1q", "first quarter", "q1 "},
	"Q2": {"q2", "2q", "second quarter", "q2 "},
	"Q3": {"q3", "3q", "third quarter", "q3 "},
	"Q4": {"q4", "4q", "fourth quarter", "q4 "},
}

// extractDocQuarter returns the quarter label found in text, or "" when the
// document carries no Q1-Q4 marker.
func extractDocQuarter(text string) string {
	textLower := strings.ToLower(text)
	for _, q := range quarterLabelOrder {
		for _, marker := range quarterLabelMarkers[q] {
			if strings.Contains(textLower, marker) {
				return q
			}
		}
	}
	return ""
}

var pdfURLPattern = regexp.MustCompile(`(?i)^https?://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// validatePDFURL checks that a link is a well-formed absolute URL pointing
// at a PDF.
func validatePDFURL(url string) bool {
	if url == "" || !strings.HasPrefix(url, "http") {
		return false
	}
	if !strings.Contains(strings.ToLower(url), ".pdf") {
		return false
	}
	return pdfURLPattern.MatchString(url)
}
