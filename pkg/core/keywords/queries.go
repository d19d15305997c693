package keywords

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// SEARCH QUERY BUILDERS
// =============================================================================

// BuildSearchQueries builds a broad query set for a company and report type.
// Year 0 means no year filter.
func BuildSearchQueries(company string, year int, reportType string) []string {
	var baseTerms []string
	switch reportType {
	case "annual", "10-k":
		baseTerms = []string{"annual report", "10-K", "financial statements", "annual filing"}
	case "quarterly", "10-q":
		baseTerms = []string{"quarterly report", "10-Q", "quarterly results", "Q1 Q2 Q3 Q4"}
	case "interim":
		baseTerms = []string{"interim report", "half-year report", "semi-annual"}
	default:
		baseTerms = []string{"financial statements", "investor relations", "financial report"}
	}

	yearStr := ""
	if year > 0 {
		yearStr = strconv.Itoa(year)
	}

	queries := make([]string, 0, len(baseTerms)+2)
	for _, term := range baseTerms {
		var b strings.Builder
		b.WriteString(company)
		b.WriteString(" ")
		b.WriteString(term)
		if yearStr != "" {
			b.WriteString(" ")
			b.WriteString(yearStr)
		}
		b.WriteString(" filetype:pdf")
		queries = append(queries, b.String())
	}

	queries = append(queries, fmt.Sprintf("%s investor relations reports", company))

	if reportType == "annual" || reportType == "10-k" {
		if yearStr != "" {
			queries = append(queries, fmt.Sprintf("%s SEC 10-K filing %s site:sec.gov", company, yearStr))
		} else {
			queries = append(queries, fmt.Sprintf("%s SEC 10-K filing site:sec.gov", company))
		}
	}

	return queries
}
