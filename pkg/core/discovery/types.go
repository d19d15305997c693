// Package discovery finds official investor-relations PDF documents for a
// verified company: direct search, deep IR-site crawling, regulator
// fallback, and an LLM fallback of last resort.
package discovery

import (
	"fmt"

	"reportfinder/pkg/core/identity"
)

// Request describes one discovery run.
type Request struct {
	// Company is the user-supplied company name or ticker.
	Company string `json:"company"`
	// DocTypes are the requested document types (annual report, 10-K, ...).
	DocTypes []string `json:"doc_types,omitempty"`
	// StartYear/EndYear bound the reporting periods. Zero values default to
	// the last five years ending now.
	StartYear int `json:"start_year,omitempty"`
	EndYear   int `json:"end_year,omitempty"`
	// Quarters restricts quarterly requests to specific quarters (Q1-Q4).
	Quarters []string `json:"quarters,omitempty"`
	// MaxResults caps the documents returned. Zero means 50.
	MaxResults int `json:"max_results,omitempty"`
	// SourceURL is a user-supplied reports page. When set, discovery crawls
	// it directly instead of searching for one.
	SourceURL string `json:"source_url,omitempty"`
	// Hints carry optional disambiguation clues.
	Hints identity.Hints `json:"-"`
}

// Document is one discovered financial document with its metadata.
type Document struct {
	CompanyName     string  `json:"company_name"`
	Title           string  `json:"title"`
	ReportingPeriod string  `json:"period"` // "2024", "Q3 2024", "FY2024"
	DocType         string  `json:"doc_type"`
	PDFURL          string  `json:"pdf_url"`
	SourcePage      string  `json:"source_page"`
	Language        string  `json:"language"`
	Confidence      float64 `json:"confidence_score"`
	Year            int     `json:"year,omitempty"`
	Quarter         string  `json:"quarter,omitempty"`
	LanguageNotes   string  `json:"notes,omitempty"`
}

// RequestEcho is the request summary embedded in every result.
type RequestEcho struct {
	DocTypes  []string `json:"doc_types"`
	DateRange string   `json:"date_range"`
}

// Result is the complete discovery outcome. Discovery-logic failures never
// surface as errors; an empty document list with explanatory notes is a
// valid result.
type Result struct {
	RunID                  string                        `json:"run_id"`
	Company                string                        `json:"company"`
	Request                RequestEcho                   `json:"request"`
	Documents              []Document                    `json:"documents"`
	Notes                  string                        `json:"notes"`
	PagesChecked           []string                      `json:"pages_checked,omitempty"`
	DisambiguationRequired bool                          `json:"disambiguation_required,omitempty"`
	Candidates             []identity.AmbiguityCandidate `json:"candidates,omitempty"`
	ClarificationOptions   []string                      `json:"clarification_options,omitempty"`
	VerifiedCompany        string                        `json:"verified_company,omitempty"`
	MissingPeriods         []string                      `json:"missing_periods,omitempty"`
}

func dateRange(startYear, endYear int) string {
	return fmt.Sprintf("%d-%d", startYear, endYear)
}
