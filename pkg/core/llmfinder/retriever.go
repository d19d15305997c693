// Package llmfinder is the discovery fallback of last resort: when search
// and crawling return nothing, an LLM is asked to enumerate the company's
// investor documents from its own knowledge.
package llmfinder

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"reportfinder/pkg/core/discovery"
	"reportfinder/pkg/core/utils"
)

const systemPrompt = "You are a financial document research assistant. You help find official investor reports and financial documents from company websites. Always return valid JSON."

// fallbackConfidence is assigned to LLM-sourced documents. The model's
// recall is broad but its URLs are unverified.
const fallbackConfidence = 0.7

// Prompter executes a prompt against the configured LLM provider.
// *agent.Manager satisfies this.
type Prompter interface {
	ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error)
}

// Retriever implements the LLM fallback rung of the discovery ladder.
type Retriever struct {
	prompter Prompter
}

func NewRetriever(prompter Prompter) *Retriever {
	return &Retriever{prompter: prompter}
}

// llmResponse is the JSON contract the discovery prompt demands.
type llmResponse struct {
	Company         string        `json:"company"`
	OfficialWebsite string        `json:"official_website"`
	OfficialIRPage  string        `json:"official_investor_relations"`
	ReportsPages    []reportsPage `json:"reports_pages"`
	Documents       []rawDocument `json:"documents"`
	Notes           string        `json:"notes"`
}

type reportsPage struct {
	DocCategory string `json:"doc_category"`
	URL         string `json:"url"`
}

type rawDocument struct {
	Title      string `json:"title"`
	DocType    string `json:"doc_type"`
	Period     string `json:"period"`
	PDFURL     string `json:"pdf_url"`
	SourcePage string `json:"source_page"`
}

// RetrieveDocuments asks the LLM for investor documents and converts the
// validated entries into discovery documents.
func (r *Retriever) RetrieveDocuments(ctx context.Context, company string, docTypes []string, startYear, endYear int) ([]discovery.Document, error) {
	fmt.Printf("[LLM-FALLBACK] searching for %s documents (%d-%d)\n", company, startYear, endYear)

	prompt := buildDiscoveryPrompt(company, docTypes, startYear, endYear)

	options := map[string]interface{}{
		"temperature": 0.1,
		"max_tokens":  2000,
	}
	content, err := r.prompter.ExecutePrompt(ctx, "document_finder", prompt, systemPrompt, options)
	if err != nil {
		return nil, fmt.Errorf("LLM fallback request failed: %w", err)
	}

	var resp llmResponse
	cleaned := utils.CleanMarkdown(content)
	if _, err := utils.SmartParse(cleaned, &resp); err != nil {
		return nil, fmt.Errorf("LLM fallback response unparseable: %w", err)
	}

	docs := r.validateDocuments(resp, company, startYear, endYear)
	fmt.Printf("[LLM-FALLBACK] validated %d of %d documents\n", len(docs), len(resp.Documents))
	return docs, nil
}

func (r *Retriever) validateDocuments(resp llmResponse, company string, startYear, endYear int) []discovery.Document {
	companyName := resp.Company
	if companyName == "" {
		companyName = company
	}

	var docs []discovery.Document
	for _, raw := range resp.Documents {
		if raw.PDFURL == "" {
			continue
		}
		if !looksLikePDFURL(raw.PDFURL) {
			fmt.Printf("[LLM-FALLBACK] skipping non-PDF URL: %s\n", raw.PDFURL)
			continue
		}

		year, quarter := parsePeriod(raw.Period)
		if year != 0 && (year < startYear || year > endYear) {
			fmt.Printf("[LLM-FALLBACK] skipping document outside year range: %s\n", raw.Period)
			continue
		}

		title := raw.Title
		if title == "" {
			title = "Financial Document"
		}

		docs = append(docs, discovery.Document{
			CompanyName:     companyName,
			Title:           title,
			ReportingPeriod: raw.Period,
			DocType:         normalizeDocType(raw.DocType),
			PDFURL:          raw.PDFURL,
			SourcePage:      raw.SourcePage,
			Language:        "english",
			Confidence:      fallbackConfidence,
			Year:            year,
			Quarter:         quarter,
		})
	}
	return docs
}

// looksLikePDFURL accepts absolute URLs that either carry a .pdf extension
// or are report download endpoints without one.
func looksLikePDFURL(url string) bool {
	lower := strings.ToLower(url)
	if !strings.HasPrefix(lower, "http") {
		return false
	}
	if strings.Contains(lower, ".pdf") {
		return true
	}
	if strings.Contains(lower, "download") && (strings.Contains(lower, "report") || strings.Contains(lower, "annual")) {
		return true
	}
	return false
}

var (
	periodYearPattern    = regexp.MustCompile(`(20\d{2})`)
	periodQuarterPattern = regexp.MustCompile(`(?i)\b(Q[1-4])\b`)
)

// parsePeriod pulls the year and quarter out of a period label like
// "FY2023" or "Q2 2024". A zero year means no year was stated.
func parsePeriod(period string) (int, string) {
	year := 0
	if m := periodYearPattern.FindStringSubmatch(period); m != nil {
		year, _ = strconv.Atoi(m[1])
	}
	quarter := ""
	if m := periodQuarterPattern.FindStringSubmatch(period); m != nil {
		quarter = strings.ToUpper(m[1])
	}
	return year, quarter
}

var docTypeAliases = map[string]string{
	"annual":               "annual_report",
	"annual_report":        "annual_report",
	"10_k":                 "10-K",
	"10k":                  "10-K",
	"10_q":                 "10-Q",
	"10q":                  "10-Q",
	"20_f":                 "20-F",
	"20f":                  "20-F",
	"quarterly":            "quarterly_report",
	"quarterly_report":     "quarterly_report",
	"earnings":             "earnings_release",
	"earnings_release":     "earnings_release",
	"financial_statements": "financial_statements",
	"interim":              "interim_report",
}

func normalizeDocType(docType string) string {
	key := strings.ToLower(docType)
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	if normalized, ok := docTypeAliases[key]; ok {
		return normalized
	}
	return docType
}
