// Package queryparse turns a natural-language request like "Q1-Q3 2023
// quarterly reports for Global Ports Holding" into structured search
// parameters. An LLM parse is attempted first when a provider is wired;
// the regex parser is the always-available fallback.
package queryparse

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"reportfinder/pkg/core/utils"
)

const defaultYearSpan = 5

// Parsed is the structured form of a user query.
type Parsed struct {
	Company    string   `json:"company"`
	Ticker     string   `json:"ticker,omitempty"`
	ReportType string   `json:"report_type"`
	DocTypes   []string `json:"doc_types"`
	StartYear  int      `json:"start_year"`
	EndYear    int      `json:"end_year"`
	// Quarters is non-empty only when specific quarters were requested.
	Quarters []string `json:"quarters,omitempty"`
	// UserURL is a reports-page URL supplied directly in the query.
	UserURL    string  `json:"user_url,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Prompter executes a prompt against the configured LLM provider.
// *agent.Manager satisfies this.
type Prompter interface {
	ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error)
}

// Parser extracts search parameters from free-form queries.
type Parser struct {
	prompter Prompter
	now      func() time.Time
}

// NewParser builds a parser. prompter may be nil; the regex path then
// handles every query.
func NewParser(prompter Prompter) *Parser {
	return &Parser{prompter: prompter, now: time.Now}
}

// Parse extracts the company, report type, years and quarters from the
// query. Parsing never fails; the regex fallback always yields a result.
func (p *Parser) Parse(ctx context.Context, query string) Parsed {
	fmt.Printf("[PARSE] query: %q\n", query)

	if p.prompter != nil {
		if parsed, err := p.parseWithLLM(ctx, query); err == nil {
			return p.enrich(parsed, query)
		} else {
			fmt.Printf("[PARSE] LLM parse failed, using regex fallback: %v\n", err)
		}
	}
	return p.enrich(p.parseWithRegex(query), query)
}

const parseSystemPrompt = `Parse the user's query to extract:
1. Company name (full name or ticker)
2. Report type (annual, quarterly, 10-k, 10-q, earnings, financial_statements)
3. Year range (expand ranges like "2020 to 2024")
4. Specific quarters if mentioned (Q1, Q2, Q3, Q4 or ranges like Q1-Q4)

Respond in JSON:
{
  "company": "company name or ticker",
  "report_type": "annual|quarterly|10-k|10-q|earnings|financial_statements",
  "start_year": 2020,
  "end_year": 2024,
  "quarters": ["Q1"]
}

IMPORTANT:
- 10-K is ANNUAL (12 months). 10-Q is QUARTERLY (3 months). Do NOT confuse them.
- Q4 is part of the Annual Report, NOT a separate 10-Q.
- "Q1 2023" -> quarters: ["Q1"], years 2023-2023
- "quarterly 2023" with no specific quarter -> quarters: []
- If no years specified, use the current year. If no report type, use "annual".
Return ONLY the JSON.`

// llmParsed is the JSON contract of the parse prompt.
type llmParsed struct {
	Company    string   `json:"company"`
	ReportType string   `json:"report_type"`
	StartYear  int      `json:"start_year"`
	EndYear    int      `json:"end_year"`
	Quarters   []string `json:"quarters"`
}

func (p *Parser) parseWithLLM(ctx context.Context, query string) (Parsed, error) {
	options := map[string]interface{}{"temperature": 0.0}
	content, err := p.prompter.ExecutePrompt(ctx, "query_parser", query, parseSystemPrompt, options)
	if err != nil {
		return Parsed{}, err
	}

	var resp llmParsed
	cleaned := utils.CleanMarkdown(content)
	if _, err := utils.SmartParse(cleaned, &resp); err != nil {
		return Parsed{}, err
	}
	if resp.Company == "" {
		return Parsed{}, fmt.Errorf("LLM parse returned no company")
	}

	return Parsed{
		Company:    resp.Company,
		ReportType: strings.ToLower(resp.ReportType),
		StartYear:  resp.StartYear,
		EndYear:    resp.EndYear,
		Quarters:   normalizeQuarters(resp.Quarters),
		Confidence: 0.95,
	}, nil
}

var (
	urlPattern       = regexp.MustCompile(`https?://\S+`)
	quarterRange     = regexp.MustCompile(`(?i)Q([1-4])\s*[-–]\s*Q([1-4])`)
	quarterSingle    = regexp.MustCompile(`(?i)\bQ([1-4])\b`)
	quarterOrdinal   = regexp.MustCompile(`(?i)\b(first|second|third|fourth)\s+quarter\b`)
	yearRangePattern = regexp.MustCompile(`(\d{4})\s*(?:to|-)\s*(\d{4})`)
	yearPattern      = regexp.MustCompile(`\b(20\d{2})\b`)
	tickerPattern    = regexp.MustCompile(`\(([A-Z]{1,6})\)`)
	leadingFiller    = regexp.MustCompile(`(?i)^(?:please\s+|find\s+|get\s+me\s+|get\s+|show\s+me\s+|show\s+|download\s+|fetch\s+|i\s+need\s+)+`)
	ofForPattern     = regexp.MustCompile(`(?i)(?:of|for)\s+([\p{L}\d\s.\-&]+?)(?:\s+(?:from|for|year|20\d{2}|annual|quarterly|financial|statement)|\s*$)`)
	typeSplitPattern = regexp.MustCompile(`(?i)\b(annual|quarterly|10-k|10-q|20-f|earnings|report|reports|from|for|year|financial|statement)\b`)
)

var ordinalQuarters = map[string]string{
	"first":  "Q1",
	"second": "Q2",
	"third":  "Q3",
	"fourth": "Q4",
}

// parseWithRegex is the deterministic fallback parser.
func (p *Parser) parseWithRegex(query string) Parsed {
	parsed := Parsed{Confidence: 0.5}

	// A reports-page URL in the query short-circuits search later on.
	if m := urlPattern.FindString(query); m != "" {
		parsed.UserURL = strings.TrimRight(m, ".,)")
		query = strings.Replace(query, m, "", 1)
	}

	parsed.Quarters = extractQuarters(query)

	if m := yearRangePattern.FindStringSubmatch(query); m != nil {
		parsed.StartYear, _ = strconv.Atoi(m[1])
		parsed.EndYear, _ = strconv.Atoi(m[2])
	} else if years := yearPattern.FindAllString(query, -1); len(years) > 0 {
		minYear, maxYear := 9999, 0
		for _, y := range years {
			year, _ := strconv.Atoi(y)
			if year < minYear {
				minYear = year
			}
			if year > maxYear {
				maxYear = year
			}
		}
		parsed.StartYear, parsed.EndYear = minYear, maxYear
	}

	parsed.ReportType = inferReportType(query, parsed.Quarters)
	// A 10-Q request with no specific quarter means all of them.
	if strings.Contains(strings.ToLower(query), "10-q") && len(parsed.Quarters) == 0 {
		parsed.Quarters = []string{"Q1", "Q2", "Q3", "Q4"}
	}

	if m := tickerPattern.FindStringSubmatch(query); m != nil {
		parsed.Ticker = m[1]
	}

	parsed.Company = extractCompany(query)
	return parsed
}

func extractQuarters(query string) []string {
	var quarters []string
	if m := quarterRange.FindStringSubmatch(query); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		for q := start; q <= end; q++ {
			quarters = append(quarters, fmt.Sprintf("Q%d", q))
		}
	} else {
		for _, m := range quarterSingle.FindAllStringSubmatch(query, -1) {
			quarters = append(quarters, "Q"+m[1])
		}
	}
	for _, m := range quarterOrdinal.FindAllStringSubmatch(strings.ToLower(query), -1) {
		quarters = append(quarters, ordinalQuarters[m[1]])
	}
	return normalizeQuarters(quarters)
}

// normalizeQuarters uppercases and deduplicates while preserving order.
func normalizeQuarters(quarters []string) []string {
	seen := make(map[string]bool, len(quarters))
	var unique []string
	for _, q := range quarters {
		q = strings.ToUpper(strings.TrimSpace(q))
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		unique = append(unique, q)
	}
	return unique
}

func inferReportType(query string, quarters []string) string {
	lower := strings.ToLower(query)
	switch {
	case len(quarters) > 0:
		return "quarterly"
	case strings.Contains(lower, "quarterly") || strings.Contains(lower, "quarter"):
		return "quarterly"
	case strings.Contains(lower, "10-k"):
		return "10-k"
	case strings.Contains(lower, "10-q"):
		return "quarterly"
	case strings.Contains(lower, "20-f"):
		return "20-f"
	case strings.Contains(lower, "earnings"):
		return "earnings"
	case strings.Contains(lower, "financial"):
		return "financial_statements"
	default:
		return "annual"
	}
}

func extractCompany(query string) string {
	if m := ofForPattern.FindStringSubmatch(query); m != nil {
		if company := cleanCompany(m[1]); company != "" {
			return company
		}
	}

	// Everything before the first report-type keyword.
	if loc := typeSplitPattern.FindStringIndex(query); loc != nil {
		if company := cleanCompany(query[:loc[0]]); company != "" {
			return company
		}
	}

	// Last resort: the first run of capitalized words.
	var words []string
	for _, word := range strings.Fields(query) {
		first := []rune(word)[0]
		if first >= 'A' && first <= 'Z' || strings.Contains(word, "(") {
			words = append(words, word)
		} else if len(words) > 0 {
			break
		}
	}
	return cleanCompany(strings.Join(words, " "))
}

func cleanCompany(raw string) string {
	cleaned := strings.Join(strings.Fields(raw), " ")
	cleaned = leadingFiller.ReplaceAllString(cleaned, "")
	cleaned = strings.Trim(cleaned, " ,.")
	if len(cleaned) < 2 {
		return ""
	}
	return cleaned
}

// docTypePhrases maps report types to the search phrases the discovery
// agent expands into queries.
var docTypePhrases = map[string][]string{
	"annual":               {"annual report"},
	"10-k":                 {"10-K", "annual report"},
	"20-f":                 {"20-F", "annual report"},
	"quarterly":            {"quarterly report"},
	"earnings":             {"earnings release"},
	"financial_statements": {"financial statements"},
}

// enrich fills defaults and derives the doc-type list.
func (p *Parser) enrich(parsed Parsed, query string) Parsed {
	currentYear := p.now().Year()
	if parsed.StartYear == 0 && parsed.EndYear == 0 {
		parsed.EndYear = currentYear
		parsed.StartYear = currentYear - defaultYearSpan
	}
	if parsed.EndYear == 0 {
		parsed.EndYear = parsed.StartYear
	}
	if parsed.StartYear == 0 {
		parsed.StartYear = parsed.EndYear
	}
	if parsed.StartYear > parsed.EndYear {
		parsed.StartYear, parsed.EndYear = parsed.EndYear, parsed.StartYear
	}

	if parsed.ReportType == "" {
		parsed.ReportType = "annual"
	}
	if len(parsed.Quarters) > 0 {
		parsed.ReportType = "quarterly"
	}

	if phrases, ok := docTypePhrases[parsed.ReportType]; ok {
		parsed.DocTypes = phrases
	} else {
		parsed.DocTypes = []string{"annual report"}
	}

	fmt.Printf("[PARSE] company=%q type=%s years=%d-%d quarters=%v confidence=%.2f\n",
		parsed.Company, parsed.ReportType, parsed.StartYear, parsed.EndYear, parsed.Quarters, parsed.Confidence)
	return parsed
}
