// Package identity verifies which real-world company a user-supplied name
// refers to before any documents are fetched. Name collisions are common;
// every discovery run starts from a verified identity card.
package identity

import (
	"net/url"
	"strings"
)

// OfficialRegulators are regulator and exchange domains whose PDFs are
// trusted regardless of company domain.
var OfficialRegulators = []string{
	"sec.gov",
	"sec.report",
	"londonstockexchange.com",
	"borsaistanbul.com",
	"hkex.com.hk",
	"jpx.co.jp",
	"nyse.com",
	"nasdaq.com",
	"euronext.com",
	"deutsche-boerse.com",
	"moex.com",
}

// IdentityCard is a verified company identity with its proof signals.
type IdentityCard struct {
	CanonicalName    string          `json:"canonical_name"`
	KnownAliases     []string        `json:"known_aliases,omitempty"`
	HQCountry        string          `json:"hq_country,omitempty"`
	IndustryKeywords []string        `json:"industry_keywords,omitempty"`
	Ticker           string          `json:"ticker,omitempty"`
	Exchange         string          `json:"exchange,omitempty"`
	OfficialDomain   string          `json:"official_domain"`
	IRURL            string          `json:"ir_url,omitempty"`
	ConfidenceScore  float64         `json:"confidence_score"`
	ProofLinks       []string        `json:"proof_links,omitempty"`
	Signals          map[string]bool `json:"signals,omitempty"`
}

// MeetsThreshold reports whether the card is trustworthy enough to act on:
// score at or above 0.80 with at least two strong signals set.
func (c *IdentityCard) MeetsThreshold() bool {
	strong := 0
	for k, v := range c.Signals {
		if v && strings.HasPrefix(k, "strong_") {
			strong++
		}
	}
	return c.ConfidenceScore >= 0.80 && strong >= 2
}

// AmbiguityCandidate is the compact candidate view returned to callers when
// disambiguation fails.
type AmbiguityCandidate struct {
	Name       string  `json:"name"`
	Domain     string  `json:"domain"`
	Country    string  `json:"country,omitempty"`
	Ticker     string  `json:"ticker,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Ambiguity is returned when a company cannot be disambiguated. It is a
// terminal outcome, not an error: the caller asks the user to clarify.
type Ambiguity struct {
	Message              string               `json:"message"`
	Candidates           []AmbiguityCandidate `json:"candidates"`
	ClarificationOptions []string             `json:"clarification_options"`
}

func newAmbiguity(message string, cards []*IdentityCard) *Ambiguity {
	amb := &Ambiguity{
		Message: message,
		ClarificationOptions: []string{
			"ticker symbol (e.g., GPRT)",
			"HQ country (e.g., Turkey, Russia)",
			"official website domain",
			"parent company or group name",
		},
	}
	for _, c := range cards {
		amb.Candidates = append(amb.Candidates, AmbiguityCandidate{
			Name:       c.CanonicalName,
			Domain:     c.OfficialDomain,
			Country:    c.HQCountry,
			Ticker:     c.Ticker,
			Confidence: c.ConfidenceScore,
		})
	}
	return amb
}

// ValidatePDFDomain accepts a PDF only when it comes from the verified
// official domain or from a regulator.
func ValidatePDFDomain(pdfURL string, card *IdentityCard) bool {
	parsed, err := url.Parse(pdfURL)
	if err != nil {
		return false
	}
	pdfDomain := strings.ToLower(parsed.Host)
	verifiedDomain := strings.ToLower(card.OfficialDomain)

	if verifiedDomain != "" &&
		(strings.Contains(pdfDomain, verifiedDomain) || strings.Contains(verifiedDomain, pdfDomain)) {
		return true
	}

	for _, regulator := range OfficialRegulators {
		if strings.Contains(pdfDomain, regulator) {
			return true
		}
	}

	return false
}

// IsRegulatorDomain reports whether the domain belongs to a known regulator
// or exchange.
func IsRegulatorDomain(domain string) bool {
	domainLower := strings.ToLower(domain)
	for _, regulator := range OfficialRegulators {
		if strings.Contains(domainLower, regulator) {
			return true
		}
	}
	return false
}
