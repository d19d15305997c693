package identity

import (
	"regexp"
	"strings"
)

// Hints carry the disambiguation clues a user can supply alongside a
// company name.
type Hints struct {
	Country string
	Ticker  string
	Domain  string
}

var (
	tickerHintPattern = regexp.MustCompile(`\(([A-Z]{2,5})\)`)
	domainHintPattern = regexp.MustCompile(`([a-z0-9-]+\.(com|co|net|org|io))`)
)

// hintCountries are the countries recognized inline in a query.
var hintCountries = []string{
	"turkey", "russia", "usa", "uk", "germany", "china", "japan", "india",
}

// ExtractHints pulls disambiguation hints out of a natural-language query:
// a ticker in parentheses, a country word, or a bare domain.
func ExtractHints(query string) Hints {
	var hints Hints

	if m := tickerHintPattern.FindStringSubmatch(query); m != nil {
		hints.Ticker = m[1]
	}

	queryLower := strings.ToLower(query)
	for _, country := range hintCountries {
		if strings.Contains(queryLower, country) {
			hints.Country = titleCase(country)
			break
		}
	}

	if m := domainHintPattern.FindString(queryLower); m != "" {
		hints.Domain = m
	}

	return hints
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// applyHints boosts candidates matching the user's hints. Boosts are applied
// after card creation and intentionally push scores past the creation-time
// cap so a hinted candidate outranks every unhinted one.
func applyHints(cards []*IdentityCard, hints Hints) {
	if hints.Country != "" {
		countryLower := strings.ToLower(hints.Country)
		for _, card := range cards {
			if card.HQCountry != "" && strings.Contains(strings.ToLower(card.HQCountry), countryLower) {
				card.ConfidenceScore += 0.20
			}
		}
	}

	if hints.Ticker != "" {
		tickerUpper := strings.ToUpper(hints.Ticker)
		for _, card := range cards {
			if card.Ticker != "" && strings.ToUpper(card.Ticker) == tickerUpper {
				card.ConfidenceScore += 0.30
			}
		}
	}

	if hints.Domain != "" {
		domainLower := strings.ToLower(hints.Domain)
		for _, card := range cards {
			if strings.Contains(strings.ToLower(card.OfficialDomain), domainLower) {
				card.ConfidenceScore += 0.30
			}
		}
	}
}
