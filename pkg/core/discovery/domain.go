package discovery

import (
	"net/url"
	"regexp"
	"strings"
)

// companyNameStopwords are legal suffixes and filler words that carry no
// identity when matching a company name against a domain or title.
var companyNameStopwords = map[string]bool{
	"inc": true, "corp": true, "corporation": true, "ltd": true,
	"limited": true, "co": true, "company": true,
	"the": true, "and": true, "of": true, "group": true, "holdings": true,
	"international": true, "pjsc": true, "oao": true, "pao": true,
	"jsc": true, "plc": true, "sa": true, "ag": true, "gmbh": true,
	"llc": true, "russian": true, "se": true, "nv": true, "bv": true,
	"kk": true, "ab": true, "asa": true,
}

// trustedDomains pass the domain check unconditionally. Regulator hosts,
// report aggregators and CDNs legitimately serve other companies' PDFs, so
// the company name is still verified separately.
var trustedDomains = []string{
	"sec.gov", "sec.report", "edgar",
	"jse.co.za",
	"lse.co.uk", "londonstockexchange",
	"bse", "nse",
	"hkex",
	"kase.kz",
	"moex.com", "moex.ru",
	"annualreports.com",
	"annualreport",
	"cloudfront.net", "amazonaws.com",
	"akamai", "fastly", "cdn",
	"blob.core.windows.net",
	"disclosure",
}

var (
	parentheticalPattern = regexp.MustCompile(`\s*\([^)]*\)`)
	capitalPattern       = regexp.MustCompile(`[A-Z]`)
)

// significantWords extracts the identity-bearing words of a company name.
// Two-letter words stay in so short names like "OQ" or "BP" still match.
func significantWords(company string) []string {
	main := parentheticalPattern.ReplaceAllString(strings.ToLower(company), "")
	var words []string
	for _, w := range strings.Fields(strings.TrimSpace(main)) {
		if len(w) >= 2 && !companyNameStopwords[w] {
			words = append(words, w)
		}
	}
	return words
}

// validateCompanyDomain checks whether a URL's host plausibly belongs to the
// company. It passes when the host is a trusted regulator/aggregator/CDN,
// contains a significant name word, or contains an abbreviation built from
// the name's initials or CamelCase capitals. This is a domain-level gate
// only; the company name itself is verified later against the title.
func validateCompanyDomain(rawURL, company string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	domain := strings.ToLower(parsed.Host)
	domainClean := strings.ReplaceAll(domain, "www.", "")
	domainClean = strings.ReplaceAll(domainClean, "ir.", "")

	for _, td := range trustedDomains {
		if strings.Contains(domain, td) {
			return true
		}
	}

	words := significantWords(company)
	for _, word := range words {
		if strings.Contains(domainClean, word) {
			return true
		}
	}

	// Initials abbreviation, e.g. "Dubai Mercantile Exchange" -> dme.
	if len(words) >= 2 {
		var b strings.Builder
		for _, w := range words {
			b.WriteByte(w[0])
		}
		abbrev := b.String()
		if len(abbrev) >= 2 && strings.Contains(domainClean, abbrev) {
			return true
		}
	}

	// Compound names: the bare word itself, or a CamelCase abbreviation like
	// KazMunayGas -> kmg.
	for _, word := range strings.Fields(strings.ToLower(strings.TrimSpace(company))) {
		if len(word) >= 3 && strings.Contains(domainClean, word) {
			return true
		}
	}
	caps := capitalPattern.FindAllString(company, -1)
	if len(caps) >= 2 {
		camelAbbrev := strings.ToLower(strings.Join(caps, ""))
		if strings.Contains(domainClean, camelAbbrev) {
			return true
		}
	}

	return false
}

// nameCheckStopwords are the words skipped during company-name verification.
// Narrower than companyNameStopwords: "holding", "group" and industry words
// like "gas" stay in because they identify companies such as Koç Holding or
// KazMunayGas.
var nameCheckStopwords = map[string]bool{
	"inc": true, "corp": true, "corporation": true, "ltd": true,
	"limited": true, "co": true, "company": true,
	"the": true, "and": true, "of": true, "international": true,
	"pjsc": true, "oao": true, "pao": true, "jsc": true,
	"joint": true, "stock": true, "national": true,
	"a.s.": true, "as": true, "a.ş.": true, "from": true, "for": true,
}

// verifyCompanyName checks that the company is actually named in the
// combined title, snippet and URL text. At least one identity word must
// appear; compound names like "KazMunayGas" match as one word.
func verifyCompanyName(text, company string) bool {
	textLower := strings.ToLower(text)
	main := parentheticalPattern.ReplaceAllString(strings.ToLower(company), "")

	var words []string
	for _, w := range strings.Fields(strings.TrimSpace(main)) {
		if len(w) >= 2 && !nameCheckStopwords[w] {
			words = append(words, w)
		}
	}
	for _, word := range words {
		if strings.Contains(textLower, word) {
			return true
		}
	}

	// Compound names like "KazMunayGas" match whole against the text.
	compound := strings.ReplaceAll(strings.TrimSpace(main), " ", "")
	if len(compound) >= 5 && strings.Contains(textLower, compound) {
		return true
	}
	return false
}
