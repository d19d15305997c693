package discovery

import "strings"

// =============================================================================
// THIRD-PARTY RESEARCH BLOCKLIST (HARD REJECT)
// =============================================================================

// thirdPartyDomains publish research and ratings about companies, never the
// companies' own documents.
var thirdPartyDomains = []string{
	// S&P / Standard & Poor's
	"spglobal.com", "standardandpoors.com", "ratingsdirect.com",
	"capitaliq.com", "snl.com",
	// Moody's
	"moodys.com", "moodysanalytics.com",
	// Fitch
	"fitchratings.com", "fitchsolutions.com",
	// Other ratings/research
	"morningstar.com", "refinitiv.com", "bloomberg.com",
	"seekingalpha.com", "tipranks.com", "zacks.com",
	"thefly.com", "benzinga.com", "marketbeat.com",
	// News/aggregators
	"yahoo.com", "google.com", "reuters.com",
	"ft.com", "wsj.com", "cnbc.com",
	// Research portals
	"researchgate.net", "ssrn.com", "academia.edu",
}

// thirdPartyContentTerms in a title or URL mark third-party research.
var thirdPartyContentTerms = []string{
	// S&P specific
	"s&p", "standard & poor's", "standard and poors",
	"ratingsdirect", "ratings direct",
	// Credit ratings
	"credit rating", "issuer credit", "credit opinion",
	"rating action", "outlook revised", "rating affirmed",
	"ratings overview", "creditwatch",
	// Research reports
	"research update", "equity research", "industry report",
	"analyst report", "initiation of coverage", "coverage update",
	"target price", "price target", "buy rating", "sell rating",
	"hold rating", "outperform", "underperform",
	// Other third-party indicators
	"moody's", "fitch ratings", "morningstar report",
	"refinitiv", "bloomberg intelligence",
}

// academicDomains host papers and journals, not company filings.
var academicDomains = []string{
	"researchgate", "academia.edu", "ssrn", "jstor", "springer",
	"sciencedirect", "wiley", "tandfonline", "emerald",
}

// =============================================================================
// OFFICIAL DOCUMENT IDENTIFIERS (POSITIVE SIGNALS)
// =============================================================================

// officialDocumentSignals: at least one must appear for a crawled PDF to be
// accepted.
var officialDocumentSignals = []string{
	// Annual reports
	"annual report", "form 20-f", "20-f", "form 10-k", "10-k",
	"geschäftsbericht", "rapport annuel", "informe anual",
	// Financial statements
	"financial statements", "ifrs financial", "consolidated financial",
	"audited financial", "statutory accounts",
	"balance sheet", "income statement", "cash flow statement",
	// Quarterly/interim
	"quarterly report", "quarterly results", "interim report",
	"form 10-q", "10-q", "half-year", "half year",
	// Earnings
	"earnings release", "earnings report", "results release",
	"financial results", "results presentation",
	// Other official docs
	"management discussion", "md&a", "management's discussion",
	"investor presentation", "shareholder letter",
	"proxy statement", "annual meeting",
}

// officialRegulatorDomains are trusted exchange and regulator filing hosts.
var officialRegulatorDomains = []string{
	"sec.gov", "sec.report",
	"londonstockexchange.com", "lse.co.uk",
	"borsaistanbul.com", "kap.org.tr",
	"hkex.com.hk", "hkexnews.hk",
	"jpx.co.jp", "tdnet.co.jp",
	"nyse.com", "nasdaq.com",
	"euronext.com", "deutsche-boerse.com",
	"moex.com", "disclosure.ru",
	"asx.com.au", "sgx.com",
}

// isThirdPartySource reports whether a URL or its accompanying text points at
// third-party research rather than a company document.
func isThirdPartySource(url, text string) bool {
	urlLower := strings.ToLower(url)
	for _, domain := range thirdPartyDomains {
		if strings.Contains(urlLower, domain) {
			return true
		}
	}
	combined := urlLower + " " + strings.ToLower(text)
	for _, term := range thirdPartyContentTerms {
		if strings.Contains(combined, term) {
			return true
		}
	}
	return false
}

// isAcademicSource reports whether a URL is hosted by an academic publisher.
func isAcademicSource(url string) bool {
	urlLower := strings.ToLower(url)
	for _, domain := range academicDomains {
		if strings.Contains(urlLower, domain) {
			return true
		}
	}
	return false
}

// hasOfficialDocumentSignal reports whether text or URL carries at least one
// official-document marker.
func hasOfficialDocumentSignal(text, url string) bool {
	combined := strings.ToLower(text) + " " + strings.ToLower(url)
	for _, signal := range officialDocumentSignals {
		if strings.Contains(combined, signal) {
			return true
		}
	}
	return false
}

// isOfficialRegulatorDomain reports whether a URL belongs to a regulator or
// exchange filing host.
func isOfficialRegulatorDomain(url string) bool {
	urlLower := strings.ToLower(url)
	for _, domain := range officialRegulatorDomains {
		if strings.Contains(urlLower, domain) {
			return true
		}
	}
	return false
}
