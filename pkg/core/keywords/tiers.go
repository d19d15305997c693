// Package keywords holds the tiered keyword dictionaries and pure
// classification helpers used by the document discovery pipeline.
// Eight tiers of search terms, organized by priority and specificity,
// aimed at maximum recall for financial documents worldwide.
package keywords

// =============================================================================
// TIER 1 — UNIVERSAL FINANCIAL REPORT TERMS (HIGHEST PRIORITY)
// =============================================================================

var Tier1Universal = []string{
	"financial statements",
	"financial report",
	"annual report",
	"annual financial statements",
	"audited financial statements",
	"unaudited financial statements",
	"consolidated financial statements",
	"standalone financial statements",
	"statutory accounts",
	"statutory report",
	"financial disclosure",
	"financial information",
	"financial performance",
	"financial results",
}

// =============================================================================
// TIER 2 — ANNUAL & PERIODIC REPORTING TERMS
// =============================================================================

var Tier2Periodic = []string{
	// Annual terms
	"annual filing",
	"yearly report",
	"year-end report",
	"annual accounts",
	"annual results",
	"full year results",
	"FY results",
	"FY report",
	"yearly financial report",
	"periodic report",

	// Quarterly terms
	"quarterly report",
	"quarterly results",
	"Q1 report",
	"Q2 report",
	"Q3 report",
	"Q4 report",
	"interim report",
	"interim financial statements",
	"half-year report",
	"half yearly report",
	"half-yearly financial statements",
	"first quarter",
	"second quarter",
	"third quarter",
	"fourth quarter",
}

// =============================================================================
// TIER 3 — REGULATORY & MARKET-SPECIFIC FILINGS
// =============================================================================

var Tier3Regulatory = []string{
	// SEC filings (US)
	"Form 10-K",
	"10-K",
	"10-K/A",
	"Form 10-Q",
	"10-Q",
	"8-K",
	"20-F",
	"40-F",
	"SEC filings",
	"SEC reports",
	"EDGAR filing",
	"annual SEC filing",

	// International standards
	"IFRS financial statements",
	"regulated information",
	"regulated disclosures",
	"directors report",
	"strategic report",
	"management report",
	"corporate filings",

	// UK/EU specific
	"annual return",
	"accounts filed",
	"companies house",
}

// =============================================================================
// TIER 4 — INVESTOR RELATIONS & NAVIGATION TERMS
// =============================================================================

var Tier4InvestorRelations = []string{
	"investor relations",
	"investors",
	"IR",
	"investor information",
	"investor centre",
	"investor center",
	"investor resources",
	"investor downloads",
	"financials",
	"reports and presentations",
	"results and reports",
	"presentations",
	"downloads",
	"documents",
	"filings",
	"disclosures",
	"shareholder information",
	"stockholder information",
}

// =============================================================================
// TIER 5 — ACCOUNTING & AUDIT TERMINOLOGY
// =============================================================================

var Tier5Accounting = []string{
	"audited accounts",
	"unaudited accounts",
	"management accounts",
	"statement of financial position",
	"statement of profit and loss",
	"profit and loss statement",
	"income statement",
	"balance sheet",
	"cash flow statement",
	"statement of cash flows",
	"notes to the financial statements",
	"financial notes",
	"accounts summary",
	"comprehensive income",
	"equity statement",
	"statement of changes in equity",
}

// =============================================================================
// TIER 6 — FILE FORMAT, FILE NAME & PATTERN MATCHING
// =============================================================================

var Tier6FilePatterns = []string{
	// File type indicators
	"filetype:pdf",
	".pdf",

	// Common file names
	"annual-report.pdf",
	"annual_report.pdf",
	"financial-statements.pdf",
	"financials.pdf",
	"results.pdf",
	"form-10k.pdf",
	"form10k.pdf",
	"20f.pdf",
	"FY.pdf",
	"annual-results.pdf",
	"quarterly-report.pdf",
}

// =============================================================================
// TIER 7 — COMMON URL PATH & DIRECTORY INDICATORS
// =============================================================================

var Tier7URLPaths = []string{
	"/investors/",
	"/investor-relations/",
	"/investor/",
	"/financials/",
	"/reports/",
	"/results/",
	"/documents/",
	"/downloads/",
	"/filings/",
	"/disclosures/",
	"/media/",
	"/publications/",
	"/annual-reports/",
	"/quarterly-reports/",
	"/sec-filings/",
	"/regulatory/",
	"/governance/",
	"/ir/",
}

// =============================================================================
// TIER 8 — NON-ENGLISH HIGH-VALUE FINANCIAL TERMS
// =============================================================================

var Tier8Multilingual = map[string][]string{
	"spanish": {
		"informe anual",
		"estados financieros",
		"resultados financieros",
		"demostraciones financieras",
		"memoria anual",
		"cuentas anuales",
		"informe de gestión",
	},
	"portuguese": {
		"relatório anual",
		"informações financeiras",
		"demonstrações financeiras",
		"balanço patrimonial",
		"relatório de administração",
	},
	"french": {
		"rapport annuel",
		"états financiers",
		"informations financières",
		"rapport financier",
		"comptes annuels",
		"bilan financier",
		"rapport de gestion",
	},
	"german": {
		"geschäftsbericht",
		"jahresbericht",
		"finanzbericht",
		"abschluss",
		"konzernabschluss",
		"jahresabschluss",
		"bilanz",
		"quartalsbericht",
	},
	"italian": {
		"bilancio",
		"bilancio annuale",
		"relazione finanziaria",
		"relazione annuale",
		"conto economico",
		"rendiconto finanziario",
	},
	"dutch": {
		"jaarverslag",
		"financieel verslag",
		"jaarrekening",
		"kwartaalverslag",
		"halfjaarverslag",
	},
	"chinese_simplified": {
		"年度报告",
		"财务报告",
		"中期报告",
		"财务报表",
		"年报",
		"季度报告",
		"财务信息",
	},
	"chinese_traditional": {
		"年度報告",
		"財務報告",
		"中期報告",
		"財務報表",
		"年報",
		"季度報告",
	},
	"japanese": {
		"有価証券報告書",
		"決算報告書",
		"財務諸表",
		"年次報告書",
		"四半期報告書",
		"事業報告",
	},
	"korean": {
		"사업보고서",
		"재무제표",
		"분기보고서",
		"반기보고서",
		"연차보고서",
		"감사보고서",
	},
}

// TierKeywords maps tier number -> English keyword list (tiers 1-7).
// Tier 8 is multilingual and handled via Tier8Multilingual.
var TierKeywords = map[int][]string{
	1: Tier1Universal,
	2: Tier2Periodic,
	3: Tier3Regulatory,
	4: Tier4InvestorRelations,
	5: Tier5Accounting,
	6: Tier6FilePatterns,
	7: Tier7URLPaths,
}

// AllEnglishKeywords returns the union of tiers 1-5.
func AllEnglishKeywords() []string {
	out := make([]string, 0, 80)
	seen := make(map[string]bool)
	for _, tier := range [][]string{Tier1Universal, Tier2Periodic, Tier3Regulatory, Tier4InvestorRelations, Tier5Accounting} {
		for _, kw := range tier {
			if !seen[kw] {
				seen[kw] = true
				out = append(out, kw)
			}
		}
	}
	return out
}

// AllMultilingualKeywords returns every non-English tier-8 keyword.
func AllMultilingualKeywords() []string {
	out := make([]string, 0, 60)
	for _, list := range Tier8Multilingual {
		out = append(out, list...)
	}
	return out
}
