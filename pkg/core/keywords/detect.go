package keywords

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// DOCUMENT TYPE DETECTION
// =============================================================================

// DocumentTypeKeywords maps a document type to the keywords that signal it.
// Detection walks DocumentTypeOrder so broader types win over narrower ones.
var DocumentTypeKeywords = map[string][]string{
	"annual_report": {
		"annual report", "10-k", "form 10-k", "yearly report", "year-end report",
		"annual financial", "geschäftsbericht", "rapport annuel", "informe anual",
		"年度报告", "年報", "年次報告書", "연차보고서",
	},
	"quarterly_report": {
		"quarterly report", "10-q", "form 10-q", "q1", "q2", "q3", "q4",
		"first quarter", "second quarter", "third quarter", "fourth quarter",
		"quartalsbericht", "四半期報告書", "분기보고서", "季度报告",
	},
	"interim_report": {
		"interim report", "half-year", "half year", "h1", "h2", "semi-annual",
		"halbjahresbericht", "中期报告", "반기보고서",
	},
	"10k": {"10-k", "form 10-k", "10k"},
	"10q": {"10-q", "form 10-q", "10q"},
	"20f": {"20-f", "form 20-f", "20f"},
	"8k":  {"8-k", "form 8-k", "8k", "current report"},
	"financial_statements": {
		"financial statements", "audited financial", "consolidated financial",
		"financial position", "income statement", "balance sheet",
	},
	"earnings_release": {
		"earnings release", "earnings report", "earnings announcement",
		"results announcement", "financial results",
	},
	"investor_presentation": {
		"investor presentation", "presentation", "investor deck", "slides",
	},
}

// DocumentTypeOrder is the priority order for type detection.
var DocumentTypeOrder = []string{
	"annual_report",
	"quarterly_report",
	"interim_report",
	"10k",
	"10q",
	"20f",
	"8k",
	"financial_statements",
	"earnings_release",
	"investor_presentation",
}

// DetectDocumentType classifies a title, URL or content string into a
// document type. Returns "financial_document" when nothing matches.
func DetectDocumentType(text string) string {
	textLower := strings.ToLower(text)
	for _, docType := range DocumentTypeOrder {
		for _, kw := range DocumentTypeKeywords[docType] {
			if strings.Contains(textLower, kw) {
				return docType
			}
		}
	}
	return "financial_document"
}

// =============================================================================
// LANGUAGE DETECTION & ENGLISH-FIRST PREFERENCE
// =============================================================================

// EnglishURLIndicators mark URLs that point at an English version.
var EnglishURLIndicators = []string{
	"/en/",
	"/eng/",
	"/english/",
	"-en.",
	"-en/",
	"_en.",
	"_en/",
	"-eng.",
	"-english.",
	"/en-",
	"/en_",
	"lang=en",
	"language=en",
	"locale=en",
}

// NonEnglishURLIndicators mark URLs that point at a specific non-English
// version.
var NonEnglishURLIndicators = map[string][]string{
	"russian":    {"/ru/", "-ru.", "_ru.", "/russian/", "lang=ru"},
	"german":     {"/de/", "-de.", "_de.", "/german/", "lang=de"},
	"french":     {"/fr/", "-fr.", "_fr.", "/french/", "lang=fr"},
	"spanish":    {"/es/", "-es.", "_es.", "/spanish/", "lang=es"},
	"portuguese": {"/pt/", "-pt.", "_pt.", "/portuguese/", "lang=pt"},
	"italian":    {"/it/", "-it.", "_it.", "/italian/", "lang=it"},
	"dutch":      {"/nl/", "-nl.", "_nl.", "/dutch/", "lang=nl"},
	"chinese":    {"/cn/", "/zh/", "-cn.", "-zh.", "/chinese/", "lang=zh"},
	"japanese":   {"/ja/", "/jp/", "-ja.", "-jp.", "/japanese/", "lang=ja"},
	"korean":     {"/ko/", "/kr/", "-ko.", "-kr.", "/korean/", "lang=ko"},
}

// LanguageIndicators are financial terms that identify the content language.
var LanguageIndicators = map[string][]string{
	"english":    {"annual report", "financial statements", "quarterly report", "investor relations"},
	"spanish":    {"informe anual", "estados financieros"},
	"portuguese": {"relatório anual", "demonstrações financeiras"},
	"french":     {"rapport annuel", "états financiers"},
	"german":     {"geschäftsbericht", "jahresbericht"},
	"italian":    {"bilancio", "relazione finanziaria"},
	"dutch":      {"jaarverslag", "financieel verslag"},
	"russian":    {"годовой отчет", "финансовая отчетность", "годовая отчетность"},
	"chinese":    {"年度报告", "财务报告", "年報", "財務報告"},
	"japanese":   {"有価証券報告書", "決算報告書"},
	"korean":     {"사업보고서", "재무제표"},
}

// languageOrder keeps content-indicator checks deterministic. English comes
// first so English financial terms win before any other language is tried.
var languageOrder = []string{
	"english", "spanish", "portuguese", "french", "german",
	"italian", "dutch", "russian", "chinese", "japanese", "korean",
}

// nonEnglishURLOrder keeps URL-indicator checks deterministic.
var nonEnglishURLOrder = []string{
	"russian", "german", "french", "spanish", "portuguese",
	"italian", "dutch", "chinese", "japanese", "korean",
}

// DetectLanguageFromURL returns the language signaled by the URL, or "" when
// the URL carries no language markers. English indicators win.
func DetectLanguageFromURL(rawURL string) string {
	urlLower := strings.ToLower(rawURL)

	for _, indicator := range EnglishURLIndicators {
		if strings.Contains(urlLower, indicator) {
			return "english"
		}
	}

	for _, language := range nonEnglishURLOrder {
		for _, indicator := range NonEnglishURLIndicators[language] {
			if strings.Contains(urlLower, indicator) {
				return language
			}
		}
	}

	return ""
}

// DetectLanguage detects the document language from text and URL. URL
// markers take precedence over content indicators; the default is English.
func DetectLanguage(text, url string) string {
	if url != "" {
		if lang := DetectLanguageFromURL(url); lang != "" {
			return lang
		}
	}

	textLower := strings.ToLower(text)
	for _, language := range languageOrder {
		for _, indicator := range LanguageIndicators[language] {
			if strings.Contains(textLower, strings.ToLower(indicator)) {
				return language
			}
		}
	}

	return "english"
}

// englishTitleIndicators mark titles that announce an English version.
var englishTitleIndicators = []string{"english", "(en)", "[en]", "en version"}

// IsEnglishVersion reports whether a document looks like the English
// version. Absent any language marker the document is assumed English.
func IsEnglishVersion(url, title string) bool {
	urlLower := strings.ToLower(url)
	titleLower := strings.ToLower(title)

	for _, indicator := range EnglishURLIndicators {
		if strings.Contains(urlLower, indicator) {
			return true
		}
	}

	for _, indicator := range englishTitleIndicators {
		if strings.Contains(titleLower, indicator) {
			return true
		}
	}

	for _, indicators := range NonEnglishURLIndicators {
		for _, indicator := range indicators {
			if strings.Contains(urlLower, indicator) {
				return false
			}
		}
	}

	return true
}

// LanguagePreferenceNote builds the note attached to a document describing
// the language situation for the reader.
func LanguagePreferenceNote(language string, englishAvailable bool) string {
	if language == "english" {
		return "English version"
	}
	if englishAvailable {
		return fmt.Sprintf("English version available; returning %s as requested", language)
	}
	return fmt.Sprintf("English version not found; returning official %s original", language)
}

// =============================================================================
// YEAR & QUARTER EXTRACTION
// =============================================================================

var (
	fyYearPattern   = regexp.MustCompile(`(?i)FY\s*(20[0-9]{2}|19[0-9]{2})`)
	bareYearPattern = regexp.MustCompile(`\b(20[0-9]{2}|19[8-9][0-9])\b`)
	quarterPattern  = regexp.MustCompile(`(?i)\b(Q[1-4]|H[12])\b`)
)

// ExtractYear pulls a fiscal/calendar year out of free text. FY-prefixed
// years win over bare ones. Returns 0 when no year is found.
func ExtractYear(text string) int {
	if m := fyYearPattern.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		return year
	}
	if m := bareYearPattern.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		return year
	}
	return 0
}

// ExtractQuarter pulls a quarter or half-year label (Q1-Q4, H1, H2) out of
// free text. Returns "" when none is found.
func ExtractQuarter(text string) string {
	if m := quarterPattern.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}
