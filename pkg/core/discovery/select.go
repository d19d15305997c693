package discovery

import (
	"fmt"
	"net/url"
	"strings"
)

// exchangeDomains identify regulator/exchange hosts that get penalized when
// the user asked for a company's own annual report.
var exchangeDomains = []string{
	"hkex", "hkexnews", "sec.gov", "edgar", "jse.co.za",
	"londonstockexchange", "lse.co.uk", "bse", "nse",
}

// annualTitleKeywords mark annual reports across the covered languages.
var annualTitleKeywords = []string{
	"annual report", "informe anual",
	"rapport annuel",
	"geschäftsbericht", "jahresbericht",
	"faaliyet raporu", "yıllık rapor",
	"relatório anual",
	"relazione annuale",
	"годовой отчет",
	"jaarverslag",
	"年次報告", "年度报告",
}

// irArchivePaths are URL fragments of IR document archives across languages.
var irArchivePaths = []string{
	"/investor", "/ir/", "/reports/", "/annual/", "/results/",
	"/informes/", "/downloads/", "/rapports/", "/berichte/",
	"/raporlar/", "/relatorios/", "/rapporti/",
}

// selectionExcludeKeywords in a title disqualify a document from selection
// outright.
var selectionExcludeKeywords = []string{
	"sustainability", "esg", "integrated report", "annual review",
	"presentation", "highlights", "summary", "activity report",
	"independent auditor", "proxy", "circular", "notice",
}

// scoreDocument ranks a candidate for best-per-period selection. Source
// priority dominates: a PDF on the company's own domain beats anything an
// exchange hosts.
func scoreDocument(doc Document, company string) int {
	titleLower := strings.ToLower(doc.Title)
	urlLower := strings.ToLower(doc.PDFURL)
	score := 0

	domain := ""
	if parsed, err := url.Parse(doc.PDFURL); err == nil {
		domain = strings.ToLower(parsed.Host)
	}

	isCompanyDomain := false
	for _, word := range significantWords(company) {
		if strings.Contains(domain, word) {
			isCompanyDomain = true
			break
		}
	}
	isExchangeDomain := false
	for _, ex := range exchangeDomains {
		if strings.Contains(domain, ex) {
			isExchangeDomain = true
			break
		}
	}

	if isCompanyDomain {
		score += 100
	} else if isExchangeDomain {
		score -= 50
	}

	if firstMatch(titleLower, annualTitleKeywords) != "" {
		score += 50
	}

	if strings.Contains(titleLower, "consolidated financial statements") {
		score += 40
	} else if strings.Contains(titleLower, "consolidated") {
		score += 20
	}

	if firstMatch(urlLower, irArchivePaths) != "" {
		score += 30
	}

	for _, kw := range selectionExcludeKeywords {
		if strings.Contains(titleLower, kw) {
			score -= 1000
			break
		}
	}

	return score
}

// bestPerYear keeps the single highest-scoring document for each requested
// year. Years whose best candidate scores zero or below count as missing.
// Ties keep the first-encountered candidate so selection is deterministic.
func bestPerYear(candidates []Document, years []int, company string) ([]Document, []string) {
	byYear := make(map[int][]Document)
	for _, c := range candidates {
		byYear[c.Year] = append(byYear[c.Year], c)
	}

	var best []Document
	var missing []string
	for _, year := range years {
		yearCandidates, ok := byYear[year]
		if !ok {
			fmt.Printf("  [MISS] year %d: no candidates found\n", year)
			missing = append(missing, fyLabel(year))
			continue
		}
		doc, score := pickBest(yearCandidates, company)
		if score > 0 {
			fmt.Printf("  [BEST] year %d: %s (score %d)\n", year, truncate(doc.Title, 50), score)
			best = append(best, doc)
		} else {
			fmt.Printf("  [NONE] year %d: all candidates rejected (best score %d)\n", year, score)
			missing = append(missing, fyLabel(year))
		}
	}
	return best, missing
}

// bestPerPeriod keeps the single highest-scoring document for each
// requested (year, quarter) pair.
func bestPerPeriod(candidates []Document, years []int, quarters []string, company string) ([]Document, []string) {
	type periodKey struct {
		year    int
		quarter string
	}
	byPeriod := make(map[periodKey][]Document)
	for _, c := range candidates {
		if c.Year == 0 || c.Quarter == "" {
			continue
		}
		key := periodKey{c.Year, strings.ToUpper(c.Quarter)}
		byPeriod[key] = append(byPeriod[key], c)
	}

	var best []Document
	var missing []string
	for _, year := range years {
		for _, quarter := range quarters {
			label := strings.ToUpper(quarter)
			periodCandidates, ok := byPeriod[periodKey{year, label}]
			if !ok {
				fmt.Printf("  [MISS] %s %d: no candidates found\n", label, year)
				missing = append(missing, fmt.Sprintf("%s %d", label, year))
				continue
			}
			doc, score := pickBest(periodCandidates, company)
			if score > 0 {
				fmt.Printf("  [BEST] %s %d: %s (score %d)\n", label, year, truncate(doc.Title, 50), score)
				best = append(best, doc)
			} else {
				fmt.Printf("  [NONE] %s %d: all candidates rejected (best score %d)\n", label, year, score)
				missing = append(missing, fmt.Sprintf("%s %d", label, year))
			}
		}
	}
	return best, missing
}

func pickBest(candidates []Document, company string) (Document, int) {
	best := candidates[0]
	bestScore := scoreDocument(best, company)
	for _, c := range candidates[1:] {
		if score := scoreDocument(c, company); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore
}
