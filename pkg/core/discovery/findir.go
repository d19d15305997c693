package discovery

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"reportfinder/pkg/core/search"
)

// Searcher is the web-search surface the pipeline depends on.
// *search.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string, num int) ([]search.Result, error)
	Enabled() bool
}

// irSearchQueries build the multilingual queries used to locate a company's
// own IR reports page.
func irSearchQueries(company string) []string {
	return []string{
		fmt.Sprintf(`"%s" "investor relations" "annual reports" site`, company),
		fmt.Sprintf(`"%s" relaciones inversionistas informes anuales`, company),
		fmt.Sprintf(`"%s" relations investisseurs rapports annuels`, company),
		fmt.Sprintf(`"%s" Investor Relations Geschäftsbericht`, company),
		fmt.Sprintf(`"%s" yatırımcı ilişkileri faaliyet raporu`, company),
		fmt.Sprintf(`"%s" relações investidores relatório anual`, company),
		fmt.Sprintf(`%s investor relations reports`, company),
	}
}

// irFinderRegulatorDomains never qualify as a company's own IR site.
var irFinderRegulatorDomains = []string{
	"sec.gov", "edgar", "hkex", "jse.co.za", "lse.co.uk", "bse", "nse",
}

// findInvestorRelationsPage locates the company's own IR page, preferring
// deep reports-listing pages over the generic IR homepage. Regulator sites
// are skipped: filings live there, but the company's report archive does
// not.
func findInvestorRelationsPage(ctx context.Context, searcher Searcher, company string) string {
	if !searcher.Enabled() {
		return ""
	}

	type scoredPage struct {
		score int
		url   string
	}
	var candidates []scoredPage

	for _, query := range irSearchQueries(company) {
		fmt.Printf("[SEARCH] searching for IR page: %s\n", query)
		results, err := searcher.Search(ctx, query, 10)
		if err != nil {
			fmt.Printf("[SEARCH] IR page query failed: %v\n", err)
			continue
		}

		for _, result := range results {
			link := result.Link
			if strings.HasSuffix(link, ".pdf") {
				continue
			}

			parsed, err := url.Parse(link)
			if err != nil {
				continue
			}
			domain := strings.ToLower(parsed.Host)

			if firstMatch(domain, irFinderRegulatorDomains) != "" {
				continue
			}

			domainClean := strings.ReplaceAll(domain, "www.", "")
			domainClean = strings.ReplaceAll(domainClean, "ir.", "")
			hasCompanyWord := false
			for _, word := range significantWords(company) {
				if strings.Contains(domainClean, word) {
					hasCompanyWord = true
					break
				}
			}
			if !hasCompanyWord {
				continue
			}

			candidates = append(candidates, scoredPage{
				score: scoreIRPage(link, strings.ToLower(result.Title)),
				url:   link,
			})
		}

		if len(candidates) >= 3 {
			break
		}
	}

	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	fmt.Printf("[SEARCH] selected IR page: %s\n", candidates[0].url)
	return candidates[0].url
}

// scoreIRPage prefers deeper reports pages over IR homepages, with
// multilingual path and title markers.
func scoreIRPage(link, title string) int {
	score := 0
	linkLower := strings.ToLower(link)

	if strings.Contains(linkLower, "/financial") || strings.Contains(linkLower, "/reports") ||
		strings.Contains(linkLower, "/informes") {
		score += 50
	}
	if strings.Contains(linkLower, "/annual") || strings.Contains(linkLower, "/anuales") ||
		strings.Contains(linkLower, "/annuel") {
		score += 30
	}
	if strings.Contains(linkLower, "investor") || strings.Contains(linkLower, "/ir/") ||
		strings.Contains(linkLower, "inversionista") || strings.Contains(linkLower, "investisseur") ||
		strings.Contains(linkLower, "yatirimci") {
		score += 20
	}

	if firstMatch(title, []string{"financial", "reports", "informes", "rapports", "berichte", "raporlar", "relatorios"}) != "" {
		score += 20
	}
	if firstMatch(title, []string{"annual", "anual", "annuel", "jahres", "yıllık"}) != "" {
		score += 10
	}
	return score
}
