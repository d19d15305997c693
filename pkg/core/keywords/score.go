package keywords

import "strings"

// =============================================================================
// CONFIDENCE SCORING
// =============================================================================

// tierWeights rank tiers by how strongly a match signals a real financial
// document. Multilingual matches stay high to keep global coverage.
var tierWeights = map[int]float64{
	1: 0.25,
	2: 0.20,
	3: 0.18,
	4: 0.12,
	5: 0.10,
	6: 0.05,
	7: 0.05,
	8: 0.15,
}

// ConfidenceScore computes a 0.0-1.0 confidence for a candidate document.
// PDF-ness adds 0.3, a detected year 0.2, an IR URL path 0.1. Each tier
// contributes its weight scaled by match count, capped at 3 matches per
// tier. The total is capped at 1.0.
func ConfidenceScore(hasPDF, hasYear bool, tierMatches map[int]int, hasURLPathMatch bool) float64 {
	score := 0.0

	if hasPDF {
		score += 0.3
	}
	if hasYear {
		score += 0.2
	}
	if hasURLPathMatch {
		score += 0.1
	}

	for tier, count := range tierMatches {
		weight, ok := tierWeights[tier]
		if !ok || count <= 0 {
			continue
		}
		n := count
		if n > 3 {
			n = 3
		}
		score += weight * float64(n) / 3
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}

// CountTierMatches counts how many keywords from each tier appear in the
// text. Tiers 1-7 are English lists; tier 8 aggregates every language.
func CountTierMatches(text string) map[int]int {
	textLower := strings.ToLower(text)
	matches := make(map[int]int)

	for tier, kws := range TierKeywords {
		for _, kw := range kws {
			if strings.Contains(textLower, strings.ToLower(kw)) {
				matches[tier]++
			}
		}
	}

	for _, kws := range Tier8Multilingual {
		for _, kw := range kws {
			if strings.Contains(textLower, strings.ToLower(kw)) {
				matches[8]++
			}
		}
	}

	return matches
}

// HasURLPathMatch reports whether the URL contains a known IR path segment.
func HasURLPathMatch(url string) bool {
	urlLower := strings.ToLower(url)
	for _, path := range Tier7URLPaths {
		if strings.Contains(urlLower, path) {
			return true
		}
	}
	return false
}
