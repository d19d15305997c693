package discovery

import (
	"fmt"
	"strings"

	"reportfinder/pkg/core/keywords"
)

// deduplicateDocuments removes documents sharing the same PDF URL, keeping
// the first occurrence. URLs compare lowercased with trailing slashes
// stripped.
func deduplicateDocuments(docs []Document) []Document {
	seen := make(map[string]bool)
	var unique []Document
	for _, doc := range docs {
		key := strings.TrimRight(strings.ToLower(doc.PDFURL), "/")
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, doc)
	}
	return unique
}

// applyEnglishPreference keeps English versions when a report exists in
// several languages. Per (year, doc type) group: every English document
// stays; with no English version, the highest-confidence original stays
// with a note explaining the language. Group order follows first
// appearance so output is deterministic.
func applyEnglishPreference(docs []Document) []Document {
	type groupKey struct {
		year    int
		docType string
	}
	grouped := make(map[groupKey][]Document)
	var order []groupKey
	for _, doc := range docs {
		key := groupKey{doc.Year, doc.DocType}
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], doc)
	}

	var result []Document
	for _, key := range order {
		group := grouped[key]

		var english, nonEnglish []Document
		for _, doc := range group {
			if keywords.IsEnglishVersion(doc.PDFURL, doc.Title) {
				english = append(english, doc)
			} else {
				nonEnglish = append(nonEnglish, doc)
			}
		}

		if len(english) > 0 {
			for _, doc := range english {
				doc.LanguageNotes = "English version"
				result = append(result, doc)
			}
			continue
		}

		best := nonEnglish[0]
		for _, doc := range nonEnglish[1:] {
			if doc.Confidence > best.Confidence {
				best = doc
			}
		}
		best.LanguageNotes = keywords.LanguagePreferenceNote(best.Language, false)
		result = append(result, best)
	}

	fmt.Printf("[DISCOVERY] english preference: %d -> %d documents\n", len(docs), len(result))
	return result
}
