package discovery

import "testing"

func TestDeduplicateDocuments(t *testing.T) {
	docs := []Document{
		{PDFURL: "https://example.com/AR2023.pdf"},
		{PDFURL: "https://example.com/ar2023.pdf/"},
		{PDFURL: "https://example.com/ar2022.pdf"},
	}
	unique := deduplicateDocuments(docs)
	if len(unique) != 2 {
		t.Fatalf("expected 2 unique documents, got %d", len(unique))
	}
	if unique[0].PDFURL != "https://example.com/AR2023.pdf" {
		t.Errorf("first occurrence must win, got %s", unique[0].PDFURL)
	}
}

func TestEnglishPreferenceKeepsEnglishVersion(t *testing.T) {
	docs := []Document{
		{Title: "Годовой отчет 2023", PDFURL: "https://example.com/ru/godovoy-otchet-2023.pdf", Year: 2023, DocType: "annual_report", Language: "russian", Confidence: 0.9},
		{Title: "Annual Report 2023 (EN)", PDFURL: "https://example.com/en/annual-report-2023.pdf", Year: 2023, DocType: "annual_report", Language: "english", Confidence: 0.8},
	}

	result := applyEnglishPreference(docs)
	if len(result) != 1 {
		t.Fatalf("expected 1 document, got %d", len(result))
	}
	if result[0].Language != "english" {
		t.Errorf("expected the English version, got %s", result[0].PDFURL)
	}
	if result[0].LanguageNotes != "English version" {
		t.Errorf("notes = %q", result[0].LanguageNotes)
	}
}

func TestEnglishPreferenceFallsBackToOriginal(t *testing.T) {
	docs := []Document{
		{Title: "Годовой отчет 2023", PDFURL: "https://example.com/ru/godovoy-otchet-2023.pdf", Year: 2023, DocType: "annual_report", Language: "russian", Confidence: 0.6},
		{Title: "Годовой отчет 2023 (полный)", PDFURL: "https://example.com/ru/godovoy-otchet-2023-full.pdf", Year: 2023, DocType: "annual_report", Language: "russian", Confidence: 0.9},
	}

	result := applyEnglishPreference(docs)
	if len(result) != 1 {
		t.Fatalf("expected 1 document, got %d", len(result))
	}
	if result[0].Confidence != 0.9 {
		t.Errorf("expected the highest-confidence original, got %+v", result[0])
	}
	if result[0].LanguageNotes == "" {
		t.Errorf("non-English fallback must carry a language note")
	}
}

func TestEnglishPreferenceSeparatesPeriods(t *testing.T) {
	docs := []Document{
		{Title: "Annual Report 2023", PDFURL: "https://example.com/en/ar-2023.pdf", Year: 2023, DocType: "annual_report", Language: "english"},
		{Title: "Annual Report 2022", PDFURL: "https://example.com/en/ar-2022.pdf", Year: 2022, DocType: "annual_report", Language: "english"},
	}
	if result := applyEnglishPreference(docs); len(result) != 2 {
		t.Errorf("different years must not collapse, got %d docs", len(result))
	}
}
