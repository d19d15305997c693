package regulator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const tickersJSON = `{
	"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
	"1": {"cik_str": 1061736, "ticker": "GPH", "title": "Global Ports Holding PLC"}
}`

const submissionsJSON = `{
	"cik": "0000320193",
	"name": "Apple Inc.",
	"tickers": ["AAPL"],
	"filings": {
		"recent": {
			"accessionNumber": ["0000320193-23-000106", "0000320193-23-000077", "0000320193-19-000119"],
			"filingDate": ["2023-11-03", "2023-08-04", "2019-10-31"],
			"form": ["10-K", "10-Q", "10-K"],
			"primaryDocument": ["aapl-20230930.htm", "aapl-20230701.htm", "a10-k20199282019.htm"]
		}
	}
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tickersJSON))
	})
	mux.HandleFunc("/submissions/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "0000320193") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(submissionsJSON))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(server *httptest.Server) *Client {
	return NewClientWithURLs(
		server.URL+"/submissions/CIK%s.json",
		server.URL+"/files/company_tickers.json",
	)
}

func TestLookupCIK(t *testing.T) {
	client := newTestClient(newTestServer(t))

	cik, err := client.LookupCIK(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cik != "0000320193" {
		t.Errorf("cik = %q", cik)
	}

	// Company-name lookup matches every query word against the title.
	cik, err = client.LookupCIK(context.Background(), "Global Ports Holding")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cik != "0001061736" {
		t.Errorf("cik = %q", cik)
	}

	if _, err := client.LookupCIK(context.Background(), "Nonexistent Corp"); err == nil {
		t.Errorf("expected error for unknown company")
	}
}

func TestFindFilings(t *testing.T) {
	client := newTestClient(newTestServer(t))

	docs, err := client.FindFilings(context.Background(), "AAPL", 2023, 2023)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The 2019 10-K falls outside the range.
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d: %+v", len(docs), docs)
	}

	annual := docs[0]
	if annual.DocType != "10k" {
		t.Errorf("doc type = %q", annual.DocType)
	}
	if annual.Year != 2023 || annual.ReportingPeriod != "FY2023" {
		t.Errorf("year = %d, period = %q", annual.Year, annual.ReportingPeriod)
	}
	if !strings.Contains(annual.PDFURL, "/Archives/edgar/data/0000320193/000032019323000106/aapl-20230930.htm") {
		t.Errorf("filing url = %q", annual.PDFURL)
	}
	if annual.Language != "english" || annual.Confidence != regulatorConfidence {
		t.Errorf("language = %q, confidence = %f", annual.Language, annual.Confidence)
	}

	quarterly := docs[1]
	if quarterly.DocType != "10q" {
		t.Errorf("doc type = %q", quarterly.DocType)
	}
	// Filed 2023-08-04 covering the quarter ended 2023-07-01.
	if quarterly.Quarter != "Q2" || quarterly.ReportingPeriod != "Q2 2023" {
		t.Errorf("quarter = %q, period = %q", quarterly.Quarter, quarterly.ReportingPeriod)
	}
}

func TestExtractFiscalYear(t *testing.T) {
	if got := extractFiscalYear("aapl-20230930.htm", "2023-11-03", "10k"); got != 2023 {
		t.Errorf("embedded date year = %d", got)
	}
	// Annual form filed early in the year covers the previous one.
	if got := extractFiscalYear("report.htm", "2024-02-15", "10k"); got != 2023 {
		t.Errorf("early-filed annual year = %d", got)
	}
	if got := extractFiscalYear("report.htm", "2023-08-04", "10q"); got != 2023 {
		t.Errorf("quarterly year = %d", got)
	}
}
