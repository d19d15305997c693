package discovery

import (
	"strconv"
	"strings"
)

// ReportTypePolicy captures the acceptance rules for one report-type family.
// The reject list always runs before the accept list so documents carrying
// both kinds of markers (e.g. "interim condensed" mentioning "annual
// accounts") are rejected deterministically.
type ReportTypePolicy interface {
	// Name is the canonical report type this policy represents.
	Name() string
	// RejectKeywords are hard negatives checked against title+snippet+URL.
	RejectKeywords() []string
	// AcceptKeywords must yield at least one hit for acceptance. An empty
	// list means no positive keyword gate.
	AcceptKeywords() []string
	// WantsQuarter reports whether this policy expects per-quarter periods.
	WantsQuarter() bool
	// PeriodLabel builds the reporting-period string for an accepted doc.
	PeriodLabel(year int, quarter string) string
}

// SelectPolicy maps a requested report type string to its policy. Unknown
// types get the generic policy, which applies no type gate.
func SelectPolicy(reportType string) ReportTypePolicy {
	switch strings.ToLower(strings.TrimSpace(reportType)) {
	case "annual", "10-k", "10k", "20-f", "20f", "annual_report", "annual report", "financial_statements", "financial statements":
		return annualPolicy{}
	case "quarterly", "10-q", "10q", "quarterly_report", "quarterly report":
		return quarterlyPolicy{}
	case "earnings", "earnings_release", "earnings release":
		return earningsPolicy{}
	case "presentation", "investor_presentation", "investor presentation":
		return presentationPolicy{}
	default:
		return genericPolicy{name: strings.ToLower(strings.TrimSpace(reportType))}
	}
}

// =============================================================================
// ANNUAL / 10-K / FINANCIAL STATEMENTS
// =============================================================================

type annualPolicy struct{}

func (annualPolicy) Name() string { return "annual" }

func (annualPolicy) RejectKeywords() []string {
	return []string{
		"interim", "condensed", "half-year", "half year", "halfyear",
		"semi-annual", "semi annual", "semiannual",
		"h1 ", "h2 ", " h1", " h2",
		"q1 ", "q2 ", "q3 ", "q4 ", " q1", " q2", " q3", " q4",
		"first quarter", "second quarter", "third quarter", "fourth quarter",
		"6 month", "9 month", "six month", "nine month", "6-month", "9-month",
		"3 month", "3-month", "three month",
		"trading update", "trading statement",
	}
}

func (annualPolicy) AcceptKeywords() []string {
	return []string{
		"annual report", "annual financial", "yearly report",
		"fy20", "fy19", "fy21", "fy22", "fy23", "fy24",
		"fiscal year", "year ended", "year ending",
		"10-k", "20-f", "form 10-k", "form 20-f", "annual accounts",
		"financial statements", "audited financial", "consolidated financial",
		"audited accounts", "annual audited",
		"full year results", "full-year results", "12 month results",
		"twelve month", "full year report", "annual results",
		"годовой отчет", "annual review",
	}
}

func (annualPolicy) WantsQuarter() bool { return false }

func (annualPolicy) PeriodLabel(year int, _ string) string {
	return fyLabel(year)
}

// =============================================================================
// QUARTERLY / 10-Q
// =============================================================================

type quarterlyPolicy struct{}

func (quarterlyPolicy) Name() string { return "quarterly" }

func (quarterlyPolicy) RejectKeywords() []string {
	return []string{
		"annual report", "annual-report", "annualreport", "yearly report",
		"annual financial statements", "annual accounts", "annual results",
		"full year", "full-year", "fullyear", "full year results",
		"fy results", "12 month results", "12m results",
		"year ended december", "year ended 31", "year ending december",
		"10-k", "form 10-k",
	}
}

func (quarterlyPolicy) AcceptKeywords() []string {
	return []string{
		"q1", "q2", "q3", "q4", "1q", "2q", "3q", "4q",
		"first quarter", "second quarter", "third quarter", "fourth quarter",
		"h1", "h2", "half year", "half-year", "interim", "6 month", "9 month",
	}
}

func (quarterlyPolicy) WantsQuarter() bool { return true }

func (quarterlyPolicy) PeriodLabel(year int, quarter string) string {
	if quarter != "" {
		return quarter + " " + strconv.Itoa(year)
	}
	return fyLabel(year)
}

// =============================================================================
// EARNINGS RELEASES
// =============================================================================

type earningsPolicy struct{}

func (earningsPolicy) Name() string { return "earnings" }

func (earningsPolicy) RejectKeywords() []string {
	return []string{"10-k", "form 10-k", "10-q", "form 10-q"}
}

func (earningsPolicy) AcceptKeywords() []string {
	return []string{
		"earnings", "earnings release", "earnings report", "results announcement",
		"press release", "results", "trading update", "quarterly results",
		"financial results", "comunicado", "communiqué", "ergebnis",
	}
}

func (earningsPolicy) WantsQuarter() bool { return false }

func (earningsPolicy) PeriodLabel(year int, quarter string) string {
	if quarter != "" {
		return quarter + " " + strconv.Itoa(year)
	}
	return fyLabel(year)
}

// =============================================================================
// INVESTOR PRESENTATIONS
// =============================================================================

type presentationPolicy struct{}

func (presentationPolicy) Name() string { return "presentation" }

func (presentationPolicy) RejectKeywords() []string { return nil }

func (presentationPolicy) AcceptKeywords() []string {
	return []string{
		"presentation", "investor presentation", "earnings presentation",
		"results presentation", "investor day", "earnings deck", "slides",
	}
}

func (presentationPolicy) WantsQuarter() bool { return false }

func (presentationPolicy) PeriodLabel(year int, quarter string) string {
	if quarter != "" {
		return quarter + " " + strconv.Itoa(year)
	}
	return fyLabel(year)
}

// =============================================================================
// GENERIC (unknown report types)
// =============================================================================

type genericPolicy struct{ name string }

func (p genericPolicy) Name() string {
	if p.name == "" {
		return "financial_document"
	}
	return p.name
}

func (genericPolicy) RejectKeywords() []string { return nil }
func (genericPolicy) AcceptKeywords() []string { return nil }
func (genericPolicy) WantsQuarter() bool       { return false }

func (genericPolicy) PeriodLabel(year int, quarter string) string {
	if quarter != "" {
		return quarter + " " + strconv.Itoa(year)
	}
	return fyLabel(year)
}

func fyLabel(year int) string {
	return "FY" + strconv.Itoa(year)
}
