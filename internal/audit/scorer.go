// Package audit computes the deterministic business-health assessment from a
// ledger's income and expense totals.
package audit

import "math"

// Benchmark profit margins by industry. Unknown industries fall back to
// defaultBenchmark.
var benchmarks = map[string]float64{
	"Manufacturing": 0.25,
	"Retail":        0.12,
	"Services":      0.35,
	"Agri":          0.15,
}

const defaultBenchmark = 0.20

// Loan-product tiers keyed off the health score. The labels are policy
// strings consumed verbatim by downstream systems.
const (
	LoanTierA      = "collateral-free tier A"
	LoanTierNBFC   = "working-capital NBFC tier"
	LoanTierGrant  = "government grant scheme"
	tierAThreshold = 85
	tierBThreshold = 60
)

// Metrics is the value object produced by Score. It is immutable once built.
type Metrics struct {
	Income      float64
	Expense     float64
	Margin      float64
	HealthScore int
	LoanProduct string
	RunwayDays  int
}

// Score derives margin, health score, loan-product recommendation and cash
// runway from the ledger totals. Pure and deterministic: no I/O, no shared
// state. Non-positive income forces the margin to zero rather than erroring;
// that is the safe-default policy for degenerate ledgers.
func Score(income, expense float64, industry string) Metrics {
	margin := 0.0
	if income > 0 {
		margin = (income - expense) / income
	}

	benchmark, ok := benchmarks[industry]
	if !ok {
		benchmark = defaultBenchmark
	}

	score := int(math.Round(margin / benchmark * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	var loan string
	switch {
	case score >= tierAThreshold:
		loan = LoanTierA
	case score >= tierBThreshold:
		loan = LoanTierNBFC
	default:
		loan = LoanTierGrant
	}

	runway := 365
	if expense > 0 {
		runway = int(math.Round(income / expense * 30))
	}

	return Metrics{
		Income:      income,
		Expense:     expense,
		Margin:      margin,
		HealthScore: score,
		LoanProduct: loan,
		RunwayDays:  runway,
	}
}
