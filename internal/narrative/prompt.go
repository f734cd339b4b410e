package narrative

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smefin/ledger-audit/internal/audit"
)

// buildPrompt constructs the fixed-structure consultant prompt. The masked
// sample must already have PII redacted; this function does not mask.
func buildPrompt(m audit.Metrics, industry, maskedSample string) string {
	var b strings.Builder

	b.WriteString("You are a Senior Financial SME Consultant. Write a high-value Strategic Audit Report for a business in the ")
	b.WriteString(industry)
	b.WriteString(" sector.\n\n")

	b.WriteString("METRICS:\n")
	fmt.Fprintf(&b, "- Monthly Revenue: INR %s\n", formatAmount(m.Income))
	fmt.Fprintf(&b, "- Monthly Expenses: INR %s\n", formatAmount(m.Expense))
	fmt.Fprintf(&b, "- Profit Margin: %.2f%%\n", m.Margin*100)
	fmt.Fprintf(&b, "- Health Score: %d/100\n", m.HealthScore)
	fmt.Fprintf(&b, "- Est. Cash Runway: %d Days\n\n", m.RunwayDays)

	b.WriteString("CONTEXTUAL DATA:\n")
	b.WriteString(maskedSample)
	b.WriteString("\n\n")

	// The three-section shape is a request to the model, not something the
	// pipeline enforces on the response.
	b.WriteString("STRUCTURE YOUR RESPONSE EXACTLY LIKE THIS:\n")
	b.WriteString("1. RISK ANALYSIS: Detailed breakdown of the score and burn rate.\n")
	b.WriteString("2. 3-MONTH FORECAST: Specific predictions based on the runway.\n")
	b.WriteString("3. GROWTH STRATEGY: One industry-specific cost saving and one expansion tip.\n")

	return b.String()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
