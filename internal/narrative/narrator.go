// Package narrative builds a redacted consultant prompt from scorer output,
// invokes the external text service, and falls back to a deterministic
// templated summary on any failure. It always yields a non-empty report.
package narrative

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smefin/ledger-audit/internal/audit"
	"github.com/smefin/ledger-audit/internal/pii"
)

// sampleCap bounds how much raw ledger text is embedded in the prompt.
// Truncation happens before masking; a PII pattern cut by the boundary may be
// only partially redacted. That ordering is kept deliberately.
const sampleCap = 2000

// DefaultTimeout bounds the single outbound model call.
const DefaultTimeout = 30 * time.Second

// Generator is the external text service boundary. Implementations return an
// error for any transport failure or empty response.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Narrator orchestrates report generation with a local fallback.
type Narrator struct {
	gen     Generator
	timeout time.Duration
	log     zerolog.Logger
}

// New creates a Narrator. gen may be nil, in which case every report comes
// from the fallback template.
func New(gen Generator, timeout time.Duration, log zerolog.Logger) *Narrator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Narrator{gen: gen, timeout: timeout, log: log}
}

// Narrate returns the audit narrative for the given metrics. Failures of the
// external service are logged and absorbed; the caller never sees them.
func (n *Narrator) Narrate(ctx context.Context, m audit.Metrics, industry, rawSample string) string {
	safe := pii.Mask(truncate(rawSample, sampleCap))
	prompt := buildPrompt(m, industry, safe)

	if n.gen != nil {
		callCtx, cancel := context.WithTimeout(ctx, n.timeout)
		defer cancel()

		text, err := n.gen.Generate(callCtx, prompt)
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		n.log.Warn().Err(err).Msg("Narrative service failed, using templated summary")
	}

	return fallbackSummary(m, industry)
}

// fallbackSummary is built only from already-computed metrics; no external
// call is made.
func fallbackSummary(m audit.Metrics, industry string) string {
	return fmt.Sprintf(
		"EXECUTIVE AUDIT SUMMARY:\n"+
			"The business is operating in the %s sector with a health score of %d/100. "+
			"With a monthly revenue of INR %s and expenses of INR %s, the current "+
			"cash runway is approximately %d days. Strategy: Focus on reducing fixed costs.",
		industry, m.HealthScore, formatAmount(m.Income), formatAmount(m.Expense), m.RunwayDays,
	)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
