// Package pipeline runs one financial audit end to end: extraction, amount
// normalization, scoring, narrative generation and persistence, as a single
// linear sequence of blocking steps per request.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smefin/ledger-audit/internal/archive"
)

// DefaultIndustry is assumed when the caller does not provide one.
const DefaultIndustry = "Manufacturing"

// Result is the payload returned to the caller after a successful run.
type Result struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Score   int     `json:"score"`
	Loan    string  `json:"loan"`
	Report  string  `json:"report"`
	Runway  int     `json:"runway"`
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps sequentially, stopping at the first failure.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d: %w", i+1, err)
		}
	}
	return nil
}

// Auditor wires the audit pipeline to its collaborators.
type Auditor struct {
	store    ReportStore
	narrator ReportNarrator
	archiver archive.Archiver
	log      zerolog.Logger
}

// NewAuditor creates an Auditor. archiver may be nil to disable document
// archiving.
func NewAuditor(store ReportStore, narrator ReportNarrator, archiver archive.Archiver, log zerolog.Logger) *Auditor {
	return &Auditor{store: store, narrator: narrator, archiver: archiver, log: log}
}

// Run audits one uploaded ledger document and returns the result payload.
// Client-input failures surface as ledger.ErrNoTableFound or
// ledger.ErrAmountColumnMissing in the error chain.
func (a *Auditor) Run(ctx context.Context, data []byte, filename, industry string) (*Result, error) {
	if industry == "" {
		industry = DefaultIndustry
	}

	state := &State{
		Filename: filename,
		Industry: industry,
		Data:     data,
	}

	p := NewPipeline(
		&ExtractTableStep{},
		&ResolveAmountsStep{},
		&ScoreStep{},
		&NarrateStep{Narrator: a.narrator},
		&PersistStep{Store: a.store},
	)
	if err := p.Execute(ctx, state); err != nil {
		return nil, err
	}

	a.archiveDocument(ctx, state)

	a.log.Info().
		Str("report_id", state.ReportID).
		Str("industry", industry).
		Int("health_score", state.Metrics.HealthScore).
		Int("runway_days", state.Metrics.RunwayDays).
		Msg("Audit completed")

	return &Result{
		Income:  state.Metrics.Income,
		Expense: state.Metrics.Expense,
		Score:   state.Metrics.HealthScore,
		Loan:    state.Metrics.LoanProduct,
		Report:  state.Narrative,
		Runway:  state.Metrics.RunwayDays,
	}, nil
}

// archiveDocument uploads the original document if an archiver is configured.
// Best effort only.
func (a *Auditor) archiveDocument(ctx context.Context, state *State) {
	if a.archiver == nil {
		return
	}
	uri, err := a.archiver.Archive(ctx, state.Filename, state.Data)
	if err != nil {
		a.log.Warn().Err(err).Str("filename", state.Filename).Msg("Document archive failed")
		return
	}
	a.log.Info().Str("uri", uri).Msg("Document archived")
}
