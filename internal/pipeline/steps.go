package pipeline

import (
	"context"

	"github.com/smefin/ledger-audit/internal/audit"
	infra "github.com/smefin/ledger-audit/internal/infra/sqlite"
	"github.com/smefin/ledger-audit/internal/ledger"
)

// Step represents a single step in the audit pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// State holds the shared state across all pipeline steps. Each request gets
// its own State; nothing here is shared between concurrent runs.
type State struct {
	Filename string
	Industry string
	Data     []byte

	Table     *ledger.Table
	Metrics   audit.Metrics
	Narrative string
	ReportID  string
}

// ExtractTableStep converts the uploaded document into a uniform table.
type ExtractTableStep struct{}

func (s *ExtractTableStep) Execute(ctx context.Context, state *State) error {
	table, err := ledger.Extract(state.Data, state.Filename)
	if err != nil {
		return err
	}
	state.Table = table
	return nil
}

// ResolveAmountsStep locates the monetary column and coerces every cell into
// a signed amount.
type ResolveAmountsStep struct{}

func (s *ResolveAmountsStep) Execute(ctx context.Context, state *State) error {
	return ledger.ResolveAmounts(state.Table)
}

// ScoreStep computes the deterministic audit metrics from the ledger totals.
type ScoreStep struct{}

func (s *ScoreStep) Execute(ctx context.Context, state *State) error {
	income, expense := ledger.Totals(state.Table)
	state.Metrics = audit.Score(income, expense, state.Industry)
	return nil
}

// NarrateStep produces the report text. The narrator owns masking, the
// external call and the fallback, so this step cannot fail.
type NarrateStep struct {
	Narrator ReportNarrator
}

func (s *NarrateStep) Execute(ctx context.Context, state *State) error {
	state.Narrative = s.Narrator.Narrate(ctx, state.Metrics, state.Industry, state.Table.RawSample)
	return nil
}

// PersistStep writes the finished report through the storage collaborator.
type PersistStep struct {
	Store ReportStore
}

func (s *PersistStep) Execute(ctx context.Context, state *State) error {
	id, err := s.Store.Insert(ctx, &infra.AuditReport{
		Industry:    state.Industry,
		Revenue:     state.Metrics.Income,
		HealthScore: state.Metrics.HealthScore,
		LoanProduct: state.Metrics.LoanProduct,
		Narrative:   state.Narrative,
	})
	if err != nil {
		return err
	}
	state.ReportID = id
	return nil
}
