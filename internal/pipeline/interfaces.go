package pipeline

import (
	"context"

	"github.com/smefin/ledger-audit/internal/audit"
	infra "github.com/smefin/ledger-audit/internal/infra/sqlite"
)

// ReportStore is the persistence collaborator. The concrete store owns
// encryption at rest of the revenue figure; the pipeline only hands over the
// finished record.
type ReportStore interface {
	Insert(ctx context.Context, r *infra.AuditReport) (string, error)
}

// ReportNarrator produces the audit narrative. Implementations must always
// return a non-empty string and absorb external-service failures themselves.
type ReportNarrator interface {
	Narrate(ctx context.Context, m audit.Metrics, industry, rawSample string) string
}
