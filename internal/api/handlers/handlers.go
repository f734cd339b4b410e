// Package handlers exposes the audit pipeline over HTTP.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/smefin/ledger-audit/internal/api/middleware"
	infra "github.com/smefin/ledger-audit/internal/infra/sqlite"
	"github.com/smefin/ledger-audit/internal/ledger"
	"github.com/smefin/ledger-audit/internal/pipeline"
)

// maxUploadBytes bounds the multipart form kept in memory per request.
const maxUploadBytes = 16 << 20

// ErrInputMissing is returned when the request carries no document.
var ErrInputMissing = errors.New("no file uploaded")

// ReportLister reads back persisted audit reports.
type ReportLister interface {
	ListRecent(ctx context.Context, limit int) ([]infra.AuditReport, error)
}

// AuditHandler handles audit-related endpoints.
type AuditHandler struct {
	auditor *pipeline.Auditor
	reports ReportLister
	log     zerolog.Logger
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(auditor *pipeline.Auditor, reports ReportLister, log zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		auditor: auditor,
		reports: reports,
		log:     log,
	}
}

// Analyze handles POST /api/analyze. It expects a multipart form with a
// "file" part and an optional "industry" field.
func (h *AuditHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, ErrInputMissing.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, ErrInputMissing.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read uploaded file")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	industry := r.FormValue("industry")

	result, err := h.auditor.Run(ctx, data, header.Filename, industry)
	if err != nil {
		h.writeRunError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, result)
}

// writeRunError maps pipeline failures onto the response taxonomy:
// client-input errors get a 400 with a descriptive message, everything else
// a 500.
func (h *AuditHandler) writeRunError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNoTableFound):
		middleware.WriteError(w, http.StatusBadRequest, ledger.ErrNoTableFound.Error())
	case errors.Is(err, ledger.ErrAmountColumnMissing):
		middleware.WriteError(w, http.StatusBadRequest, ledger.ErrAmountColumnMissing.Error())
	default:
		h.log.Error().Err(err).Msg("Audit pipeline failed")
		middleware.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// ListAudits handles GET /api/audits.
func (h *AuditHandler) ListAudits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	audits, err := h.reports.ListRecent(ctx, 50)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list audit reports")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list audit reports")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"audits": audits,
		"count":  len(audits),
	})
}
