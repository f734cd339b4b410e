package ledger

import "errors"

var (
	// ErrNoTableFound is returned when a PDF parses but no page yields
	// structured table rows.
	ErrNoTableFound = errors.New("no structured table data found in PDF")

	// ErrAmountColumnMissing is returned when no column name matches the
	// monetary heuristics.
	ErrAmountColumnMissing = errors.New("amount column not found")
)
