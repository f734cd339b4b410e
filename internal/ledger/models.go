// Package ledger turns an uploaded financial document (PDF, CSV or
// spreadsheet) into a uniform row/column table and resolves a signed numeric
// amount for every row.
package ledger

import "strings"

// Row represents one transaction extracted from an uploaded ledger.
// Cells holds the raw, untyped values keyed by normalized column name;
// Amount is derived by ResolveAmounts and never mutated afterwards.
type Row struct {
	Cells  map[string]string
	Amount float64
}

// Table is an ordered sequence of rows plus a raw-text sample used only as
// narrative context. Column order preserves the document's left-to-right
// layout.
type Table struct {
	Columns   []string
	Rows      []Row
	RawSample string
}

// NormalizeColumn trims and lower-cases a header name. Idempotent.
func NormalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalize rewrites all column names and row keys to their normalized form.
// Running it twice yields the same table as running it once.
func (t *Table) Normalize() {
	renamed := make(map[string]string, len(t.Columns))
	for i, c := range t.Columns {
		norm := NormalizeColumn(c)
		renamed[c] = norm
		t.Columns[i] = norm
	}
	for i := range t.Rows {
		cells := make(map[string]string, len(t.Rows[i].Cells))
		for k, v := range t.Rows[i].Cells {
			if norm, ok := renamed[k]; ok {
				cells[norm] = v
			} else {
				cells[NormalizeColumn(k)] = v
			}
		}
		t.Rows[i].Cells = cells
	}
}

// newTable builds a table from a header record and data records. Ragged rows
// are tolerated: short rows leave trailing columns empty, long rows drop the
// overflow.
func newTable(header []string, records [][]string) *Table {
	t := &Table{Columns: append([]string(nil), header...)}
	for _, rec := range records {
		cells := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				cells[col] = rec[i]
			} else {
				cells[col] = ""
			}
		}
		t.Rows = append(t.Rows, Row{Cells: cells})
	}
	return t
}

// renderRecords produces the plain-text rendering of the raw records used as
// the narrative sample for CSV and spreadsheet input.
func renderRecords(records [][]string) string {
	var b strings.Builder
	for _, rec := range records {
		b.WriteString(strings.Join(rec, "\t"))
		b.WriteString("\n")
	}
	return b.String()
}
