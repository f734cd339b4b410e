package ledger

import (
	"fmt"
	"strings"
)

// Extract parses an uploaded document into a Table. The document kind is
// chosen solely by filename suffix: ".pdf" and ".csv" are handled explicitly,
// anything else is treated as a spreadsheet. The first extracted row is the
// header; column names are normalized before the table is returned.
func Extract(data []byte, filename string) (*Table, error) {
	var (
		t   *Table
		err error
	)

	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		t, err = extractPDF(data)
	case strings.HasSuffix(lower, ".csv"):
		t, err = extractCSV(data)
	default:
		t, err = extractXLSX(data)
	}
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", filename, err)
	}

	t.Normalize()
	return t, nil
}
