package ledger

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// extractXLSX reads the first sheet of a spreadsheet with the first row as
// header. The raw sample is the full string rendering of the sheet.
func extractXLSX(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	t := newTable(rows[0], rows[1:])
	t.RawSample = renderRecords(rows)
	return t, nil
}
