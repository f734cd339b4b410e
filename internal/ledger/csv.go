package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// extractCSV reads the whole document as CSV with the first record as header.
// The raw sample is the full string rendering of the file's records.
func extractCSV(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records [][]string
	lineNum := 1
	for {
		lineNum++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}

	t := newTable(header, records)
	t.RawSample = renderRecords(append([][]string{header}, records...))
	return t, nil
}
