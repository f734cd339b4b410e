package ledger

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// extractPDF pulls per-page text for the raw sample and a single logical
// table built by concatenating every page's rows in page order. The first
// extracted row becomes the header downstream.
func extractPDF(data []byte) (*Table, error) {
	conf := model.NewDefaultConfiguration()
	if err := api.Validate(bytes.NewReader(data), conf); err != nil {
		return nil, fmt.Errorf("validate pdf: %w", err)
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var (
		pageTexts []string
		records   [][]string
	)

	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			// Missing pages contribute an empty string to the sample.
			pageTexts = append(pageTexts, "")
			continue
		}

		rows, err := p.GetTextByRow()
		if err != nil {
			pageTexts = append(pageTexts, "")
			continue
		}

		var lines []string
		for _, row := range rows {
			cells := clusterCells(row.Content)
			if len(cells) == 0 {
				continue
			}
			lines = append(lines, strings.Join(cells, " "))
			records = append(records, cells)
		}
		pageTexts = append(pageTexts, strings.Join(lines, "\n"))
	}

	if len(records) == 0 {
		return nil, ErrNoTableFound
	}

	t := newTable(records[0], records[1:])
	t.RawSample = strings.Join(pageTexts, " ")
	return t, nil
}

// clusterCells groups a row's positioned text runs into table cells. Runs are
// walked left to right; a horizontal gap wider than the surrounding font size
// starts a new cell, a smaller gap becomes a space within the current cell.
func clusterCells(words []pdf.Text) []string {
	if len(words) == 0 {
		return nil
	}

	sorted := append([]pdf.Text(nil), words...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var (
		cells []string
		cur   strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			cells = append(cells, s)
		}
		cur.Reset()
	}

	for i, w := range sorted {
		if i > 0 {
			prev := sorted[i-1]
			gap := w.X - (prev.X + prev.W)
			if gap > cellGap(prev.FontSize) {
				flush()
			} else if gap > prev.FontSize*0.2 {
				cur.WriteString(" ")
			}
		}
		cur.WriteString(w.S)
	}
	flush()

	return cells
}

func cellGap(fontSize float64) float64 {
	gap := fontSize * 1.5
	if gap < 6 {
		gap = 6
	}
	return gap
}
