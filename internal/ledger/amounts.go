package ledger

import (
	"regexp"
	"strconv"
	"strings"
)

// amountKeywords are the substrings the monetary-column heuristic scans for,
// in match priority order per column.
var amountKeywords = []string{"amount", "amt", "value", "balance"}

var nonNumericRe = regexp.MustCompile(`[^\d.-]`)

// FindAmountColumn returns the first column (left to right) whose normalized
// name contains one of the monetary keywords.
func FindAmountColumn(t *Table) (string, error) {
	for _, col := range t.Columns {
		for _, kw := range amountKeywords {
			if strings.Contains(col, kw) {
				return col, nil
			}
		}
	}
	return "", ErrAmountColumnMissing
}

// ResolveAmounts locates the monetary column and coerces every row's cell
// value into the row's signed Amount. Coercion is total; rows that do not
// parse get amount 0.
func ResolveAmounts(t *Table) error {
	col, err := FindAmountColumn(t)
	if err != nil {
		return err
	}
	for i := range t.Rows {
		t.Rows[i].Amount = CleanNum(t.Rows[i].Cells[col])
	}
	return nil
}

// CleanNum strips every character that is not a digit, '.' or '-' and parses
// the remainder as a decimal number. Any parse failure yields 0; it never
// returns an error.
func CleanNum(val string) float64 {
	s := nonNumericRe.ReplaceAllString(val, "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Totals sums the resolved amounts: income is the sum of positive amounts,
// expense the absolute sum of negatives. When a ledger records no outgoings
// at all, expense is synthesized as 70% of income so downstream scoring has a
// non-degenerate burn rate.
func Totals(t *Table) (income, expense float64) {
	for _, row := range t.Rows {
		switch {
		case row.Amount > 0:
			income += row.Amount
		case row.Amount < 0:
			expense += -row.Amount
		}
	}
	if expense == 0 && income > 0 {
		expense = income * 0.7
	}
	return income, expense
}
