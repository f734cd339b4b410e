package ledger

import (
	"errors"
	"testing"
)

func TestCleanNum(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1234.56", 1234.56},
		{"-500", -500},
		{"INR 1,200.50", 1200.50},
		{"₹ 4,500", 4500},
		{"(n/a)", 0},
		{"", 0},
		{"--12", 0},
		{"1.2.3", 0},
		{"12 Cr", 12},
		{"-", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := CleanNum(tt.input)
			if got != tt.want {
				t.Errorf("CleanNum(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindAmountColumn(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    string
		wantErr bool
	}{
		{
			name:    "plain amount",
			columns: []string{"date", "description", "amount"},
			want:    "amount",
		},
		{
			name:    "first match wins left to right",
			columns: []string{"txn value", "closing balance"},
			want:    "txn value",
		},
		{
			name:    "substring match",
			columns: []string{"date", "amt (inr)"},
			want:    "amt (inr)",
		},
		{
			name:    "no monetary column",
			columns: []string{"date", "description", "reference"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindAmountColumn(&Table{Columns: tt.columns})
			if tt.wantErr {
				if !errors.Is(err, ErrAmountColumnMissing) {
					t.Fatalf("expected ErrAmountColumnMissing, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FindAmountColumn() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveAmounts(t *testing.T) {
	table := newTable(
		[]string{"date", "amount"},
		[][]string{
			{"2024-01-01", "INR 1,000"},
			{"2024-01-02", "-250.75"},
			{"2024-01-03", "n/a"},
		},
	)

	if err := ResolveAmounts(table); err != nil {
		t.Fatalf("ResolveAmounts failed: %v", err)
	}

	want := []float64{1000, -250.75, 0}
	for i, w := range want {
		if table.Rows[i].Amount != w {
			t.Errorf("row %d amount = %v, want %v", i, table.Rows[i].Amount, w)
		}
	}
}

func TestResolveAmounts_MissingColumn(t *testing.T) {
	table := newTable([]string{"date", "description"}, [][]string{{"2024-01-01", "rent"}})
	if err := ResolveAmounts(table); !errors.Is(err, ErrAmountColumnMissing) {
		t.Fatalf("expected ErrAmountColumnMissing, got %v", err)
	}
}

func TestTotals(t *testing.T) {
	tests := []struct {
		name        string
		amounts     []float64
		wantIncome  float64
		wantExpense float64
	}{
		{
			name:        "mixed credits and debits",
			amounts:     []float64{1000, -300, 500, -200},
			wantIncome:  1500,
			wantExpense: 500,
		},
		{
			name:        "no debits synthesizes 70 percent burn",
			amounts:     []float64{30000, 20000},
			wantIncome:  50000,
			wantExpense: 35000,
		},
		{
			name:        "empty ledger",
			amounts:     nil,
			wantIncome:  0,
			wantExpense: 0,
		},
		{
			name:        "only debits",
			amounts:     []float64{-100, -200},
			wantIncome:  0,
			wantExpense: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &Table{}
			for _, a := range tt.amounts {
				table.Rows = append(table.Rows, Row{Amount: a})
			}
			income, expense := Totals(table)
			if income != tt.wantIncome || expense != tt.wantExpense {
				t.Errorf("Totals() = (%v, %v), want (%v, %v)",
					income, expense, tt.wantIncome, tt.wantExpense)
			}
		})
	}
}
