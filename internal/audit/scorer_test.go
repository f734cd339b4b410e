package audit

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		income     float64
		expense    float64
		industry   string
		wantScore  int
		wantLoan   string
		wantRunway int
	}{
		{
			name:       "retail above benchmark clamps to 100",
			income:     100000,
			expense:    70000,
			industry:   "Retail",
			wantScore:  100,
			wantLoan:   LoanTierA,
			wantRunway: 43,
		},
		{
			name:       "zero ledger in unknown industry",
			income:     0,
			expense:    0,
			industry:   "unknown",
			wantScore:  0,
			wantLoan:   LoanTierGrant,
			wantRunway: 365,
		},
		{
			name:       "manufacturing at half its benchmark",
			income:     100000,
			expense:    87500,
			industry:   "Manufacturing",
			wantScore:  50,
			wantLoan:   LoanTierGrant,
			wantRunway: 34,
		},
		{
			name:       "services mid tier",
			income:     100000,
			expense:    75000,
			industry:   "Services",
			wantScore:  71,
			wantLoan:   LoanTierNBFC,
			wantRunway: 40,
		},
		{
			name:       "loss making floors at zero",
			income:     50000,
			expense:    80000,
			industry:   "Retail",
			wantScore:  0,
			wantLoan:   LoanTierGrant,
			wantRunway: 19,
		},
		{
			name:       "negative income treated as zero margin",
			income:     -1000,
			expense:    500,
			industry:   "Retail",
			wantScore:  0,
			wantLoan:   LoanTierGrant,
			wantRunway: -60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Score(tt.income, tt.expense, tt.industry)
			if m.HealthScore != tt.wantScore {
				t.Errorf("HealthScore = %d, want %d", m.HealthScore, tt.wantScore)
			}
			if m.LoanProduct != tt.wantLoan {
				t.Errorf("LoanProduct = %q, want %q", m.LoanProduct, tt.wantLoan)
			}
			if m.RunwayDays != tt.wantRunway {
				t.Errorf("RunwayDays = %d, want %d", m.RunwayDays, tt.wantRunway)
			}
		})
	}
}

// TestScore_MonotonicInMargin checks that, for a fixed industry and expense
// base, a higher margin never produces a lower health score.
func TestScore_MonotonicInMargin(t *testing.T) {
	const income = 100000.0
	prev := -1
	// expense sweeps down, so margin sweeps up
	for expense := 100000.0; expense >= 0; expense -= 2500 {
		m := Score(income, expense, "Manufacturing")
		if m.HealthScore < prev {
			t.Fatalf("score dropped from %d to %d at expense %v", prev, m.HealthScore, expense)
		}
		if m.HealthScore < 0 || m.HealthScore > 100 {
			t.Fatalf("score %d outside [0,100]", m.HealthScore)
		}
		prev = m.HealthScore
	}
}
