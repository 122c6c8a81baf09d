package contracts

import (
	"math"
	"testing"
)

func TestParseWeighting(t *testing.T) {
	tests := []struct {
		input   string
		want    Weighting
		wantErr bool
	}{
		{input: "equal", want: WeightingEqual},
		{input: "score", want: WeightingScore},
		{input: "cap", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeighting(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseWeighting(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWeighting(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseWeighting(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPortfolio_TotalWeight(t *testing.T) {
	p := &Portfolio{
		Entries: []PortfolioEntry{
			{Ticker: "AAA", Weight: 0.4, Score: 0.2},
			{Ticker: "BBB", Weight: 0.6, Score: 0.3},
		},
		Weighting: WeightingScore,
	}

	if got := p.TotalWeight(); math.Abs(got-1.0) > 1e-8 {
		t.Errorf("TotalWeight() = %v, want 1.0", got)
	}
}

func TestCompany_LegacyAccessors(t *testing.T) {
	c := Company{PayoutRatio: 55.0, DividendGrowth5Y: 8.0}

	if c.Payout() != c.PayoutRatio {
		t.Error("Payout() must project PayoutRatio")
	}
	if c.DividendCAGR() != c.DividendGrowth5Y {
		t.Error("DividendCAGR() must project DividendGrowth5Y")
	}
}

func TestCompany_Row(t *testing.T) {
	c := Company{
		Symbol:           "JNJ",
		Name:             "Johnson & Johnson",
		Sector:           "Healthcare",
		Industry:         "Drug Manufacturers",
		DividendYield:    2.9,
		PayoutRatio:      45.0,
		DividendGrowth5Y: 6.0,
		FCFYield:         4.5,
	}

	row := c.Row()

	if row.String(ColSymbol) != "JNJ" {
		t.Errorf("symbol = %s", row.String(ColSymbol))
	}
	if v, _ := row.Float(ColPayout); v != 45.0 {
		t.Errorf("payout = %v, want 45.0", v)
	}
	if v, _ := row.Float(ColDividendCAGR); v != 6.0 {
		t.Errorf("dividend_cagr = %v, want 6.0", v)
	}

	for _, col := range UniverseColumns() {
		if _, ok := row[col]; !ok {
			t.Errorf("missing universe column %s", col)
		}
	}
}
