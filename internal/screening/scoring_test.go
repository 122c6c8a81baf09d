package screening

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/dgi/internal/contracts"
)

func TestDefaultScoring_WorkedExample(t *testing.T) {
	// cagr 10/20=0.5, fcf 10/20=0.5, payout 50/100=0.5 → (0.5+0.5-0.5)/3
	c := contracts.Company{
		DividendGrowth5Y: 10,
		FCFYield:         10,
		PayoutRatio:      50,
	}

	got := DefaultScoring{}.Score(c)
	assert.InDelta(t, 0.5/3.0, got, 1e-9)
}

func TestDefaultScoring_AlwaysInUnitInterval(t *testing.T) {
	values := []float64{-100, -20, 0, 5, 20, 50, 100, 200}

	for _, cagr := range values {
		for _, fcf := range values {
			for _, payout := range values {
				if payout < 0 || payout > 200 {
					continue
				}
				c := contracts.Company{
					DividendGrowth5Y: cagr,
					FCFYield:         fcf,
					PayoutRatio:      payout,
				}
				score := DefaultScoring{}.Score(c)
				if score < 0.0 || score > 1.0 {
					t.Fatalf("score out of range: %v for cagr=%v fcf=%v payout=%v",
						score, cagr, fcf, payout)
				}
			}
		}
	}
}

func TestDefaultScoring_Deterministic(t *testing.T) {
	c := contracts.Company{DividendGrowth5Y: 8, FCFYield: 6, PayoutRatio: 45}

	first := DefaultScoring{}.Score(c)
	for i := 0; i < 10; i++ {
		if got := (DefaultScoring{}).Score(c); got != first {
			t.Fatalf("score changed between calls: %v vs %v", first, got)
		}
	}
}

func TestDefaultScoring_ClampsNegativeComposite(t *testing.T) {
	// No growth, no cash flow, full payout → raw composite is negative
	c := contracts.Company{DividendGrowth5Y: 0, FCFYield: 0, PayoutRatio: 100}

	got := DefaultScoring{}.Score(c)
	assert.Equal(t, 0.0, got)
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: -0.5, want: 0.0},
		{in: 0.0, want: 0.0},
		{in: 0.7, want: 0.7},
		{in: 1.0, want: 1.0},
		{in: 1.5, want: 1.0},
	}

	for _, tt := range tests {
		if got := clamp01(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
