package contracts

import "fmt"

// Weighting selects how portfolio weights are assigned
type Weighting string

const (
	WeightingEqual Weighting = "equal" // 1/N per position
	WeightingScore Weighting = "score" // proportional to composite score
)

// ParseWeighting validates a weighting mode given as a string
func ParseWeighting(s string) (Weighting, error) {
	switch Weighting(s) {
	case WeightingEqual:
		return WeightingEqual, nil
	case WeightingScore:
		return WeightingScore, nil
	default:
		return "", fmt.Errorf("weighting must be 'equal' or 'score', got %q", s)
	}
}

// PortfolioEntry is one allocation of the final portfolio
type PortfolioEntry struct {
	Ticker string  `json:"ticker"`
	Weight float64 `json:"weight"` // 0.0 ~ 1.0
	Score  float64 `json:"score"`  // 0.0 ~ 1.0
}

// Portfolio is the result of one build run. Transient: returned to the
// caller and never persisted.
type Portfolio struct {
	Entries   []PortfolioEntry `json:"entries"`
	Weighting Weighting        `json:"weighting"`
}

// TotalWeight sums the entry weights. Should be 1.0 within floating
// tolerance for any successful build.
func (p *Portfolio) TotalWeight() float64 {
	total := 0.0
	for _, e := range p.Entries {
		total += e.Weight
	}
	return total
}
