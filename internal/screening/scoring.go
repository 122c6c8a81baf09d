package screening

import "github.com/wonny/dgi/internal/contracts"

// ScoringStrategy computes a composite quality score for one record.
// Deterministic, side-effect free, always in [0.0, 1.0].
type ScoringStrategy interface {
	Score(c contracts.Company) float64
}

// DefaultScoring rewards dividend growth and cash generation and
// penalizes a high payout ratio. Each input is normalized to [0,1] by a
// fixed scale before combining, so the ranking stays consistent across
// universes.
type DefaultScoring struct{}

func (DefaultScoring) Score(c contracts.Company) float64 {
	cagrNorm := clamp01(c.DividendGrowth5Y / 20.0)
	fcfNorm := clamp01(c.FCFYield / 20.0)
	payoutNorm := clamp01(c.PayoutRatio / 100.0)

	composite := (cagrNorm + fcfNorm - payoutNorm) / 3.0
	return clamp01(composite)
}

func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
