package portfolio

import (
	"fmt"
	"math"
	"sort"

	"github.com/wonny/dgi/internal/contracts"
	"github.com/wonny/dgi/pkg/logger"
)

// Builder turns a scored table into a weighted allocation
// ⭐ SSOT: 포트폴리오 구성 로직은 여기서만
type Builder struct {
	logger *logger.Logger
}

// NewBuilder creates a portfolio builder
func NewBuilder(log *logger.Logger) *Builder {
	return &Builder{logger: log}
}

// Build selects the topN highest-scoring rows and assigns weights,
// returning a table with columns {ticker, weight, score}. The sort is
// stable, so rows tied on score keep their input order. Score weighting
// with a zero score sum falls back to equal weighting.
func (b *Builder) Build(f *contracts.Frame, topN int, weighting contracts.Weighting) (*contracts.Frame, error) {
	if topN < 1 {
		return nil, fmt.Errorf("top_n must be at least 1, got %d", topN)
	}
	if topN > f.Len() {
		return nil, fmt.Errorf("top_n (%d) cannot be greater than number of stocks (%d)", topN, f.Len())
	}
	if weighting != contracts.WeightingEqual && weighting != contracts.WeightingScore {
		return nil, fmt.Errorf("weighting must be 'equal' or 'score', got %q", weighting)
	}
	if !f.HasColumn(contracts.ColScore) {
		return nil, fmt.Errorf("missing %q column: run scoring before building a portfolio", contracts.ColScore)
	}

	tickerCol := contracts.ColTicker
	if !f.HasColumn(tickerCol) {
		tickerCol = contracts.ColSymbol
	}
	if !f.HasColumn(tickerCol) {
		return nil, fmt.Errorf("missing %q or %q column", contracts.ColTicker, contracts.ColSymbol)
	}

	top := f.SortByFloatDesc(contracts.ColScore).Head(topN)

	scores := make([]float64, topN)
	totalScore := 0.0
	for i := 0; i < topN; i++ {
		score, _ := top.Float(i, contracts.ColScore)
		scores[i] = score
		totalScore += score
	}

	weights := make([]float64, topN)
	switch {
	case weighting == contracts.WeightingEqual || totalScore == 0:
		for i := range weights {
			weights[i] = 1.0 / float64(topN)
		}
	default:
		for i := range weights {
			weights[i] = scores[i] / totalScore
		}
	}

	out := contracts.NewFrame(contracts.ColTicker, contracts.ColWeight, contracts.ColScore)
	for i := 0; i < topN; i++ {
		out.Append(contracts.Row{
			contracts.ColTicker: top.String(i, tickerCol),
			contracts.ColWeight: weights[i],
			contracts.ColScore:  scores[i],
		})
	}

	b.logger.WithFields(map[string]interface{}{
		"positions": out.Len(),
		"weighting": string(weighting),
	}).Info("Portfolio constructed")

	return out, nil
}

// Entries converts a built portfolio table into typed entries
func Entries(f *contracts.Frame, weighting contracts.Weighting) *contracts.Portfolio {
	p := &contracts.Portfolio{Weighting: weighting}
	for i := 0; i < f.Len(); i++ {
		weight, _ := f.Float(i, contracts.ColWeight)
		score, _ := f.Float(i, contracts.ColScore)
		p.Entries = append(p.Entries, contracts.PortfolioEntry{
			Ticker: f.String(i, contracts.ColTicker),
			Weight: weight,
			Score:  score,
		})
	}
	return p
}

// Stats summarizes a universe or filtered table
type Stats struct {
	Yield      float64 `json:"yield"`       // mean dividend yield
	MedianCAGR float64 `json:"median_cagr"` // median 5y dividend growth
	MeanPayout float64 `json:"mean_payout"` // mean payout ratio
}

// SummaryStats computes summary statistics over the given table. An
// empty table yields NaN for every field rather than an error.
func (b *Builder) SummaryStats(f *contracts.Frame) Stats {
	return Stats{
		Yield:      mean(f.FloatColumn(contracts.ColDividendYield)),
		MedianCAGR: median(f.FloatColumn(contracts.ColDividendCAGR)),
		MeanPayout: mean(f.FloatColumn(contracts.ColPayout)),
	}
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2.0
}
