package screening

import (
	"github.com/wonny/dgi/internal/contracts"
)

// FilterStrategy selects rows of a universe table against the screening
// thresholds. Implementations are pure: the input frame is never
// mutated, and an empty input yields an empty frame with the same
// column schema.
type FilterStrategy interface {
	Filter(f *contracts.Frame, minYield, maxPayout, minCAGR float64) *contracts.Frame
}

// DefaultFilter is the standard DGI hard cut: yield floor, payout
// ceiling and dividend growth floor. All bounds are inclusive.
type DefaultFilter struct{}

func (DefaultFilter) Filter(f *contracts.Frame, minYield, maxPayout, minCAGR float64) *contracts.Frame {
	return f.Select(func(r contracts.Row) bool {
		yield, ok := r.Float(contracts.ColDividendYield)
		if !ok {
			return false
		}
		payout, ok := r.Float(contracts.ColPayout)
		if !ok {
			return false
		}
		cagr, ok := r.Float(contracts.ColDividendCAGR)
		if !ok {
			return false
		}
		return yield >= minYield && payout <= maxPayout && cagr >= minCAGR
	})
}

// SectorFilter applies the default criteria, then keeps only rows whose
// sector is on the allow-list. A frame without a sector column skips the
// sector step instead of failing.
type SectorFilter struct {
	allowed map[string]bool
}

// NewSectorFilter creates a sector allow-list filter
func NewSectorFilter(sectors []string) *SectorFilter {
	allowed := make(map[string]bool, len(sectors))
	for _, s := range sectors {
		allowed[s] = true
	}
	return &SectorFilter{allowed: allowed}
}

func (s *SectorFilter) Filter(f *contracts.Frame, minYield, maxPayout, minCAGR float64) *contracts.Frame {
	base := DefaultFilter{}.Filter(f, minYield, maxPayout, minCAGR)

	if !base.HasColumn(contracts.ColSector) {
		return base
	}

	return base.Select(func(r contracts.Row) bool {
		return s.allowed[r.String(contracts.ColSector)]
	})
}

// CompositeFilter chains filter strategies in order, each consuming the
// previous stage's output.
type CompositeFilter struct {
	filters []FilterStrategy
}

// NewCompositeFilter creates an ordered filter chain
func NewCompositeFilter(filters ...FilterStrategy) *CompositeFilter {
	return &CompositeFilter{filters: filters}
}

func (c *CompositeFilter) Filter(f *contracts.Frame, minYield, maxPayout, minCAGR float64) *contracts.Frame {
	result := f
	for _, filter := range c.filters {
		result = filter.Filter(result, minYield, maxPayout, minCAGR)
	}
	return result
}

// TopNFilter applies a base filter and truncates to the n highest-scoring
// rows when a score column exists, otherwise to the first n rows.
type TopNFilter struct {
	n    int
	base FilterStrategy
}

// NewTopNFilter creates a top-N truncating filter. A nil base falls back
// to the default criteria.
func NewTopNFilter(n int, base FilterStrategy) *TopNFilter {
	if base == nil {
		base = DefaultFilter{}
	}
	return &TopNFilter{n: n, base: base}
}

func (t *TopNFilter) Filter(f *contracts.Frame, minYield, maxPayout, minCAGR float64) *contracts.Frame {
	filtered := t.base.Filter(f, minYield, maxPayout, minCAGR)

	if filtered.HasColumn(contracts.ColScore) && filtered.Len() > 0 {
		return filtered.SortByFloatDesc(contracts.ColScore).Head(t.n)
	}

	return filtered.Head(t.n)
}
