package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dgi/internal/contracts"
)

func universeFrame(companies ...contracts.Company) *contracts.Frame {
	f := contracts.NewFrame(contracts.UniverseColumns()...)
	for _, c := range companies {
		f.Append(c.Row())
	}
	return f
}

func TestDefaultFilter(t *testing.T) {
	f := universeFrame(
		contracts.Company{Symbol: "A", Name: "A Co", Sector: "Tech", Industry: "SW",
			DividendYield: 2.0, PayoutRatio: 40, DividendGrowth5Y: 7, FCFYield: 5},
		contracts.Company{Symbol: "B", Name: "B Co", Sector: "Tech", Industry: "SW",
			DividendYield: 1.0, PayoutRatio: 60, DividendGrowth5Y: 3, FCFYield: 5},
	)

	out := DefaultFilter{}.Filter(f, 1.5, 50, 5)

	require.Equal(t, 1, out.Len())
	assert.Equal(t, "A", out.String(0, contracts.ColSymbol))
}

func TestDefaultFilter_InclusiveBounds(t *testing.T) {
	f := universeFrame(
		contracts.Company{Symbol: "EDGE", Name: "Edge", Sector: "Tech", Industry: "SW",
			DividendYield: 2.0, PayoutRatio: 50, DividendGrowth5Y: 5, FCFYield: 5},
	)

	out := DefaultFilter{}.Filter(f, 2.0, 50, 5)

	assert.Equal(t, 1, out.Len(), "rows sitting exactly on every bound must pass")
}

func TestDefaultFilter_Monotonic(t *testing.T) {
	f := universeFrame(
		contracts.Company{Symbol: "A", Name: "A", Sector: "T", Industry: "I",
			DividendYield: 2.0, PayoutRatio: 40, DividendGrowth5Y: 7, FCFYield: 5},
		contracts.Company{Symbol: "B", Name: "B", Sector: "T", Industry: "I",
			DividendYield: 3.0, PayoutRatio: 55, DividendGrowth5Y: 4, FCFYield: 5},
		contracts.Company{Symbol: "C", Name: "C", Sector: "T", Industry: "I",
			DividendYield: 4.0, PayoutRatio: 70, DividendGrowth5Y: 9, FCFYield: 5},
	)

	base := DefaultFilter{}.Filter(f, 1.0, 80, 0).Len()

	// Tightening any one threshold never grows the result
	assert.LessOrEqual(t, DefaultFilter{}.Filter(f, 3.0, 80, 0).Len(), base)
	assert.LessOrEqual(t, DefaultFilter{}.Filter(f, 1.0, 50, 0).Len(), base)
	assert.LessOrEqual(t, DefaultFilter{}.Filter(f, 1.0, 80, 5).Len(), base)
}

func TestDefaultFilter_EmptyInputKeepsSchema(t *testing.T) {
	f := contracts.NewFrame(contracts.UniverseColumns()...)

	out := DefaultFilter{}.Filter(f, 1.0, 50, 5)

	assert.Equal(t, 0, out.Len())
	assert.Equal(t, contracts.UniverseColumns(), out.Columns())
}

func TestSectorFilter(t *testing.T) {
	f := universeFrame(
		contracts.Company{Symbol: "A", Name: "A", Sector: "Healthcare", Industry: "I",
			DividendYield: 2.0, PayoutRatio: 40, DividendGrowth5Y: 7, FCFYield: 5},
		contracts.Company{Symbol: "B", Name: "B", Sector: "Energy", Industry: "I",
			DividendYield: 2.5, PayoutRatio: 40, DividendGrowth5Y: 7, FCFYield: 5},
	)

	out := NewSectorFilter([]string{"Healthcare"}).Filter(f, 0, 100, 0)

	require.Equal(t, 1, out.Len())
	assert.Equal(t, "A", out.String(0, contracts.ColSymbol))
}

func TestSectorFilter_NoSectorColumn(t *testing.T) {
	f := contracts.NewFrame(contracts.ColSymbol, contracts.ColDividendYield,
		contracts.ColPayout, contracts.ColDividendCAGR)
	f.Append(contracts.Row{
		contracts.ColSymbol: "A", contracts.ColDividendYield: 2.0,
		contracts.ColPayout: 40.0, contracts.ColDividendCAGR: 7.0,
	})

	out := NewSectorFilter([]string{"Healthcare"}).Filter(f, 0, 100, 0)

	assert.Equal(t, 1, out.Len(), "missing sector column skips the sector step")
}

func TestCompositeFilter(t *testing.T) {
	f := universeFrame(
		contracts.Company{Symbol: "A", Name: "A", Sector: "Healthcare", Industry: "I",
			DividendYield: 2.0, PayoutRatio: 40, DividendGrowth5Y: 7, FCFYield: 5},
		contracts.Company{Symbol: "B", Name: "B", Sector: "Energy", Industry: "I",
			DividendYield: 2.5, PayoutRatio: 40, DividendGrowth5Y: 7, FCFYield: 5},
		contracts.Company{Symbol: "C", Name: "C", Sector: "Healthcare", Industry: "I",
			DividendYield: 0.5, PayoutRatio: 40, DividendGrowth5Y: 7, FCFYield: 5},
	)

	composite := NewCompositeFilter(
		DefaultFilter{},
		NewSectorFilter([]string{"Healthcare"}),
	)

	out := composite.Filter(f, 1.0, 100, 0)

	require.Equal(t, 1, out.Len())
	assert.Equal(t, "A", out.String(0, contracts.ColSymbol))
}

func TestTopNFilter_WithScores(t *testing.T) {
	f := universeFrame(
		contracts.Company{Symbol: "A", Name: "A", Sector: "T", Industry: "I",
			DividendYield: 2, PayoutRatio: 40, DividendGrowth5Y: 7, FCFYield: 5},
		contracts.Company{Symbol: "B", Name: "B", Sector: "T", Industry: "I",
			DividendYield: 2, PayoutRatio: 40, DividendGrowth5Y: 7, FCFYield: 5},
		contracts.Company{Symbol: "C", Name: "C", Sector: "T", Industry: "I",
			DividendYield: 2, PayoutRatio: 40, DividendGrowth5Y: 7, FCFYield: 5},
	)
	scored := f.WithFloatColumn(contracts.ColScore, []float64{0.2, 0.9, 0.5})

	out := NewTopNFilter(2, nil).Filter(scored, 0, 100, 0)

	require.Equal(t, 2, out.Len())
	assert.Equal(t, "B", out.String(0, contracts.ColSymbol))
	assert.Equal(t, "C", out.String(1, contracts.ColSymbol))
}

func TestTopNFilter_WithoutScores(t *testing.T) {
	f := universeFrame(
		contracts.Company{Symbol: "A", Name: "A", Sector: "T", Industry: "I",
			DividendYield: 2, PayoutRatio: 40, DividendGrowth5Y: 7, FCFYield: 5},
		contracts.Company{Symbol: "B", Name: "B", Sector: "T", Industry: "I",
			DividendYield: 2, PayoutRatio: 40, DividendGrowth5Y: 7, FCFYield: 5},
	)

	out := NewTopNFilter(1, nil).Filter(f, 0, 100, 0)

	require.Equal(t, 1, out.Len())
	assert.Equal(t, "A", out.String(0, contracts.ColSymbol), "no score column: positional truncation")
}
