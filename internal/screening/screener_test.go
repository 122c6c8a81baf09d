package screening

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dgi/internal/contracts"
	"github.com/wonny/dgi/pkg/logger"
)

// memRepo is an in-memory CompanyRepository for pipeline tests
type memRepo struct {
	companies []contracts.Company
	err       error
}

func (m *memRepo) GetRows(ctx context.Context) ([]contracts.Company, error) {
	return m.companies, m.err
}

func testCompanies() []contracts.Company {
	return []contracts.Company{
		{Symbol: "JNJ", Name: "Johnson & Johnson", Sector: "Healthcare", Industry: "Drugs",
			DividendYield: 2.9, PayoutRatio: 45, DividendGrowth5Y: 6, FCFYield: 4.5},
		{Symbol: "KO", Name: "Coca-Cola", Sector: "Consumer Defensive", Industry: "Beverages",
			DividendYield: 3.1, PayoutRatio: 72, DividendGrowth5Y: 3.5, FCFYield: 3.8},
		{Symbol: "PG", Name: "Procter & Gamble", Sector: "Consumer Defensive", Industry: "Household",
			DividendYield: 2.4, PayoutRatio: 60, DividendGrowth5Y: 5, FCFYield: 4},
	}
}

func TestScreener_LoadUniverse(t *testing.T) {
	s := NewScreener(&memRepo{companies: testCompanies()}, nil, nil, logger.Nop())

	frame, err := s.LoadUniverse(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, frame.Len())
	assert.Equal(t, contracts.UniverseColumns(), frame.Columns())
	assert.Equal(t, "JNJ", frame.String(0, contracts.ColSymbol))
}

func TestScreener_LoadUniverseEmptyFails(t *testing.T) {
	s := NewScreener(&memRepo{}, nil, nil, logger.Nop())

	_, err := s.LoadUniverse(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestScreener_LoadUniverseRepositoryErrorPropagates(t *testing.T) {
	sentinel := errors.New("disk on fire")
	s := NewScreener(&memRepo{err: sentinel}, nil, nil, logger.Nop())

	_, err := s.LoadUniverse(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel), "repository errors surface unwrapped")
}

func TestScreener_ApplyFilters(t *testing.T) {
	s := NewScreener(&memRepo{companies: testCompanies()}, nil, nil, logger.Nop())

	frame, err := s.LoadUniverse(context.Background())
	require.NoError(t, err)

	// Only JNJ clears: yield >= 2.5 and payout <= 50 and cagr >= 5
	filtered := s.ApplyFilters(frame, 2.5, 50, 5)

	require.Equal(t, 1, filtered.Len())
	assert.Equal(t, "JNJ", filtered.String(0, contracts.ColSymbol))
	assert.Equal(t, 3, frame.Len(), "input frame is untouched")
}

func TestScreener_AddScores(t *testing.T) {
	s := NewScreener(&memRepo{companies: testCompanies()}, nil, nil, logger.Nop())

	frame, err := s.LoadUniverse(context.Background())
	require.NoError(t, err)

	scored := s.AddScores(frame)

	require.True(t, scored.HasColumn(contracts.ColScore))
	require.Equal(t, frame.Len(), scored.Len())

	for i := 0; i < scored.Len(); i++ {
		score, ok := scored.Float(i, contracts.ColScore)
		require.True(t, ok)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}

	assert.False(t, frame.HasColumn(contracts.ColScore), "input frame is untouched")
}

func TestScreener_AddScoresEmptyFrame(t *testing.T) {
	s := NewScreener(&memRepo{companies: testCompanies()}, nil, nil, logger.Nop())

	empty := contracts.NewFrame(contracts.UniverseColumns()...)
	scored := s.AddScores(empty)

	assert.Equal(t, 0, scored.Len())
	assert.True(t, scored.HasColumn(contracts.ColScore), "score column is appended even when empty")
}

func TestScreener_AddScoresBadRowGetsZero(t *testing.T) {
	s := NewScreener(&memRepo{companies: testCompanies()}, nil, nil, logger.Nop())

	frame := contracts.NewFrame(contracts.UniverseColumns()...)
	frame.Append(contracts.Row{
		contracts.ColSymbol:        "OK",
		contracts.ColName:          "Fine Co",
		contracts.ColSector:        "Tech",
		contracts.ColIndustry:      "SW",
		contracts.ColDividendYield: 2.0,
		contracts.ColPayout:        40.0,
		contracts.ColDividendCAGR:  8.0,
		contracts.ColFCFYield:      6.0,
	})
	frame.Append(contracts.Row{
		contracts.ColSymbol:        "BAD",
		contracts.ColName:          "Broken Co",
		contracts.ColSector:        "Tech",
		contracts.ColIndustry:      "SW",
		contracts.ColDividendYield: "garbage", // reconstruction fails
		contracts.ColPayout:        40.0,
		contracts.ColDividendCAGR:  8.0,
		contracts.ColFCFYield:      6.0,
	})

	scored := s.AddScores(frame)
	require.Equal(t, 2, scored.Len(), "a bad row never aborts the batch")

	good, _ := scored.Float(0, contracts.ColScore)
	bad, _ := scored.Float(1, contracts.ColScore)
	assert.Greater(t, good, 0.0)
	assert.Equal(t, 0.0, bad)
}

func TestScreener_StagesAreIdempotent(t *testing.T) {
	s := NewScreener(&memRepo{companies: testCompanies()}, nil, nil, logger.Nop())

	frame, err := s.LoadUniverse(context.Background())
	require.NoError(t, err)

	once := s.ApplyFilters(frame, 2.5, 50, 5)
	twice := s.ApplyFilters(once, 2.5, 50, 5)
	assert.Equal(t, once.Len(), twice.Len())

	scoredOnce := s.AddScores(once)
	scoredTwice := s.AddScores(scoredOnce)
	a, _ := scoredOnce.Float(0, contracts.ColScore)
	b, _ := scoredTwice.Float(0, contracts.ColScore)
	assert.Equal(t, a, b)
}
