package screening

import (
	"context"
	"fmt"

	"github.com/wonny/dgi/internal/contracts"
	"github.com/wonny/dgi/internal/repository"
	"github.com/wonny/dgi/internal/validation"
	"github.com/wonny/dgi/pkg/logger"
)

// Screener orchestrates the pipeline: repository → validated universe →
// filter → scores. Each stage is idempotent and independently callable;
// every stage returns a fresh frame.
// ⭐ SSOT: 스크리닝 파이프라인은 여기서만
type Screener struct {
	repo   repository.CompanyRepository
	filter FilterStrategy
	scorer ScoringStrategy
	logger *logger.Logger
}

// NewScreener creates a screener. A nil filter or scorer falls back to
// the defaults.
func NewScreener(repo repository.CompanyRepository, filter FilterStrategy, scorer ScoringStrategy, log *logger.Logger) *Screener {
	if filter == nil {
		filter = DefaultFilter{}
	}
	if scorer == nil {
		scorer = DefaultScoring{}
	}
	return &Screener{
		repo:   repo,
		filter: filter,
		scorer: scorer,
		logger: log,
	}
}

// NewDefault wires the standard pipeline over a CSV source: row
// validator with the given bounds, default filter, default scoring.
// Callers wanting the plain setup invoke this instead of sharing any
// process-wide instance.
func NewDefault(csvPath string, bounds validation.Bounds, log *logger.Logger) *Screener {
	validator := validation.New(bounds, log)
	repo := repository.NewCSV(csvPath, validator)
	return NewScreener(repo, DefaultFilter{}, DefaultScoring{}, log)
}

// LoadUniverse pulls records from the repository and projects them into
// the fixed universe column set. Fails when no valid rows exist.
func (s *Screener) LoadUniverse(ctx context.Context) (*contracts.Frame, error) {
	rows, err := s.repo.GetRows(ctx)
	if err != nil {
		return nil, err
	}

	frame := contracts.NewFrame(contracts.UniverseColumns()...)
	for _, c := range rows {
		frame.Append(c.Row())
	}

	if frame.Empty() {
		return nil, fmt.Errorf("universe is empty: repository returned no valid rows")
	}

	s.logger.WithField("rows", frame.Len()).Info("Universe loaded")
	return frame, nil
}

// ApplyFilters runs the configured filter strategy over the table
func (s *Screener) ApplyFilters(f *contracts.Frame, minYield, maxPayout, minCAGR float64) *contracts.Frame {
	filtered := s.filter.Filter(f, minYield, maxPayout, minCAGR)

	s.logger.WithFields(map[string]interface{}{
		"min_yield":  minYield,
		"max_payout": maxPayout,
		"min_cagr":   minCAGR,
		"rows_in":    f.Len(),
		"rows_out":   filtered.Len(),
	}).Info("Filtering completed")

	return filtered
}

// AddScores attaches a score column. A row that cannot be rebuilt into a
// record scores 0.0 with an error log; scoring never aborts the batch.
// An empty input yields an empty frame that still carries the score
// column.
func (s *Screener) AddScores(f *contracts.Frame) *contracts.Frame {
	scores := make([]float64, f.Len())

	for i := 0; i < f.Len(); i++ {
		c, err := companyFromRow(f.Row(i))
		if err != nil {
			s.logger.WithError(err).WithField("row", i).Error("Failed to score row")
			scores[i] = 0.0
			continue
		}
		scores[i] = s.scorer.Score(c)
	}

	return f.WithFloatColumn(contracts.ColScore, scores)
}

// companyFromRow rebuilds a validated record from its tabular form
func companyFromRow(row contracts.Row) (contracts.Company, error) {
	var c contracts.Company

	c.Symbol = row.String(contracts.ColSymbol)
	if c.Symbol == "" {
		return c, fmt.Errorf("row has no symbol")
	}
	c.Name = row.String(contracts.ColName)
	c.Sector = row.String(contracts.ColSector)
	c.Industry = row.String(contracts.ColIndustry)

	var ok bool
	if c.DividendYield, ok = row.Float(contracts.ColDividendYield); !ok {
		return c, fmt.Errorf("row %s: dividend_yield is not numeric", c.Symbol)
	}
	if c.PayoutRatio, ok = row.Float(contracts.ColPayout); !ok {
		return c, fmt.Errorf("row %s: payout is not numeric", c.Symbol)
	}
	if c.DividendGrowth5Y, ok = row.Float(contracts.ColDividendCAGR); !ok {
		return c, fmt.Errorf("row %s: dividend_cagr is not numeric", c.Symbol)
	}
	if c.FCFYield, ok = row.Float(contracts.ColFCFYield); !ok {
		return c, fmt.Errorf("row %s: fcf_yield is not numeric", c.Symbol)
	}

	return c, nil
}
