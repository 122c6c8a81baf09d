package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/dgi/internal/contracts"
	"github.com/wonny/dgi/internal/validation"
)

// PostgresRepository reads fundamentals from the dgi.fundamentals table.
// Stored values are re-validated through the same row validator as the
// CSV path so both sources obey identical record invariants.
// ⭐ SSOT: 펀더멘털 DB 조회는 여기서만
type PostgresRepository struct {
	pool      *pgxpool.Pool
	validator *validation.Validator
}

// NewPostgres creates a database-backed repository
func NewPostgres(pool *pgxpool.Pool, validator *validation.Validator) *PostgresRepository {
	return &PostgresRepository{pool: pool, validator: validator}
}

// GetRows loads the full universe from the database
func (r *PostgresRepository) GetRows(ctx context.Context) ([]contracts.Company, error) {
	query := `
		SELECT symbol, name, sector, industry,
		       COALESCE(dividend_yield, 0),
		       COALESCE(payout_ratio, 0),
		       COALESCE(dividend_growth_5y, 0),
		       COALESCE(fcf_yield, 0)
		FROM dgi.fundamentals
		ORDER BY symbol
	`

	dbRows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query fundamentals: %w", err)
	}
	defer dbRows.Close()

	raw := make([]map[string]string, 0)
	for dbRows.Next() {
		var symbol, name, sector, industry string
		var yield, payout, growth, fcf float64
		if err := dbRows.Scan(&symbol, &name, &sector, &industry, &yield, &payout, &growth, &fcf); err != nil {
			return nil, fmt.Errorf("scan fundamentals row: %w", err)
		}

		raw = append(raw, map[string]string{
			contracts.ColSymbol:   symbol,
			contracts.ColName:     name,
			contracts.ColSector:   sector,
			contracts.ColIndustry: industry,
			contracts.ColDividendYield: formatFloat(yield),
			"payout_ratio":             formatFloat(payout),
			"dividend_growth_5y":       formatFloat(growth),
			contracts.ColFCFYield:      formatFloat(fcf),
		})
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fundamentals rows: %w", err)
	}

	return r.validator.ValidateRows(raw)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
