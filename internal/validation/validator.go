package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wonny/dgi/internal/contracts"
	"github.com/wonny/dgi/pkg/logger"
)

// DataValidationError is raised when an entire batch fails validation.
// It carries every per-row message so the caller can see the full damage.
type DataValidationError struct {
	RowErrors []string
}

func (e *DataValidationError) Error() string {
	return "validation errors:\n" + strings.Join(e.RowErrors, "\n")
}

// Bounds holds the numeric validation ranges for a fundamentals record.
// PayoutMax is configurable because historical datasets disagree on
// whether the payout ratio tops out at 100 or 200.
type Bounds struct {
	YieldMin, YieldMax   float64
	PayoutMin, PayoutMax float64
	GrowthMin, GrowthMax float64
	FCFMin, FCFMax       float64
}

// DefaultBounds returns the modern record bounds (payout 0~200)
func DefaultBounds() Bounds {
	return Bounds{
		YieldMin: 0, YieldMax: 100,
		PayoutMin: 0, PayoutMax: 200,
		GrowthMin: -100, GrowthMax: 100,
		FCFMin: -100, FCFMax: 100,
	}
}

// WithPayoutMax returns a copy with a different payout ceiling
func (b Bounds) WithPayoutMax(max float64) Bounds {
	b.PayoutMax = max
	return b
}

// Validator converts raw string-typed rows into validated Company records
// ⭐ SSOT: 레코드 검증은 이 패키지에서만
type Validator struct {
	bounds Bounds
	logger *logger.Logger
}

// New creates a row validator with the given bounds
func New(bounds Bounds, log *logger.Logger) *Validator {
	return &Validator{bounds: bounds, logger: log}
}

// input keys accepted for each numeric field: canonical CSV header first,
// then the modern record name
var numericAliases = map[string][]string{
	contracts.ColDividendYield: {contracts.ColDividendYield},
	contracts.ColPayout:        {contracts.ColPayout, "payout_ratio"},
	contracts.ColDividendCAGR:  {contracts.ColDividendCAGR, "dividend_growth_5y"},
	contracts.ColFCFYield:      {contracts.ColFCFYield},
}

// Validate converts one raw row into a Company record. It fails when a
// required field is missing or empty, a numeric value fails to parse, or
// a value falls outside the configured bounds.
func (v *Validator) Validate(row map[string]string) (contracts.Company, error) {
	var c contracts.Company
	var err error

	if c.Symbol, err = requireString(row, contracts.ColSymbol); err != nil {
		return contracts.Company{}, err
	}
	if c.Name, err = requireString(row, contracts.ColName); err != nil {
		return contracts.Company{}, err
	}
	if c.Sector, err = requireString(row, contracts.ColSector); err != nil {
		return contracts.Company{}, err
	}
	if c.Industry, err = requireString(row, contracts.ColIndustry); err != nil {
		return contracts.Company{}, err
	}

	if c.DividendYield, err = v.requireFloat(row, contracts.ColDividendYield, v.bounds.YieldMin, v.bounds.YieldMax); err != nil {
		return contracts.Company{}, err
	}
	if c.PayoutRatio, err = v.requireFloat(row, contracts.ColPayout, v.bounds.PayoutMin, v.bounds.PayoutMax); err != nil {
		return contracts.Company{}, err
	}
	if c.DividendGrowth5Y, err = v.requireFloat(row, contracts.ColDividendCAGR, v.bounds.GrowthMin, v.bounds.GrowthMax); err != nil {
		return contracts.Company{}, err
	}
	if c.FCFYield, err = v.requireFloat(row, contracts.ColFCFYield, v.bounds.FCFMin, v.bounds.FCFMax); err != nil {
		return contracts.Company{}, err
	}

	return c, nil
}

// ValidateRows validates a batch. Each row is processed independently;
// a bad row is skipped and recorded, never aborting the batch. Only when
// zero rows survive does the whole batch fail with DataValidationError.
// Row numbers in messages are 1-based and account for the header line.
func (v *Validator) ValidateRows(rows []map[string]string) ([]contracts.Company, error) {
	valid := make([]contracts.Company, 0, len(rows))
	errors := make([]string, 0)
	seen := make(map[string]bool, len(rows))

	for i, row := range rows {
		c, err := v.Validate(row)
		if err != nil {
			errors = append(errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		if seen[c.Symbol] {
			errors = append(errors, fmt.Sprintf("row %d: duplicate symbol %q", i+2, c.Symbol))
			continue
		}
		seen[c.Symbol] = true
		valid = append(valid, c)
	}

	if len(valid) == 0 && len(rows) > 0 {
		v.logger.WithField("errors", len(errors)).Error("All rows failed validation")
		return nil, &DataValidationError{RowErrors: errors}
	}

	if len(errors) > 0 {
		// One aggregated warning so skipped rows never vanish silently
		v.logger.WithFields(map[string]interface{}{
			"skipped": len(errors),
			"valid":   len(valid),
		}).Warnf("Some rows were invalid and skipped:\n%s", strings.Join(errors, "\n"))
	}

	return valid, nil
}

func requireString(row map[string]string, key string) (string, error) {
	val, ok := row[key]
	if !ok {
		return "", fmt.Errorf("missing required field %q", key)
	}
	val = strings.TrimSpace(val)
	if val == "" {
		return "", fmt.Errorf("field %q must not be empty", key)
	}
	return val, nil
}

func (v *Validator) requireFloat(row map[string]string, key string, min, max float64) (float64, error) {
	raw, ok := lookupAlias(row, key)
	if !ok {
		return 0, fmt.Errorf("missing required field %q", key)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("field %q must not be empty", key)
	}

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q: value %q is not a valid number", key, raw)
	}

	// ParseFloat accepts "NaN" and "Inf", and NaN slips past range
	// comparisons, so non-finite values need an explicit rejection.
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, fmt.Errorf("field %q: value %q is not a valid number", key, raw)
	}

	if val < min || val > max {
		return 0, fmt.Errorf("field %q: value %v out of range [%v, %v]", key, val, min, max)
	}

	return val, nil
}

func lookupAlias(row map[string]string, key string) (string, bool) {
	aliases, ok := numericAliases[key]
	if !ok {
		aliases = []string{key}
	}
	for _, alias := range aliases {
		if val, ok := row[alias]; ok {
			return val, true
		}
	}
	return "", false
}
