package contracts

// Column names used across the pipeline tables.
// 컬럼 이름은 여기서만 정의 (legacy CSV 헤더와 동일)
const (
	ColSymbol        = "symbol"
	ColName          = "name"
	ColSector        = "sector"
	ColIndustry      = "industry"
	ColDividendYield = "dividend_yield"
	ColPayout        = "payout"
	ColDividendCAGR  = "dividend_cagr"
	ColFCFYield      = "fcf_yield"
	ColScore         = "score"
	ColTicker        = "ticker"
	ColWeight        = "weight"
)

// UniverseColumns returns the fixed, ordered column set of a loaded universe
func UniverseColumns() []string {
	return []string{
		ColSymbol,
		ColName,
		ColSector,
		ColIndustry,
		ColDividendYield,
		ColPayout,
		ColDividendCAGR,
		ColFCFYield,
	}
}

// Company is a single validated fundamentals record for DGI analysis.
// Created by the row validator and immutable afterwards.
type Company struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Sector           string  `json:"sector"`
	Industry         string  `json:"industry"`
	DividendYield    float64 `json:"dividend_yield"`     // %
	PayoutRatio      float64 `json:"payout_ratio"`       // %
	DividendGrowth5Y float64 `json:"dividend_growth_5y"` // 5-year dividend CAGR, %
	FCFYield         float64 `json:"fcf_yield"`          // %
}

// Payout is the legacy name for PayoutRatio. Read-time projection only;
// the value is stored once.
func (c Company) Payout() float64 {
	return c.PayoutRatio
}

// DividendCAGR is the legacy name for DividendGrowth5Y.
func (c Company) DividendCAGR() float64 {
	return c.DividendGrowth5Y
}

// Row projects the record into its tabular form under the canonical
// universe column names.
func (c Company) Row() Row {
	return Row{
		ColSymbol:        c.Symbol,
		ColName:          c.Name,
		ColSector:        c.Sector,
		ColIndustry:      c.Industry,
		ColDividendYield: c.DividendYield,
		ColPayout:        c.PayoutRatio,
		ColDividendCAGR:  c.DividendGrowth5Y,
		ColFCFYield:      c.FCFYield,
	}
}
