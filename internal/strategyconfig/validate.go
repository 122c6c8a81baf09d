package strategyconfig

import "fmt"

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.ProfileID == "" {
		return ValidationError{"meta.profile_id", "required"}
	}

	// === Screening ===
	if cfg.Screening.MinYield < 0 {
		return ValidationError{"screening.min_yield", "must be >= 0"}
	}
	if cfg.Screening.MaxPayout < 0 {
		return ValidationError{"screening.max_payout", "must be >= 0"}
	}
	if cfg.Screening.MinCAGR < 0 {
		return ValidationError{"screening.min_cagr", "must be >= 0"}
	}
	if cfg.Screening.PayoutBound != 0 && cfg.Screening.PayoutBound != 100 && cfg.Screening.PayoutBound != 200 {
		return ValidationError{"screening.payout_bound", fmt.Sprintf("must be 100 or 200, got %g", cfg.Screening.PayoutBound)}
	}

	// === Sectors ===
	for i, s := range cfg.Sectors.Allow {
		if s == "" {
			return ValidationError{fmt.Sprintf("sectors.allow[%d]", i), "must not be empty"}
		}
	}

	// === Portfolio ===
	if cfg.Portfolio.TopN < 1 {
		return ValidationError{"portfolio.top_n", "must be >= 1"}
	}
	if cfg.Portfolio.Weighting != "equal" && cfg.Portfolio.Weighting != "score" {
		return ValidationError{"portfolio.weighting", fmt.Sprintf("must be 'equal' or 'score', got %q", cfg.Portfolio.Weighting)}
	}

	return nil
}
