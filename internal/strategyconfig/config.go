package strategyconfig

import "time"

// Config는 스크리닝 프로파일의 전체 설정
type Config struct {
	Meta      Meta      `yaml:"meta" json:"meta"`
	Screening Screening `yaml:"screening" json:"screening"`
	Sectors   Sectors   `yaml:"sectors" json:"sectors"`
	Portfolio Portfolio `yaml:"portfolio" json:"portfolio"`
}

// Meta 메타 정보
type Meta struct {
	ProfileID   string `yaml:"profile_id" json:"profile_id"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description" json:"description"`
}

// Screening hard-cut thresholds applied to the universe
type Screening struct {
	MinYield    float64 `yaml:"min_yield" json:"min_yield"`       // %
	MaxPayout   float64 `yaml:"max_payout" json:"max_payout"`     // %
	MinCAGR     float64 `yaml:"min_cagr" json:"min_cagr"`         // %
	PayoutBound float64 `yaml:"payout_bound" json:"payout_bound"` // 100 | 200
}

// Sectors optional allow-list; empty means every sector passes
type Sectors struct {
	Allow []string `yaml:"allow" json:"allow"`
}

// Portfolio 포트폴리오 구성
type Portfolio struct {
	TopN      int    `yaml:"top_n" json:"top_n"`
	Weighting string `yaml:"weighting" json:"weighting"` // equal | score
}

// DecisionSnapshot 의사결정 스냅샷 (재현성용)
type DecisionSnapshot struct {
	ConfigHash string    `json:"config_hash"`
	ConfigYAML string    `json:"config_yaml"`
	ProfileID  string    `json:"profile_id"`
	CreatedAt  time.Time `json:"created_at"`
}
