package agent

import (
	"context"
	"fmt"

	"github.com/wonny/dgi/internal/contracts"
	"github.com/wonny/dgi/internal/llm"
	"github.com/wonny/dgi/internal/screening"
	"github.com/wonny/dgi/pkg/logger"
)

// ToolName is the function name exposed to chat models
const ToolName = "screen_dividends"

// Params are the screening criteria a model may pass
type Params struct {
	MinYield  float64 `json:"min_yield"`
	MaxPayout float64 `json:"max_payout"`
	MinCAGR   float64 `json:"min_cagr"`
	TopN      int     `json:"top_n"`
}

// DefaultParams mirrors the tool's documented argument defaults
func DefaultParams() Params {
	return Params{MinYield: 0.0, MaxPayout: 100.0, MinCAGR: 0.0, TopN: 10}
}

// ScreenerTool exposes the screening pipeline to function-calling models.
// Call never returns a Go error: every failure becomes a one-element
// result slice carrying an "error" key, so the conversation keeps going.
type ScreenerTool struct {
	screener *screening.Screener
	logger   *logger.Logger
}

// NewScreenerTool wraps a configured screener
func NewScreenerTool(s *screening.Screener, log *logger.Logger) *ScreenerTool {
	return &ScreenerTool{screener: s, logger: log}
}

// Definition returns the function-calling schema for this tool
func (t *ScreenerTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name: ToolName,
		Description: "Screen dividend growth stocks by yield, payout ratio and " +
			"5-year dividend CAGR, returning the top performers ranked by composite score.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"min_yield": map[string]interface{}{
					"type":        "number",
					"description": "Minimum dividend yield in percent (e.g. 2.0 for 2%)",
				},
				"max_payout": map[string]interface{}{
					"type":        "number",
					"description": "Maximum payout ratio in percent (e.g. 60.0 for 60%)",
				},
				"min_cagr": map[string]interface{}{
					"type":        "number",
					"description": "Minimum 5-year dividend CAGR in percent",
				},
				"top_n": map[string]interface{}{
					"type":        "integer",
					"description": "Number of top stocks to return (default 10)",
				},
			},
		},
	}
}

// Call runs the full pipeline and serializes the top rows
func (t *ScreenerTool) Call(ctx context.Context, p Params) []map[string]interface{} {
	if p.TopN < 1 {
		p.TopN = DefaultParams().TopN
	}

	universe, err := t.screener.LoadUniverse(ctx)
	if err != nil {
		return toolError(err)
	}

	filtered := t.screener.ApplyFilters(universe, p.MinYield, p.MaxPayout, p.MinCAGR)
	scored := t.screener.AddScores(filtered)
	if scored.Empty() {
		return []map[string]interface{}{}
	}

	top := scored.SortByFloatDesc(contracts.ColScore).Head(p.TopN)

	results := make([]map[string]interface{}, 0, top.Len())
	for i := 0; i < top.Len(); i++ {
		yield, _ := top.Float(i, contracts.ColDividendYield)
		payout, _ := top.Float(i, contracts.ColPayout)
		cagr, _ := top.Float(i, contracts.ColDividendCAGR)
		fcf, _ := top.Float(i, contracts.ColFCFYield)
		score, _ := top.Float(i, contracts.ColScore)

		results = append(results, map[string]interface{}{
			"symbol":             top.String(i, contracts.ColSymbol),
			"name":               top.String(i, contracts.ColName),
			"sector":             top.String(i, contracts.ColSector),
			"industry":           top.String(i, contracts.ColIndustry),
			"dividend_yield":     yield,
			"payout_ratio":       payout,
			"dividend_growth_5y": cagr,
			"fcf_yield":          fcf,
			"score":              score,
		})
	}

	t.logger.WithFields(map[string]interface{}{
		"universe": universe.Len(),
		"matched":  filtered.Len(),
		"returned": len(results),
	}).Info("Screener tool call")

	return results
}

func toolError(err error) []map[string]interface{} {
	return []map[string]interface{}{
		{"error": fmt.Sprintf("Screening failed: %s", err)},
	}
}
