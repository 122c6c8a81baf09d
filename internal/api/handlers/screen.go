package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/wonny/dgi/internal/contracts"
	"github.com/wonny/dgi/internal/portfolio"
	"github.com/wonny/dgi/internal/screening"
	"github.com/wonny/dgi/pkg/config"
	"github.com/wonny/dgi/pkg/logger"
)

// ScreenHandler handles screening and portfolio API endpoints
// ⭐ SSOT: 스크리닝 API 핸들러는 이 구조체에서만
type ScreenHandler struct {
	screener *screening.Screener
	builder  *portfolio.Builder
	defaults config.ScreenConfig
	logger   *logger.Logger
}

// NewScreenHandler creates a new screening handler
func NewScreenHandler(s *screening.Screener, b *portfolio.Builder, defaults config.ScreenConfig, log *logger.Logger) *ScreenHandler {
	return &ScreenHandler{
		screener: s,
		builder:  b,
		defaults: defaults,
		logger:   log,
	}
}

// ScreenResult is one matched stock
type ScreenResult struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Sector           string  `json:"sector"`
	Industry         string  `json:"industry"`
	DividendYield    float64 `json:"dividend_yield"`
	PayoutRatio      float64 `json:"payout_ratio"`
	DividendGrowth5Y float64 `json:"dividend_growth_5y"`
	FCFYield         float64 `json:"fcf_yield"`
	Score            float64 `json:"score"`
}

// ScreenResponse wraps matched stocks with pipeline counts
type ScreenResponse struct {
	Universe int            `json:"universe"`
	Matched  int            `json:"matched"`
	Results  []ScreenResult `json:"results"`
}

// screenParams are the query parameters shared by both endpoints
type screenParams struct {
	minYield  float64
	maxPayout float64
	minCAGR   float64
	sectors   []string
	topN      int
	weighting contracts.Weighting
}

func (h *ScreenHandler) parseParams(r *http.Request) (screenParams, error) {
	p := screenParams{
		minYield:  h.defaults.MinYield,
		maxPayout: h.defaults.MaxPayout,
		minCAGR:   h.defaults.MinCAGR,
		topN:      h.defaults.TopN,
		weighting: contracts.Weighting(h.defaults.Weighting),
	}

	q := r.URL.Query()
	var err error
	if v := q.Get("min_yield"); v != "" {
		if p.minYield, err = strconv.ParseFloat(v, 64); err != nil {
			return p, err
		}
	}
	if v := q.Get("max_payout"); v != "" {
		if p.maxPayout, err = strconv.ParseFloat(v, 64); err != nil {
			return p, err
		}
	}
	if v := q.Get("min_cagr"); v != "" {
		if p.minCAGR, err = strconv.ParseFloat(v, 64); err != nil {
			return p, err
		}
	}
	if v := q.Get("top_n"); v != "" {
		if p.topN, err = strconv.Atoi(v); err != nil {
			return p, err
		}
	}
	if v := q.Get("sectors"); v != "" {
		p.sectors = strings.Split(v, ",")
	}
	if v := q.Get("weighting"); v != "" {
		if p.weighting, err = contracts.ParseWeighting(v); err != nil {
			return p, err
		}
	}
	return p, nil
}

// runPipeline loads, filters and scores the universe for the request
func (h *ScreenHandler) runPipeline(r *http.Request, p screenParams) (universe, scored *contracts.Frame, err error) {
	universe, err = h.screener.LoadUniverse(r.Context())
	if err != nil {
		return nil, nil, err
	}

	filtered := h.screener.ApplyFilters(universe, p.minYield, p.maxPayout, p.minCAGR)
	if len(p.sectors) > 0 {
		filtered = screening.NewSectorFilter(p.sectors).Filter(filtered, p.minYield, p.maxPayout, p.minCAGR)
	}
	return universe, h.screener.AddScores(filtered), nil
}

// Screen returns filtered and scored stocks
// GET /api/screen?min_yield=&max_payout=&min_cagr=&sectors=&top_n=
func (h *ScreenHandler) Screen(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid query parameter: "+err.Error())
		return
	}

	universe, scored, err := h.runPipeline(r, p)
	if err != nil {
		h.logger.WithError(err).Error("Failed to screen universe")
		respondError(w, http.StatusInternalServerError, "Failed to screen universe")
		return
	}

	top := scored.SortByFloatDesc(contracts.ColScore)
	if p.topN > 0 && p.topN < top.Len() {
		top = top.Head(p.topN)
	}

	resp := ScreenResponse{
		Universe: universe.Len(),
		Matched:  scored.Len(),
		Results:  make([]ScreenResult, 0, top.Len()),
	}
	for i := 0; i < top.Len(); i++ {
		resp.Results = append(resp.Results, resultFromRow(top, i))
	}

	respondJSON(w, http.StatusOK, resp)
}

// Portfolio builds a weighted allocation from the screened stocks
// GET /api/portfolio?top_n=&weighting=&min_yield=&max_payout=&min_cagr=
func (h *ScreenHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid query parameter: "+err.Error())
		return
	}

	_, scored, err := h.runPipeline(r, p)
	if err != nil {
		h.logger.WithError(err).Error("Failed to screen universe")
		respondError(w, http.StatusInternalServerError, "Failed to screen universe")
		return
	}

	built, err := h.builder.Build(scored, p.topN, p.weighting)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, portfolio.Entries(built, p.weighting))
}

func resultFromRow(f *contracts.Frame, i int) ScreenResult {
	yield, _ := f.Float(i, contracts.ColDividendYield)
	payout, _ := f.Float(i, contracts.ColPayout)
	cagr, _ := f.Float(i, contracts.ColDividendCAGR)
	fcf, _ := f.Float(i, contracts.ColFCFYield)
	score, _ := f.Float(i, contracts.ColScore)

	return ScreenResult{
		Symbol:           f.String(i, contracts.ColSymbol),
		Name:             f.String(i, contracts.ColName),
		Sector:           f.String(i, contracts.ColSector),
		Industry:         f.String(i, contracts.ColIndustry),
		DividendYield:    yield,
		PayoutRatio:      payout,
		DividendGrowth5Y: cagr,
		FCFYield:         fcf,
		Score:            score,
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
