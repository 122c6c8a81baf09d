package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/dgi/internal/contracts"
	"github.com/wonny/dgi/internal/screening"
	"github.com/wonny/dgi/pkg/config"
	"github.com/wonny/dgi/pkg/logger"
)

// ScreenRefreshJob re-runs the screening pipeline on a schedule so the
// latest pass/fail counts and leaders land in the logs before the
// market opens
// ⭐ SSOT: 스크리닝 갱신 스케줄은 이 Job에서만
type ScreenRefreshJob struct {
	screener *screening.Screener
	cfg      config.ScreenConfig
	schedule string
	logger   *logger.Logger
}

// NewScreenRefreshJob creates a new screen refresh job
func NewScreenRefreshJob(s *screening.Screener, cfg config.ScreenConfig, schedule string, log *logger.Logger) *ScreenRefreshJob {
	return &ScreenRefreshJob{
		screener: s,
		cfg:      cfg,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *ScreenRefreshJob) Name() string {
	return "screen_refresh"
}

// Schedule returns the cron schedule expression
func (j *ScreenRefreshJob) Schedule() string {
	return j.schedule
}

// Run executes one screening pass
func (j *ScreenRefreshJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled screen refresh")

	universe, err := j.screener.LoadUniverse(ctx)
	if err != nil {
		return fmt.Errorf("load universe: %w", err)
	}

	filtered := j.screener.ApplyFilters(universe, j.cfg.MinYield, j.cfg.MaxPayout, j.cfg.MinCAGR)
	scored := j.screener.AddScores(filtered)

	topN := j.cfg.TopN
	if topN > scored.Len() {
		topN = scored.Len()
	}
	top := scored.SortByFloatDesc(contracts.ColScore).Head(topN)

	leaders := make([]string, 0, top.Len())
	for i := 0; i < top.Len(); i++ {
		leaders = append(leaders, top.String(i, contracts.ColSymbol))
	}

	j.logger.WithFields(map[string]interface{}{
		"universe": universe.Len(),
		"matched":  scored.Len(),
		"leaders":  leaders,
	}).Info("Screen refresh completed")

	return nil
}
