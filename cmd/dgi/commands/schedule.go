package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/dgi/internal/external/stockanalysis"
	"github.com/wonny/dgi/internal/repository"
	"github.com/wonny/dgi/internal/scheduler"
	"github.com/wonny/dgi/internal/scheduler/jobs"
	"github.com/wonny/dgi/internal/screening"
	"github.com/wonny/dgi/internal/validation"
	"github.com/wonny/dgi/pkg/config"
	"github.com/wonny/dgi/pkg/httputil"
	"github.com/wonny/dgi/pkg/logger"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "스케줄러 시작 (정기 스크리닝)",
	Long: `cron 스케줄러를 시작하고 스크리닝 갱신 작업을 등록합니다.

이 명령어는:
- DGI_SCHEDULE_CRON 주기로 파이프라인 재실행
- 통과 종목 수와 상위 심볼을 로그로 남김

Example:
  go run ./cmd/dgi schedule
  DGI_SCHEDULE_CRON="0 0 7 * * MON-FRI" go run ./cmd/dgi schedule`,
	RunE: runSchedule,
}

var (
	scheduleRunNow    bool
	scheduleSourceURL string
)

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().BoolVar(&scheduleRunNow, "run-now", false, "run the refresh job immediately on start")
	scheduleCmd.Flags().StringVar(&scheduleSourceURL, "source-url", "", "fetch fundamentals from an HTML screener page instead of the CSV")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	fmt.Println("=== DGI Scheduler ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	bounds := validation.DefaultBounds().WithPayoutMax(cfg.PayoutBound)
	var screener *screening.Screener
	if scheduleSourceURL != "" {
		client := stockanalysis.NewClient(httputil.New(log).WithRateLimit(2, 1), log, scheduleSourceURL)
		validator := validation.New(bounds, log)
		screener = screening.NewScreener(repository.NewWeb(client, validator), nil, nil, log)
	} else {
		screener = screening.NewDefault(cfg.DataPath, bounds, log)
	}

	sched := scheduler.New(log)
	job := jobs.NewScreenRefreshJob(screener, cfg.Screen, cfg.ScheduleCron, log)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("register job: %w", err)
	}

	sched.Start()
	fmt.Printf("\n✅ Scheduler running (%s: %q)\n", job.Name(), job.Schedule())
	fmt.Println("Press Ctrl+C to stop")

	if scheduleRunNow {
		if err := sched.RunJob(job.Name()); err != nil {
			return err
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
