package commands

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/wonny/dgi/internal/contracts"
	"github.com/wonny/dgi/internal/portfolio"
	"github.com/wonny/dgi/pkg/config"
	"github.com/wonny/dgi/pkg/logger"
)

// portfolioCmd represents the build-portfolio command
var portfolioCmd = &cobra.Command{
	Use:   "build-portfolio",
	Short: "스크리닝 결과로 포트폴리오 구성",
	Long: `스크리닝된 종목 중 상위 N개로 가중 포트폴리오를 구성합니다.

이 명령어는:
- screen 과 동일한 파이프라인 실행
- 점수 상위 N개 종목 선택
- equal 또는 score 가중치 배분

Example:
  go run ./cmd/dgi build-portfolio --top-n 10 --weighting equal
  go run ./cmd/dgi build-portfolio --profile config/profiles/core.yaml
  go run ./cmd/dgi build-portfolio --min-yield 2 --top-n 5 --weighting score`,
	RunE: runBuildPortfolio,
}

var (
	portfolioTopN      int
	portfolioWeighting string
)

func init() {
	rootCmd.AddCommand(portfolioCmd)

	// shares the screening flag set
	portfolioCmd.Flags().AddFlagSet(screenCmd.Flags())
	portfolioCmd.Flags().IntVar(&portfolioTopN, "top-n", 0, "number of positions (default from DGI_TOP_N)")
	portfolioCmd.Flags().StringVar(&portfolioWeighting, "weighting", "", "weighting mode: equal|score")
}

func runBuildPortfolio(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	settings, err := resolveScreenSettings(cmd, cfg)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("top-n") {
		settings.topN = portfolioTopN
	}
	if cmd.Flags().Changed("weighting") {
		if settings.weighting, err = contracts.ParseWeighting(portfolioWeighting); err != nil {
			return err
		}
	}

	scored, err := runScreenPipeline(cmd.Context(), settings, log)
	if err != nil {
		return err
	}

	if scored.Empty() {
		PrintInfo("No stocks matched the filter criteria.")
		return nil
	}

	builder := portfolio.NewBuilder(log)
	built, err := builder.Build(scored, settings.topN, settings.weighting)
	if err != nil {
		return err
	}

	printPortfolioTable(built, settings.weighting)
	printSummaryStats(builder.SummaryStats(scored))
	return nil
}

func printPortfolioTable(f *contracts.Frame, weighting contracts.Weighting) {
	columns := []string{"TICKER", "WEIGHT%", "SCORE"}
	widths := []int{8, 8, 6}

	PrintTableHeader(columns, widths)
	total := 0.0
	for i := 0; i < f.Len(); i++ {
		weight, _ := f.Float(i, contracts.ColWeight)
		score, _ := f.Float(i, contracts.ColScore)
		total += weight

		PrintTableRow([]string{
			f.String(i, contracts.ColTicker),
			fmt.Sprintf("%.2f", weight*100),
			fmt.Sprintf("%.4f", score),
		}, widths)
	}
	PrintSeparator()
	fmt.Printf("%d positions, %s weighting, total weight %.2f%%\n", f.Len(), weighting, total*100)
}

func printSummaryStats(stats portfolio.Stats) {
	fmt.Println()
	fmt.Println("Screened universe:")
	PrintKeyValue("mean yield", formatStat(stats.Yield), 12)
	PrintKeyValue("median CAGR", formatStat(stats.MedianCAGR), 12)
	PrintKeyValue("mean payout", formatStat(stats.MeanPayout), 12)
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v)
}
