package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/dgi/internal/contracts"
	"github.com/wonny/dgi/internal/screening"
	"github.com/wonny/dgi/internal/strategyconfig"
	"github.com/wonny/dgi/internal/validation"
	"github.com/wonny/dgi/pkg/config"
	"github.com/wonny/dgi/pkg/logger"
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "배당 성장주 스크리닝",
	Long: `펀더멘털 CSV를 검증하고 기준에 맞는 종목을 필터링합니다.

이 명령어는:
- CSV 레코드 검증 (범위/타입/중복)
- 임계값 필터 적용 (yield/payout/CAGR)
- 종합 점수 계산 및 정렬

Example:
  go run ./cmd/dgi screen --min-yield 2.0 --max-payout 60 --min-cagr 5
  go run ./cmd/dgi screen --profile config/profiles/core.yaml
  go run ./cmd/dgi screen --sectors "Healthcare,Consumer Defensive"`,
	RunE: runScreen,
}

var (
	screenCSVPath   string
	screenMinYield  float64
	screenMaxPayout float64
	screenMinCAGR   float64
	screenProfile   string
	screenSectors   string
)

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVar(&screenCSVPath, "csv-path", "", "fundamentals CSV path (default from DGI_DATA_PATH)")
	screenCmd.Flags().Float64Var(&screenMinYield, "min-yield", 0, "minimum dividend yield (%)")
	screenCmd.Flags().Float64Var(&screenMaxPayout, "max-payout", 0, "maximum payout ratio (%)")
	screenCmd.Flags().Float64Var(&screenMinCAGR, "min-cagr", 0, "minimum 5y dividend CAGR (%)")
	screenCmd.Flags().StringVar(&screenProfile, "profile", "", "YAML screening profile")
	screenCmd.Flags().StringVar(&screenSectors, "sectors", "", "comma-separated sector allow-list")
}

// screenSettings are the fully resolved pipeline inputs.
// Precedence: env defaults < profile < explicit flags.
type screenSettings struct {
	csvPath     string
	minYield    float64
	maxPayout   float64
	minCAGR     float64
	sectors     []string
	topN        int
	weighting   contracts.Weighting
	payoutBound float64
}

func resolveScreenSettings(cmd *cobra.Command, cfg *config.Config) (*screenSettings, error) {
	s := &screenSettings{
		csvPath:     cfg.DataPath,
		minYield:    cfg.Screen.MinYield,
		maxPayout:   cfg.Screen.MaxPayout,
		minCAGR:     cfg.Screen.MinCAGR,
		topN:        cfg.Screen.TopN,
		weighting:   contracts.Weighting(cfg.Screen.Weighting),
		payoutBound: cfg.PayoutBound,
	}

	if screenProfile != "" {
		profile, _, err := strategyconfig.Load(screenProfile)
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		s.minYield = profile.Screening.MinYield
		s.maxPayout = profile.Screening.MaxPayout
		s.minCAGR = profile.Screening.MinCAGR
		s.sectors = profile.Sectors.Allow
		s.topN = profile.Portfolio.TopN
		s.weighting = contracts.Weighting(profile.Portfolio.Weighting)
		if profile.Screening.PayoutBound != 0 {
			s.payoutBound = profile.Screening.PayoutBound
		}
	}

	flags := cmd.Flags()
	if screenCSVPath != "" {
		s.csvPath = screenCSVPath
	}
	if flags.Changed("min-yield") {
		s.minYield = screenMinYield
	}
	if flags.Changed("max-payout") {
		s.maxPayout = screenMaxPayout
	}
	if flags.Changed("min-cagr") {
		s.minCAGR = screenMinCAGR
	}
	if flags.Changed("sectors") {
		s.sectors = nil
		for _, sec := range strings.Split(screenSectors, ",") {
			if sec = strings.TrimSpace(sec); sec != "" {
				s.sectors = append(s.sectors, sec)
			}
		}
	}

	if s.minYield < 0 || s.maxPayout < 0 || s.minCAGR < 0 {
		return nil, fmt.Errorf("min_yield, max_payout, and min_cagr must all be non-negative")
	}

	return s, nil
}

// runScreenPipeline executes validate → filter → score for s
func runScreenPipeline(ctx context.Context, s *screenSettings, log *logger.Logger) (*contracts.Frame, error) {
	bounds := validation.DefaultBounds().WithPayoutMax(s.payoutBound)
	screener := screening.NewDefault(s.csvPath, bounds, log)

	universe, err := screener.LoadUniverse(ctx)
	if err != nil {
		return nil, err
	}

	filtered := screener.ApplyFilters(universe, s.minYield, s.maxPayout, s.minCAGR)
	if len(s.sectors) > 0 {
		filtered = screening.NewSectorFilter(s.sectors).Filter(filtered, s.minYield, s.maxPayout, s.minCAGR)
	}

	return screener.AddScores(filtered), nil
}

func runScreen(cmd *cobra.Command, args []string) error {
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

	scored, err := runScreenPipeline(cmd.Context(), settings, log)
	if err != nil {
		return err
	}

	if scored.Empty() {
		PrintInfo("No stocks matched the filter criteria.")
		return nil
	}

	printScreenTable(scored.SortByFloatDesc(contracts.ColScore))
	return nil
}

func printScreenTable(f *contracts.Frame) {
	columns := []string{"SYMBOL", "NAME", "SECTOR", "YIELD%", "PAYOUT%", "CAGR5Y%", "FCF%", "SCORE"}
	widths := []int{8, 28, 20, 7, 8, 8, 7, 6}

	PrintTableHeader(columns, widths)
	for i := 0; i < f.Len(); i++ {
		yield, _ := f.Float(i, contracts.ColDividendYield)
		payout, _ := f.Float(i, contracts.ColPayout)
		cagr, _ := f.Float(i, contracts.ColDividendCAGR)
		fcf, _ := f.Float(i, contracts.ColFCFYield)
		score, _ := f.Float(i, contracts.ColScore)

		PrintTableRow([]string{
			f.String(i, contracts.ColSymbol),
			truncate(f.String(i, contracts.ColName), 28),
			truncate(f.String(i, contracts.ColSector), 20),
			fmt.Sprintf("%.2f", yield),
			fmt.Sprintf("%.2f", payout),
			fmt.Sprintf("%.2f", cagr),
			fmt.Sprintf("%.2f", fcf),
			fmt.Sprintf("%.4f", score),
		}, widths)
	}
	PrintSeparator()
	fmt.Printf("%d stocks matched\n", f.Len())
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
