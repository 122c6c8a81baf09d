package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dgi",
	Short: "DGI - dividend growth investing screener",
	Long: `DGI Unified CLI

배당 성장주 스크리닝 파이프라인.
검증 → 필터 → 스코어링 → 포트폴리오 구성.

Usage:
  go run ./cmd/dgi [command]

Examples:
  go run ./cmd/dgi screen --min-yield 2.0 --max-payout 60
  go run ./cmd/dgi build-portfolio --top-n 10 --weighting score
  go run ./cmd/dgi api
  go run ./cmd/dgi chat`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		return err
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
