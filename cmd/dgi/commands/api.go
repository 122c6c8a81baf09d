package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/dgi/internal/api"
	"github.com/wonny/dgi/internal/api/handlers"
	"github.com/wonny/dgi/internal/portfolio"
	"github.com/wonny/dgi/internal/repository"
	"github.com/wonny/dgi/internal/screening"
	"github.com/wonny/dgi/internal/validation"
	"github.com/wonny/dgi/pkg/config"
	"github.com/wonny/dgi/pkg/database"
	"github.com/wonny/dgi/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 스크리닝/포트폴리오 엔드포인트 제공

Endpoints:
  GET  /health         - Health check
  GET  /api/screen     - 스크리닝 결과 조회
  GET  /api/portfolio  - 포트폴리오 구성

Example:
  go run ./cmd/dgi api
  go run ./cmd/dgi api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default from PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== DGI API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Build the screening pipeline
	// DATABASE_URL switches the universe source from CSV to Postgres
	bounds := validation.DefaultBounds().WithPayoutMax(cfg.PayoutBound)
	var screener *screening.Screener
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		log.Info("Connected to database")

		validator := validation.New(bounds, log)
		screener = screening.NewScreener(repository.NewPostgres(db.Pool, validator), nil, nil, log)
	} else {
		screener = screening.NewDefault(cfg.DataPath, bounds, log)
	}
	builder := portfolio.NewBuilder(log)

	// 4. Create handler and router
	screenHandler := handlers.NewScreenHandler(screener, builder, cfg.Screen, log)
	router := api.NewRouter(screenHandler, log)

	// 5. Create server
	server := api.New(cfg, log, router)

	// 6. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/screen")
	fmt.Println("  GET  /api/portfolio")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
