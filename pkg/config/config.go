package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Data source
	DataPath string // fundamentals CSV path

	// Screening defaults
	Screen ScreenConfig

	// Record validation bounds
	PayoutBound float64 // 100 (legacy) or 200 (modern)

	// Database (optional, only for the Postgres repository)
	Database DatabaseConfig

	// LLM providers
	LLM LLMConfig

	// Scheduler
	ScheduleCron string

	// Logging
	LogLevel  string
	LogFormat string
}

// ScreenConfig holds default screening thresholds
type ScreenConfig struct {
	MinYield  float64
	MaxPayout float64
	MinCAGR   float64
	TopN      int
	Weighting string // "equal" or "score"
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// LLMConfig holds chat provider configuration
type LLMConfig struct {
	Provider         string // "openai", "anthropic"
	Model            string // empty = provider default
	OpenAIKey        string
	AnthropicKey     string
	OpenAIBaseURL    string
	AnthropicBaseURL string
	Temperature      float64
	MaxTokens        int
	Timeout          time.Duration
	MaxIterations    int // tool-call round trip budget per user turn
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		// Data source
		DataPath: getEnv("DGI_DATA_PATH", "data/fundamentals_small.csv"),

		// Screening defaults
		Screen: ScreenConfig{
			MinYield:  getEnvAsFloat("DGI_MIN_YIELD", 0.0),
			MaxPayout: getEnvAsFloat("DGI_MAX_PAYOUT", 100.0),
			MinCAGR:   getEnvAsFloat("DGI_MIN_CAGR", 0.0),
			TopN:      getEnvAsInt("DGI_TOP_N", 10),
			Weighting: getEnv("DGI_WEIGHTING", "equal"),
		},

		PayoutBound: getEnvAsFloat("DGI_PAYOUT_BOUND", 200.0),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// LLM
		LLM: LLMConfig{
			Provider:         getEnv("DGI_LLM_PROVIDER", "openai"),
			Model:            getEnv("DGI_LLM_MODEL", ""),
			OpenAIKey:        getEnv("OPENAI_API_KEY", ""),
			AnthropicKey:     getEnv("ANTHROPIC_API_KEY", ""),
			OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
			AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
			Temperature:      getEnvAsFloat("DGI_LLM_TEMPERATURE", 0.1),
			MaxTokens:        getEnvAsInt("DGI_LLM_MAX_TOKENS", 1024),
			Timeout:          getEnvAsDuration("DGI_LLM_TIMEOUT", "30s"),
			MaxIterations:    getEnvAsInt("DGI_LLM_MAX_ITERATIONS", 5),
		},

		// Scheduler (default: 07:00 every weekday)
		ScheduleCron: getEnv("DGI_SCHEDULE_CRON", "0 0 7 * * MON-FRI"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are consistent
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Screen.MinYield < 0 || c.Screen.MaxPayout < 0 || c.Screen.MinCAGR < 0 {
		return fmt.Errorf("screening thresholds must be non-negative")
	}

	if c.Screen.Weighting != "equal" && c.Screen.Weighting != "score" {
		return fmt.Errorf("DGI_WEIGHTING must be 'equal' or 'score'")
	}

	if c.PayoutBound != 100.0 && c.PayoutBound != 200.0 {
		return fmt.Errorf("DGI_PAYOUT_BOUND must be 100 or 200")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
