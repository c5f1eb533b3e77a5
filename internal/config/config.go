package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"pdfpilot/internal/log"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	APIBase      string
	APIKey       string
	ModelID      string
	JudgeModelID string
	Host         string
	Port         int
	MaxSteps     int
	MemoryWindow int
	Database     string
	LogLevel     string
}

// Load reads configuration from the environment, providing sensible defaults.
func Load() Config {
	// Load .env file if it exists (useful for development)
	_ = godotenv.Load()
	cfg := Config{
		APIBase:      getEnv("API_BASE", "http://localhost:11434/v1"),
		APIKey:       os.Getenv("API_KEY"),
		ModelID:      getEnv("MODEL_ID", "google/gemma-3-27b-it"),
		Host:         getEnv("HOST", "0.0.0.0"),
		Port:         getEnvInt("PORT", 8000),
		MaxSteps:     getEnvInt("MAX_STEPS", 10),
		MemoryWindow: getEnvInt("MEMORY_WINDOW", 2),
		Database:     getEnv("DATABASE_PATH", "./data/pdfpilot.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
	// The judge falls back to the answering model when not configured separately.
	cfg.JudgeModelID = getEnv("JUDGE_MODEL_ID", cfg.ModelID)

	if err := os.MkdirAll(filepath.Dir(cfg.Database), 0o755); err != nil {
		log.Fatalf("failed to ensure database dir %s: %v", cfg.Database, err)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Warnf("invalid integer for %s: %q, using %d", key, val, fallback)
		return fallback
	}
	return n
}
