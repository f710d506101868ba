package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// Server
	Host        string
	Port        string
	Environment string

	// Storage
	DataDir     string
	DBDriver    string // "sqlite" or "postgres"
	PostgresDSN string

	// AI providers
	OpenAIKey       string
	GeminiKey       string
	CaptionProvider string // "openai" or "gemini"

	// Pipeline
	Workers         int
	QueueSize       int
	FrameInterval   int
	DedupeThreshold int

	// Operational sweeps
	StaleAfter   time.Duration
	TempMaxAge   time.Duration
	FramesMaxAge time.Duration

	// Optional S3-compatible frame publishing
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// LoadEnv loads environment variables from a .env file if one exists. Missing
// files are not an error; system-wide environment variables still apply.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// Load builds the configuration from environment variables.
func Load() *Config {
	return &Config{
		Host:        getEnv("HOST", "0.0.0.0"),
		Port:        getEnv("PORT", "8000"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DataDir:     getEnv("DATA_DIR", "./data"),
		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		OpenAIKey:       strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		GeminiKey:       strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		CaptionProvider: getEnv("CAPTION_PROVIDER", "openai"),

		Workers:         getEnvInt("PIPELINE_WORKERS", 4),
		QueueSize:       getEnvInt("PIPELINE_QUEUE_SIZE", 64),
		FrameInterval:   getEnvInt("FRAME_INTERVAL_SECONDS", 5),
		DedupeThreshold: getEnvInt("FRAME_DEDUPE_THRESHOLD", 5),

		StaleAfter:   getEnvDuration("JOB_STALE_AFTER", 10*time.Minute),
		TempMaxAge:   getEnvDuration("TEMP_MAX_AGE", time.Hour),
		FramesMaxAge: getEnvDuration("FRAMES_MAX_AGE", 30*24*time.Hour),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "videomind-frames"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
	}
}

// DatabasePath is the sqlite database file location under the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "videomind.db")
}

// TempDir is the scratch root; per-job subdirectories live below it.
func (c *Config) TempDir() string {
	return filepath.Join(c.DataDir, "temp")
}

// FramesDir is the root for extracted frame images, namespaced per job.
func (c *Config) FramesDir() string {
	return filepath.Join(c.DataDir, "frames")
}

// ValidateAPIKeys performs basic format checks on the configured keys.
// Fail-fast: a malformed key is rejected at startup, not on the first call.
func (c *Config) ValidateAPIKeys() error {
	if c.OpenAIKey != "" {
		if !strings.HasPrefix(c.OpenAIKey, "sk-") {
			return fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
		}
		if len(c.OpenAIKey) < 20 {
			return fmt.Errorf("invalid OPENAI_API_KEY format: too short")
		}
	}

	if c.GeminiKey != "" {
		if !strings.HasPrefix(c.GeminiKey, "AIza") {
			return fmt.Errorf("invalid GEMINI_API_KEY format: must start with 'AIza'")
		}
	}

	if c.CaptionProvider == "gemini" && c.GeminiKey == "" {
		return fmt.Errorf("CAPTION_PROVIDER=gemini requires GEMINI_API_KEY")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
