package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	EmbeddingBaseURL   string
	EmbeddingModelName string
	DBPath             string
	QdrantURL          string
	QdrantCollection   string
	QdrantVectorSize   int
	APIPort            string
	LogLevel           slog.Level
	LogFormat          string

	// Ranking weights. These are deliberately configurable: the keyword
	// boost is hand-tuned to dominate semantic similarity on the curated
	// quote set, and retuning it changes retrieval behavior.
	SemanticWeight      float64
	KeywordBoost        float64
	AuthorMatchWeight   float64
	TopicMatchWeight    float64
	AnalysisBoost       float64
	AnalysisIntentScale float64
	IntentBoost         float64
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up to find a project-root .env (next to go.mod)
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "TinyLlama-1.1B-Chat-v1.0"),
		LLMAPIKey:          getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "all-MiniLM-L6-v2"),
		DBPath:             getEnv("DB_PATH", "./data/quotes-ai.db"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "historical_quotes"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	// Must match the output dimension of the embeddings model.
	// all-MiniLM-L6-v2 produces 384-dimensional vectors; if the model
	// changes, the Qdrant collection has to be recreated.
	vectorSize, err := getEnvInt("QDRANT_VECTOR_SIZE", 384)
	if err != nil {
		return nil, err
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	if cfg.SemanticWeight, err = getEnvFloat("RANK_SEMANTIC_WEIGHT", 1.0); err != nil {
		return nil, err
	}
	if cfg.KeywordBoost, err = getEnvFloat("RANK_KEYWORD_BOOST", 0.5); err != nil {
		return nil, err
	}
	if cfg.AuthorMatchWeight, err = getEnvFloat("RANK_AUTHOR_MATCH_WEIGHT", 2.0); err != nil {
		return nil, err
	}
	if cfg.TopicMatchWeight, err = getEnvFloat("RANK_TOPIC_MATCH_WEIGHT", 1.0); err != nil {
		return nil, err
	}
	if cfg.AnalysisBoost, err = getEnvFloat("RANK_ANALYSIS_BOOST", 0.3); err != nil {
		return nil, err
	}
	if cfg.AnalysisIntentScale, err = getEnvFloat("RANK_ANALYSIS_INTENT_SCALE", 1.5); err != nil {
		return nil, err
	}
	if cfg.IntentBoost, err = getEnvFloat("RANK_INTENT_BOOST", 0.1); err != nil {
		return nil, err
	}
	if cfg.SemanticWeight < 0 || cfg.KeywordBoost < 0 || cfg.AuthorMatchWeight < 0 ||
		cfg.TopicMatchWeight < 0 || cfg.AnalysisBoost < 0 ||
		cfg.AnalysisIntentScale < 0 || cfg.IntentBoost < 0 {
		return nil, fmt.Errorf("ranking weights must not be negative")
	}

	// Create the data directory for the SQLite file if needed
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return v, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", raw)
	}
}
