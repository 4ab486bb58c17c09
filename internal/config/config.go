package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
	StoreDriverNone     = "none"
)

type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	Postgres   PostgresConfig
	Redis      RedisConfig
	Media      MediaConfig
	Metadata   MetadataConfig
	Transcribe TranscribeConfig
	Keywords   KeywordConfig
	Pipeline   PipelineConfig
	Logging    LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StoreConfig struct {
	Driver string
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type RedisConfig struct {
	Enabled   bool
	Host      string
	Port      int
	Password  string
	DB        int
	ResultTTL time.Duration
}

type MediaConfig struct {
	Enabled    bool
	YtDlpPath  string
	TempDir    string
	KeepOnDisk bool
}

type MetadataConfig struct {
	Enrichment    bool
	YouTubeAPIKey string
}

type TranscribeConfig struct {
	Provider     string
	OpenAIAPIKey string
	GeminiAPIKey string
	Model        string
}

type KeywordConfig struct {
	Strategy string
}

type PipelineConfig struct {
	BatchConcurrency int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvInt("SERVER_PORT", 8001),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "ayovirals"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "ayovirals_db"),
		},
		Redis: RedisConfig{
			Enabled:   getEnvBool("CACHE_ENABLED", false),
			Host:      getEnv("REDIS_HOST", "localhost"),
			Port:      getEnvInt("REDIS_PORT", 6379),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvInt("REDIS_DB", 0),
			ResultTTL: time.Duration(getEnvInt("RESULT_CACHE_TTL_SECONDS", 3600)) * time.Second,
		},
		Media: MediaConfig{
			Enabled:    getEnvBool("MEDIA_ENABLED", true),
			YtDlpPath:  getEnv("YTDLP_PATH", "yt-dlp"),
			TempDir:    getEnv("MEDIA_TEMP_DIR", ""),
			KeepOnDisk: getEnvBool("MEDIA_KEEP_FILES", false),
		},
		Metadata: MetadataConfig{
			Enrichment:    getEnvBool("METADATA_ENRICHMENT", false),
			YouTubeAPIKey: getEnv("YOUTUBE_API_KEY", ""),
		},
		Transcribe: TranscribeConfig{
			Provider:     strings.ToLower(getEnv("TRANSCRIBE_PROVIDER", "mock")),
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			Model:        getEnv("TRANSCRIBE_MODEL", ""),
		},
		Keywords: KeywordConfig{
			Strategy: strings.ToLower(getEnv("KEYWORD_STRATEGY", "auto")),
		},
		Pipeline: PipelineConfig{
			BatchConcurrency: getEnvInt("BATCH_CONCURRENCY", 4),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}

	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMemory, StoreDriverNone:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of postgres, memory, none (got %q)", c.Store.Driver)
	}

	switch c.Transcribe.Provider {
	case "mock", "none":
	case "openai":
		if c.Transcribe.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when TRANSCRIBE_PROVIDER=openai")
		}
	case "gemini":
		if c.Transcribe.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when TRANSCRIBE_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unsupported TRANSCRIBE_PROVIDER: %s", c.Transcribe.Provider)
	}

	switch c.Keywords.Strategy {
	case "auto", "linguistic", "heuristic":
	default:
		return fmt.Errorf("KEYWORD_STRATEGY must be one of auto, linguistic, heuristic")
	}

	if c.Media.Enabled && c.Media.YtDlpPath == "" {
		return fmt.Errorf("YTDLP_PATH is required when MEDIA_ENABLED=true")
	}
	if c.Pipeline.BatchConcurrency <= 0 {
		return fmt.Errorf("BATCH_CONCURRENCY must be positive")
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
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
