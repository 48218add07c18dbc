package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultAnalysisURL is used when neither ANALYSIS_API_URL nor
// PUBLIC_ANALYSIS_API_URL is set.
const DefaultAnalysisURL = "http://localhost:3001"

type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
	Redis    RedisConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port         string        `envconfig:"SERVER_PORT" default:"8000"`
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
}

type AnalysisConfig struct {
	// BaseURL of the GraphQ-LLM analysis backend. Resolution order:
	// ANALYSIS_API_URL, then PUBLIC_ANALYSIS_API_URL, then the local default.
	BaseURL string        `envconfig:"ANALYSIS_API_URL"`
	Timeout time.Duration `envconfig:"ANALYSIS_TIMEOUT" default:"30s"`
}

type RedisConfig struct {
	// Addr of the conversation store. Empty selects the in-memory store.
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	JSON  bool   `envconfig:"LOG_JSON" default:"false"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Analysis.BaseURL == "" {
		cfg.Analysis.BaseURL = os.Getenv("PUBLIC_ANALYSIS_API_URL")
	}
	if cfg.Analysis.BaseURL == "" {
		cfg.Analysis.BaseURL = DefaultAnalysisURL
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}

// NewLogger returns a slog.Logger for the configured verbosity and format.
func NewLogger(cfg LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}
