// cmd/server/main.go
package main

import (
	"log"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/resilientapp/graphq-tutor/internal/analyzer"
	"github.com/resilientapp/graphq-tutor/internal/config"
	"github.com/resilientapp/graphq-tutor/internal/metrics"
	"github.com/resilientapp/graphq-tutor/internal/server"
	"github.com/resilientapp/graphq-tutor/internal/store"
	"github.com/resilientapp/graphq-tutor/internal/upstream"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg.Logging)
	slog.SetDefault(logger)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	var conversations store.Store = store.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		redisStore, err := store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("redis unavailable, falling back to in-memory transcripts", "error", err)
		} else {
			defer redisStore.Close()
			conversations = redisStore
		}
	}

	client, err := upstream.NewClient(cfg.Analysis.BaseURL, cfg.Analysis.Timeout)
	if err != nil {
		log.Fatalf("failed to create analysis backend client: %v", err)
	}

	tutor := analyzer.New(client, logger)

	srv := server.New(*cfg, tutor, conversations, logger)
	logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port, "backend", cfg.Analysis.BaseURL)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
