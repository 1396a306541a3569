package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/temped/temped-api/config"
	"github.com/temped/temped-api/internal/api"
	"github.com/temped/temped-api/pkg/logger"
)

func main() {
	// load configuration
	cfg := config.LoadConfig()

	zl, err := logger.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer zl.Sync()

	if cfg.AccessSecret == "" {
		zl.Fatal("ACCESS_SECRET is required")
	}

	if err := api.StartServer(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
