package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/reflink/giveaway/internal/config"
	"github.com/reflink/giveaway/internal/db"
	"github.com/reflink/giveaway/internal/web"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := db.Init(cfg.DatabaseURL); err != nil {
		logger.Fatal("db init", zap.Error(err))
	}

	r := web.Router(cfg, logger)

	logger.Info("giveaway listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
