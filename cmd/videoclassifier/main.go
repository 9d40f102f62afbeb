package main

import (
	"context"
	"os"

	"VideoClassifier/internal/app"
	"VideoClassifier/internal/config"
	"VideoClassifier/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)

	if err := application.Run(ctx); err != nil {
		logger.Error("pipeline run failed", "error", err)
		os.Exit(1)
	}
}
