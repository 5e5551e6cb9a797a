package main

import (
	"go-attendance/internal/app"

	"go.uber.org/zap"
)

func main() {
	cfg, logger, err := app.LoadRuntime()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := app.RunWorker(cfg, logger); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
