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

	if err := app.RunConsumer(cfg, logger); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
