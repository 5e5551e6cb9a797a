package main

import (
	"go-attendance/internal/app"
	"go-attendance/internal/bootstrap"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, logger, err := app.LoadRuntime()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	if cfg.Log.Format != "console" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	cleanup, err := app.BuildApp(r, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	if err := bootstrap.StartHTTPServer(r, cfg.Server, bootstrap.NewStdoutAuditLogger(logger)); err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
