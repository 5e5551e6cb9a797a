package app

import (
	"os"

	"go-attendance/internal/config"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadRuntime reads .env and configuration, then installs the global
// logger and the validator hooks. ATTENDANCE_CONFIG names a config file.
func LoadRuntime() (*config.Config, *zap.Logger, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("ATTENDANCE_CONFIG"))
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	zap.ReplaceGlobals(log)

	apperror.Init()
	return cfg, log, nil
}
