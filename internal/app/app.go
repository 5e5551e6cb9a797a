package app

import (
	"database/sql"

	"go-attendance/internal/config"
	"go-attendance/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// infra holds the connections every process opens.
type infra struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
}

func (i infra) Close() {
	if i.sqlDB != nil {
		_ = i.sqlDB.Close()
	}
}

func openDatabase(cfg *config.Config, logger *zap.Logger) (infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return infra{}, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return infra{}, err
	}

	if cfg.Database.AutoMigrate {
		if err := connection.RunMigrations(sqlDB, logger); err != nil {
			_ = sqlDB.Close()
			return infra{}, err
		}
	}
	return infra{gormDB: gormDB, sqlDB: sqlDB}, nil
}

// BuildApp connects to PostgreSQL and Redis and registers every module on
// router. The returned cleanup closes what was opened.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	db, err := openDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	log.Info("database connection established")

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Info("redis connection established")

	cleanup := func() {
		_ = rdb.Close()
		db.Close()
	}

	if err := registerModules(router, cfg, db.sqlDB, db.gormDB, rdb, logger); err != nil {
		cleanup()
		return nil, err
	}
	return cleanup, nil
}
