package connection

import (
	"context"
	"fmt"
	"time"

	"go-attendance/internal/config"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var retryDelay = 5 * time.Second

// ConnectGORMWithRetry opens the PostgreSQL pool and pings it, retrying up to
// cfg.MaxRetries times. The DSN is never logged.
func ConnectGORMWithRetry(cfg config.DatabaseConfig) (*gorm.DB, error) {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}
	log := zap.L().Named("connection.postgres")

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			lastErr = err
			log.Warn("gorm open failed", zap.Int("attempt", i), zap.Int("max_retries", maxRetries), zap.Error(err))
			time.Sleep(retryDelay)
			continue
		}

		sqlDB, err := db.DB()
		if err != nil {
			lastErr = err
			log.Warn("get sql.DB failed", zap.Int("attempt", i), zap.Error(err))
			time.Sleep(retryDelay)
			continue
		}

		if err := sqlDB.Ping(); err != nil {
			lastErr = err
			log.Warn("db ping failed", zap.Int("attempt", i), zap.Int("max_retries", maxRetries), zap.Error(err))
			time.Sleep(retryDelay)
			continue
		}

		sqlDB.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, 25))
		sqlDB.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, 10))
		if cfg.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		} else {
			sqlDB.SetConnMaxLifetime(time.Hour)
		}

		log.Info("connected to database",
			zap.String("host", cfg.Host),
			zap.String("port", cfg.Port),
			zap.String("dbname", cfg.Name),
		)
		return db, nil
	}

	return nil, fmt.Errorf("database connection failed after %d retries: %w", maxRetries, lastErr)
}

func ConnectRedisWithRetry(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	maxRetries := orDefault(cfg.MaxRetries, 1)
	log := zap.L().Named("connection.redis")

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		lastErr = rdb.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			log.Info("connected to redis", zap.String("addr", cfg.Addr))
			return rdb, nil
		}

		log.Warn("redis ping failed", zap.Int("attempt", i), zap.Int("max_retries", maxRetries), zap.Error(lastErr))
		time.Sleep(retryDelay)
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("redis connection failed after %d retries: %w", maxRetries, lastErr)
}

// ConnectKafkaWithRetry dials the first broker to make sure the cluster is
// reachable, then returns a writer that routes by message topic.
func ConnectKafkaWithRetry(cfg config.KafkaConfig) (*kafkago.Writer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	maxRetries := orDefault(cfg.MaxRetries, 1)
	log := zap.L().Named("connection.kafka")

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		conn, err := kafkago.DialContext(ctx, "tcp", cfg.Brokers[0])
		cancel()
		if err == nil {
			_ = conn.Close()
			log.Info("connected to kafka", zap.Strings("brokers", cfg.Brokers))
			return &kafkago.Writer{
				Addr:         kafkago.TCP(cfg.Brokers...),
				Balancer:     &kafkago.Hash{},
				RequiredAcks: kafkago.RequireAll,
			}, nil
		}
		lastErr = err
		log.Warn("kafka dial failed", zap.Int("attempt", i), zap.Int("max_retries", maxRetries), zap.Error(err))
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("kafka connection failed after %d retries: %w", maxRetries, lastErr)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
