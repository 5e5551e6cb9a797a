package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-attendance/internal/config"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/messaging/kafka/producer"
	"go-attendance/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(db.sqlDB)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, log, cfg.Kafka.PollInterval)

	log.Info("worker shutting down")
	return nil
}
