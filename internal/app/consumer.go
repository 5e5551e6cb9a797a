package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-attendance/internal/attendance"
	"go-attendance/internal/config"
	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer applies approval decisions to attendance until SIGINT or
// SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	policy, err := attendance.NewPolicy(cfg.Attendance)
	if err != nil {
		return err
	}
	attendanceService := attendance.NewService(db.sqlDB, attendance.NewRepository(db.gormDB), policy, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          events.ApprovalDecidedTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeApprovalDecided(ctx, reader, attendanceService, log)

	log.Info("consumer shutting down")
	return nil
}
