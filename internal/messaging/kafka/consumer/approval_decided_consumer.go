package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-attendance/internal/approval"
	"go-attendance/internal/attendance"
	"go-attendance/internal/events"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/datetime"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is the subset of *kafkago.Reader the consumer loop needs.
type Reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type Reconciler interface {
	Reconcile(ctx context.Context, sub attendance.Submission) (attendance.SubmitResult, error)
}

const (
	defaultRetryBackoff = 500 * time.Millisecond
	maxRetryBackoff     = 30 * time.Second
)

type options struct {
	retryBackoff time.Duration
}

type Option func(*options)

// WithRetryBackoff sets the first delay between attempts on a failing
// message. The delay doubles up to 30s.
func WithRetryBackoff(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.retryBackoff = d
		}
	}
}

// ConsumeApprovalDecided marks every day of an approved leave as Leave in
// attendance. Messages that can never succeed are committed and skipped.
// Any other failure retries the same message until it succeeds or ctx ends,
// so no later offset is committed past it.
func ConsumeApprovalDecided(
	ctx context.Context,
	reader Reader,
	reconciler Reconciler,
	logger *zap.Logger,
	opts ...Option,
) {
	o := options{retryBackoff: defaultRetryBackoff}
	for _, opt := range opts {
		opt(&o)
	}
	log := logger.Named("kafka.consumer.approval_decided")
	log.Info("approval decided consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("approval decided consumer stopped")
				return
			}
			log.Error("fetch approval decided message failed", zap.Error(err))
			continue
		}

		var event events.ApprovalDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode approval decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		days, err := applyWithRetry(ctx, log, reconciler, event, o.retryBackoff)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("approval decided consumer stopped",
					zap.String("pending_request_id", event.RequestID),
				)
				return
			}
			log.Warn("approval decided event rejected, skipping",
				zap.String("request_id", event.RequestID),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit approval decided message failed", zap.Error(err))
			continue
		}

		if days > 0 {
			log.Info("leave attendance reconciled",
				zap.String("request_id", event.RequestID),
				zap.String("employee_id", event.EmployeeID),
				zap.Int("days", days),
			)
		}
	}
}

// applyWithRetry returns nil, a permanent error (validation or not found),
// or ctx's error once ctx ends.
func applyWithRetry(
	ctx context.Context,
	log *zap.Logger,
	reconciler Reconciler,
	event events.ApprovalDecidedEvent,
	backoff time.Duration,
) (int, error) {
	for attempt := 1; ; attempt++ {
		days, err := ApplyApprovedLeave(ctx, reconciler, event)
		if err == nil || apperror.IsValidation(err) || apperror.IsNotFound(err) {
			return days, err
		}

		log.Error("reconcile leave attendance failed, retrying",
			zap.String("request_id", event.RequestID),
			zap.String("employee_id", event.EmployeeID),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0, ctx.Err()
		case <-timer.C:
		}
		backoff = min(backoff*2, maxRetryBackoff)
	}
}

// ApplyApprovedLeave reconciles one Leave record per day of an approved
// leave and returns how many days it touched. Other events are ignored.
// Replays are harmless: reconciling the same day twice changes nothing.
func ApplyApprovedLeave(ctx context.Context, reconciler Reconciler, event events.ApprovalDecidedEvent) (int, error) {
	if event.RequestType != approval.Leave.Kind || event.Decision != approval.StatusApproved {
		return 0, nil
	}

	employeeID, err := uuid.Parse(event.EmployeeID)
	if err != nil {
		return 0, apperror.InvalidField("employee_id")
	}
	start, err := datetime.ParseDate(event.StartDate)
	if err != nil {
		return 0, apperror.InvalidField("start_date")
	}
	end, err := datetime.ParseDate(event.EndDate)
	if err != nil {
		return 0, apperror.InvalidField("end_date")
	}

	remark := fmt.Sprintf("approved leave %s", event.RequestID)
	if event.LeaveType != "" {
		remark = fmt.Sprintf("approved %s leave %s", event.LeaveType, event.RequestID)
	}

	days := 0
	err = datetime.EachDay(start, end, func(day time.Time) error {
		if _, err := reconciler.Reconcile(ctx, attendance.Submission{
			EmployeeID: employeeID,
			RecordDate: day,
			Status:     attendance.StatusLeave,
			Remark:     &remark,
		}); err != nil {
			return err
		}
		days++
		return nil
	})
	return days, err
}
