// Package approval implements the Pending -> Approved | Rejected workflow
// shared by leave and overtime requests. A decision is a compare-and-swap on
// the Pending status, so concurrent deciders cannot both win.
package approval

import (
	"context"
	"database/sql"
	"time"

	approvalerrors "go-attendance/internal/approval/errors"
	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Target names the request table a decision applies to.
type Target struct {
	Kind  string
	Table string
}

var (
	Leave    = Target{Kind: "leave", Table: "leaves"}
	Overtime = Target{Kind: "overtime", Table: "overtimes"}
)

// Decision is a validated transition out of Pending.
type Decision struct {
	RequestID  uuid.UUID
	ApproverID uuid.UUID
	Status     string
	DecidedAt  time.Time
}

// ParseDecision accepts exactly Approved or Rejected.
func ParseDecision(v string) (string, error) {
	switch v {
	case StatusApproved, StatusRejected:
		return v, nil
	default:
		return "", approvalerrors.ErrInvalidDecision
	}
}

// NewDecision validates raw input. Nothing here touches storage.
func NewDecision(requestID, approverID, decision string, now time.Time) (Decision, error) {
	rid, err := uuid.Parse(requestID)
	if err != nil {
		return Decision{}, approvalerrors.ErrInvalidRequestID
	}
	aid, err := uuid.Parse(approverID)
	if err != nil {
		return Decision{}, approvalerrors.ErrInvalidApproverID
	}
	status, err := ParseDecision(decision)
	if err != nil {
		return Decision{}, err
	}
	return Decision{RequestID: rid, ApproverID: aid, Status: status, DecidedAt: now.UTC()}, nil
}

type Workflow struct {
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewWorkflow(repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) *Workflow {
	l := zap.L().Named("approval.workflow")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.workflow")
	}
	return &Workflow{repo: repo, outbox: outbox, logger: l}
}

// Decide applies d inside tx. Zero affected rows means the request is
// missing (NotFound) or no longer Pending (Conflict).
func (w *Workflow) Decide(ctx context.Context, tx *sql.Tx, target Target, d Decision) error {
	qtx := w.repo.WithTx(tx)

	affected, err := qtx.CompareAndDecide(ctx, target, d)
	if err != nil {
		w.logger.Error("decide persist failed",
			zap.String("kind", target.Kind),
			zap.String("request_id", d.RequestID.String()),
			zap.Error(err),
		)
		return storage.MapError("decide "+target.Kind, err)
	}
	if affected == 1 {
		return nil
	}

	exists, err := qtx.Exists(ctx, target, d.RequestID)
	if err != nil {
		return storage.MapError("decide "+target.Kind+" lookup", err)
	}
	if !exists {
		return approvalerrors.ErrRequestNotFound.WithDetails(map[string]string{
			"kind": target.Kind,
			"id":   d.RequestID.String(),
		})
	}

	w.logger.Warn("decide on non-pending request",
		zap.String("kind", target.Kind),
		zap.String("request_id", d.RequestID.String()),
	)
	return approvalerrors.ErrAlreadyDecided
}

// Announce writes evt to the outbox within tx, so the event exists iff the
// decision commits.
func (w *Workflow) Announce(ctx context.Context, tx *sql.Tx, evt events.ApprovalDecidedEvent) error {
	if evt.EventType == "" {
		evt.EventType = events.EventTypeApprovalDecided
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}

	requestID := contextutil.GetRequestID(ctx)
	outboxEvent, err := kafka.NewOutboxEvent(
		requestID,
		evt.RequestType,
		evt.RequestID,
		evt.EventType,
		events.ApprovalDecidedTopic,
		evt,
	)
	if err != nil {
		return err
	}

	if err := w.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		w.logger.Error("announce decision failed",
			zap.String("kind", evt.RequestType),
			zap.String("request_id", evt.RequestID),
			zap.Error(err),
		)
		return storage.MapError("announce "+evt.RequestType+" decision", err)
	}
	return nil
}
