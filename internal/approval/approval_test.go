package approval_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"go-attendance/internal/approval"
	approvalerrors "go-attendance/internal/approval/errors"
	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	kafkaMock "go-attendance/internal/messaging/kafka/mock"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRepository struct {
	compareAndDecideFn func(ctx context.Context, target approval.Target, d approval.Decision) (int64, error)
	existsFn           func(ctx context.Context, target approval.Target, id uuid.UUID) (bool, error)
}

func (f *fakeRepository) WithTx(tx *sql.Tx) approval.Repository { return f }

func (f *fakeRepository) CompareAndDecide(ctx context.Context, target approval.Target, d approval.Decision) (int64, error) {
	return f.compareAndDecideFn(ctx, target, d)
}

func (f *fakeRepository) Exists(ctx context.Context, target approval.Target, id uuid.UUID) (bool, error) {
	if f.existsFn == nil {
		return false, errors.New("unexpected Exists call")
	}
	return f.existsFn(ctx, target, id)
}

func TestParseDecision(t *testing.T) {
	for _, v := range []string{"Approved", "Rejected"} {
		got, err := approval.ParseDecision(v)
		assert.NoError(t, err)
		assert.Equal(t, v, got)
	}
	for _, v := range []string{"Pending", "Cancelled", "approved", ""} {
		_, err := approval.ParseDecision(v)
		assert.ErrorIs(t, err, approvalerrors.ErrInvalidDecision, v)
		assert.True(t, apperror.IsValidation(err))
	}
}

func TestNewDecision(t *testing.T) {
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	rid, aid := uuid.New(), uuid.New()

	d, err := approval.NewDecision(rid.String(), aid.String(), "Approved", now)
	require.NoError(t, err)
	assert.Equal(t, rid, d.RequestID)
	assert.Equal(t, aid, d.ApproverID)
	assert.Equal(t, approval.StatusApproved, d.Status)
	assert.Equal(t, now, d.DecidedAt)

	_, err = approval.NewDecision("42", aid.String(), "Approved", now)
	assert.ErrorIs(t, err, approvalerrors.ErrInvalidRequestID)

	_, err = approval.NewDecision(rid.String(), "", "Approved", now)
	assert.ErrorIs(t, err, approvalerrors.ErrInvalidApproverID)

	_, err = approval.NewDecision(rid.String(), aid.String(), "Cancelled", now)
	assert.ErrorIs(t, err, approvalerrors.ErrInvalidDecision)
}

func TestWorkflow_Decide(t *testing.T) {
	ctx := context.Background()
	d := approval.Decision{
		RequestID:  uuid.New(),
		ApproverID: uuid.New(),
		Status:     approval.StatusApproved,
		DecidedAt:  time.Now().UTC(),
	}

	t.Run("pending request is decided", func(t *testing.T) {
		repo := &fakeRepository{
			compareAndDecideFn: func(_ context.Context, target approval.Target, got approval.Decision) (int64, error) {
				assert.Equal(t, approval.Leave, target)
				assert.Equal(t, d, got)
				return 1, nil
			},
		}
		w := approval.NewWorkflow(repo, nil)
		assert.NoError(t, w.Decide(ctx, nil, approval.Leave, d))
	})

	t.Run("missing request is not found", func(t *testing.T) {
		repo := &fakeRepository{
			compareAndDecideFn: func(context.Context, approval.Target, approval.Decision) (int64, error) { return 0, nil },
			existsFn:           func(context.Context, approval.Target, uuid.UUID) (bool, error) { return false, nil },
		}
		err := approval.NewWorkflow(repo, nil).Decide(ctx, nil, approval.Overtime, d)
		assert.ErrorIs(t, err, approvalerrors.ErrRequestNotFound)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("decided request is a conflict", func(t *testing.T) {
		repo := &fakeRepository{
			compareAndDecideFn: func(context.Context, approval.Target, approval.Decision) (int64, error) { return 0, nil },
			existsFn:           func(context.Context, approval.Target, uuid.UUID) (bool, error) { return true, nil },
		}
		err := approval.NewWorkflow(repo, nil).Decide(ctx, nil, approval.Leave, d)
		assert.ErrorIs(t, err, approvalerrors.ErrAlreadyDecided)
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("storage failure is labelled", func(t *testing.T) {
		repo := &fakeRepository{
			compareAndDecideFn: func(context.Context, approval.Target, approval.Decision) (int64, error) {
				return 0, errors.New("connection reset")
			},
		}
		err := approval.NewWorkflow(repo, nil).Decide(ctx, nil, approval.Leave, d)
		assert.True(t, apperror.IsStorage(err))
		assert.Equal(t, "decide leave failed: connection reset", err.Error())
	})
}

func TestWorkflow_AnnounceWritesOutboxInTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx := contextutil.WithRequestID(context.Background(), "REQ-9")
	requestID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectCommit()

	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox)
	outbox.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, "REQ-9", e.RequestID)
			assert.Equal(t, "leave", e.AggregateType)
			assert.Equal(t, requestID, e.AggregateID)
			assert.Equal(t, events.ApprovalDecidedTopic, e.Topic)
			assert.Equal(t, events.EventTypeApprovalDecided, e.EventType)
			return nil
		})

	w := approval.NewWorkflow(&fakeRepository{}, outbox)
	err = storage.RunInTx(ctx, db, "decide leave", func(tx *sql.Tx) error {
		return w.Announce(ctx, tx, events.ApprovalDecidedEvent{
			RequestType: approval.Leave.Kind,
			RequestID:   requestID,
			EmployeeID:  uuid.NewString(),
			Decision:    approval.StatusApproved,
		})
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CompareAndDecide(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	d := approval.Decision{
		RequestID:  uuid.New(),
		ApproverID: uuid.New(),
		Status:     approval.StatusRejected,
		DecidedAt:  time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "overtimes" SET`)).
		WithArgs(d.ApproverID, d.DecidedAt, approval.StatusRejected, d.DecidedAt, d.RequestID, approval.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := approval.NewRepository(gdb).CompareAndDecide(context.Background(), approval.Overtime, d)
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
