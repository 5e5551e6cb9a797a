package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-attendance/internal/approval"
	"go-attendance/internal/events"
	leaveerrors "go-attendance/internal/leave/errors"
	"go-attendance/internal/shared/datetime"
	"go-attendance/internal/shared/filter"
	"go-attendance/internal/shared/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxDuration is the largest value numeric(6,2) holds.
var maxDuration = decimal.New(999999, -2)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, q ListLeaveQuery) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Decide(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	workflow *approval.Workflow
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, workflow *approval.Workflow, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, workflow: workflow, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	l, err := newLeave(req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.repo.Create(ctx, &l); err != nil {
		mapped := storage.MapError("create leave", err)
		if errors.Is(mapped, storage.ErrReferenceNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapped
	}

	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("duration", l.Duration.String()),
	)
	return mapToResponse(LeaveRow{Leave: l}), nil
}

// newLeave validates req and derives the duration.
func newLeave(req CreateLeaveRequest) (Leave, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return Leave{}, leaveerrors.ErrInvalidEmployeeID
	}
	startDate, err := datetime.ParseDate(req.StartDate)
	if err != nil {
		return Leave{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := datetime.ParseDate(req.EndDate)
	if err != nil {
		return Leave{}, leaveerrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return Leave{}, leaveerrors.ErrInvalidDateRange
	}

	duration := decimal.NewFromInt(int64(datetime.InclusiveDays(startDate, endDate)))
	if req.Duration != nil {
		if !req.Duration.IsPositive() {
			return Leave{}, leaveerrors.ErrInvalidDuration
		}
		duration = *req.Duration
	}
	if duration.GreaterThan(maxDuration) {
		return Leave{}, leaveerrors.ErrDurationTooLong
	}

	return Leave{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Duration:   duration,
		Reason:     req.Reason,
		Status:     approval.StatusPending,
	}, nil
}

func (s *service) GetAll(ctx context.Context, q ListLeaveQuery) ([]LeaveResponse, error) {
	spec, err := listSpec(q)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("list leave query built", zap.Bool("filtered", !spec.Empty()))

	rows, err := s.repo.FindAll(ctx, spec)
	if err != nil {
		s.logger.Error("list leave failed", zap.Error(err))
		return nil, storage.MapError("list leave", err)
	}

	resp := make([]LeaveResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func listSpec(q ListLeaveQuery) (filter.Spec, error) {
	var employeeID *uuid.UUID
	if q.EmployeeID != nil {
		id, err := uuid.Parse(*q.EmployeeID)
		if err != nil {
			return filter.Spec{}, leaveerrors.ErrInvalidEmployeeID
		}
		employeeID = &id
	}
	from, err := optionalDate(q.StartDate)
	if err != nil {
		return filter.Spec{}, err
	}
	to, err := optionalDate(q.EndDate)
	if err != nil {
		return filter.Spec{}, err
	}

	return filter.New(
		filter.Eq(ColumnEmployeeID, employeeID),
		filter.Eq(ColumnEmployeeNumber, q.EmployeeNumber),
		filter.From(ColumnStartDate, from),
		filter.Until(ColumnEndDate, to),
		filter.Eq(ColumnStatus, q.Status),
		filter.Eq(ColumnLeaveType, q.LeaveType),
	).Sort(ListOrder...), nil
}

func optionalDate(v *string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	t, err := datetime.ParseOptionalDate(*v)
	if err != nil {
		return nil, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	row, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("get leave failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, storage.MapError("get leave", err)
	}
	return mapToResponse(*row), nil
}

// Decide moves a Pending leave to Approved or Rejected and queues the
// decision event in the same transaction.
func (s *service) Decide(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	approverID := actorID
	if req.ApproverID != nil {
		approverID = *req.ApproverID
	}
	s.logger.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("approver_id", approverID),
		zap.String("decision", req.Decision),
	)

	d, err := approval.NewDecision(id, approverID, req.Decision, time.Now())
	if err != nil {
		s.logger.Warn("decide leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	var decided LeaveRow
	err = storage.RunInTx(ctx, s.db, "decide leave", func(tx *sql.Tx) error {
		if err := s.workflow.Decide(ctx, tx, approval.Leave, d); err != nil {
			return err
		}

		row, err := s.repo.WithTx(tx).FindByID(ctx, d.RequestID)
		if err != nil {
			return storage.MapError("decide leave reload", err)
		}
		decided = *row

		return s.workflow.Announce(ctx, tx, events.ApprovalDecidedEvent{
			RequestType: approval.Leave.Kind,
			RequestID:   row.ID.String(),
			EmployeeID:  row.EmployeeID.String(),
			ApproverID:  d.ApproverID.String(),
			Decision:    d.Status,
			LeaveType:   row.LeaveType,
			StartDate:   datetime.FormatDate(row.StartDate),
			EndDate:     datetime.FormatDate(row.EndDate),
			OccurredAt:  d.DecidedAt,
		})
	})
	if err != nil {
		s.logger.Warn("decide leave failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", d.Status),
	)
	return mapToResponse(decided), nil
}

func mapToResponse(r LeaveRow) LeaveResponse {
	resp := LeaveResponse{
		ID:             r.ID.String(),
		EmployeeID:     r.EmployeeID.String(),
		EmployeeNumber: r.EmployeeNumber,
		EmployeeName:   r.EmployeeName,
		DeptName:       r.DeptName,
		LeaveType:      r.LeaveType,
		StartDate:      datetime.FormatDate(r.StartDate),
		EndDate:        datetime.FormatDate(r.EndDate),
		Duration:       r.Duration,
		Reason:         r.Reason,
		Status:         r.Status,
		DecidedAt:      datetime.FormatOptionalTimestamp(r.DecidedAt),
	}
	if r.ApprovedBy != nil {
		v := r.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	return resp
}
