package overtime

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-attendance/internal/approval"
	"go-attendance/internal/events"
	overtimeerrors "go-attendance/internal/overtime/errors"
	"go-attendance/internal/shared/datetime"
	"go-attendance/internal/shared/filter"
	"go-attendance/internal/shared/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// hoursPlaces is the stored precision of overtime hours.
const hoursPlaces = 2

// maxHours is the largest value numeric(6,2) holds.
var maxHours = decimal.New(999999, -hoursPlaces)

//go:generate mockgen -source=overtime_service.go -destination=mock/overtime_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateOvertimeRequest) (OvertimeResponse, error)
	GetAll(ctx context.Context, q ListOvertimeQuery) ([]OvertimeResponse, error)
	GetByID(ctx context.Context, id string) (OvertimeResponse, error)
	Decide(ctx context.Context, actorID, id string, req DecideOvertimeRequest) (OvertimeResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	workflow *approval.Workflow
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, workflow *approval.Workflow, logger ...*zap.Logger) Service {
	l := zap.L().Named("overtime.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("overtime.service")
	}
	return &service{db: db, repo: repo, workflow: workflow, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateOvertimeRequest) (OvertimeResponse, error) {
	s.logger.Debug("create overtime requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("overtime_date", req.OvertimeDate),
	)

	o, err := newOvertime(req)
	if err != nil {
		s.logger.Warn("create overtime validation failed", zap.Error(err))
		return OvertimeResponse{}, err
	}

	if err := s.repo.Create(ctx, &o); err != nil {
		mapped := storage.MapError("create overtime", err)
		if errors.Is(mapped, storage.ErrReferenceNotFound) {
			return OvertimeResponse{}, overtimeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("create overtime persist failed", zap.Error(err))
		return OvertimeResponse{}, mapped
	}

	s.logger.Info("create overtime success",
		zap.String("overtime_id", o.ID.String()),
		zap.String("hours", o.Hours.String()),
	)
	return mapToResponse(OvertimeRow{Overtime: o}), nil
}

func newOvertime(req CreateOvertimeRequest) (Overtime, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return Overtime{}, overtimeerrors.ErrInvalidEmployeeID
	}
	date, err := datetime.ParseDate(req.OvertimeDate)
	if err != nil {
		return Overtime{}, overtimeerrors.ErrInvalidOvertimeDate
	}
	start, err := datetime.ParseTimestamp(req.StartTime)
	if err != nil {
		return Overtime{}, overtimeerrors.ErrInvalidTime
	}
	end, err := datetime.ParseTimestamp(req.EndTime)
	if err != nil {
		return Overtime{}, overtimeerrors.ErrInvalidTime
	}
	if !end.After(start) {
		return Overtime{}, overtimeerrors.ErrEndNotAfterStart
	}

	hours := datetime.Hours(start, end).Round(hoursPlaces)
	if !hours.IsPositive() || hours.GreaterThan(maxHours) {
		return Overtime{}, overtimeerrors.ErrHoursOutOfRange
	}

	return Overtime{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		OvertimeDate: date,
		StartTime:    start,
		EndTime:      end,
		Hours:        hours,
		Reason:       req.Reason,
		Status:       approval.StatusPending,
	}, nil
}

func (s *service) GetAll(ctx context.Context, q ListOvertimeQuery) ([]OvertimeResponse, error) {
	var employeeID *uuid.UUID
	if q.EmployeeID != nil {
		id, err := uuid.Parse(*q.EmployeeID)
		if err != nil {
			return nil, overtimeerrors.ErrInvalidEmployeeID
		}
		employeeID = &id
	}
	from, err := optionalDate(q.StartDate)
	if err != nil {
		return nil, err
	}
	to, err := optionalDate(q.EndDate)
	if err != nil {
		return nil, err
	}

	spec := filter.New(
		filter.Eq(ColumnEmployeeID, employeeID),
		filter.Eq(ColumnEmployeeNumber, q.EmployeeNumber),
		filter.DateRange(ColumnOvertimeDate, from, to),
		filter.Eq(ColumnStatus, q.Status),
	).Sort(ListOrder...)

	rows, err := s.repo.FindAll(ctx, spec)
	if err != nil {
		s.logger.Error("list overtime failed", zap.Error(err))
		return nil, storage.MapError("list overtime", err)
	}

	resp := make([]OvertimeResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func optionalDate(v *string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	t, err := datetime.ParseOptionalDate(*v)
	if err != nil {
		return nil, overtimeerrors.ErrInvalidOvertimeDate
	}
	return t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (OvertimeResponse, error) {
	overtimeID, err := uuid.Parse(id)
	if err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidOvertimeID
	}

	row, err := s.repo.FindByID(ctx, overtimeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OvertimeResponse{}, overtimeerrors.ErrOvertimeNotFound
		}
		return OvertimeResponse{}, storage.MapError("get overtime", err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Decide(ctx context.Context, actorID, id string, req DecideOvertimeRequest) (OvertimeResponse, error) {
	approverID := actorID
	if req.ApproverID != nil {
		approverID = *req.ApproverID
	}

	d, err := approval.NewDecision(id, approverID, req.Decision, time.Now())
	if err != nil {
		s.logger.Warn("decide overtime validation failed", zap.Error(err))
		return OvertimeResponse{}, err
	}

	var decided OvertimeRow
	err = storage.RunInTx(ctx, s.db, "decide overtime", func(tx *sql.Tx) error {
		if err := s.workflow.Decide(ctx, tx, approval.Overtime, d); err != nil {
			return err
		}

		row, err := s.repo.WithTx(tx).FindByID(ctx, d.RequestID)
		if err != nil {
			return storage.MapError("decide overtime reload", err)
		}
		decided = *row

		date := datetime.FormatDate(row.OvertimeDate)
		return s.workflow.Announce(ctx, tx, events.ApprovalDecidedEvent{
			RequestType: approval.Overtime.Kind,
			RequestID:   row.ID.String(),
			EmployeeID:  row.EmployeeID.String(),
			ApproverID:  d.ApproverID.String(),
			Decision:    d.Status,
			StartDate:   date,
			EndDate:     date,
			OccurredAt:  d.DecidedAt,
		})
	})
	if err != nil {
		s.logger.Warn("decide overtime failed", zap.String("overtime_id", id), zap.Error(err))
		return OvertimeResponse{}, err
	}

	s.logger.Info("decide overtime success",
		zap.String("overtime_id", id),
		zap.String("status", d.Status),
	)
	return mapToResponse(decided), nil
}

func mapToResponse(r OvertimeRow) OvertimeResponse {
	resp := OvertimeResponse{
		ID:             r.ID.String(),
		EmployeeID:     r.EmployeeID.String(),
		EmployeeNumber: r.EmployeeNumber,
		EmployeeName:   r.EmployeeName,
		DeptName:       r.DeptName,
		OvertimeDate:   datetime.FormatDate(r.OvertimeDate),
		StartTime:      datetime.FormatTimestamp(r.StartTime),
		EndTime:        datetime.FormatTimestamp(r.EndTime),
		Hours:          r.Hours,
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
