package schedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-attendance/internal/employee"
	scheduleerrors "go-attendance/internal/schedule/errors"
	"go-attendance/internal/shared/cache"
	"go-attendance/internal/shared/datetime"
	"go-attendance/internal/shared/filter"
	"go-attendance/internal/shared/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const ShiftListKey = "shifts:all"

type Service interface {
	ListShifts(ctx context.Context) ([]ShiftResponse, error)
	Assign(ctx context.Context, req AssignScheduleRequest) (AssignResult, error)
	GetAll(ctx context.Context, q ListScheduleQuery) ([]ScheduleResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	cache     *cache.ReadThrough
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository, rt *cache.ReadThrough, logger ...*zap.Logger) Service {
	l := zap.L().Named("schedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.service")
	}
	return &service{db: db, repo: repo, employees: employees, cache: rt, logger: l}
}

func (s *service) ListShifts(ctx context.Context) ([]ShiftResponse, error) {
	return cache.Get(ctx, s.cache, ShiftListKey, func(ctx context.Context) ([]ShiftResponse, error) {
		shifts, err := s.repo.ListShifts(ctx)
		if err != nil {
			s.logger.Error("list shifts failed", zap.Error(err))
			return nil, storage.MapError("list shifts", err)
		}
		resp := make([]ShiftResponse, len(shifts))
		for i, sh := range shifts {
			resp[i] = ShiftResponse{
				ID:           sh.ID.String(),
				Name:         sh.Name,
				StartTime:    sh.StartTime,
				EndTime:      sh.EndTime,
				IsNightShift: sh.IsNightShift,
			}
		}
		return resp, nil
	})
}

// Assign inserts a schedule unless it overlaps one the employee already has.
// The employee row lock serializes concurrent assignments for the same
// employee; the exclusion constraint catches anything that slips past.
func (s *service) Assign(ctx context.Context, req AssignScheduleRequest) (AssignResult, error) {
	s.logger.Debug("assign schedule requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("shift_id", req.ShiftID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AssignResult{}, scheduleerrors.ErrInvalidEmployeeID
	}
	shiftID, err := uuid.Parse(req.ShiftID)
	if err != nil {
		return AssignResult{}, scheduleerrors.ErrInvalidShiftID
	}
	rng, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return AssignResult{}, err
	}

	sched := Schedule{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		ShiftID:    shiftID,
		StartDate:  rng.Start,
		EndDate:    rng.End,
	}

	err = storage.RunInTx(ctx, s.db, "assign schedule", func(tx *sql.Tx) error {
		if _, err := s.employees.WithTx(tx).LockByID(ctx, employeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return scheduleerrors.ErrEmployeeNotFound
			}
			return storage.MapError("assign schedule lock employee", err)
		}

		qtx := s.repo.WithTx(tx)
		exists, err := qtx.ShiftExists(ctx, shiftID)
		if err != nil {
			return storage.MapError("assign schedule shift lookup", err)
		}
		if !exists {
			return scheduleerrors.ErrShiftNotFound
		}

		current, err := qtx.FindByEmployee(ctx, employeeID)
		if err != nil {
			return storage.MapError("assign schedule overlap check", err)
		}
		if existing := FirstOverlap(current, rng); existing != nil {
			s.logger.Warn("assign schedule overlap detected",
				zap.String("employee_id", req.EmployeeID),
				zap.String("conflicting_schedule_id", existing.ID.String()),
			)
			return overlapError(existing.ID.String())
		}

		if err := qtx.Create(ctx, &sched); err != nil {
			mapped := storage.MapError("assign schedule", err)
			if errors.Is(mapped, storage.ErrOverlap) {
				return overlapError("")
			}
			return mapped
		}
		return nil
	})
	if err != nil {
		return AssignResult{}, err
	}

	s.logger.Info("assign schedule success",
		zap.String("schedule_id", sched.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return AssignResult{ID: sched.ID.String()}, nil
}

func overlapError(conflictingID string) error {
	if conflictingID == "" {
		return scheduleerrors.ErrScheduleOverlap
	}
	return scheduleerrors.ErrScheduleOverlap.WithDetails(map[string]string{
		"conflicting_schedule_id": conflictingID,
	})
}

func parseRange(start, end string) (DateRange, error) {
	s, err := datetime.ParseDate(start)
	if err != nil {
		return DateRange{}, scheduleerrors.ErrInvalidDateFormat
	}
	e, err := datetime.ParseDate(end)
	if err != nil {
		return DateRange{}, scheduleerrors.ErrInvalidDateFormat
	}
	if s.After(e) {
		return DateRange{}, scheduleerrors.ErrInvalidDateRange
	}
	return DateRange{Start: s, End: e}, nil
}

func (s *service) GetAll(ctx context.Context, q ListScheduleQuery) ([]ScheduleResponse, error) {
	if q.EmployeeID == nil && q.EmployeeNumber == nil {
		return nil, scheduleerrors.ErrEmployeeFilterRequired
	}

	var employeeID *uuid.UUID
	if q.EmployeeID != nil {
		id, err := uuid.Parse(*q.EmployeeID)
		if err != nil {
			return nil, scheduleerrors.ErrInvalidEmployeeID
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

	rows, err := s.repo.FindAll(ctx, filter.New(
		filter.Eq(ColumnEmployeeID, employeeID),
		filter.Eq(ColumnEmployeeNumber, q.EmployeeNumber),
		filter.From(ColumnStartDate, from),
		filter.Until(ColumnEndDate, to),
	).Sort(ListOrder...))
	if err != nil {
		s.logger.Error("list schedules failed", zap.Error(err))
		return nil, storage.MapError("list schedules", err)
	}

	resp := make([]ScheduleResponse, len(rows))
	for i, r := range rows {
		resp[i] = ScheduleResponse{
			ID:             r.ID.String(),
			EmployeeID:     r.EmployeeID.String(),
			EmployeeNumber: r.EmployeeNumber,
			EmployeeName:   r.EmployeeName,
			StartDate:      datetime.FormatDate(r.StartDate),
			EndDate:        datetime.FormatDate(r.EndDate),
			ShiftID:        r.ShiftID.String(),
			ShiftName:      r.ShiftName,
			ShiftStartTime: r.ShiftStartTime,
			ShiftEndTime:   r.ShiftEndTime,
			IsNightShift:   r.IsNightShift,
		}
	}
	return resp, nil
}

func optionalDate(v *string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	t, err := datetime.ParseOptionalDate(*v)
	if err != nil {
		return nil, scheduleerrors.ErrInvalidDateFormat
	}
	return t, nil
}
