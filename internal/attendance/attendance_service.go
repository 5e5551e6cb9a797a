package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/datetime"
	"go-attendance/internal/shared/filter"
	"go-attendance/internal/shared/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitAttendanceRequest) (SubmitResult, error)
	Reconcile(ctx context.Context, sub Submission) (SubmitResult, error)
	ClockIn(ctx context.Context, employeeID string, req ClockRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockRequest) (AttendanceResponse, error)
	Get(ctx context.Context, employeeID, recordDate string) (AttendanceResponse, error)
	GetAll(ctx context.Context, q ListAttendanceQuery) ([]AttendanceResponse, error)
}

// guard inspects the locked row (nil when absent) before a write and may
// adjust the submission that will be merged into it.
type guard func(existing *AttendanceRecord, sub *Submission) error

type service struct {
	db     *sql.DB
	repo   Repository
	policy Policy
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, policy Policy, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, policy: policy, logger: l}
}

func (s *service) Submit(ctx context.Context, req SubmitAttendanceRequest) (SubmitResult, error) {
	s.logger.Debug("submit attendance requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("record_date", req.RecordDate),
	)

	sub, err := parseSubmission(req)
	if err != nil {
		s.logger.Warn("submit attendance validation failed", zap.Error(err))
		return SubmitResult{}, err
	}
	return s.Reconcile(ctx, sub)
}

func (s *service) Reconcile(ctx context.Context, sub Submission) (SubmitResult, error) {
	if sub.Status == "" {
		sub.Status = StatusNormal
	}
	if len(sub.Status) > maxStatusLength {
		return SubmitResult{}, attendanceerrors.ErrInvalidStatus
	}

	rec, created, err := s.reconcileWith(ctx, "submit attendance", sub, nil)
	if err != nil {
		return SubmitResult{}, err
	}

	s.logger.Info("submit attendance success",
		zap.String("attendance_id", rec.ID.String()),
		zap.String("employee_id", sub.EmployeeID.String()),
		zap.String("record_date", datetime.FormatDate(sub.RecordDate)),
		zap.Bool("created", created),
	)
	return SubmitResult{ID: rec.ID.String(), Created: created}, nil
}

// reconcileWith runs lock, insert-if-absent and merge in one transaction.
// An insert that loses a race to a concurrent submission re-reads the
// winner under lock and merges into it.
func (s *service) reconcileWith(ctx context.Context, op string, sub Submission, check guard) (AttendanceRecord, bool, error) {
	var (
		result  AttendanceRecord
		created bool
	)
	now := time.Now().UTC()

	err := storage.RunInTx(ctx, s.db, op, func(tx *sql.Tx) error {
		qtx := s.repo.WithTx(tx)

		existing, err := s.lock(ctx, qtx, op, sub)
		if err != nil {
			return err
		}

		if existing == nil {
			if check != nil {
				if err := check(nil, &sub); err != nil {
					return err
				}
			}
			rec := reconcile(nil, sub, now)
			if err := validateClockTimes(rec); err != nil {
				return err
			}

			inserted, err := qtx.InsertIfAbsent(ctx, &rec)
			if err != nil {
				s.logger.Error(op+" insert failed", zap.Error(err))
				return mapWriteError(op, err)
			}
			if inserted {
				result, created = rec, true
				return nil
			}

			s.logger.Debug(op+" insert lost race, merging",
				zap.String("employee_id", sub.EmployeeID.String()),
			)
			if existing, err = s.lock(ctx, qtx, op, sub); err != nil {
				return err
			}
			if existing == nil {
				return apperror.Storage(op, errors.New("record missing after insert conflict"))
			}
		}

		if check != nil {
			if err := check(existing, &sub); err != nil {
				return err
			}
		}

		merged := reconcile(existing, sub, now)
		if err := validateClockTimes(merged); err != nil {
			return err
		}
		result = merged
		if sameContent(*existing, merged) {
			return nil
		}
		if err := qtx.Update(ctx, &merged); err != nil {
			s.logger.Error(op+" update failed", zap.Error(err))
			return mapWriteError(op, err)
		}
		return nil
	})
	return result, created, err
}

func (s *service) lock(ctx context.Context, qtx Repository, op string, sub Submission) (*AttendanceRecord, error) {
	existing, err := qtx.LockByEmployeeAndDate(ctx, sub.EmployeeID, sub.RecordDate)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error(op+" lock failed", zap.Error(err))
		return nil, storage.MapError(op, err)
	}
	return existing, nil
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockRequest) (AttendanceResponse, error) {
	eid, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	wall := s.policy.WallClock()
	sub := Submission{
		EmployeeID:  eid,
		RecordDate:  datetime.DateOf(wall),
		ClockInTime: &wall,
		Status:      s.policy.ClockInStatus(wall),
		Remark:      req.Remark,
	}

	rec, _, err := s.reconcileWith(ctx, "clock in", sub, func(existing *AttendanceRecord, _ *Submission) error {
		if existing != nil && existing.ClockInTime != nil {
			return attendanceerrors.ErrAlreadyClockedIn
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("clock in failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock in success",
		zap.String("employee_id", employeeID),
		zap.String("status", rec.Status),
	)
	return mapRecordToResponse(rec), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string, req ClockRequest) (AttendanceResponse, error) {
	eid, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	wall := s.policy.WallClock()
	sub := Submission{
		EmployeeID:   eid,
		RecordDate:   datetime.DateOf(wall),
		ClockOutTime: &wall,
		Remark:       req.Remark,
	}

	rec, _, err := s.reconcileWith(ctx, "clock out", sub, func(existing *AttendanceRecord, sub *Submission) error {
		if existing == nil || existing.ClockInTime == nil {
			return attendanceerrors.ErrNotClockedIn
		}
		if existing.ClockOutTime != nil {
			return attendanceerrors.ErrAlreadyClockedOut
		}
		sub.Status = existing.Status
		return nil
	})
	if err != nil {
		s.logger.Warn("clock out failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock out success", zap.String("employee_id", employeeID))
	return mapRecordToResponse(rec), nil
}

func (s *service) Get(ctx context.Context, employeeID, recordDate string) (AttendanceResponse, error) {
	eid, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	date, err := datetime.ParseDate(recordDate)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidRecordDate
	}

	row, err := s.repo.FindOne(ctx, filter.New(
		filter.Eq(ColumnEmployeeID, &eid),
		filter.Eq(ColumnRecordDate, &date),
	))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		s.logger.Error("get attendance failed", zap.Error(err))
		return AttendanceResponse{}, storage.MapError("get attendance", err)
	}
	return mapRowToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, q ListAttendanceQuery) ([]AttendanceResponse, error) {
	spec, err := listSpec(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAll(ctx, spec)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, storage.MapError("list attendance", err)
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapRowToResponse(r)
	}
	return resp, nil
}

func listSpec(q ListAttendanceQuery) (filter.Spec, error) {
	var employeeID *uuid.UUID
	if q.EmployeeID != nil {
		id, err := uuid.Parse(*q.EmployeeID)
		if err != nil {
			return filter.Spec{}, attendanceerrors.ErrInvalidEmployeeID
		}
		employeeID = &id
	}

	from, err := parseOptionalDate(q.StartDate)
	if err != nil {
		return filter.Spec{}, err
	}
	to, err := parseOptionalDate(q.EndDate)
	if err != nil {
		return filter.Spec{}, err
	}

	return filter.New(
		filter.Eq(ColumnEmployeeID, employeeID),
		filter.Eq(ColumnEmployeeNumber, q.EmployeeNumber),
		filter.DateRange(ColumnRecordDate, from, to),
		filter.In(ColumnStatus, splitList(q.Status)),
	).Sort(ListOrder...), nil
}

func parseSubmission(req SubmitAttendanceRequest) (Submission, error) {
	eid, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return Submission{}, attendanceerrors.ErrInvalidEmployeeID
	}
	date, err := datetime.ParseDate(req.RecordDate)
	if err != nil {
		return Submission{}, attendanceerrors.ErrInvalidRecordDate
	}
	clockIn, err := datetime.ParseOptionalTimestamp(req.ClockInTime)
	if err != nil {
		return Submission{}, attendanceerrors.ErrInvalidClockTime
	}
	clockOut, err := datetime.ParseOptionalTimestamp(req.ClockOutTime)
	if err != nil {
		return Submission{}, attendanceerrors.ErrInvalidClockTime
	}
	return Submission{
		EmployeeID:   eid,
		RecordDate:   date,
		ClockInTime:  clockIn,
		ClockOutTime: clockOut,
		Status:       req.Status,
		Remark:       req.Remark,
	}, nil
}

func parseOptionalDate(v *string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	t, err := datetime.ParseOptionalDate(*v)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateRange
	}
	return t, nil
}

func splitList(v *string) []string {
	if v == nil {
		return nil
	}
	var out []string
	for _, part := range strings.Split(*v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validateClockTimes(rec AttendanceRecord) error {
	if rec.ClockInTime != nil && rec.ClockOutTime != nil && rec.ClockOutTime.Before(*rec.ClockInTime) {
		return attendanceerrors.ErrClockOutBeforeClockIn
	}
	return nil
}

func mapWriteError(op string, err error) error {
	mapped := storage.MapError(op, err)
	if errors.Is(mapped, storage.ErrReferenceNotFound) {
		return attendanceerrors.ErrEmployeeNotFound
	}
	return mapped
}

func mapRecordToResponse(rec AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:           rec.ID.String(),
		EmployeeID:   rec.EmployeeID.String(),
		RecordDate:   datetime.FormatDate(rec.RecordDate),
		ClockInTime:  datetime.FormatOptionalTimestamp(rec.ClockInTime),
		ClockOutTime: datetime.FormatOptionalTimestamp(rec.ClockOutTime),
		Status:       rec.Status,
		Remark:       rec.Remark,
	}
}

func mapRowToResponse(row AttendanceRow) AttendanceResponse {
	resp := mapRecordToResponse(row.AttendanceRecord)
	resp.EmployeeNumber = row.EmployeeNumber
	resp.EmployeeName = row.EmployeeName
	resp.DeptName = row.DeptName
	return resp
}
