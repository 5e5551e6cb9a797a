package stats

import (
	"bytes"
	"context"
	"fmt"

	"go-attendance/internal/shared/datetime"
	"go-attendance/internal/shared/filter"
	"go-attendance/internal/shared/storage"
	statserrors "go-attendance/internal/stats/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	MonthlyStats(ctx context.Context, q MonthlyStatsQuery) ([]MonthlyStatResponse, error)
	Holidays(ctx context.Context, q HolidayQuery) ([]HolidayResponse, error)
	ExportMonthlyStats(ctx context.Context, q MonthlyStatsQuery) (*bytes.Buffer, string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("stats.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stats.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) MonthlyStats(ctx context.Context, q MonthlyStatsQuery) ([]MonthlyStatResponse, error) {
	rows, err := s.monthly(ctx, q)
	if err != nil {
		return nil, err
	}

	resp := make([]MonthlyStatResponse, len(rows))
	for i, r := range rows {
		resp[i] = MonthlyStatResponse{
			EmployeeID:     r.EmployeeID.String(),
			EmployeeNumber: r.EmployeeNumber,
			EmployeeName:   r.EmployeeName,
			DeptName:       r.DeptName,
			Year:           r.Year,
			Month:          r.Month,
			NormalDays:     r.NormalDays,
			LateDays:       r.LateDays,
			AbsentDays:     r.AbsentDays,
			LeaveDays:      r.LeaveDays,
			TotalRecords:   r.TotalRecords,
		}
	}
	return resp, nil
}

func (s *service) monthly(ctx context.Context, q MonthlyStatsQuery) ([]MonthlyStat, error) {
	if err := validatePeriod(q.Year, q.Month); err != nil {
		return nil, err
	}

	departmentID, err := optionalUUID(q.DepartmentID, statserrors.ErrInvalidDepartmentID)
	if err != nil {
		return nil, err
	}
	employeeID, err := optionalUUID(q.EmployeeID, statserrors.ErrInvalidEmployeeID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.MonthlyStats(ctx, filter.New(
		filter.Eq(ColumnYear, &q.Year),
		filter.Eq(ColumnMonth, &q.Month),
		filter.Eq(ColumnDepartmentID, departmentID),
		filter.Eq(ColumnEmployeeID, employeeID),
	).Sort(MonthlyOrder...))
	if err != nil {
		s.logger.Error("monthly stats query failed",
			zap.Int("year", q.Year),
			zap.Int("month", q.Month),
			zap.Error(err),
		)
		return nil, storage.MapError("monthly stats", err)
	}
	return rows, nil
}

func (s *service) Holidays(ctx context.Context, q HolidayQuery) ([]HolidayResponse, error) {
	if q.Year != nil && (*q.Year < 1 || *q.Year > 9999) {
		return nil, statserrors.ErrInvalidYear
	}
	if q.Month != nil && (*q.Month < 1 || *q.Month > 12) {
		return nil, statserrors.ErrInvalidMonth
	}

	rows, err := s.repo.Holidays(ctx, filter.New(
		filter.Expr(HolidayYearExpr, q.Year),
		filter.Expr(HolidayMonthExpr, q.Month),
		filter.Eq(ColumnIsPaid, q.IsPaid),
	).Sort(HolidayOrder...))
	if err != nil {
		s.logger.Error("list holidays failed", zap.Error(err))
		return nil, storage.MapError("list holidays", err)
	}

	resp := make([]HolidayResponse, len(rows))
	for i, h := range rows {
		resp[i] = HolidayResponse{
			ID:          h.ID.String(),
			HolidayName: h.HolidayName,
			HolidayDate: datetime.FormatDate(h.HolidayDate),
			IsPaid:      h.IsPaid,
		}
	}
	return resp, nil
}

// ExportMonthlyStats renders the same rows MonthlyStats returns as an
// .xlsx workbook and suggests a file name for it.
func (s *service) ExportMonthlyStats(ctx context.Context, q MonthlyStatsQuery) (*bytes.Buffer, string, error) {
	rows, err := s.monthly(ctx, q)
	if err != nil {
		return nil, "", err
	}

	buf, err := writeWorkbook(q.Year, q.Month, rows)
	if err != nil {
		s.logger.Error("write monthly stats workbook failed", zap.Error(err))
		return nil, "", statserrors.ErrExportFailed
	}

	s.logger.Info("monthly stats exported",
		zap.Int("year", q.Year),
		zap.Int("month", q.Month),
		zap.Int("rows", len(rows)),
	)
	return buf, fmt.Sprintf("attendance_stats_%04d_%02d.xlsx", q.Year, q.Month), nil
}

func validatePeriod(year, month int) error {
	if year < 1 || year > 9999 {
		return statserrors.ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return statserrors.ErrInvalidMonth
	}
	return nil
}

func optionalUUID(v *string, invalid error) (*uuid.UUID, error) {
	if v == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil, invalid
	}
	return &id, nil
}
