package stats_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/filter"
	"go-attendance/internal/stats"
	statserrors "go-attendance/internal/stats/errors"
	"go-attendance/internal/stats/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T { return &v }

func TestStatsService_MonthlyStatsValidation(t *testing.T) {
	tests := []struct {
		name string
		q    stats.MonthlyStatsQuery
		want error
	}{
		{name: "month zero", q: stats.MonthlyStatsQuery{Year: 2024, Month: 0}, want: statserrors.ErrInvalidMonth},
		{name: "month thirteen", q: stats.MonthlyStatsQuery{Year: 2024, Month: 13}, want: statserrors.ErrInvalidMonth},
		{name: "year zero", q: stats.MonthlyStatsQuery{Year: 0, Month: 1}, want: statserrors.ErrInvalidYear},
		{name: "year too large", q: stats.MonthlyStatsQuery{Year: 10000, Month: 1}, want: statserrors.ErrInvalidYear},
		{name: "bad department", q: stats.MonthlyStatsQuery{Year: 2024, Month: 1, DepartmentID: ptr("x")}, want: statserrors.ErrInvalidDepartmentID},
		{name: "bad employee", q: stats.MonthlyStatsQuery{Year: 2024, Month: 1, EmployeeID: ptr("x")}, want: statserrors.ErrInvalidEmployeeID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := stats.NewService(mock.NewMockRepository(ctrl))

			_, err := svc.MonthlyStats(context.Background(), tt.q)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, apperror.IsValidation(err))
		})
	}
}

func TestStatsService_MonthlyStats(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	svc := stats.NewService(repo)

	deptID := uuid.New()
	employeeID := uuid.New()
	engineering := "Engineering"

	repo.EXPECT().MonthlyStats(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, spec filter.Spec) ([]stats.MonthlyStat, error) {
			assert.False(t, spec.Empty())
			assert.Equal(t, stats.MonthlyOrder, spec.OrderBy)
			return []stats.MonthlyStat{{
				EmployeeID:     employeeID,
				EmployeeNumber: "E-001",
				EmployeeName:   "Ana",
				DeptName:       &engineering,
				Year:           2024,
				Month:          1,
				NormalDays:     18,
				LateDays:       2,
				LeaveDays:      1,
				TotalRecords:   21,
			}}, nil
		})

	resp, err := svc.MonthlyStats(ctx, stats.MonthlyStatsQuery{
		Year:         2024,
		Month:        1,
		DepartmentID: ptr(deptID.String()),
		EmployeeID:   ptr(employeeID.String()),
	})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, employeeID.String(), resp[0].EmployeeID)
	assert.EqualValues(t, 21, resp[0].TotalRecords)
}

func TestStatsService_MonthlyStatsEmpty(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().MonthlyStats(ctx, gomock.Any()).Return([]stats.MonthlyStat{}, nil)

	resp, err := stats.NewService(repo).MonthlyStats(ctx, stats.MonthlyStatsQuery{Year: 2024, Month: 2})
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, resp)
}

func TestStatsService_MonthlyStatsStorageError(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().MonthlyStats(ctx, gomock.Any()).Return(nil, errors.New("connection reset"))

	_, err := stats.NewService(repo).MonthlyStats(ctx, stats.MonthlyStatsQuery{Year: 2024, Month: 2})
	assert.True(t, apperror.IsStorage(err))
}

func TestStatsService_Holidays(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid month", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := stats.NewService(mock.NewMockRepository(ctrl))
		_, err := svc.Holidays(ctx, stats.HolidayQuery{Month: ptr(13)})
		assert.ErrorIs(t, err, statserrors.ErrInvalidMonth)
	})

	t.Run("no filters lists all", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		repo.EXPECT().Holidays(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, spec filter.Spec) ([]stats.Holiday, error) {
				assert.True(t, spec.Empty())
				return []stats.Holiday{{
					ID:          uuid.New(),
					HolidayName: "New Year",
					HolidayDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
					IsPaid:      true,
				}}, nil
			})

		resp, err := stats.NewService(repo).Holidays(ctx, stats.HolidayQuery{})
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "2024-01-01", resp[0].HolidayDate)
	})
}

func TestStatsService_ExportMonthlyStats(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().MonthlyStats(ctx, gomock.Any()).Return([]stats.MonthlyStat{
		{EmployeeID: uuid.New(), EmployeeNumber: "E-001", EmployeeName: "Ana", NormalDays: 20, LateDays: 1, TotalRecords: 21},
		{EmployeeID: uuid.New(), EmployeeNumber: "E-002", EmployeeName: "Budi", AbsentDays: 2, TotalRecords: 2},
	}, nil)

	buf, filename, err := stats.NewService(repo).ExportMonthlyStats(ctx, stats.MonthlyStatsQuery{Year: 2024, Month: 3})
	require.NoError(t, err)
	assert.Equal(t, "attendance_stats_2024_03.xlsx", filename)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{stats.SheetName}, f.GetSheetList())

	title, err := f.GetCellValue(stats.SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Attendance 2024-03", title)

	rows, err := f.GetRows(stats.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Employee Number", rows[1][0])
	assert.Equal(t, []string{"E-001", "Ana", "", "20", "1", "0", "0", "21"}, rows[2])
	assert.Equal(t, "Budi", rows[3][1])
}

func TestStatsService_ExportValidatesPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := stats.NewService(mock.NewMockRepository(ctrl))

	_, _, err := svc.ExportMonthlyStats(context.Background(), stats.MonthlyStatsQuery{Year: 2024, Month: 0})
	assert.ErrorIs(t, err, statserrors.ErrInvalidMonth)
}
