package attendance_test

import (
	"context"
	"regexp"
	"testing"

	"go-attendance/internal/attendance"
	"go-attendance/internal/shared/filter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gdb, mock
}

func TestRepository_FindAllJoinsDetailAndOrders(t *testing.T) {
	gdb, mock := newGormMock(t)
	employeeNumber := "E-001"

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT attendance_records.*, employees.employee_number, employees.name AS employee_name, departments.dept_name FROM "attendance_records" ` +
			`JOIN employees ON employees.id = attendance_records.employee_id ` +
			`LEFT JOIN departments ON departments.id = employees.department_id ` +
			`WHERE employees.employee_number = $1 AND attendance_records.status IN ($2,$3) ` +
			`ORDER BY attendance_records.record_date DESC, employees.name ASC`,
	)).
		WithArgs(employeeNumber, "Late", "Absent").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_number", "employee_name", "status"}).
			AddRow(uuid.NewString(), employeeNumber, "Ana", "Late"))

	spec := filter.New(
		filter.Eq(attendance.ColumnEmployeeNumber, &employeeNumber),
		filter.In(attendance.ColumnStatus, []string{"Late", "Absent"}),
	).Sort(attendance.ListOrder...)

	rows, err := attendance.NewRepository(gdb).FindAll(context.Background(), spec)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", rows[0].EmployeeName)
	assert.Equal(t, attendance.StatusLate, rows[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertIfAbsentReportsConflict(t *testing.T) {
	gdb, mock := newGormMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "attendance_records"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := attendance.NewRepository(gdb).InsertIfAbsent(context.Background(), &attendance.AttendanceRecord{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		Status:     attendance.StatusNormal,
	})
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
