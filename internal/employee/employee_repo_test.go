package employee_test

import (
	"context"
	"regexp"
	"testing"

	"go-attendance/internal/employee"
	"go-attendance/internal/shared/filter"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestRepository_FindAllSortsByDepartmentThenName(t *testing.T) {
	gdb, mock := newGormMock(t)
	status := "Active"

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT employees.*, departments.dept_name FROM "employees" LEFT JOIN departments ON departments.id = employees.department_id WHERE employees.status = $1 ORDER BY departments.dept_name ASC, employees.name ASC`,
	)).
		WithArgs(status).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "dept_name"}))

	spec := filter.New(filter.Eq(employee.ColumnStatus, &status)).Sort(employee.DirectoryOrder...)
	rows, err := employee.NewRepository(gdb).FindAll(context.Background(), spec)

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
