package employee_test

import (
	"context"
	"errors"
	"testing"

	"go-attendance/internal/employee"
	employeeerrors "go-attendance/internal/employee/errors"
	employeeMock "go-attendance/internal/employee/mock"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/filter"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func strPtr(v string) *string { return &v }

func setupServiceTest(t *testing.T) (employee.Service, *employeeMock.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := employeeMock.NewMockRepository(ctrl)
	return employee.NewService(repo), repo
}

func TestEmployeeService_GetAllLogsWhetherFiltered(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.DebugLevel)
	ctrl := gomock.NewController(t)
	repo := employeeMock.NewMockRepository(ctrl)
	svc := employee.NewService(repo, zap.New(core))

	repo.EXPECT().FindAll(ctx, gomock.Any()).Return(nil, nil).Times(2)

	_, err := svc.GetAll(ctx, employee.ListEmployeesQuery{})
	assert.NoError(t, err)
	_, err = svc.GetAll(ctx, employee.ListEmployeesQuery{Status: strPtr(employee.StatusActive)})
	assert.NoError(t, err)

	built := logs.FilterMessage("list employees query built").All()
	if assert.Len(t, built, 2) {
		assert.Equal(t, false, built[0].ContextMap()["filtered"])
		assert.Equal(t, true, built[1].ContextMap()["filtered"])
	}
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("no filters returns directory order", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		deptName := "Engineering"

		repo.EXPECT().
			FindAll(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, spec filter.Spec) ([]employee.EmployeeRow, error) {
				assert.True(t, spec.Empty())
				assert.Equal(t, employee.DirectoryOrder, spec.OrderBy)
				return []employee.EmployeeRow{
					{Employee: employee.Employee{ID: uuid.New(), FullName: "Ana", Status: employee.StatusActive}, DepartmentName: &deptName},
					{Employee: employee.Employee{ID: uuid.New(), FullName: "Budi", Status: employee.StatusActive}, DepartmentName: &deptName},
				}, nil
			})

		resp, err := svc.GetAll(ctx, employee.ListEmployeesQuery{})

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Ana", resp[0].FullName)
		assert.Equal(t, &deptName, resp[0].DepartmentName)
	})

	t.Run("status with no match is empty, not an error", func(t *testing.T) {
		svc, repo := setupServiceTest(t)

		repo.EXPECT().
			FindAll(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, spec filter.Spec) ([]employee.EmployeeRow, error) {
				assert.False(t, spec.Empty())
				return []employee.EmployeeRow{}, nil
			})

		resp, err := svc.GetAll(ctx, employee.ListEmployeesQuery{Status: strPtr("Retired")})

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Empty(t, resp)
	})

	t.Run("malformed department id", func(t *testing.T) {
		svc, _ := setupServiceTest(t)

		_, err := svc.GetAll(ctx, employee.ListEmployeesQuery{DepartmentID: strPtr("sales")})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidDepartmentID)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().FindAll(ctx, gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := svc.GetAll(ctx, employee.ListEmployeesQuery{})

		assert.True(t, apperror.IsStorage(err))
		assert.Equal(t, "list employees failed", apperror.ToHTTP(err).Message)
	})
}

func TestEmployeeService_Lookup(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("requires a key", func(t *testing.T) {
		svc, _ := setupServiceTest(t)

		_, err := svc.Lookup(ctx, employee.LookupEmployeeQuery{})

		assert.ErrorIs(t, err, employeeerrors.ErrLookupKeyRequired)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("zero-looking number is still a key", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		want := filter.New(
			filter.Eq[uuid.UUID](employee.ColumnID, nil),
			filter.Eq(employee.ColumnEmployeeNumber, strPtr("0")),
		)

		repo.EXPECT().
			FindOne(ctx, want).
			Return(&employee.EmployeeRow{Employee: employee.Employee{ID: id, EmployeeNumber: "0"}}, nil)

		resp, err := svc.Lookup(ctx, employee.LookupEmployeeQuery{EmployeeNumber: strPtr("0")})

		assert.NoError(t, err)
		assert.Equal(t, "0", resp.EmployeeNumber)
	})

	t.Run("both keys must match the same row", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		want := filter.New(
			filter.Eq(employee.ColumnID, &id),
			filter.Eq(employee.ColumnEmployeeNumber, strPtr("EMP-002")),
		)

		repo.EXPECT().FindOne(ctx, want).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Lookup(ctx, employee.LookupEmployeeQuery{ID: strPtr(id.String()), EmployeeNumber: strPtr("EMP-002")})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, _ := setupServiceTest(t)

		_, err := svc.Lookup(ctx, employee.LookupEmployeeQuery{ID: strPtr("17")})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().FindOne(ctx, gomock.Any()).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetByID(ctx, uuid.NewString())

		assert.True(t, apperror.IsNotFound(err))
	})
}
