package department_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-attendance/internal/department"
	departmenterrors "go-attendance/internal/department/errors"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepository struct {
	findAllFn  func(ctx context.Context) ([]department.DepartmentRow, error)
	findByIDFn func(ctx context.Context, id uuid.UUID) (*department.DepartmentRow, error)
}

func (f *fakeRepository) FindAll(ctx context.Context) ([]department.DepartmentRow, error) {
	return f.findAllFn(ctx)
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*department.DepartmentRow, error) {
	return f.findByIDFn(ctx, id)
}

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()
	parent := "Operations"
	rows := []department.DepartmentRow{
		{Department: department.Department{ID: uuid.New(), Code: "ENG", Name: "Engineering"}},
		{Department: department.Department{ID: uuid.New(), Code: "WH", Name: "Warehouse"}, ParentName: &parent},
	}

	t.Run("cache miss loads and stores", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		repo := &fakeRepository{findAllFn: func(context.Context) ([]department.DepartmentRow, error) {
			calls++
			return rows, nil
		}}
		svc := department.NewService(repo, cache.NewReadThrough(rdb, time.Hour, zap.NewNop()))

		mock.ExpectGet(department.DepartmentListKey).RedisNil()
		want, _ := json.Marshal([]department.DepartmentResponse{
			{ID: rows[0].ID.String(), Code: "ENG", Name: "Engineering"},
			{ID: rows[1].ID.String(), Code: "WH", Name: "Warehouse", ParentName: &parent},
		})
		mock.ExpectSet(department.DepartmentListKey, want, time.Hour).SetVal("OK")

		resp, err := svc.GetAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		require.Len(t, resp, 2)
		assert.Equal(t, "Engineering", resp[0].Name)
		assert.Equal(t, &parent, resp[1].ParentName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		repo := &fakeRepository{findAllFn: func(context.Context) ([]department.DepartmentRow, error) {
			t.Fatal("repository must not be called on hit")
			return nil, nil
		}}
		svc := department.NewService(repo, cache.NewReadThrough(rdb, time.Hour, zap.NewNop()))

		cached, _ := json.Marshal([]department.DepartmentResponse{{ID: "x", Code: "ENG", Name: "Engineering"}})
		mock.ExpectGet(department.DepartmentListKey).SetVal(string(cached))

		resp, err := svc.GetAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, "ENG", resp[0].Code)
	})

	t.Run("storage failure is not cached", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		repo := &fakeRepository{findAllFn: func(context.Context) ([]department.DepartmentRow, error) {
			return nil, errors.New("connection refused")
		}}
		svc := department.NewService(repo, cache.NewReadThrough(rdb, time.Hour, zap.NewNop()))
		mock.ExpectGet(department.DepartmentListKey).RedisNil()

		_, err := svc.GetAll(ctx)

		assert.True(t, apperror.IsStorage(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("includes employee count", func(t *testing.T) {
		repo := &fakeRepository{findByIDFn: func(_ context.Context, got uuid.UUID) (*department.DepartmentRow, error) {
			assert.Equal(t, id, got)
			return &department.DepartmentRow{
				Department:    department.Department{ID: id, Code: "ENG", Name: "Engineering"},
				EmployeeCount: 12,
			}, nil
		}}
		svc := department.NewService(repo, nil)

		resp, err := svc.GetByID(ctx, id.String())

		require.NoError(t, err)
		require.NotNil(t, resp.EmployeeCount)
		assert.Equal(t, int64(12), *resp.EmployeeCount)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeRepository{findByIDFn: func(context.Context, uuid.UUID) (*department.DepartmentRow, error) {
			return nil, gorm.ErrRecordNotFound
		}}

		_, err := department.NewService(repo, nil).GetByID(ctx, id.String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := department.NewService(&fakeRepository{}, nil).GetByID(ctx, "HR")

		assert.ErrorIs(t, err, departmenterrors.ErrInvalidDepartmentID)
	})
}
