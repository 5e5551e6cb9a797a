package department

import (
	"context"
	"errors"

	departmenterrors "go-attendance/internal/department/errors"
	"go-attendance/internal/shared/cache"
	"go-attendance/internal/shared/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DepartmentListKey = "departments:all"

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
}

type service struct {
	repo   Repository
	cache  *cache.ReadThrough
	logger *zap.Logger
}

func NewService(repo Repository, rt *cache.ReadThrough, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, cache: rt, logger: l}
}

// GetAll serves the department list from cache; departments are reference
// data and change outside this service.
func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	return cache.Get(ctx, s.cache, DepartmentListKey, func(ctx context.Context) ([]DepartmentResponse, error) {
		s.logger.Debug("department list cache miss")
		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			s.logger.Error("list departments failed", zap.Error(err))
			return nil, storage.MapError("list departments", err)
		}
		return mapToListResponse(rows), nil
	})
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	row, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		s.logger.Error("get department failed", zap.String("department_id", id), zap.Error(err))
		return DepartmentResponse{}, storage.MapError("get department", err)
	}

	resp := mapToResponse(*row)
	resp.EmployeeCount = &row.EmployeeCount
	return resp, nil
}

func mapToResponse(d DepartmentRow) DepartmentResponse {
	resp := DepartmentResponse{
		ID:          d.ID.String(),
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		ParentName:  d.ParentName,
	}
	if d.ParentID != nil {
		v := d.ParentID.String()
		resp.ParentID = &v
	}
	return resp
}

func mapToListResponse(rows []DepartmentRow) []DepartmentResponse {
	resp := make([]DepartmentResponse, len(rows))
	for i, d := range rows {
		resp[i] = mapToResponse(d)
	}
	return resp
}
