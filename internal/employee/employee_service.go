package employee

import (
	"context"
	"errors"

	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/shared/datetime"
	"go-attendance/internal/shared/filter"
	"go-attendance/internal/shared/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, q ListEmployeesQuery) ([]EmployeeResponse, error)
	Lookup(ctx context.Context, q LookupEmployeeQuery) (EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, q ListEmployeesQuery) ([]EmployeeResponse, error) {
	s.logger.Debug("list employees requested",
		zap.Stringp("department_id", q.DepartmentID),
		zap.Stringp("status", q.Status),
	)

	var departmentID *uuid.UUID
	if q.DepartmentID != nil {
		id, err := uuid.Parse(*q.DepartmentID)
		if err != nil {
			return nil, employeeerrors.ErrInvalidDepartmentID
		}
		departmentID = &id
	}

	spec := filter.New(
		filter.Eq(ColumnDepartmentID, departmentID),
		filter.Eq(ColumnStatus, q.Status),
	).Sort(DirectoryOrder...)
	s.logger.Debug("list employees query built", zap.Bool("filtered", !spec.Empty()))

	rows, err := s.repo.FindAll(ctx, spec)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, storage.MapError("list employees", err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) Lookup(ctx context.Context, q LookupEmployeeQuery) (EmployeeResponse, error) {
	if q.ID == nil && q.EmployeeNumber == nil {
		return EmployeeResponse{}, employeeerrors.ErrLookupKeyRequired
	}

	var id *uuid.UUID
	if q.ID != nil {
		parsed, err := uuid.Parse(*q.ID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		id = &parsed
	}

	spec := filter.New(
		filter.Eq(ColumnID, id),
		filter.Eq(ColumnEmployeeNumber, q.EmployeeNumber),
	)
	return s.findOne(ctx, "lookup employee", spec)
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	return s.findOne(ctx, "get employee", filter.New(filter.Eq(ColumnID, &parsed)))
}

func (s *service) findOne(ctx context.Context, op string, spec filter.Spec) (EmployeeResponse, error) {
	row, err := s.repo.FindOne(ctx, spec)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error(op+" failed", zap.Error(err))
		return EmployeeResponse{}, storage.MapError(op, err)
	}
	return mapToResponse(*row), nil
}

func mapToResponse(row EmployeeRow) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             row.ID.String(),
		EmployeeNumber: row.EmployeeNumber,
		FullName:       row.FullName,
		Position:       row.Position,
		DepartmentName: row.DepartmentName,
		Status:         row.Status,
	}
	if row.DepartmentID != nil {
		v := row.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if row.HireDate != nil {
		v := datetime.FormatDate(*row.HireDate)
		resp.HireDate = &v
	}
	return resp
}

func mapToListResponse(rows []EmployeeRow) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}
