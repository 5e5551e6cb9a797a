package leave

import (
	"context"
	"database/sql"

	"go-attendance/internal/shared/filter"
	"go-attendance/internal/shared/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ColumnEmployeeID     = "leaves.employee_id"
	ColumnEmployeeNumber = "employees.employee_number"
	ColumnStartDate      = "leaves.start_date"
	ColumnEndDate        = "leaves.end_date"
	ColumnStatus         = "leaves.status"
	ColumnLeaveType      = "leaves.leave_type"
)

// ListOrder is latest start first, then employee name.
var ListOrder = []filter.Order{
	filter.Desc("leaves.start_date"),
	filter.Asc("employees.name"),
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context, spec filter.Spec) ([]LeaveRow, error)
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: storage.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) detail(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Leave{}).
		Select("leaves.*, employees.employee_number, employees.name AS employee_name, departments.dept_name").
		Joins("JOIN employees ON employees.id = leaves.employee_id").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id")
}

func (r *repository) FindAll(ctx context.Context, spec filter.Spec) ([]LeaveRow, error) {
	rows := make([]LeaveRow, 0)
	err := filter.Apply(r.detail(ctx), spec).Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRow, error) {
	var rows []LeaveRow
	if err := r.detail(ctx).Where("leaves.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}
