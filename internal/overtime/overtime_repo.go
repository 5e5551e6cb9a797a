package overtime

import (
	"context"
	"database/sql"

	"go-attendance/internal/shared/filter"
	"go-attendance/internal/shared/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ColumnEmployeeID     = "overtimes.employee_id"
	ColumnEmployeeNumber = "employees.employee_number"
	ColumnOvertimeDate   = "overtimes.overtime_date"
	ColumnStatus         = "overtimes.status"
)

var ListOrder = []filter.Order{
	filter.Desc("overtimes.overtime_date"),
	filter.Asc("employees.name"),
}

//go:generate mockgen -source=overtime_repo.go -destination=mock/overtime_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, o *Overtime) error
	FindAll(ctx context.Context, spec filter.Spec) ([]OvertimeRow, error)
	FindByID(ctx context.Context, id uuid.UUID) (*OvertimeRow, error)
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

func (r *repository) Create(ctx context.Context, o *Overtime) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) detail(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Overtime{}).
		Select("overtimes.*, employees.employee_number, employees.name AS employee_name, departments.dept_name").
		Joins("JOIN employees ON employees.id = overtimes.employee_id").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id")
}

func (r *repository) FindAll(ctx context.Context, spec filter.Spec) ([]OvertimeRow, error) {
	rows := make([]OvertimeRow, 0)
	err := r.detail(ctx).Scopes(filter.Scope(spec)).Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*OvertimeRow, error) {
	var rows []OvertimeRow
	if err := r.detail(ctx).Where("overtimes.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}
