package employee

import (
	"context"
	"database/sql"

	"go-attendance/internal/shared/filter"
	"go-attendance/internal/shared/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ColumnID             = "employees.id"
	ColumnEmployeeNumber = "employees.employee_number"
	ColumnDepartmentID   = "employees.department_id"
	ColumnStatus         = "employees.status"
)

// DirectoryOrder sorts by department name, then employee name.
var DirectoryOrder = []filter.Order{
	filter.Asc("departments.dept_name"),
	filter.Asc("employees.name"),
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context, spec filter.Spec) ([]EmployeeRow, error)
	FindOne(ctx context.Context, spec filter.Spec) (*EmployeeRow, error)
	LockByID(ctx context.Context, id uuid.UUID) (*Employee, error)
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

func (r *repository) directory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Select("employees.*, departments.dept_name").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id")
}

func (r *repository) FindAll(ctx context.Context, spec filter.Spec) ([]EmployeeRow, error) {
	rows := make([]EmployeeRow, 0)
	err := filter.Apply(r.directory(ctx), spec).Scan(&rows).Error
	return rows, err
}

func (r *repository) FindOne(ctx context.Context, spec filter.Spec) (*EmployeeRow, error) {
	var rows []EmployeeRow
	err := filter.Apply(r.directory(ctx), spec).Limit(1).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// LockByID reads the employee row FOR UPDATE. Writes that must be
// serialized per employee take this lock first.
func (r *repository) LockByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}
