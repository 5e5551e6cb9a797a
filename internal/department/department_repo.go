package department

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]DepartmentRow, error)
	FindByID(ctx context.Context, id uuid.UUID) (*DepartmentRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const (
	selectWithParent      = "d.*, p.dept_name AS parent_name"
	selectWithParentCount = selectWithParent + ", (SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id) AS employee_count"
)

func (r *repository) withParent(ctx context.Context, columns string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("departments d").
		Select(columns).
		Joins("LEFT JOIN departments p ON p.id = d.parent_id")
}

// FindAll returns every department with its parent name, sorted by name.
func (r *repository) FindAll(ctx context.Context) ([]DepartmentRow, error) {
	rows := make([]DepartmentRow, 0)
	err := r.withParent(ctx, selectWithParent).Order("d.dept_name ASC").Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*DepartmentRow, error) {
	var rows []DepartmentRow
	err := r.withParent(ctx, selectWithParentCount).
		Where("d.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}
