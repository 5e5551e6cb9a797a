package stats

import (
	"context"

	"go-attendance/internal/shared/filter"

	"gorm.io/gorm"
)

const (
	ColumnYear         = "mas.year"
	ColumnMonth        = "mas.month"
	ColumnEmployeeID   = "mas.employee_id"
	ColumnDepartmentID = "e.department_id"

	HolidayYearExpr  = "EXTRACT(YEAR FROM holiday_date) = ?"
	HolidayMonthExpr = "EXTRACT(MONTH FROM holiday_date) = ?"
	ColumnIsPaid     = "is_paid"
)

var (
	MonthlyOrder = []filter.Order{
		filter.Asc("mas.dept_name"),
		filter.Asc("mas.employee_name"),
	}
	HolidayOrder = []filter.Order{
		filter.Asc("holiday_date"),
	}
)

//go:generate mockgen -source=stats_repo.go -destination=mock/stats_repo_mock.go -package=mock
type Repository interface {
	MonthlyStats(ctx context.Context, spec filter.Spec) ([]MonthlyStat, error)
	Holidays(ctx context.Context, spec filter.Spec) ([]Holiday, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// MonthlyStats reads the aggregate view joined to employees so the
// department filter sees the employee's current department.
func (r *repository) MonthlyStats(ctx context.Context, spec filter.Spec) ([]MonthlyStat, error) {
	rows := make([]MonthlyStat, 0)
	err := r.db.WithContext(ctx).
		Table("monthly_attendance_stats AS mas").
		Select("mas.*").
		Joins("JOIN employees e ON e.id = mas.employee_id").
		Scopes(filter.Scope(spec)).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Holidays(ctx context.Context, spec filter.Spec) ([]Holiday, error) {
	rows := make([]Holiday, 0)
	err := r.db.WithContext(ctx).
		Model(&Holiday{}).
		Select("id, holiday_name, holiday_date, is_paid").
		Scopes(filter.Scope(spec)).
		Scan(&rows).Error
	return rows, err
}
