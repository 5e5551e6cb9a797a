package schedule

import (
	"context"
	"database/sql"

	"go-attendance/internal/shared/filter"
	"go-attendance/internal/shared/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ColumnEmployeeID     = "schedules.employee_id"
	ColumnEmployeeNumber = "employees.employee_number"
	ColumnStartDate      = "schedules.start_date"
	ColumnEndDate        = "schedules.end_date"
)

var ListOrder = []filter.Order{
	filter.Asc("schedules.start_date"),
	filter.Asc("employees.name"),
}

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	ListShifts(ctx context.Context) ([]Shift, error)
	ShiftExists(ctx context.Context, id uuid.UUID) (bool, error)
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Schedule, error)
	Create(ctx context.Context, s *Schedule) error
	FindAll(ctx context.Context, spec filter.Spec) ([]ScheduleRow, error)
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

func (r *repository) ListShifts(ctx context.Context) ([]Shift, error) {
	shifts := make([]Shift, 0)
	err := r.db.WithContext(ctx).
		Model(&Shift{}).
		Select("id, shift_name, start_time::text AS start_time, end_time::text AS end_time, is_night_shift").
		Order("start_time ASC, shift_name ASC").
		Scan(&shifts).Error
	return shifts, err
}

func (r *repository) ShiftExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Shift{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// FindByEmployee returns every schedule of employeeID, earliest first.
func (r *repository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Schedule, error) {
	schedules := make([]Schedule, 0)
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *repository) Create(ctx context.Context, s *Schedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context, spec filter.Spec) ([]ScheduleRow, error) {
	rows := make([]ScheduleRow, 0)
	err := r.db.WithContext(ctx).
		Model(&Schedule{}).
		Select("schedules.*, employees.employee_number, employees.name AS employee_name, " +
			"shifts.shift_name, shifts.start_time::text AS shift_start_time, " +
			"shifts.end_time::text AS shift_end_time, shifts.is_night_shift").
		Joins("JOIN employees ON employees.id = schedules.employee_id").
		Joins("JOIN shifts ON shifts.id = schedules.shift_id").
		Scopes(filter.Scope(spec)).
		Scan(&rows).Error
	return rows, err
}
