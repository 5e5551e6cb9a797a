package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-attendance/internal/shared/filter"
	"go-attendance/internal/shared/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ColumnEmployeeID     = "attendance_records.employee_id"
	ColumnEmployeeNumber = "employees.employee_number"
	ColumnRecordDate     = "attendance_records.record_date"
	ColumnStatus         = "attendance_records.status"
)

// ListOrder is newest date first, then employee name.
var ListOrder = []filter.Order{
	filter.Desc("attendance_records.record_date"),
	filter.Asc("employees.name"),
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	LockByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*AttendanceRecord, error)
	InsertIfAbsent(ctx context.Context, rec *AttendanceRecord) (bool, error)
	Update(ctx context.Context, rec *AttendanceRecord) error
	FindOne(ctx context.Context, spec filter.Spec) (*AttendanceRow, error)
	FindAll(ctx context.Context, spec filter.Spec) ([]AttendanceRow, error)
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

// LockByEmployeeAndDate reads the row FOR UPDATE; gorm.ErrRecordNotFound
// when absent.
func (r *repository) LockByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND record_date = ?", employeeID, date).
		Take(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// InsertIfAbsent reports false when a row for the same employee and date
// already exists; the existing row is left untouched.
func (r *repository) InsertIfAbsent(ctx context.Context, rec *AttendanceRecord) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "record_date"}},
			DoNothing: true,
		}).
		Create(rec)
	return res.RowsAffected == 1, res.Error
}

func (r *repository) Update(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).
		Model(&AttendanceRecord{}).
		Where("id = ?", rec.ID).
		Updates(map[string]any{
			"clock_in_time":  rec.ClockInTime,
			"clock_out_time": rec.ClockOutTime,
			"status":         rec.Status,
			"remark":         rec.Remark,
			"updated_at":     rec.UpdatedAt,
		}).Error
}

func (r *repository) detail(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&AttendanceRecord{}).
		Select("attendance_records.*, employees.employee_number, employees.name AS employee_name, departments.dept_name").
		Joins("JOIN employees ON employees.id = attendance_records.employee_id").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id")
}

func (r *repository) FindOne(ctx context.Context, spec filter.Spec) (*AttendanceRow, error) {
	var rows []AttendanceRow
	if err := filter.Apply(r.detail(ctx), spec).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *repository) FindAll(ctx context.Context, spec filter.Spec) ([]AttendanceRow, error) {
	rows := make([]AttendanceRow, 0)
	err := filter.Apply(r.detail(ctx), spec).Scan(&rows).Error
	return rows, err
}
