package stats

import (
	"time"

	"github.com/google/uuid"
)

// MonthlyStat is one row of the monthly_attendance_stats view: attendance
// counts for one employee in one calendar month.
type MonthlyStat struct {
	EmployeeID     uuid.UUID `gorm:"column:employee_id;type:uuid"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	EmployeeName   string    `gorm:"column:employee_name"`
	DeptName       *string   `gorm:"column:dept_name"`
	Year           int       `gorm:"column:year"`
	Month          int       `gorm:"column:month"`
	NormalDays     int64     `gorm:"column:normal_days"`
	LateDays       int64     `gorm:"column:late_days"`
	AbsentDays     int64     `gorm:"column:absent_days"`
	LeaveDays      int64     `gorm:"column:leave_days"`
	TotalRecords   int64     `gorm:"column:total_records"`
}

type Holiday struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	HolidayName string    `gorm:"column:holiday_name"`
	HolidayDate time.Time `gorm:"column:holiday_date;type:date"`
	IsPaid      bool      `gorm:"column:is_paid"`
}

func (Holiday) TableName() string {
	return "holidays"
}
