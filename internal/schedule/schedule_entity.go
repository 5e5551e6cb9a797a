package schedule

import (
	"time"

	"github.com/google/uuid"
)

type Shift struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name         string    `gorm:"column:shift_name"`
	StartTime    string    `gorm:"column:start_time"`
	EndTime      string    `gorm:"column:end_time"`
	IsNightShift bool      `gorm:"column:is_night_shift"`
}

func (Shift) TableName() string {
	return "shifts"
}

// Schedule assigns a shift to an employee over the closed interval
// [StartDate, EndDate]. Intervals never overlap per employee.
type Schedule struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null"`
	ShiftID    uuid.UUID `gorm:"column:shift_id;type:uuid;not null"`
	StartDate  time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate    time.Time `gorm:"column:end_date;type:date;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Schedule) TableName() string {
	return "schedules"
}

type ScheduleRow struct {
	Schedule
	EmployeeNumber string `gorm:"column:employee_number"`
	EmployeeName   string `gorm:"column:employee_name"`
	ShiftName      string `gorm:"column:shift_name"`
	ShiftStartTime string `gorm:"column:shift_start_time"`
	ShiftEndTime   string `gorm:"column:shift_end_time"`
	IsNightShift   bool   `gorm:"column:is_night_shift"`
}
