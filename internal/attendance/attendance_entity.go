package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusNormal = "Normal"
	StatusLate   = "Late"
	StatusAbsent = "Absent"
	StatusLeave  = "Leave"
)

const maxStatusLength = 20

// AttendanceRecord is unique per (employee_id, record_date).
type AttendanceRecord struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID   uuid.UUID  `gorm:"column:employee_id;type:uuid;not null"`
	RecordDate   time.Time  `gorm:"column:record_date;type:date;not null"`
	ClockInTime  *time.Time `gorm:"column:clock_in_time"`
	ClockOutTime *time.Time `gorm:"column:clock_out_time"`
	Status       string     `gorm:"column:status"`
	Remark       *string    `gorm:"column:remark"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// AttendanceRow is a record joined with the employee directory.
type AttendanceRow struct {
	AttendanceRecord
	EmployeeNumber string  `gorm:"column:employee_number"`
	EmployeeName   string  `gorm:"column:employee_name"`
	DeptName       *string `gorm:"column:dept_name"`
}
