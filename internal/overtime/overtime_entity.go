package overtime

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Overtime struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_overtimes_employee_date"`
	OvertimeDate time.Time       `gorm:"type:date;not null;index:idx_overtimes_employee_date"`
	StartTime    time.Time       `gorm:"type:timestamp;not null"`
	EndTime      time.Time       `gorm:"type:timestamp;not null"`
	Hours        decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Reason       string          `gorm:"type:text;not null;default:''"`
	Status       string          `gorm:"type:varchar(20);not null;default:'Pending'"`
	ApprovedBy   *uuid.UUID      `gorm:"type:uuid"`
	DecidedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Overtime) TableName() string {
	return "overtimes"
}

type OvertimeRow struct {
	Overtime
	EmployeeNumber string  `gorm:"column:employee_number"`
	EmployeeName   string  `gorm:"column:employee_name"`
	DeptName       *string `gorm:"column:dept_name"`
}
