package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`

	LeaveType string          `gorm:"type:varchar(50);not null"`
	StartDate time.Time       `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time       `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	Duration  decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	Reason    string          `gorm:"type:text;not null;default:''"`

	Status     string     `gorm:"type:varchar(20);not null;default:'Pending'"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	DecidedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Leave) TableName() string {
	return "leaves"
}

// LeaveRow is a leave joined with the requesting employee.
type LeaveRow struct {
	Leave
	EmployeeNumber string  `gorm:"column:employee_number"`
	EmployeeName   string  `gorm:"column:employee_name"`
	DeptName       *string `gorm:"column:dept_name"`
}
