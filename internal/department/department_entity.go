package department

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code        string     `gorm:"column:dept_code"`
	Name        string     `gorm:"column:dept_name"`
	Description *string    `gorm:"column:description"`
	ParentID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Department) TableName() string { return "departments" }

type DepartmentRow struct {
	Department
	ParentName    *string `gorm:"column:parent_name"`
	EmployeeCount int64   `gorm:"column:employee_count"`
}
