package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string     `gorm:"column:employee_number"`
	FullName       string     `gorm:"column:name"`
	Position       string     `gorm:"column:position"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid"`
	HireDate       *time.Time `gorm:"type:date"`
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Employee) TableName() string { return "employees" }

// EmployeeRow is an employee joined with its department name.
type EmployeeRow struct {
	Employee
	DepartmentName *string `gorm:"column:dept_name"`
}
