package overtime

import "github.com/shopspring/decimal"

type CreateOvertimeRequest struct {
	EmployeeID   string `json:"employee_id" binding:"required"`
	OvertimeDate string `json:"overtime_date" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	Reason       string `json:"reason"`
}

type DecideOvertimeRequest struct {
	ApproverID *string `json:"approver_id"`
	Decision   string  `json:"decision" binding:"required"`
}

type ListOvertimeQuery struct {
	EmployeeID     *string `form:"employee_id" binding:"omitempty,uuid"`
	EmployeeNumber *string `form:"employee_number"`
	StartDate      *string `form:"start_date"`
	EndDate        *string `form:"end_date"`
	Status         *string `form:"status"`
}

type OvertimeResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeNumber string          `json:"employee_number,omitempty"`
	EmployeeName   string          `json:"employee_name,omitempty"`
	DeptName       *string         `json:"dept_name,omitempty"`
	OvertimeDate   string          `json:"overtime_date"`
	StartTime      string          `json:"start_time"`
	EndTime        string          `json:"end_time"`
	Hours          decimal.Decimal `json:"hours"`
	Reason         string          `json:"reason"`
	Status         string          `json:"status"`
	ApprovedBy     *string         `json:"approved_by,omitempty"`
	DecidedAt      *string         `json:"decided_at,omitempty"`
}
