package leave

import "github.com/shopspring/decimal"

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	LeaveType  string `json:"leave_type" binding:"required,max=50"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	// Duration in days; the inclusive day count when omitted.
	Duration *decimal.Decimal `json:"duration"`
	Reason   string           `json:"reason"`
}

type DecideLeaveRequest struct {
	// ApproverID defaults to the caller.
	ApproverID *string `json:"approver_id"`
	Decision   string  `json:"decision" binding:"required"`
}

type ListLeaveQuery struct {
	EmployeeID     *string `form:"employee_id" binding:"omitempty,uuid"`
	EmployeeNumber *string `form:"employee_number"`
	StartDate      *string `form:"start_date"`
	EndDate        *string `form:"end_date"`
	Status         *string `form:"status"`
	LeaveType      *string `form:"leave_type"`
}

type LeaveResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeNumber string          `json:"employee_number,omitempty"`
	EmployeeName   string          `json:"employee_name,omitempty"`
	DeptName       *string         `json:"dept_name,omitempty"`
	LeaveType      string          `json:"leave_type"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	Duration       decimal.Decimal `json:"duration"`
	Reason         string          `json:"reason"`
	Status         string          `json:"status"`
	ApprovedBy     *string         `json:"approved_by,omitempty"`
	DecidedAt      *string         `json:"decided_at,omitempty"`
}
