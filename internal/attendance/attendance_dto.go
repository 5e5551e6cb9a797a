package attendance

// SubmitAttendanceRequest creates or merges the record for
// (employee_id, record_date). Omitted optional fields keep stored values.
type SubmitAttendanceRequest struct {
	EmployeeID   string  `json:"employee_id" binding:"required"`
	RecordDate   string  `json:"record_date" binding:"required"`
	ClockInTime  *string `json:"clock_in_time"`
	ClockOutTime *string `json:"clock_out_time"`
	Status       string  `json:"status"`
	Remark       *string `json:"remark"`
}

type ClockRequest struct {
	Remark *string `json:"remark"`
}

type ListAttendanceQuery struct {
	EmployeeID     *string `form:"employee_id" binding:"omitempty,uuid"`
	EmployeeNumber *string `form:"employee_number"`
	StartDate      *string `form:"start_date"`
	EndDate        *string `form:"end_date"`
	// Status accepts a comma-separated list.
	Status *string `form:"status"`
}

type SubmitResult struct {
	ID      string `json:"id"`
	Created bool   `json:"created"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeNumber string  `json:"employee_number,omitempty"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	DeptName       *string `json:"dept_name,omitempty"`
	RecordDate     string  `json:"record_date"`
	ClockInTime    *string `json:"clock_in_time,omitempty"`
	ClockOutTime   *string `json:"clock_out_time,omitempty"`
	Status         string  `json:"status"`
	Remark         *string `json:"remark,omitempty"`
}
