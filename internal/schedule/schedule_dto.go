package schedule

type AssignScheduleRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	ShiftID    string `json:"shift_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
}

type AssignResult struct {
	ID string `json:"id"`
}

// ListScheduleQuery needs employee_id or employee_number.
type ListScheduleQuery struct {
	EmployeeID     *string `form:"employee_id" binding:"omitempty,uuid"`
	EmployeeNumber *string `form:"employee_number"`
	StartDate      *string `form:"start_date"`
	EndDate        *string `form:"end_date"`
}

type ShiftResponse struct {
	ID           string `json:"id"`
	Name         string `json:"shift_name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	IsNightShift bool   `json:"is_night_shift"`
}

type ScheduleResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeNumber string `json:"employee_number"`
	EmployeeName   string `json:"employee_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	ShiftID        string `json:"shift_id"`
	ShiftName      string `json:"shift_name"`
	ShiftStartTime string `json:"shift_start_time"`
	ShiftEndTime   string `json:"shift_end_time"`
	IsNightShift   bool   `json:"is_night_shift"`
}
