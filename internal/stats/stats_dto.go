package stats

type MonthlyStatsQuery struct {
	Year         int     `form:"year" binding:"required"`
	Month        int     `form:"month" binding:"required"`
	DepartmentID *string `form:"department_id" binding:"omitempty,uuid"`
	EmployeeID   *string `form:"employee_id" binding:"omitempty,uuid"`
}

type HolidayQuery struct {
	Year   *int  `form:"year"`
	Month  *int  `form:"month"`
	IsPaid *bool `form:"is_paid"`
}

type MonthlyStatResponse struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeNumber string  `json:"employee_number"`
	EmployeeName   string  `json:"employee_name"`
	DeptName       *string `json:"dept_name"`
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	NormalDays     int64   `json:"normal_days"`
	LateDays       int64   `json:"late_days"`
	AbsentDays     int64   `json:"absent_days"`
	LeaveDays      int64   `json:"leave_days"`
	TotalRecords   int64   `json:"total_records"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	HolidayName string `json:"holiday_name"`
	HolidayDate string `json:"holiday_date"`
	IsPaid      bool   `json:"is_paid"`
}
