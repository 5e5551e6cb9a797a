package employee

type ListEmployeesQuery struct {
	DepartmentID *string `form:"department_id" binding:"omitempty,uuid"`
	Status       *string `form:"status"`
}

// LookupEmployeeQuery needs at least one key; when both are given they must
// identify the same employee.
type LookupEmployeeQuery struct {
	ID             *string `form:"id"`
	EmployeeNumber *string `form:"employee_number"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	EmployeeNumber string  `json:"employee_number"`
	FullName       string  `json:"full_name"`
	Position       string  `json:"position,omitempty"`
	DepartmentID   *string `json:"department_id,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
	HireDate       *string `json:"hire_date,omitempty"`
	Status         string  `json:"status"`
}
