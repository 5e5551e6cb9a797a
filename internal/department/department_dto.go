package department

type DepartmentResponse struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	ParentID      *string `json:"parent_id,omitempty"`
	ParentName    *string `json:"parent_name,omitempty"`
	EmployeeCount *int64  `json:"employee_count,omitempty"`
}
