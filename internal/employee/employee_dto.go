package employee

type CreateEmployeeRequest struct {
	FullName          string  `json:"full_name" binding:"required"`
	Email             string  `json:"email" binding:"required,email"`
	PositionID        string  `json:"position_id" binding:"required,uuid"`
	Phone             string  `json:"phone"`
	HireDate          string  `json:"hire_date" binding:"required"`
	EmploymentStatus  string  `json:"employment_status"`
	WorkingHoursStart *string `json:"working_hours_start"`
	WorkingHoursEnd   *string `json:"working_hours_end"`
}

type UpdateEmployeeRequest struct {
	FullName          string  `json:"full_name" binding:"required"`
	Email             string  `json:"email" binding:"required,email"`
	PositionID        string  `json:"position_id" binding:"required,uuid"`
	Phone             string  `json:"phone"`
	HireDate          string  `json:"hire_date" binding:"required"`
	EmploymentStatus  string  `json:"employment_status"`
	WorkingHoursStart *string `json:"working_hours_start"`
	WorkingHoursEnd   *string `json:"working_hours_end"`
}

type EmployeeDepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeePositionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID                string                      `json:"id"`
	FullName          string                      `json:"full_name"`
	Email             string                      `json:"email"`
	EmployeeCode      string                      `json:"employee_code"`
	Phone             string                      `json:"phone,omitempty"`
	HireDate          string                      `json:"hire_date"`
	EmploymentStatus  string                      `json:"employment_status"`
	WorkingHoursStart *string                     `json:"working_hours_start,omitempty"`
	WorkingHoursEnd   *string                     `json:"working_hours_end,omitempty"`
	CompanyID         string                      `json:"company_id"`
	DepartmentID      string                      `json:"department_id,omitempty"`
	PositionID        string                      `json:"position_id,omitempty"`
	Department        *EmployeeDepartmentResponse `json:"department,omitempty"`
	Position          *EmployeePositionResponse   `json:"position,omitempty"`
}
