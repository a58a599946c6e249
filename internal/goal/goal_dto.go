package goal

type CreateGoalRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" binding:"required"`
}

type UpdateGoalRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" binding:"required"`
	Progress    *int   `json:"progress"`
	Status      string `json:"status" binding:"required,oneof=ACTIVE COMPLETED CANCELLED"`
}

type GoalResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	DueDate      string `json:"due_date"`
	Progress     int    `json:"progress"`
	Status       string `json:"status"`
	CreatedBy    string `json:"created_by"`
}
