package review

type CreateReviewRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	Period      string `json:"period" binding:"required"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Strengths   string `json:"strengths"`
	Improvement string `json:"improvement"`
	Comments    string `json:"comments"`
}

type UpdateReviewRequest struct {
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Strengths   string `json:"strengths"`
	Improvement string `json:"improvement"`
	Comments    string `json:"comments"`
}

type ReviewResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	ReviewerID   string  `json:"reviewer_id"`
	Period       string  `json:"period"`
	Rating       int     `json:"rating"`
	Strengths    string  `json:"strengths,omitempty"`
	Improvement  string  `json:"improvement,omitempty"`
	Comments     string  `json:"comments,omitempty"`
	Status       string  `json:"status"`
	SubmittedAt  *string `json:"submitted_at,omitempty"`
}
