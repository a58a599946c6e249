package codepattern

type UpdatePatternRequest struct {
	Prefix    string `json:"prefix" binding:"required"`
	Separator string `json:"separator"`
	MinDigits int    `json:"min_digits" binding:"required,min=1,max=10"`
}

type PatternResponse struct {
	CompanyID string `json:"company_id"`
	Prefix    string `json:"prefix"`
	Separator string `json:"separator"`
	MinDigits int    `json:"min_digits"`
	Preview   string `json:"preview"`
}
