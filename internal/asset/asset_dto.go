package asset

type CreateAssetRequest struct {
	AssetCode string `json:"asset_code" binding:"required,max=50"`
	Name      string `json:"name" binding:"required,max=200"`
	Category  string `json:"category" binding:"max=50"`
}

type UpdateAssetRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Category string `json:"category" binding:"max=50"`
}

type AssignAssetRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type AssetResponse struct {
	ID         string  `json:"id"`
	CompanyID  string  `json:"company_id"`
	AssetCode  string  `json:"asset_code"`
	Name       string  `json:"name"`
	Category   string  `json:"category,omitempty"`
	Status     string  `json:"status"`
	HolderID   *string `json:"holder_id,omitempty"`
	HolderName string  `json:"holder_name,omitempty"`
	AssignedAt *string `json:"assigned_at,omitempty"`
	ReturnedAt *string `json:"returned_at,omitempty"`
}
