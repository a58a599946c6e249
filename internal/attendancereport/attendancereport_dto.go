package attendancereport

type GetReportRequest struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
}

type ReportRecordResponse struct {
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       string  `json:"employee_name"`
	TotalDays          int     `json:"total_days"`
	TotalHours         float64 `json:"total_hours"`
	LateArrivals       int     `json:"late_arrivals"`
	TotalLateMinutes   int     `json:"total_late_minutes"`
	TotalOvertimeHours float64 `json:"total_overtime_hours"`
}

type ReportSummaryResponse struct {
	TotalEmployees     int     `json:"total_employees"`
	TotalLateArrivals  int     `json:"total_late_arrivals"`
	AvgLateMinutes     int     `json:"avg_late_minutes"`
	TotalOvertimeHours float64 `json:"total_overtime_hours"`
}

type ReportResponse struct {
	Month   int                    `json:"month"`
	Year    int                    `json:"year"`
	Records []ReportRecordResponse `json:"records"`
	Summary ReportSummaryResponse  `json:"summary"`
}
