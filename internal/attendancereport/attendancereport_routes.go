package attendancereport

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	reports := r.Group("/attendance-reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("", middleware.RBACAuthorize(rbacService, "attendance", "report"), h.GetReport)
		reports.GET("/export", middleware.RBACAuthorize(rbacService, "attendance", "report"), h.ExportPDF)
	}
}
