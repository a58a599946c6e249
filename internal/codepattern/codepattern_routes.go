package codepattern

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	patterns := r.Group("/employee-code-pattern")
	patterns.Use(middleware.AuthMiddleware())
	{
		patterns.GET("", middleware.RBACAuthorize(rbacService, "company", "read"), h.GetPattern)
		patterns.PUT("", middleware.RBACAuthorize(rbacService, "company", "update"), h.UpdatePattern)
	}
}
