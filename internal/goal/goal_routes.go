package goal

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	goals := r.Group("/goals")
	goals.Use(middleware.AuthMiddleware())
	{
		goals.GET("", middleware.RBACAuthorize(rbacService, "goal", "read"), handler.GetAll)
		goals.GET("/:id", middleware.RBACAuthorize(rbacService, "goal", "read"), handler.GetById)
		goals.POST("", middleware.RBACAuthorize(rbacService, "goal", "create"), handler.Create)
		goals.PUT("/:id", middleware.RBACAuthorize(rbacService, "goal", "update"), handler.Update)
		goals.DELETE("/:id", middleware.RBACAuthorize(rbacService, "goal", "update"), handler.Delete)
	}
}
