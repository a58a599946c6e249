package asset

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
	assets := r.Group("/assets")
	assets.Use(middleware.AuthMiddleware())
	{
		assets.GET("", middleware.RBACAuthorize(rbacService, "asset", "read"), handler.GetAll)
		assets.GET("/:id", middleware.RBACAuthorize(rbacService, "asset", "read"), handler.GetById)
		assets.POST("", middleware.RBACAuthorize(rbacService, "asset", "create"), handler.Create)
		assets.PUT("/:id", middleware.RBACAuthorize(rbacService, "asset", "update"), handler.Update)
		assets.POST("/:id/assign", middleware.RBACAuthorize(rbacService, "asset", "update"), handler.Assign)
		assets.POST("/:id/return", middleware.RBACAuthorize(rbacService, "asset", "update"), handler.Return)
		assets.POST("/:id/retire", middleware.RBACAuthorize(rbacService, "asset", "update"), handler.Retire)
		assets.DELETE("/:id", middleware.RBACAuthorize(rbacService, "asset", "update"), handler.Delete)
	}
}
