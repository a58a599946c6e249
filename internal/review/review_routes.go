package review

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
	reviews := r.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware())
	{
		reviews.GET("", middleware.RBACAuthorize(rbacService, "review", "read"), handler.GetAll)
		reviews.GET("/:id", middleware.RBACAuthorize(rbacService, "review", "read"), handler.GetById)
		reviews.POST("", middleware.RBACAuthorize(rbacService, "review", "create"), handler.Create)
		reviews.PUT("/:id", middleware.RBACAuthorize(rbacService, "review", "create"), handler.Update)
		reviews.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "review", "create"), handler.Submit)
		reviews.DELETE("/:id", middleware.RBACAuthorize(rbacService, "review", "create"), handler.Delete)
	}
}
