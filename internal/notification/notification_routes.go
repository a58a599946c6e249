package notification

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
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.GetAll)
		notifications.GET("/unread-count", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.UnreadCount)
		notifications.POST("/:id/read", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.MarkRead)
		notifications.POST("/read-all", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.MarkAllRead)
	}
}
