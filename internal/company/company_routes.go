package company

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	company := r.Group("/companies")
	company.Use(middleware.AuthMiddleware())
	{
		// Dipanggil dashboard/profile, longgar.
		company.GET("/me",
			middleware.RateLimitByUser(2, 10),
			handler.GetMe,
		)

		company.PUT("/me",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "company", "update"),
			handler.UpdateMe,
		)

		company.POST("/me/registrations",
			middleware.RateLimitByUser(0.5, 1),
			middleware.RBACAuthorize(rbacService, "company", "update"),
			handler.UpsertRegistration,
		)

		company.GET("/me/registrations",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "company", "read"),
			handler.ListRegistrations,
		)

		company.DELETE("/me/registrations/:type",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "company", "delete"),
			handler.DeleteRegistration,
		)
	}
}
