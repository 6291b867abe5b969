package salarychange

import (
	"go-hcm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	changes := r.Group("/employees/:id/salary-changes")
	changes.Use(middleware.AuthMiddleware())
	{
		changes.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.List,
		)
		changes.POST("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "salary", "update"),
			handler.Append,
		)
		changes.PATCH("/:index",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "salary", "update"),
			handler.EditField,
		)
		changes.DELETE("/:index",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "salary", "update"),
			handler.Remove,
		)
	}
}
