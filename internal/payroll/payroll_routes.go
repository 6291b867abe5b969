package payroll

import (
	"go-hcm/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	records := r.Group("/employees/:id/payroll-records")
	records.Use(middleware.AuthMiddleware())
	{
		records.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetAllByEmployee,
		)
		records.GET("/:recordId",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetById,
		)
		if redisClient != nil {
			records.POST("",
				middleware.Idempotency(redisClient),
				middleware.RateLimitByUser(0.1, 1),
				middleware.RBACAuthorize(rbacService, "payroll", "create"),
				handler.Generate,
			)
		} else {
			records.POST("",
				middleware.RateLimitByUser(0.1, 1),
				middleware.RBACAuthorize(rbacService, "payroll", "create"),
				handler.Generate,
			)
		}
	}
}
