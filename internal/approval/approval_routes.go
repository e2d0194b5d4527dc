package approval

import (
	"go-hradmin/internal/middleware"
	"go-hradmin/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	reviews := r.Group("/access-requests")
	reviews.Use(middleware.AuthMiddleware())
	reviews.Use(middleware.ContextLogger(logger))
	{
		reviews.POST("/:id/approve",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "access_request", "review"),
			middleware.Idempotency(rdb),
			handler.Approve,
		)

		reviews.POST("/:id/reject",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "access_request", "review"),
			middleware.Idempotency(rdb),
			handler.Reject,
		)
	}
}
