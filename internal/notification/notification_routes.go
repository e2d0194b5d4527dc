package notification

import (
	"go-hradmin/internal/middleware"
	"go-hradmin/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	notifications.Use(middleware.ContextLogger(logger))
	{
		notifications.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "notification", "read"),
			handler.GetAll,
		)

		notifications.POST("/:id/read",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "notification", "read"),
			handler.MarkRead,
		)
	}
}
