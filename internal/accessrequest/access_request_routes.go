package accessrequest

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
	// Signup is unauthenticated by definition, so it is throttled by
	// client IP instead of user id.
	r.POST("/access-requests/signup",
		middleware.ContextLogger(logger),
		middleware.RateLimitByIP(0.2, 3),
		handler.Create,
	)

	requests := r.Group("/access-requests")
	requests.Use(middleware.AuthMiddleware())
	requests.Use(middleware.ContextLogger(logger))
	{
		requests.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "access_request", "read"),
			handler.GetAll,
		)

		requests.GET("/pending-count",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "access_request", "read"),
			handler.PendingCount,
		)

		requests.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "access_request", "read"),
			handler.GetById,
		)
	}
}
