package takeonsheet

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
	sheets := r.Group("/take-on-sheets")
	sheets.Use(middleware.AuthMiddleware())
	sheets.Use(middleware.ContextLogger(logger))
	{
		sheets.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "take_on_sheet", "read"),
			handler.GetAll,
		)

		sheets.GET("/counts",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "take_on_sheet", "read"),
			handler.Counts,
		)

		sheets.GET("/by-access-request/:requestId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "take_on_sheet", "read"),
			handler.GetByAccessRequest,
		)

		sheets.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "take_on_sheet", "read"),
			handler.GetById,
		)

		sheets.GET("/:id/employee-readiness",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "take_on_sheet", "read"),
			handler.EmployeeReadiness,
		)

		sheets.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "take_on_sheet", "create"),
			handler.Create,
		)

		sheets.PATCH("/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "take_on_sheet", "update"),
			handler.Update,
		)

		sheets.POST("/:id/transition",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "take_on_sheet", "transition"),
			handler.Transition,
		)

		sheets.POST("/:id/link-employee",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "take_on_sheet", "link_employee"),
			handler.LinkEmployee,
		)

		sheets.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "take_on_sheet", "delete"),
			handler.Delete,
		)
	}
}
