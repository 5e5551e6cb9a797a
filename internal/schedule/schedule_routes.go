package schedule

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	r.GET("/shifts",
		middleware.RateLimitByUser(5, 20),
		middleware.RBACAuthorize(rbacService, "schedule", "read"),
		handler.ListShifts,
	)

	schedules := r.Group("/schedules")
	{
		schedules.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "schedule", "read"),
			handler.GetAll,
		)
		schedules.POST("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "schedule", "create"),
			handler.Assign,
		)
	}
}
