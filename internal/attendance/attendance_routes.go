package attendance

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	attendances := r.Group("/attendances")
	{
		attendances.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.GetAll,
		)
		attendances.POST("",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			handler.Submit,
		)
		attendances.POST("/clock-in",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "clock"),
			handler.ClockIn,
		)
		attendances.POST("/clock-out",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "attendance", "clock"),
			handler.ClockOut,
		)
		attendances.GET("/:employee_id/:date",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.Get,
		)
	}
}
