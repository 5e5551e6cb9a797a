package stats

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	monthly := r.Group("/stats/monthly")
	{
		monthly.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "stats", "read"),
			handler.Monthly,
		)
		monthly.GET("/export",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "stats", "read"),
			handler.ExportMonthly,
		)
	}

	r.GET("/holidays",
		middleware.RateLimitByUser(5, 20),
		middleware.RBACAuthorize(rbacService, "stats", "read"),
		handler.Holidays,
	)
}
