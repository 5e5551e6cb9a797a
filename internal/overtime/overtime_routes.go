package overtime

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	overtimes := r.Group("/overtimes")
	{
		overtimes.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "overtime", "read"),
			handler.GetAll,
		)
		overtimes.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "overtime", "read"),
			handler.GetByID,
		)
		overtimes.POST("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "overtime", "create"),
			handler.Create,
		)
		overtimes.POST("/:id/decision",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "overtime", "approve"),
			handler.Decide,
		)
	}
}
