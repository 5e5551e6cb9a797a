package leave

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	leaves := r.Group("/leaves")
	{
		leaves.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetAll,
		)
		leaves.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetByID,
		)
		leaves.POST("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			handler.Create,
		)
		leaves.POST("/:id/decision",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "leave", "approve"),
			handler.Decide,
		)
	}
}
