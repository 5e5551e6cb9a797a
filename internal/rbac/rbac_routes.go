package rbac

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/rbac")
	{
		group.GET("/me", middleware.RateLimitByUser(5, 20), handler.Me)
		group.POST("/enforce", middleware.RateLimitByUser(5, 20), handler.Enforce)
	}
}
