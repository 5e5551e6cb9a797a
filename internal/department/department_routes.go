package department

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	departments := r.Group("/departments")
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, "department", "read"), h.GetAll)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, "department", "read"), h.GetByID)
	}
}
