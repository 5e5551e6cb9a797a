package middleware

import (
	"go-attendance/internal/domain"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ContextRole = "role"

// RBACService is satisfied by anything that can answer an EnforceRequest.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			contextutil.GetLogger(c.Request.Context(), zap.L()).Error("rbac enforce failed",
				zap.String("role", role),
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			abortWith(c, apperror.ErrInternal)
			return
		}

		if !allowed {
			abortWith(c, apperror.ErrForbidden.WithDetails(map[string]string{
				"required": resource + ":" + action,
			}))
			return
		}
		c.Next()
	}
}
