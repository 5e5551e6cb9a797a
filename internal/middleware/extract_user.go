package middleware

import (
	"go-attendance/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// ExtractUserID requires an authenticated user and republishes the id as
// user_id_validated for handlers and the request logger.
func ExtractUserID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetString("user_id")
		if userID == "" {
			abortWith(ctx, apperror.ErrUnauthorized)
			return
		}

		ctx.Set("user_id_validated", userID)
		ctx.Next()
	}
}
