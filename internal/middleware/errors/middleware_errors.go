package middlewareerrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"token not found",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"token expired",
		http.StatusUnauthorized,
	)
	ErrMissingClaim = apperror.New(
		apperror.CodeUnauthorized,
		"token is missing required claims",
		http.StatusUnauthorized,
	)
	ErrRequestInProgress = apperror.New(
		apperror.CodeConflict,
		"a request with this idempotency key is still being processed",
		http.StatusConflict,
	)
	ErrTooManyRequests = apperror.New(
		"TOO_MANY_REQUESTS",
		"too many requests",
		http.StatusTooManyRequests,
	)
)
