package apperror

import "net/http"

// Sentinels raised outside any single module, mostly by middleware.
var (
	ErrUnauthorized = New(CodeUnauthorized, "Authentication is required", http.StatusUnauthorized)
	ErrForbidden    = New(CodeForbidden, "Role is not allowed to perform this action", http.StatusForbidden)
	ErrInternal     = New(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
)
