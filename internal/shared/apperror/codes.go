package apperror

// Codes are the error kinds rendered in the envelope. KindOf returns one of
// these for any error.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	CodeInternalError = "INTERNAL_ERROR"
	CodeStorageError  = "STORAGE_ERROR"
)
