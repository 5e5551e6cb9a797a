package approvalerrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be Approved or Rejected",
		http.StatusBadRequest,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid request id",
		http.StatusBadRequest,
	)
	ErrInvalidApproverID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid approver id",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"request not found",
		http.StatusNotFound,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"request already decided",
		http.StatusConflict,
	)
)
