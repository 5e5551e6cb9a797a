package overtimeerrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrInvalidOvertimeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid overtime id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidOvertimeDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid overtime_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTime = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time, expected YYYY-MM-DD HH:MM:SS",
		http.StatusBadRequest,
	)
	ErrEndNotAfterStart = apperror.New(
		apperror.CodeInvalidInput,
		"end_time must be after start_time",
		http.StatusBadRequest,
	)
	ErrHoursOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"overtime hours must be between 0.01 and 9999.99",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrOvertimeNotFound = apperror.New(
		apperror.CodeNotFound,
		"overtime not found",
		http.StatusNotFound,
	)
)
