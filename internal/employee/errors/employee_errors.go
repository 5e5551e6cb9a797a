package employeeerrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrLookupKeyRequired = apperror.New(
		apperror.CodeInvalidInput,
		"either id or employee_number is required",
		http.StatusBadRequest,
	)
)
