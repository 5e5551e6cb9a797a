package attendanceerrors

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidRecordDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid record_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidClockTime = apperror.New(
		apperror.CodeInvalidInput,
		"invalid clock time, expected YYYY-MM-DD HH:MM:SS",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date filter, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be at most 20 characters",
		http.StatusBadRequest,
	)
	ErrClockOutBeforeClockIn = apperror.New(
		apperror.CodeInvalidInput,
		"clock_out_time must not be before clock_in_time",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	ErrNotClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"clock in not found for today",
		http.StatusBadRequest,
	)
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"already clocked in for today",
		http.StatusBadRequest,
	)
	ErrAlreadyClockedOut = apperror.New(
		apperror.CodeInvalidState,
		"already clocked out for today",
		http.StatusBadRequest,
	)
)
