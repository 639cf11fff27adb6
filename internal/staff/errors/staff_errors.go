package stafferrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrStaffNotFound = apperror.New(
		apperror.CodeNotFound,
		"Staff not found",
		http.StatusNotFound,
	)
	ErrStaffNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Staff number already exists",
		http.StatusConflict,
	)
	ErrStaffInactive = apperror.New(
		apperror.CodeInvalidState,
		"Staff is deactivated",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidStaffID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid staff ID",
		http.StatusBadRequest,
	)
)
