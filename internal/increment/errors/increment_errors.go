package incrementerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrNonPositiveAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Increment amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrNoStaffInDepartment = apperror.New(
		apperror.CodeNotFound,
		"No active staff in department",
		http.StatusNotFound,
	)
)
