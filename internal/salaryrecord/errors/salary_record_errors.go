package salaryrecorderrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary record not found",
		http.StatusNotFound,
	)
	ErrPeriodAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Salary record already exists for this staff and period",
		http.StatusConflict,
	)
	ErrRecordNotFinalized = apperror.New(
		apperror.CodeInvalidState,
		"Salary record is not finalized",
		http.StatusUnprocessableEntity,
	)
	ErrEmptyBatch = apperror.New(
		apperror.CodeInvalidInput,
		"Attendance batch is empty",
		http.StatusBadRequest,
	)
)
