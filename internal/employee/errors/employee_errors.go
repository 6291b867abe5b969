package employeeerrors

import (
	"net/http"

	"go-hcm/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with this email already exists",
		http.StatusConflict,
	)

	// Record sudah pernah dipersist: field kompensasi read-only, satu-satunya
	// jalur perubahan adalah append ke salary change ledger.
	ErrCompensationLocked = apperror.New(
		apperror.CodeInvalidState,
		"Compensation fields are locked; changes must go through the salary change history",
		http.StatusConflict,
	)
)
