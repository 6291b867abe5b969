package salarychangeerrors

import (
	"net/http"

	"go-hcm/internal/shared/apperror"
)

var (
	// Ditolak sebelum mutasi apa pun; append yang invalid adalah no-op.
	ErrEffectiveDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Effective Date is required",
		http.StatusBadRequest,
	)

	ErrInvalidChangeType = apperror.New(
		apperror.CodeInvalidInput,
		"Change type must be one of Hiring, Increment, Promotion, Adjustment, Correction",
		http.StatusBadRequest,
	)

	ErrChangeIndexOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"Change record index is out of range",
		http.StatusBadRequest,
	)

	ErrUnknownChangeField = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown compensation field",
		http.StatusBadRequest,
	)
)
