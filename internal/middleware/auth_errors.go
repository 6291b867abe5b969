package middleware

import (
	"net/http"

	"go-hcm/internal/shared/apperror"
)

var (
	ErrInvalidToken = apperror.New(
		"INVALID_TOKEN",
		"Token tidak valid",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		"TOKEN_EXPIRED",
		"Token sudah kedaluwarsa",
		http.StatusUnauthorized,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"Anda tidak punya akses ke resource ini",
		http.StatusForbidden,
	)
)
