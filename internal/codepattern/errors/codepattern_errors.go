package codepatternerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidPrefix = apperror.New(
		apperror.CodeInvalidInput,
		"Prefix must not be empty",
		http.StatusBadRequest,
	)
	ErrInvalidMinDigits = apperror.New(
		apperror.CodeInvalidInput,
		"Min digits must be between 1 and 10",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
)
