package positionerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrPositionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Posisi tidak ditemukan",
		http.StatusNotFound,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Company ID tidak valid",
		http.StatusBadRequest,
	)

	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Department ID tidak valid",
		http.StatusBadRequest,
	)
)
