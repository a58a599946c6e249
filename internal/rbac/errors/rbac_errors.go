package rbacerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"role not found",
		http.StatusNotFound,
	)
	ErrRoleNameAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"role with this name already exists",
		http.StatusConflict,
	)
	ErrRoleNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"role name is required",
		http.StatusBadRequest,
	)
)
