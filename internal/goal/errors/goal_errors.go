package goalerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrGoalNotFound = apperror.New(
		apperror.CodeNotFound,
		"goal not found",
		http.StatusNotFound,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid due_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidProgress = apperror.New(
		apperror.CodeInvalidInput,
		"progress must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrGoalNotActive = apperror.New(
		apperror.CodeInvalidState,
		"goal status can only change while it is ACTIVE",
		http.StatusBadRequest,
	)
)
