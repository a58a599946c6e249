package reviewerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrReviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"performance review not found",
		http.StatusNotFound,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidReviewerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid reviewer id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidRating = apperror.New(
		apperror.CodeInvalidInput,
		"rating must be between 1 and 5",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrReviewAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"review already exists for this employee and period",
		http.StatusConflict,
	)
	ErrReviewImmutable = apperror.New(
		apperror.CodeInvalidState,
		"submitted review can no longer be changed",
		http.StatusBadRequest,
	)
	ErrReviewAlreadySubmitted = apperror.New(
		apperror.CodeInvalidState,
		"review is already submitted",
		http.StatusBadRequest,
	)
)
