package asseterrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrAssetNotFound = apperror.New(
		apperror.CodeNotFound,
		"asset not found",
		http.StatusNotFound,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrAssetCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"asset code already exists in this company",
		http.StatusConflict,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrAssetNotAvailable = apperror.New(
		apperror.CodeInvalidState,
		"asset is not available for assignment",
		http.StatusBadRequest,
	)
	ErrAssetNotAssigned = apperror.New(
		apperror.CodeInvalidState,
		"asset is not currently assigned",
		http.StatusBadRequest,
	)
	ErrAssetRetired = apperror.New(
		apperror.CodeInvalidState,
		"retired asset can no longer change state",
		http.StatusBadRequest,
	)
	ErrDeleteAssignedAsset = apperror.New(
		apperror.CodeInvalidState,
		"assigned asset cannot be deleted",
		http.StatusBadRequest,
	)
)
