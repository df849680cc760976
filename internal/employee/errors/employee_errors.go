package employeeerrors

import (
	"fmt"
	"net/http"

	"github.com/vjorihoxha/tiktak-vjori/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeEmailExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeExternalIDExists = apperror.New(
		apperror.CodeConflict,
		"Employee already registered for this provider and external id",
		http.StatusConflict,
	)
)

// UnsupportedProvider names the offending provider in the message so the
// caller can tell which route was wrong.
func UnsupportedProvider(provider string) *apperror.AppError {
	return apperror.New(
		apperror.CodeUnsupportedProvider,
		fmt.Sprintf("Unsupported provider: %s", provider),
		http.StatusBadRequest,
	)
}

func InvalidPayload(provider string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidPayload,
		fmt.Sprintf("Invalid employee data format for provider: %s", provider),
		http.StatusBadRequest,
	)
}
