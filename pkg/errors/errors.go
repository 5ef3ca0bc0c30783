package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Conflict(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  http.StatusConflict,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Trade negotiation error codes. These are surfaced to clients so the UI can
// distinguish "this offer is no longer available" from permission failures.
const (
	CodeOfferNotPending = "OFFER_NOT_PENDING"
	CodeInvalidListing  = "INVALID_LISTING"
	CodeInvalidOfferer  = "INVALID_OFFERER"
	CodeNotOwner        = "NOT_OWNER"
)

func OfferNotPending(err error) *AppError {
	return Conflict(CodeOfferNotPending, "Offer is no longer pending", err)
}

func InvalidListing(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInvalidListing,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func InvalidOfferer(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInvalidOfferer,
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func NotOwner(err error) *AppError {
	return &AppError{
		Code:    CodeNotOwner,
		Message: "Only the listing owner may perform this action",
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
