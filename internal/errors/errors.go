package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Identity errors. Credential failures share one message so callers
	// cannot probe which phone numbers are registered.
	ErrUserNotFound       = NewDomainError("USER_NOT_FOUND", "User not found.")
	ErrPhoneExists        = NewDomainError("PHONE_EXISTS", "user with this phone already exists")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "Invalid phone or password.")
	ErrMissingCredentials = NewDomainError("MISSING_CREDENTIALS", "Phone and password are required.")

	// Token errors
	ErrInvalidToken = NewDomainError("INVALID_TOKEN", "invalid token")
	ErrUnauthorized = NewDomainError("UNAUTHORIZED", "unauthorized")

	// Validation errors
	ErrValidation   = NewDomainError("VALIDATION_ERROR", "validation failed")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "invalid input")

	// Generic record errors for the CRUD surface
	ErrRecordNotFound = NewDomainError("RECORD_NOT_FOUND", "record not found")

	// System errors
	ErrInternal = NewDomainError("INTERNAL_ERROR", "internal server error")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

// domainErrorToHTTPStatus maps specific domain errors to HTTP status codes
func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request. Bad credentials are 400 rather than 401 so the
	// login endpoint answers every failure identically.
	case "VALIDATION_ERROR", "INVALID_INPUT", "PHONE_EXISTS",
		"INVALID_CREDENTIALS", "MISSING_CREDENTIALS":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHORIZED", "INVALID_TOKEN":
		return http.StatusUnauthorized

	// 404 Not Found
	case "USER_NOT_FOUND", "RECORD_NOT_FOUND":
		return http.StatusNotFound

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
