package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeInternal        = "INTERNAL_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodeDuplicate       = "DUPLICATE"
	CodeCast            = "CAST_ERROR"
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnknownEndpoint = "UNKNOWN_ENDPOINT"
	CodeRateLimited     = "RATE_LIMITED"
)

// Response messages shared with clients
const (
	MessageNameMissing     = "name missing"
	MessageNameNotUnique   = "name must be unique"
	MessageMalformattedID  = "malformatted id"
	MessageMalformedBody   = "malformatted request body"
	MessageUnknownEndpoint = "unknown endpoint"
	MessageRateLimited     = "rate limit exceeded"
	MessageInternal        = "internal server error"
)

// AppError represents an application error with context
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError wraps an underlying error
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New creates a new AppError
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Internal creates an internal server error
func Internal(message string) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError)
}

// NotFound creates a not found error
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// Validation creates a validation error
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// Duplicate creates a uniqueness violation error
func Duplicate(message string) *AppError {
	return New(CodeDuplicate, message, http.StatusBadRequest)
}

// Cast creates an error for an identifier that does not match the store's format
func Cast(value string) *AppError {
	return New(CodeCast, MessageMalformattedID, http.StatusBadRequest).
		WithError(fmt.Errorf("cast to id failed for value %q", value))
}

// BadRequest creates a bad request error
func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest)
}

// UnknownEndpoint creates the error returned for unmatched routes
func UnknownEndpoint() *AppError {
	return New(CodeUnknownEndpoint, MessageUnknownEndpoint, http.StatusNotFound)
}

// RateLimited creates a rate limited error
func RateLimited() *AppError {
	return New(CodeRateLimited, MessageRateLimited, http.StatusTooManyRequests)
}

// GetAppError extracts AppError from error if present
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func hasCode(err error, code string) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsDuplicate checks if the error is a uniqueness violation
func IsDuplicate(err error) bool {
	return hasCode(err, CodeDuplicate)
}

// IsCast checks if the error is a malformed identifier error
func IsCast(err error) bool {
	return hasCode(err, CodeCast)
}
