// Package errors provides error code definitions shared across the client.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique, stable error code.
type ErrorCode string

const (
	// General errors
	ErrInternal ErrorCode = "INTERNAL_ERROR"
	ErrInvalid  ErrorCode = "INVALID_INPUT"
	ErrNotFound ErrorCode = "NOT_FOUND"

	// API errors
	ErrAPIRequest  ErrorCode = "API_REQUEST_FAILED"
	ErrUnreachable ErrorCode = "SERVER_UNREACHABLE"

	// Queue errors
	ErrQueueCorrupt  ErrorCode = "QUEUE_CORRUPT"
	ErrQueueFull     ErrorCode = "QUEUE_FULL"
	ErrActionMissing ErrorCode = "ACTION_NOT_FOUND"

	// Session errors
	ErrCredentialNotFound ErrorCode = "CREDENTIAL_NOT_FOUND"
	ErrCryptoFailed       ErrorCode = "CRYPTO_FAILED"

	// Sync errors
	ErrSyncInProgress ErrorCode = "SYNC_IN_PROGRESS"
	ErrSyncFailed     ErrorCode = "SYNC_FAILED"
)

// AppError represents an application error with code and message.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an error code.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is checks if an error anywhere in the chain carries a specific code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// APIError represents a terminal non-2xx response from the backend.
// Detail holds the message extracted from the response body ("detail" or
// "message" field), or the generic fallback "API Error: <status>".
type APIError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Detail
}

// NewAPIError builds an APIError, applying the generic fallback when the
// response body yielded no usable message.
func NewAPIError(statusCode int, detail string) *APIError {
	if detail == "" {
		detail = fmt.Sprintf("API Error: %d", statusCode)
	}
	return &APIError{
		StatusCode: statusCode,
		Detail:     detail,
	}
}
