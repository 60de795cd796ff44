package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeCredentialRejected indicates the identity API explicitly
	// rejected a credential login.
	ErrCodeCredentialRejected ErrorCode = "credential_rejected"
	// ErrCodeTokenInvalid indicates the identity API rejected a bearer token.
	ErrCodeTokenInvalid ErrorCode = "token_invalid"
	// ErrCodeTransport indicates the identity API was unreachable.
	// At the UI layer this is handled like a rejection; internally it
	// must stay distinguishable for observability.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeMalformedRedirect indicates a redirect landing carried
	// neither credentials nor an error signal.
	ErrCodeMalformedRedirect ErrorCode = "malformed_redirect"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a conflict with existing data.
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError is a structured application error with a code, a
// human-readable message, and an optional cause. It supports error
// wrapping for use with errors.Is and errors.As.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// CredentialRejected creates a credential-rejection error carrying the
// backend-supplied reason, which is safe to surface to the caller.
func CredentialRejected(message string) *AppError {
	return &AppError{Code: ErrCodeCredentialRejected, Message: message}
}

// TokenInvalid creates a token-invalidation error.
func TokenInvalid(message string) *AppError {
	return &AppError{Code: ErrCodeTokenInvalid, Message: message}
}

// Transportf creates a transport-failure error wrapping the network cause.
func Transportf(err error, format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeTransport, Message: fmt.Sprintf(format, args...), Cause: err}
}

// MalformedRedirect creates a malformed-redirect-entry error.
func MalformedRedirect(message string) *AppError {
	return &AppError{Code: ErrCodeMalformedRedirect, Message: message}
}

// Validation creates a Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Internal creates an Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsCredentialRejected checks for a credential-rejection error.
func IsCredentialRejected(err error) bool {
	return isCode(err, ErrCodeCredentialRejected)
}

// IsTokenInvalid checks for a token-invalidation error.
func IsTokenInvalid(err error) bool {
	return isCode(err, ErrCodeTokenInvalid)
}

// IsTransport checks for a transport-failure error.
func IsTransport(err error) bool {
	return isCode(err, ErrCodeTransport)
}

// IsConflict checks for a Conflict error.
func IsConflict(err error) bool {
	return isCode(err, ErrCodeConflict)
}

// IsValidation checks for a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// GetCode returns the ErrorCode from an error, or empty string if the
// error is not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Reason returns the displayable message from an error, or the fallback
// when the error carries no AppError message.
func Reason(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
