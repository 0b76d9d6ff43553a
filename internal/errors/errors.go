package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeInvalidInput indicates a query was empty or still the placeholder text.
	ErrCodeInvalidInput ErrorCode = "invalid_input"
	// ErrCodeNotAuthenticated indicates the operation requires a connected session.
	ErrCodeNotAuthenticated ErrorCode = "not_authenticated"
	// ErrCodeAuthCancelled indicates the operator cancelled an in-flight login.
	ErrCodeAuthCancelled ErrorCode = "auth_cancelled"
	// ErrCodeAuthTimeout indicates the login countdown ran out.
	ErrCodeAuthTimeout ErrorCode = "auth_timeout"
	// ErrCodeAuthError indicates the identity provider failed.
	ErrCodeAuthError ErrorCode = "auth_error"
	// ErrCodeAlreadyInProgress indicates a login attempt is already running.
	ErrCodeAlreadyInProgress ErrorCode = "already_in_progress"
	// ErrCodeLookupError indicates a directory query failed.
	ErrCodeLookupError ErrorCode = "lookup_error"
	// ErrCodeNotFound indicates a sub-query returned nothing.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid configuration or arguments.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Reason is provider reason text for lookup errors (optional)
	Reason string
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

// Is matches any AppError carrying the same code, so sentinels below work with errors.Is.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.Message == "" && t.Cause == nil
}

// Code-only sentinels for errors.Is checks.
var (
	ErrInvalidInput      = &AppError{Code: ErrCodeInvalidInput}
	ErrNotAuthenticated  = &AppError{Code: ErrCodeNotAuthenticated}
	ErrAuthCancelled     = &AppError{Code: ErrCodeAuthCancelled}
	ErrAuthTimeout       = &AppError{Code: ErrCodeAuthTimeout}
	ErrAlreadyInProgress = &AppError{Code: ErrCodeAlreadyInProgress}
)

// InvalidInput creates a new InvalidInput error.
func InvalidInput(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// NotAuthenticated creates a new NotAuthenticated error.
func NotAuthenticated(message string) *AppError {
	return &AppError{Code: ErrCodeNotAuthenticated, Message: message}
}

// AuthCancelled creates a new AuthCancelled error.
func AuthCancelled(message string) *AppError {
	return &AppError{Code: ErrCodeAuthCancelled, Message: message}
}

// AuthTimeout creates a new AuthTimeout error.
func AuthTimeout(message string) *AppError {
	return &AppError{Code: ErrCodeAuthTimeout, Message: message}
}

// AlreadyInProgress creates a new AlreadyInProgress error.
func AlreadyInProgress(message string) *AppError {
	return &AppError{Code: ErrCodeAlreadyInProgress, Message: message}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Lookup creates a LookupError carrying the provider's reason text.
func Lookup(message, reason string, cause error) *AppError {
	return &AppError{Code: ErrCodeLookupError, Message: message, Reason: reason, Cause: cause}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
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

// IsInvalidInput checks if an error is an InvalidInput error.
func IsInvalidInput(err error) bool { return isCode(err, ErrCodeInvalidInput) }

// IsNotAuthenticated checks if an error is a NotAuthenticated error.
func IsNotAuthenticated(err error) bool { return isCode(err, ErrCodeNotAuthenticated) }

// IsAuthCancelled checks if an error is an AuthCancelled error.
func IsAuthCancelled(err error) bool { return isCode(err, ErrCodeAuthCancelled) }

// IsAuthTimeout checks if an error is an AuthTimeout error.
func IsAuthTimeout(err error) bool { return isCode(err, ErrCodeAuthTimeout) }

// IsAuthError checks if an error is an AuthError error.
func IsAuthError(err error) bool { return isCode(err, ErrCodeAuthError) }

// IsAlreadyInProgress checks if an error is an AlreadyInProgress error.
func IsAlreadyInProgress(err error) bool { return isCode(err, ErrCodeAlreadyInProgress) }

// IsLookupError checks if an error is a LookupError.
func IsLookupError(err error) bool { return isCode(err, ErrCodeLookupError) }

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetReason returns the provider reason text carried by a LookupError, if any.
func GetReason(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Reason
	}
	return ""
}
