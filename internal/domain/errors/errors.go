package errors

import (
	"net/http"

	"wellness/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches errors sharing the same business code, so a WithDetails copy
// still satisfies errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_UPDATE_FAILED",
		"Failed to update user",
		"",
	)

	ErrUnsupportedLanguage = NewBaseError(
		http.StatusBadRequest,
		"UNSUPPORTED_LANGUAGE",
		"Language must be one of: en, es",
		"",
	)

	// Authentication-related errors
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	ErrInvalidIDToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_ID_TOKEN",
		"Identity token is invalid or expired",
		"",
	)

	ErrAccessTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"ACCESS_TOKEN_INVALID",
		"Access token is invalid or expired",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Refresh token is invalid or expired",
		"",
	)

	ErrAdminRequired = NewBaseError(
		http.StatusForbidden,
		"ADMIN_REQUIRED",
		"Admin access required",
		"",
	)

	// Membership-related errors
	ErrMembershipNotFound = NewBaseError(
		http.StatusNotFound,
		"MEMBERSHIP_NOT_FOUND",
		"No active membership found",
		"",
	)

	ErrMembershipAlreadyActive = NewBaseError(
		http.StatusConflict,
		"MEMBERSHIP_ALREADY_ACTIVE",
		"User already holds an active membership",
		"",
	)

	ErrMembershipInactive = NewBaseError(
		http.StatusNotFound,
		"MEMBERSHIP_INACTIVE",
		"Membership is not active",
		"",
	)

	ErrInvalidTier = NewBaseError(
		http.StatusBadRequest,
		"INVALID_TIER",
		"Tier must be one of: silver, gold, platinum",
		"",
	)

	ErrInvalidMembershipQR = NewBaseError(
		http.StatusBadRequest,
		"INVALID_MEMBERSHIP_QR",
		"QR payload is not a membership card",
		"",
	)

	// Ledger-related errors
	ErrInvalidAmount = NewBaseError(
		http.StatusBadRequest,
		"INVALID_AMOUNT",
		"Amount must be greater than zero",
		"",
	)

	ErrInvalidTransactionType = NewBaseError(
		http.StatusBadRequest,
		"INVALID_TRANSACTION_TYPE",
		"Invalid transaction type",
		"",
	)

	ErrInsufficientBalance = NewBaseError(
		http.StatusBadRequest,
		"INSUFFICIENT_BALANCE",
		"Insufficient balance",
		"",
	)

	ErrConcurrentUpdate = NewBaseError(
		http.StatusConflict,
		"CONCURRENT_UPDATE",
		"Membership was modified concurrently, please retry",
		"",
	)

	// Event-related errors
	ErrEventNotFound = NewBaseError(
		http.StatusNotFound,
		"EVENT_NOT_FOUND",
		"Event not found",
		"",
	)

	ErrTierNotEligible = NewBaseError(
		http.StatusForbidden,
		"TIER_NOT_ELIGIBLE",
		"Membership tier does not grant access to this event",
		"",
	)

	ErrAlreadyRegistered = NewBaseError(
		http.StatusConflict,
		"ALREADY_REGISTERED",
		"Already registered for this event",
		"",
	)

	ErrEventFull = NewBaseError(
		http.StatusConflict,
		"EVENT_FULL",
		"Event has reached its capacity",
		"",
	)

	ErrNoVipAllowance = NewBaseError(
		http.StatusConflict,
		"NO_VIP_ALLOWANCE",
		"No VIP events remaining on this membership",
		"",
	)

	// Gift-related errors
	ErrGiftNotFound = NewBaseError(
		http.StatusNotFound,
		"GIFT_NOT_FOUND",
		"Welcome gift not found",
		"",
	)

	ErrGiftAlreadyRedeemed = NewBaseError(
		http.StatusConflict,
		"GIFT_ALREADY_REDEEMED",
		"Welcome gift has already been redeemed",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Invalid input data",
		"",
	)

	// System-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Transaction failed",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_ERROR"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database operation failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// Unwrap exposes the underlying driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}
