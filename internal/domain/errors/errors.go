package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy. Every usecase error wraps one of these.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrValidation    = errors.New("validation failed")
	ErrStateConflict = errors.New("state conflict")
	ErrForbidden     = errors.New("forbidden")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrRateLimited   = errors.New("too many requests")
)

// Specific failures, each classified under the taxonomy above.
var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	ErrAccountInactive    = fmt.Errorf("account is not active: %w", ErrForbidden)
	ErrBidTooLow          = fmt.Errorf("bid must be higher than the current highest bid: %w", ErrStateConflict)
	ErrInactiveAuction    = fmt.Errorf("auction is not accepting bids: %w", ErrStateConflict)
	ErrOTPExpired         = fmt.Errorf("otp has expired: %w", ErrStateConflict)
	ErrInvalidOTP         = fmt.Errorf("otp does not match: %w", ErrStateConflict)
	ErrAlreadyApproved    = fmt.Errorf("documents already approved: %w", ErrStateConflict)
	ErrInvalidTransition  = fmt.Errorf("status transition not allowed: %w", ErrStateConflict)
)

// Error codes returned to clients
const (
	CodeNotFound       = "ERR_NOT_FOUND"
	CodeValidation     = "ERR_VALIDATION"
	CodeStateConflict  = "ERR_STATE_CONFLICT"
	CodeForbidden      = "ERR_FORBIDDEN"
	CodeUnauthorized   = "ERR_UNAUTHORIZED"
	CodeAlreadyExists  = "ERR_ALREADY_EXISTS"
	CodeInternalError  = "ERR_INTERNAL"
	CodeBidTooLow      = "ERR_BID_TOO_LOW"
	CodeInactive       = "ERR_AUCTION_INACTIVE"
	CodeOTPExpired     = "ERR_OTP_EXPIRED"
	CodeInvalidOTP     = "ERR_OTP_INVALID"
	CodeTooManyRequest = "ERR_TOO_MANY_REQUESTS"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrValidation)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeStateConflict, message, ErrStateConflict)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// Validation wraps ErrValidation with a field-level message
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// Conflictf wraps ErrStateConflict with a message
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrStateConflict)
}

// Forbiddenf wraps ErrForbidden with a message
func Forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrForbidden)
}

// NotFoundf wraps ErrNotFound with a message
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// FromError classifies any error into an AppError. The message of wrapped
// taxonomy errors is safe to show; anything unclassified is hidden.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrBidTooLow):
		return NewAppError(http.StatusConflict, CodeBidTooLow, err.Error(), err)
	case errors.Is(err, ErrInactiveAuction):
		return NewAppError(http.StatusConflict, CodeInactive, err.Error(), err)
	case errors.Is(err, ErrOTPExpired):
		return NewAppError(http.StatusConflict, CodeOTPExpired, "OTP has expired", err)
	case errors.Is(err, ErrInvalidOTP):
		return NewAppError(http.StatusConflict, CodeInvalidOTP, "Invalid OTP", err)
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, err.Error(), err)
	case errors.Is(err, ErrValidation):
		return NewAppError(http.StatusBadRequest, CodeValidation, err.Error(), err)
	case errors.Is(err, ErrAlreadyExists):
		return NewAppError(http.StatusConflict, CodeAlreadyExists, err.Error(), err)
	case errors.Is(err, ErrStateConflict):
		return NewAppError(http.StatusConflict, CodeStateConflict, err.Error(), err)
	case errors.Is(err, ErrForbidden):
		return NewAppError(http.StatusForbidden, CodeForbidden, err.Error(), err)
	case errors.Is(err, ErrUnauthorized):
		return NewAppError(http.StatusUnauthorized, CodeUnauthorized, err.Error(), err)
	case errors.Is(err, ErrRateLimited):
		return NewAppError(http.StatusTooManyRequests, CodeTooManyRequest, err.Error(), err)
	default:
		return InternalError(err)
	}
}
