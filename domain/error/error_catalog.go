package error

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vendorops/insights/domain"
	"github.com/vendorops/insights/domain/valueobject"
)

// ErrorCode represents a unique error code
type ErrorCode string

// Error codes for different categories
const (
	// Authorization Errors (1xxx)
	ErrCodeUnauthorized ErrorCode = "AUTH_1001"
	ErrCodeInvalidToken ErrorCode = "AUTH_1002"

	// Validation Errors (2xxx)
	ErrCodeInvalidRequest ErrorCode = "VALID_2001"
	ErrCodeInvalidLine    ErrorCode = "VALID_2002"
	ErrCodeInvalidWindow  ErrorCode = "VALID_2003"
	ErrCodeInvalidPrice   ErrorCode = "VALID_2004"

	// Lookup Errors (3xxx)
	ErrCodeEntityNotFound ErrorCode = "INSIGHT_3001"
	ErrCodeNoSignal       ErrorCode = "INSIGHT_3002"

	// Concurrency Errors (4xxx)
	ErrCodeVersionConflict ErrorCode = "CONFLICT_4001"
	ErrCodeEntityLocked    ErrorCode = "CONFLICT_4002"

	// Rate Limiting Errors (5xxx)
	ErrCodeRateLimitExceeded ErrorCode = "RATE_5001"

	// Server Errors (6xxx)
	ErrCodeDatabaseError       ErrorCode = "SERVER_6001"
	ErrCodeInternalServerError ErrorCode = "SERVER_6002"
)

// AppError represents a structured application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, details string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

func ErrUnauthorized(details string) *AppError {
	return NewAppError(ErrCodeUnauthorized, "Tenant context is required", details, domain.ErrUnauthorized)
}

func ErrInvalidToken(details string) *AppError {
	return NewAppError(ErrCodeInvalidToken, "Invalid or expired token", details, domain.ErrUnauthorized)
}

func ErrInvalidRequest(details string) *AppError {
	return NewAppError(ErrCodeInvalidRequest, "Invalid request", details, nil)
}

func ErrRateLimitExceeded(limit int, window string) *AppError {
	return NewAppError(ErrCodeRateLimitExceeded, "Too many requests", fmt.Sprintf("Limit: %d, Window: %s", limit, window), nil)
}

func ErrEntityLocked(key string) *AppError {
	return NewAppError(ErrCodeEntityLocked, "Entity is being modified, retry later", fmt.Sprintf("Key: %s", key), nil)
}

// FromDomain maps a usecase error onto the catalog. Unknown errors become
// internal server errors and keep the original as cause.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return NewAppError(ErrCodeUnauthorized, "Tenant context is required", "", err)
	case errors.Is(err, domain.ErrEntityNotFound):
		return NewAppError(ErrCodeEntityNotFound, "Entity not found", "", err)
	case errors.Is(err, domain.ErrNoSignal):
		return NewAppError(ErrCodeNoSignal, "Insufficient data for a recommendation", "", err)
	case errors.Is(err, domain.ErrInvalidLine):
		return NewAppError(ErrCodeInvalidLine, "Invalid purchase order line", detailsOf(err, domain.ErrInvalidLine), err)
	case errors.Is(err, domain.ErrInvalidPrice):
		return NewAppError(ErrCodeInvalidPrice, "Price must be greater than zero", "", err)
	case errors.Is(err, valueobject.ErrInvalidWindow):
		return NewAppError(ErrCodeInvalidWindow, "Window must be 7, 30 or 90 days", "", err)
	case errors.Is(err, domain.ErrVersionConflict):
		return NewAppError(ErrCodeVersionConflict, "Entity was modified concurrently", "", err)
	case errors.Is(err, domain.ErrEntityLocked):
		return NewAppError(ErrCodeEntityLocked, "Entity is being modified, retry later", "", err)
	default:
		return NewAppError(ErrCodeInternalServerError, "Internal server error", "", err)
	}
}

// GetHTTPStatusCode maps an error to the HTTP status the boundary reports.
func GetHTTPStatusCode(err error) int {
	appErr := FromDomain(err)
	switch appErr.Code {
	case ErrCodeUnauthorized, ErrCodeInvalidToken:
		return http.StatusUnauthorized
	case ErrCodeInvalidRequest, ErrCodeInvalidWindow:
		return http.StatusBadRequest
	case ErrCodeInvalidLine, ErrCodeInvalidPrice:
		return http.StatusUnprocessableEntity
	case ErrCodeEntityNotFound, ErrCodeNoSignal:
		return http.StatusNotFound
	case ErrCodeVersionConflict, ErrCodeEntityLocked:
		return http.StatusConflict
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrCodeDatabaseError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// detailsOf strips the sentinel's own text so only the wrapping context remains.
func detailsOf(err, sentinel error) string {
	msg := err.Error()
	suffix := ": " + sentinel.Error()
	if len(msg) > len(suffix) && msg[len(msg)-len(suffix):] == suffix {
		return msg[:len(msg)-len(suffix)]
	}
	return ""
}
