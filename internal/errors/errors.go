// Package errors provides custom error types for the Gatherly API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail    = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "A user with this username already exists", StatusCode: http.StatusConflict}
)

// Group errors.
var (
	ErrGroupNotFound     = &AppError{Code: "GROUP_NOT_FOUND", Message: "Group not found", StatusCode: http.StatusNotFound}
	ErrNodeNotFound      = &AppError{Code: "NODE_NOT_FOUND", Message: "Node not found", StatusCode: http.StatusNotFound}
	ErrAlreadyMember     = &AppError{Code: "ALREADY_MEMBER", Message: "User is already a member of this group", StatusCode: http.StatusConflict}
	ErrNotGroupMember    = &AppError{Code: "NOT_GROUP_MEMBER", Message: "User is not a member of this group", StatusCode: http.StatusForbidden}
	ErrNodeGroupMismatch = &AppError{Code: "NODE_GROUP_MISMATCH", Message: "Node does not belong to this group", StatusCode: http.StatusBadRequest}
)

// Event errors.
var (
	ErrEventNotFound      = &AppError{Code: "EVENT_NOT_FOUND", Message: "Event not found", StatusCode: http.StatusNotFound}
	ErrEventNotAuthorized = &AppError{Code: "EVENT_NOT_AUTHORIZED", Message: "You do not have access to this event", StatusCode: http.StatusForbidden}
	ErrInvalidRSVPStatus  = &AppError{Code: "INVALID_RSVP_STATUS", Message: "RSVP status must be attending, maybe, or declined", StatusCode: http.StatusBadRequest}
)

// Insight panel & sharing errors.
var (
	ErrPanelNotFound       = &AppError{Code: "PANEL_NOT_FOUND", Message: "Insight panel not found", StatusCode: http.StatusNotFound}
	ErrShareNotFound       = &AppError{Code: "SHARE_NOT_FOUND", Message: "Shared panel not found", StatusCode: http.StatusNotFound}
	ErrInvalidAccessMode   = &AppError{Code: "INVALID_ACCESS_MODE", Message: "Access mode must be fixed or dynamic", StatusCode: http.StatusBadRequest}
	ErrMissingShareConfig  = &AppError{Code: "MISSING_SHARE_CONFIG", Message: "Fixed-mode sharing requires a configuration snapshot", StatusCode: http.StatusBadRequest}
	ErrInvalidAnalysisType = &AppError{Code: "INVALID_ANALYSIS_TYPE", Message: "Unknown analysis type", StatusCode: http.StatusBadRequest}
)
