// Package errors provides custom error types for the Divvy API.
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
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Group errors.
var (
	ErrGroupNotFound  = &AppError{Code: "GROUP_NOT_FOUND", Message: "Group not found", StatusCode: http.StatusNotFound}
	ErrNotGroupMember = &AppError{Code: "NOT_GROUP_MEMBER", Message: "You are not a member of this group", StatusCode: http.StatusForbidden}
	ErrAlreadyMember  = &AppError{Code: "ALREADY_MEMBER", Message: "User is already a member of this group", StatusCode: http.StatusConflict}
)

// Friendship errors.
var (
	ErrFriendNotFound        = &AppError{Code: "FRIEND_NOT_FOUND", Message: "No user found with that email", StatusCode: http.StatusNotFound}
	ErrSelfFriendship        = &AppError{Code: "SELF_FRIENDSHIP", Message: "You cannot add yourself as a friend", StatusCode: http.StatusBadRequest}
	ErrFriendshipExists      = &AppError{Code: "FRIENDSHIP_EXISTS", Message: "A friendship with this user already exists", StatusCode: http.StatusConflict}
	ErrFriendRequestNotFound = &AppError{Code: "FRIEND_REQUEST_NOT_FOUND", Message: "Friend request not found", StatusCode: http.StatusNotFound}
)

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrNoParticipants  = &AppError{Code: "NO_PARTICIPANTS", Message: "An expense needs at least one participant", StatusCode: http.StatusBadRequest}
)

// Settlement errors.
var (
	ErrSettlementNotFound = &AppError{Code: "SETTLEMENT_NOT_FOUND", Message: "Settlement not found", StatusCode: http.StatusNotFound}
	ErrSelfSettlement     = &AppError{Code: "SELF_SETTLEMENT", Message: "You cannot settle up with yourself", StatusCode: http.StatusBadRequest}
)
