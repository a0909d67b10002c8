// Package apperrors defines the application error envelope shared by
// services and HTTP handlers. Every service failure maps to a coded
// error carrying the HTTP status the handler layer should emit.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes.
const (
	CodeValidation         = "validation_error"
	CodeNotFound           = "not_found"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeConflict           = "conflict"
	CodeInsufficientFunds  = "insufficient_funds"
	CodeInsufficientStamina = "insufficient_stamina"
	CodeStageLocked        = "stage_locked"
	CodeBattleState        = "invalid_battle_state"
	CodeRateLimited        = "rate_limited"
	CodeInternal           = "internal_error"
)

// Error is the application error envelope.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"-"`
	Details map[string]any `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e *Error) Unwrap() error { return e.cause }

// WithDetail attaches a key/value pair to the error's details.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// New builds an error with an explicit code and status.
func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

// Validation flags a bad request.
func Validation(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...), Status: http.StatusBadRequest}
}

// NotFound flags a missing resource.
func NotFound(resource, id string) *Error {
	e := &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource), Status: http.StatusNotFound}
	if id != "" {
		e.WithDetail("id", id)
	}
	return e
}

// Unauthorized flags a missing or invalid credential.
func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

// Forbidden flags an authenticated but disallowed request.
func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message, Status: http.StatusForbidden}
}

// Conflict flags a uniqueness or state collision.
func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message, Status: http.StatusConflict}
}

// InsufficientFunds names the currency that ran short.
func InsufficientFunds(currency string, required, available int) *Error {
	return (&Error{
		Code:    CodeInsufficientFunds,
		Message: fmt.Sprintf("insufficient %s", currency),
		Status:  http.StatusBadRequest,
	}).WithDetail("currency", currency).WithDetail("required", required).WithDetail("available", available)
}

// InsufficientStamina flags a stamina shortfall.
func InsufficientStamina(required, available int) *Error {
	return (&Error{
		Code:    CodeInsufficientStamina,
		Message: "insufficient stamina",
		Status:  http.StatusBadRequest,
	}).WithDetail("required", required).WithDetail("available", available)
}

// StageLocked flags a stage the player has not unlocked.
func StageLocked(stageID string) *Error {
	return (&Error{
		Code:    CodeStageLocked,
		Message: "stage is locked",
		Status:  http.StatusForbidden,
	}).WithDetail("stage_id", stageID)
}

// BattleState flags an action invalid for the battle's current state.
func BattleState(message string) *Error {
	return &Error{Code: CodeBattleState, Message: message, Status: http.StatusConflict}
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "internal server error", Status: http.StatusInternalServerError, cause: err}
}

// From normalizes any error into an *Error, passing through existing
// envelopes and wrapping the rest as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
