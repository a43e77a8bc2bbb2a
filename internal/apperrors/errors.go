package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
// Ownership-scoped lookups return this for foreign-owned records too, so a
// caller can never learn whether a record exists under another account.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotPersisted indicates the store accepted a write but reported no row affected.
var ErrNotPersisted = errors.New("record not persisted")

// ErrAccountSuspended indicates an administrator-suspended account. It always
// takes precedence over the lockout timer.
var ErrAccountSuspended = errors.New("account is suspended")

// AppError is an infrastructure-level failure carrying a stable identifier
// for log correlation. The identifier is a debugging aid, never part of the
// client contract.
type AppError struct {
	Code       int    // suggested HTTP status
	Identifier string // stable machine-readable code, e.g. "0x000A04"
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Identifier, e.Err)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Identifier)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps an underlying error as an infrastructure failure.
func NewAppError(code int, identifier, message string, err error) *AppError {
	return &AppError{Code: code, Identifier: identifier, Message: message, Err: err}
}

// AccountLockedError rejects a login attempt while a lockout window is active.
type AccountLockedError struct {
	RetryAfterSeconds int64
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account is blocked, retry after %d seconds", e.RetryAfterSeconds)
}
