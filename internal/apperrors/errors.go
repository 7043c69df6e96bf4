package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStorage indicates that the backing store failed or returned inconsistent data.
var ErrStorage = errors.New("storage failure")

// AppError carries an error kind (one of the sentinels above), a message that is safe
// to show to API clients, and the underlying cause if any.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

// Error returns the display message only. Use Detail for the full chain.
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewAppError builds an AppError of the given kind.
func NewAppError(kind error, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewValidationError(message string) *AppError {
	return NewAppError(ErrValidation, message, nil)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(ErrNotFound, message, nil)
}

func NewConflictError(message string) *AppError {
	return NewAppError(ErrDuplicate, message, nil)
}

func NewStorageError(message string, err error) *AppError {
	return NewAppError(ErrStorage, message, err)
}

// Message returns the client-facing message of the first AppError in the chain,
// falling back to err.Error().
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Detail renders the error with its cause, for logging.
func Detail(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Err != nil {
		return fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
	}
	return err.Error()
}
