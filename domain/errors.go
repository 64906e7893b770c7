package domain

import (
	"github.com/pkg/errors"
)

// Error kinds. Every failure a service reports to a client wraps one of these.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("invalid reference")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
)

// AppError carries a client-facing message on top of an error kind.
type AppError struct {
	kind    error
	message string
}

func (e *AppError) Error() string {
	return e.message
}

func (e *AppError) Unwrap() error {
	return e.kind
}

// Message returns the text that is safe to send to the client.
func (e *AppError) Message() string {
	return e.message
}

func newAppError(kind error, message string) error {
	return errors.WithStack(&AppError{kind: kind, message: message})
}

func ValidationError(message string) error {
	return newAppError(ErrValidation, message)
}

func NotFoundError(message string) error {
	return newAppError(ErrNotFound, message)
}

func InvalidReferenceError(message string) error {
	return newAppError(ErrInvalidReference, message)
}

func UnauthorizedError(message string) error {
	return newAppError(ErrUnauthorized, message)
}

func ForbiddenError(message string) error {
	return newAppError(ErrForbidden, message)
}

func ConflictError(message string) error {
	return newAppError(ErrConflict, message)
}

// PublicMessage extracts the client-facing message of err, if it has one.
func PublicMessage(err error) (string, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message(), true
	}

	return "", false
}
