package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrValidation         = errors.New("validation error")
)

// Error pairs a taxonomy sentinel with the message shown to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

func Conflict(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }

func AlreadyInitialized(msg string) error {
	return &Error{Kind: ErrAlreadyInitialized, Message: msg}
}

func Unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }

func Validation(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }
