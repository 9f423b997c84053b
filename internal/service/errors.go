package service

import (
	"errors"
	"fmt"

	"skillup/api/internal/llm"
)

type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindAuth          ErrorKind = "auth"
	KindAuthorization ErrorKind = "authorization"
	KindNotFound      ErrorKind = "not_found"
	KindConflict      ErrorKind = "conflict"
	KindGeneration    ErrorKind = "generation"
	KindTruncated     ErrorKind = "truncated"
	KindUpstream      ErrorKind = "upstream"
)

// Error carries a user-facing Message. Err holds the detail for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NewValidationError(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func NewAuthError(msg string) error       { return &Error{Kind: KindAuth, Message: msg} }
func NewNotFoundError(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }
func NewConflictError(msg string) error   { return &Error{Kind: KindConflict, Message: msg} }
func NewAuthorizationError(msg string) error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// generationError classifies an error coming out of the llm gateway.
func generationError(err error) error {
	switch {
	case errors.Is(err, llm.ErrTruncated):
		return &Error{Kind: KindTruncated, Message: "Response truncated - please try again", Err: err}
	case errors.Is(err, llm.ErrGeneration):
		return &Error{Kind: KindGeneration, Message: "The AI returned an unexpected format - please try again", Err: err}
	case errors.Is(err, llm.ErrUpstream):
		return &Error{Kind: KindUpstream, Message: "The AI service is unavailable - please try again", Err: err}
	}
	return err
}
