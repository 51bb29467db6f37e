package errors

import (
	"errors"
	"fmt"
)

// ValidationError rejects a mutation before it has any persistent effect.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

// NotFoundError covers both a missing transaction id and a transaction
// owned by another user. Callers must not be able to tell the two apart.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{Msg: msg}
}

func IsNotFoundError(err error) bool {
	var notFoundError *NotFoundError
	ok := errors.As(err, &notFoundError)
	return ok
}

// IntegrityError marks a state where the transaction store and the user
// balances may disagree (for example a persisted mutation whose balance
// delta could not be applied). It must be surfaced, never swallowed.
type IntegrityError struct {
	Msg string
	Err error
}

func (e *IntegrityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

func NewIntegrityError(msg string, err error) error {
	return &IntegrityError{Msg: msg, Err: err}
}

func IsIntegrityError(err error) bool {
	var integrityError *IntegrityError
	ok := errors.As(err, &integrityError)
	return ok
}

var ErrInvalidUserCategory = NewValidationError("Invalid user category")
var ErrInvalidPredefinedCategory = NewValidationError("Invalid predefined category")
