package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
)

// InvalidStateError reports an operation that the current state of an
// aggregate does not allow, e.g. claiming an order that is not ready.
type InvalidStateError struct {
	ParamName string
	State     any
	Cause     error
}

func NewInvalidStateError(paramName string, state any) *InvalidStateError {
	return &InvalidStateError{ParamName: paramName, State: state}
}

func NewInvalidStateErrorWithCause(paramName string, state any, cause error) *InvalidStateError {
	return &InvalidStateError{ParamName: paramName, State: state, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	msg := fmt.Sprintf("%s: %s is %v", ErrInvalidState, e.ParamName, sanitize(e.State))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

// Unwrap exposes the cause as well, so domain sentinels carried as the cause
// stay matchable with errors.Is.
func (e *InvalidStateError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidState}
	}
	return []error{ErrInvalidState, e.Cause}
}

// ConflictError reports a lost race against a concurrent writer or a
// uniqueness violation.
type ConflictError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewConflictError(paramName string, id any) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id}
}

func NewConflictErrorWithCause(paramName string, id any, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %v", ErrConflict, e.ParamName, e.ID)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ForbiddenError reports a caller acting on a resource it does not own.
type ForbiddenError struct {
	Action string
	Cause  error
}

func NewForbiddenError(action string) *ForbiddenError {
	return &ForbiddenError{Action: action}
}

func NewForbiddenErrorWithCause(action string, cause error) *ForbiddenError {
	return &ForbiddenError{Action: action, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrForbidden, e.Action, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrForbidden, e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}
