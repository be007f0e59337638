package exchange

import (
	"errors"
	"fmt"
)

// Kind classifies engine failures.
type Kind string

const (
	KindValidation   Kind = "VALIDATION_ERROR"
	KindNotFound     Kind = "NOT_FOUND"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindStorage      Kind = "STORAGE_FAILURE"
)

// Error is returned by engine operations and validators.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exchange %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("exchange %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Code is the stable identifier logged as err_code.
func (e *Error) Code() string { return string(e.Kind) }

// KindOf returns the Kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func validationError(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Err: errors.New(msg)}
}

func storageError(op string, err error) error {
	return &Error{Kind: KindStorage, Op: op, Err: err}
}
