package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation         = "validation_error"
	CodeNotFound           = "not_found"
	CodeConflict           = "conflict"
	CodeInvariantViolation = "invariant_violation"
	CodeStorage            = "storage_error"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func Conflict(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, CodeConflict, fmt.Errorf(format, args...))
}

func InvariantViolation(format string, args ...interface{}) *Error {
	return New(http.StatusUnprocessableEntity, CodeInvariantViolation, fmt.Errorf(format, args...))
}

func Storage(err error) *Error {
	return New(http.StatusBadGateway, CodeStorage, err)
}

// From pulls an *Error out of a wrapped chain, defaulting anything
// unclassified to a storage error.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Storage(err)
}

func Is(err error, code string) bool {
	ae := From(err)
	return ae != nil && ae.Code == code
}
