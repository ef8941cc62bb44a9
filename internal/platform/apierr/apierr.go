package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Wrap with the constructors below and test with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrNoCandidate     = errors.New("no suitable recipe")
	ErrDataAccess      = errors.New("data access failure")
	ErrAuthorization   = errors.New("not authorized")
	ErrAuthentication  = errors.New("not authenticated")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
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

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, "not_found", kindf(ErrNotFound, format, args...))
}

func NoCandidate(format string, args ...any) *Error {
	return New(http.StatusUnprocessableEntity, "no_candidate", kindf(ErrNoCandidate, format, args...))
}

func Forbidden(format string, args ...any) *Error {
	return New(http.StatusForbidden, "forbidden", kindf(ErrAuthorization, format, args...))
}

func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, "unauthorized", kindf(ErrAuthentication, format, args...))
}

func Invalid(format string, args ...any) *Error {
	return New(http.StatusBadRequest, "invalid_argument", kindf(ErrInvalidArgument, format, args...))
}

func Conflict(format string, args ...any) *Error {
	return New(http.StatusConflict, "conflict", kindf(ErrConflict, format, args...))
}

// DataAccess marks a store failure. Already-classified errors pass through untouched.
func DataAccess(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return New(http.StatusServiceUnavailable, "data_access", fmt.Errorf("%w: %s: %w", ErrDataAccess, op, err))
}

// StatusOf returns the HTTP status carried by err, 500 when unclassified.
func StatusOf(err error) (int, string) {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status, ae.Code
	}
	return http.StatusInternalServerError, "internal"
}

func kindf(kind error, format string, args ...any) error {
	if format == "" {
		return kind
	}
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
