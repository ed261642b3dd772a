package service

import (
	"errors"
	"fmt"

	"rollingpaper/internal/repository"
)

// Error kinds returned by the service layer. Match them with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrAuth            = errors.New("authentication failed")
	ErrUnauthenticated = errors.New("sign-in required")
	ErrForbidden       = errors.New("forbidden")
	ErrAccessDenied    = errors.New("board password required")
	ErrStore           = errors.New("store failure")
)

// kindError tags a cause with one of the kinds above while keeping the cause's message.
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string   { return e.err.Error() }
func (e *kindError) Unwrap() []error { return []error{e.kind, e.err} }

func withKind(kind, err error) error {
	return &kindError{kind: kind, err: err}
}

func validationf(format string, args ...interface{}) error {
	return withKind(ErrValidation, fmt.Errorf(format, args...))
}

// fromStore maps repository errors onto service kinds. Anything unrecognised is a store failure.
func fromStore(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrBoardNotFound), errors.Is(err, repository.ErrMessageNotFound):
		return withKind(ErrNotFound, err)
	case errors.Is(err, repository.ErrBoardExists):
		return withKind(ErrConflict, err)
	default:
		return withKind(ErrStore, err)
	}
}
