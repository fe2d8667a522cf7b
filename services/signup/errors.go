package signup

import (
	"errors"
	"net/http"
)

var (
	ErrSessionNotFound = errors.New("signup session not found or expired")
	ErrBusy            = errors.New("a request for this signup is already in progress")
	ErrTerminalStep    = errors.New("signup is already complete")
	ErrAccountRequired = errors.New("please create your account before continuing")
	ErrAccountExists   = errors.New("An account with this email already exists.")
)

// ValidationError is a local input problem; no backend call was made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StepError is a backend failure during a step, with a user-facing message.
type StepError struct {
	Message string
	Status  int
	Err     error
}

func (e *StepError) Error() string { return e.Message }

func (e *StepError) Unwrap() error { return e.Err }

// HTTPStatus maps a signup error to a response status. Errors it does not
// know about are reported as 500.
func HTTPStatus(err error) int {
	var vErr *ValidationError
	var sErr *StepError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.As(err, &sErr):
		return sErr.Status
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBusy), errors.Is(err, ErrTerminalStep),
		errors.Is(err, ErrAccountRequired), errors.Is(err, ErrAccountExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
