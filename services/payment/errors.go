package payment

import (
	"errors"
	"net/http"
)

// Error is a payment failure whose Message is safe to show to the user.
type Error struct {
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus returns the status a handler should answer with for err.
func HTTPStatus(err error) int {
	var pErr *Error
	if errors.As(err, &pErr) && pErr.Status != 0 {
		return pErr.Status
	}
	return http.StatusBadGateway
}

var (
	ErrNotConfigured = &Error{
		Message: "Stripe is not properly configured. Please check your environment variables.",
		Status:  http.StatusServiceUnavailable,
	}
	ErrMissingSession = &Error{
		Message: "Invalid session. Please complete the payment process.",
		Status:  http.StatusBadRequest,
	}
	ErrNoSessionID = &Error{
		Message: "No session ID received from the server. Please check your backend configuration.",
		Status:  http.StatusBadGateway,
	}
)

func newError(status int, message string, err error) *Error {
	return &Error{Message: message, Status: status, Err: err}
}
