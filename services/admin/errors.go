package admin

import (
	"errors"
	"net/http"
)

var (
	ErrUserNotFound = errors.New("User not found")
	ErrBlankInput   = errors.New("required field is blank")
	ErrUnavailable  = errors.New("Delete user functionality not available - endpoint not implemented in backend")
)

// ActionError wraps a failed admin action with the message shown to the operator.
type ActionError struct {
	Message string
	Err     error
}

func (e *ActionError) Error() string { return e.Message }

func (e *ActionError) Unwrap() error { return e.Err }

func HTTPStatus(err error) int {
	var aErr *ActionError
	switch {
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBlankInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnavailable):
		return http.StatusNotImplemented
	case errors.As(err, &aErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
