package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const transportMessage = "Unable to reach the license server. Please try again later."

// APIError describes a failed backend call. StatusCode is zero when the
// request never produced a response.
type APIError struct {
	Op         string
	StatusCode int
	Detail     string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("backend %s: status %d: %s", e.Op, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend %s: status %d", e.Op, e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsTransport reports whether err is a backend call that got no HTTP response.
func IsTransport(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 0
}

// UserMessage maps err to something that can be shown next to a form.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	if apiErr.StatusCode == 0 {
		return transportMessage
	}
	if apiErr.Detail != "" && apiErr.StatusCode < http.StatusInternalServerError {
		return apiErr.Detail
	}
	return fallback
}

// errorDetail pulls a readable message out of a FastAPI-style error body.
func errorDetail(body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		var detail string
		if len(payload.Detail) > 0 && json.Unmarshal(payload.Detail, &detail) == nil && detail != "" {
			return detail
		}
		if payload.Message != "" {
			return payload.Message
		}
		if len(payload.Detail) > 0 {
			return string(payload.Detail)
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
