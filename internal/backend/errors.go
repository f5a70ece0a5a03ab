package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnreachable wraps transport-level failures: the request never produced
// an HTTP response. Call sites surface a generic connectivity message.
var ErrUnreachable = errors.New("backend unreachable")

// APIError is a non-2xx HTTP response from the backend, carrying the
// server-supplied message when one was present in the body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// HasStatus reports whether err is an APIError with the given status code.
func HasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// ServerMessage extracts the server-supplied message from err, or "" when
// there is none (transport failures, bodyless errors).
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// newAPIError builds an APIError from a response body. Bodies are commonly
// {"message": "..."}, sometimes a bare JSON string, sometimes plain text.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return apiErr
	}

	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		apiErr.Message = envelope.Message
		return apiErr
	}

	var bare string
	if err := json.Unmarshal(body, &bare); err == nil {
		apiErr.Message = bare
		return apiErr
	}

	apiErr.Message = trimmed
	return apiErr
}
