// ABOUTME: Typed API errors and response message extraction
// ABOUTME: Decodes backend error payloads in detail > message > error priority

package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is the sentinel unwrapped by any 401 response.
// Callers use errors.Is(err, ErrUnauthorized) to detect an invalid session.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("gateway returned status %d", e.Status)
}

// Unwrap lets errors.Is match ErrUnauthorized for 401 responses.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// errorBody is the union of error shapes the backend emits. FastAPI uses
// "detail", the generic API envelope uses "message", ad-hoc handlers use
// "error".
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Err     string          `json:"error"`
}

// extractMessage pulls a human-readable message out of an error response
// body, checking fields in priority order: detail, message, error. Returns
// fallback when nothing usable is present.
func extractMessage(body []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return fallback
	}

	if len(eb.Detail) > 0 {
		// detail is usually a string, but FastAPI validation errors
		// send a structure; only adopt the string form.
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil && s != "" {
			return s
		}
	}
	if eb.Message != "" {
		return eb.Message
	}
	if eb.Err != "" {
		return eb.Err
	}
	return fallback
}

// newAPIError builds an APIError from a response status and body.
func newAPIError(status int, body []byte, requestID string) *APIError {
	return &APIError{
		Status:    status,
		Message:   extractMessage(body, http.StatusText(status)),
		RequestID: requestID,
	}
}
