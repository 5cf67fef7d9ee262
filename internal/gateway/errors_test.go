// ABOUTME: Tests for API error construction and message extraction
// ABOUTME: Covers the detail > message > error > fallback priority order

package gateway

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMessage_Priority(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "detail wins over message and error",
			body:     `{"detail":"Incorrect username or password","message":"msg","error":"err"}`,
			expected: "Incorrect username or password",
		},
		{
			name:     "message wins over error",
			body:     `{"message":"something broke","error":"err"}`,
			expected: "something broke",
		},
		{
			name:     "error used last",
			body:     `{"error":"forbidden"}`,
			expected: "forbidden",
		},
		{
			name:     "structured detail falls through to message",
			body:     `{"detail":[{"loc":["body","username"],"msg":"field required"}],"message":"validation failed"}`,
			expected: "validation failed",
		},
		{
			name:     "empty body uses fallback",
			body:     ``,
			expected: "fallback",
		},
		{
			name:     "non-JSON body uses fallback",
			body:     `<html>502 Bad Gateway</html>`,
			expected: "fallback",
		},
		{
			name:     "empty object uses fallback",
			body:     `{}`,
			expected: "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractMessage([]byte(tt.body), "fallback")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAPIError_UnwrapsUnauthorized(t *testing.T) {
	err := newAPIError(http.StatusUnauthorized, []byte(`{"detail":"token expired"}`), "req-1")
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "token expired", err.Message)
}

func TestAPIError_OtherStatusesDoNotUnwrap(t *testing.T) {
	err := newAPIError(http.StatusForbidden, []byte(`{"detail":"no"}`), "req-1")
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestAPIError_FallbackStatusText(t *testing.T) {
	err := newAPIError(http.StatusBadGateway, nil, "req-1")
	assert.Equal(t, "Bad Gateway", err.Message)
	assert.Equal(t, http.StatusBadGateway, err.Status)
}
