package catalog

import (
	"errors"
	"fmt"
)

// APIError is an application error reported by the API in its {"error": "..."} body.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d from %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// IsAPIError reports whether err is, or wraps, an *APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// UserMessage returns the text shown to the user for err.
// Application errors surface the server message verbatim; transport and
// parse failures get the fixed fallback so internals never leak to the screen.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
