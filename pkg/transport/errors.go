package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-success response from the service. The session does
// not interpret status codes beyond retry classification; callers branch
// on them with the helpers below.
type APIError struct {
	// StatusCode is the HTTP status of the failed response.
	StatusCode int

	// Code is the service's error code ("ItemNotFound", ...), when the
	// body carried one.
	Code string

	// Message is the service's error message, or the raw body when the
	// response was not the standard error envelope.
	Message string

	// RequestID is the correlation id the session attached to the
	// request.
	RequestID string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("powerbi: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("powerbi: %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is a 403 from the service.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
