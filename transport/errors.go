package transport

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Common errors
var (
	// ErrTransport indicates a network failure or a server-side (5xx) error
	ErrTransport = errors.New("transport failure")
	// ErrAuthExpired indicates the access credential was rejected
	ErrAuthExpired = errors.New("access credential rejected")
	// ErrRefreshFailed indicates the renewal credential could not be exchanged
	ErrRefreshFailed = errors.New("credential renewal failed")
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrEmptyBody indicates a response without a body where one was expected
	ErrEmptyBody = errors.New("empty response body")
)

// APIError represents a non-2xx response from the movie API
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("API error: status %d: %s", e.StatusCode, e.Message)
}

// Is maps the status code onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAuthExpired:
		return e.IsUnauthorized()
	case ErrTransport:
		return e.IsServerError()
	case ErrNotFound:
		return e.IsNotFound()
	}
	return false
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates a rejected credential
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden checks if the authenticated user may not access the resource
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsServerError checks if the server failed to handle the request
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// ValidationError carries the server's field -> messages mapping for a
// rejected submission.
type ValidationError struct {
	StatusCode int
	Fields     map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the first message for a field, or "".
func (e *ValidationError) Field(name string) string {
	if msgs := e.Fields[name]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// TransportError indicates the request never produced an HTTP response
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// RefreshFailedError indicates the renewal exchange failed. Both credentials
// have been cleared by the time it is returned.
type RefreshFailedError struct {
	Err error
}

func (e *RefreshFailedError) Error() string {
	return fmt.Sprintf("credential renewal failed: %v", e.Err)
}

func (e *RefreshFailedError) Unwrap() error {
	return e.Err
}

func (e *RefreshFailedError) Is(target error) bool {
	return target == ErrRefreshFailed
}
