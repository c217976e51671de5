package catalog

import "errors"

// Common errors
var (
	// ErrUnexpectedPayload indicates a response that declares neither outcome of a toggle
	ErrUnexpectedPayload = errors.New("unexpected response payload")
	// ErrMissingTokens indicates an auth response without an access token
	ErrMissingTokens = errors.New("auth response carried no access token")
	// ErrInvalidID indicates a non-positive resource identifier
	ErrInvalidID = errors.New("identifier must be positive")
)
