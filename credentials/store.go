// Package credentials holds the access and renewal tokens issued by the movie API.
//
// A Store is owned by a single session. Implementations never inspect or validate
// the tokens they hold: both values are opaque strings. The absence of an access
// token is the only signal used to decide that a session is unauthenticated.
package credentials

import "errors"

// ErrEmptyToken is returned by Save when the access token is empty.
var ErrEmptyToken = errors.New("access token must not be empty")

// Store persists an access credential and a renewal credential.
type Store interface {
	// Save replaces both credentials. An empty renewal token is stored as absent.
	Save(access, renewal string) error

	// Access returns the current access token and whether one is set.
	Access() (string, bool)

	// Renewal returns the current renewal token and whether one is set.
	Renewal() (string, bool)

	// Clear removes both credentials.
	Clear() error
}

// Credentials is a snapshot of both tokens.
type Credentials struct {
	Access  string
	Renewal string
}

// Snapshot reads both credentials from s.
func Snapshot(s Store) Credentials {
	access, _ := s.Access()
	renewal, _ := s.Renewal()
	return Credentials{Access: access, Renewal: renewal}
}
