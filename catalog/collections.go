package catalog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/s0up4200/marquee/transport"
)

// CollectionKind names a membership collection
type CollectionKind string

const (
	// Favorites is the user's favorite movies
	Favorites CollectionKind = "favorites"
	// Watchlist is the user's movies to watch
	Watchlist CollectionKind = "watchlist"
)

// ParseCollectionKind validates a collection name
func ParseCollectionKind(s string) (CollectionKind, error) {
	switch CollectionKind(s) {
	case Favorites, Watchlist:
		return CollectionKind(s), nil
	}
	return "", fmt.Errorf("unknown collection: %s", s)
}

func (k CollectionKind) path() string {
	return "/" + string(k) + "/"
}

// CollectionService talks to /favorites/ or /watchlist/
type CollectionService struct {
	doer Doer
	kind CollectionKind
}

// NewCollectionService creates a new service for one collection
func NewCollectionService(doer Doer, kind CollectionKind) *CollectionService {
	return &CollectionService{doer: doer, kind: kind}
}

// Kind returns the collection this service targets
func (s *CollectionService) Kind() CollectionKind {
	return s.kind
}

// List retrieves every entry
func (s *CollectionService) List(ctx context.Context) ([]Entry, error) {
	var entries listing[Entry]
	if err := get(ctx, s.doer, s.kind.path(), nil, &entries); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.kind, err)
	}
	return entries, nil
}

// Add creates an entry for movieID
func (s *CollectionService) Add(ctx context.Context, movieID int64) (*Entry, error) {
	if movieID <= 0 {
		return nil, ErrInvalidID
	}
	resp, err := s.doer.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		Path:   s.kind.path(),
		Body:   movieRef{MovieID: movieID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add movie %d to %s: %w", movieID, s.kind, err)
	}

	var entry Entry
	if err := resp.Decode(&entry); err != nil {
		return nil, fmt.Errorf("failed to add movie %d to %s: %w", movieID, s.kind, err)
	}
	return &entry, nil
}

// Toggle flips membership of movieID. The server decides whether the movie is
// added or removed.
func (s *CollectionService) Toggle(ctx context.Context, movieID int64) (*ToggleResult, error) {
	if movieID <= 0 {
		return nil, ErrInvalidID
	}
	resp, err := s.doer.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		Path:   s.kind.path() + "toggle/",
		Body:   movieRef{MovieID: movieID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle movie %d in %s: %w", movieID, s.kind, err)
	}

	result, err := decodeToggle(resp, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle movie %d in %s: %w", movieID, s.kind, err)
	}
	return result, nil
}

// Remove deletes the entry with entryID
func (s *CollectionService) Remove(ctx context.Context, entryID int64) error {
	if entryID <= 0 {
		return ErrInvalidID
	}
	_, err := s.doer.Do(ctx, &transport.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("%s%d/", s.kind.path(), entryID),
	})
	if err != nil {
		return fmt.Errorf("failed to remove entry %d from %s: %w", entryID, s.kind, err)
	}
	return nil
}

type movieRef struct {
	MovieID int64 `json:"movie_id"`
}
