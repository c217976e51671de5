package catalog

import (
	"context"

	"github.com/s0up4200/marquee/transport"
)

// Doer sends API requests. *transport.Client implements it.
type Doer interface {
	Do(ctx context.Context, req *transport.Request) (*transport.Response, error)
}

// Membership defines the operations of a membership collection (favorites or watchlist)
type Membership interface {
	// List retrieves every entry of the collection
	List(ctx context.Context) ([]Entry, error)

	// Add creates an entry for a movie
	Add(ctx context.Context, movieID int64) (*Entry, error)

	// Toggle flips membership of a movie; the server decides the direction
	Toggle(ctx context.Context, movieID int64) (*ToggleResult, error)

	// Remove deletes an entry by its entry id
	Remove(ctx context.Context, entryID int64) error
}

// Catalog defines the movie listing and recommendation operations
type Catalog interface {
	List(ctx context.Context, query MovieQuery) (*MovieList, error)
	Get(ctx context.Context, movieID int64) (*Movie, error)
	Recommendations(ctx context.Context, kind RecommendationType) ([]Movie, error)
	Similar(ctx context.Context, movieID int64) ([]Movie, error)
}
