package state

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/catalog"
)

// CollectionState is a snapshot of a Collection
type CollectionState struct {
	Status
	Items []catalog.Entry
}

// Collection caches the entries of one membership collection (favorites or
// watchlist). Toggle does not mutate optimistically: items change only when
// the server has answered.
type Collection struct {
	name    string
	service catalog.Membership
	c       *container[[]catalog.Entry]
}

// NewCollection creates an empty collection backed by service
func NewCollection(name string, service catalog.Membership, logger zerolog.Logger) *Collection {
	return &Collection{
		name:    name,
		service: service,
		c:       newContainer[[]catalog.Entry](name, logger),
	}
}

// Name returns the collection name
func (c *Collection) Name() string {
	return c.name
}

// Fetch replaces items with the server's entries
func (c *Collection) Fetch(ctx context.Context) *Task {
	return c.c.dispatch(ctx, "fetch", func(ctx context.Context) (func(*[]catalog.Entry), error) {
		entries, err := c.service.List(ctx)
		if err != nil {
			return nil, err
		}
		return func(items *[]catalog.Entry) {
			*items = ReplaceEntries(entries)
		}, nil
	})
}

// Toggle flips membership of movieID as decided by the server
func (c *Collection) Toggle(ctx context.Context, movieID int64) *Task {
	return c.c.dispatch(ctx, "toggle", func(ctx context.Context) (func(*[]catalog.Entry), error) {
		result, err := c.service.Toggle(ctx, movieID)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, fmt.Errorf("%w: empty toggle result for movie %d", catalog.ErrUnexpectedPayload, movieID)
		}
		return func(items *[]catalog.Entry) {
			*items = ApplyToggle(*items, result)
		}, nil
	})
}

// Add creates an entry for movieID
func (c *Collection) Add(ctx context.Context, movieID int64) *Task {
	return c.c.dispatch(ctx, "add", func(ctx context.Context) (func(*[]catalog.Entry), error) {
		entry, err := c.service.Add(ctx, movieID)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return nil, fmt.Errorf("%w: empty entry for movie %d", catalog.ErrUnexpectedPayload, movieID)
		}
		return func(items *[]catalog.Entry) {
			*items = AppendEntry(*items, *entry)
		}, nil
	})
}

// Remove deletes the entry with entryID
func (c *Collection) Remove(ctx context.Context, entryID int64) *Task {
	return c.c.dispatch(ctx, "remove", func(ctx context.Context) (func(*[]catalog.Entry), error) {
		if err := c.service.Remove(ctx, entryID); err != nil {
			return nil, err
		}
		return func(items *[]catalog.Entry) {
			*items = RemoveEntry(*items, entryID)
		}, nil
	})
}

// Snapshot returns a copy of the current state
func (c *Collection) Snapshot() CollectionState {
	var s CollectionState
	c.c.read(func(items *[]catalog.Entry, status Status) {
		s = CollectionState{Status: status, Items: slices.Clone(*items)}
	})
	return s
}

// Contains reports whether movieID is a member
func (c *Collection) Contains(movieID int64) bool {
	var ok bool
	c.c.read(func(items *[]catalog.Entry, _ Status) {
		ok = containsMovie(*items, movieID)
	})
	return ok
}

// EntryFor returns the entry for movieID
func (c *Collection) EntryFor(movieID int64) (catalog.Entry, bool) {
	var (
		entry catalog.Entry
		ok    bool
	)
	c.c.read(func(items *[]catalog.Entry, _ Status) {
		i := slices.IndexFunc(*items, func(e catalog.Entry) bool { return e.Movie.ID == movieID })
		if i >= 0 {
			entry, ok = (*items)[i], true
		}
	})
	return entry, ok
}

// ClearError forgets the last error
func (c *Collection) ClearError() {
	c.c.clearError()
}

// Reset empties the collection
func (c *Collection) Reset() {
	c.c.reset()
}

// OnChange registers fn to run after every change and returns a function
// that unregisters it
func (c *Collection) OnChange(fn Listener) func() {
	return c.c.onChange(fn)
}
