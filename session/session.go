// Package session wires the credential store, transport, domain services and
// state containers into one object with a login-to-logout lifecycle.
package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/credentials"
	"github.com/s0up4200/marquee/state"
	"github.com/s0up4200/marquee/transport"
)

// Config holds the connection settings of a session
type Config struct {
	APIURL    string
	Timeout   time.Duration
	UserAgent string
	// CredentialsPath is the bolt database holding the tokens. Empty keeps
	// them in memory for the life of the process.
	CredentialsPath string
}

// Session owns everything a signed-in user needs
type Session struct {
	client *transport.Client
	store  credentials.Store
	logger zerolog.Logger

	Auth             *catalog.AuthService
	Browser          *catalog.Browser
	Ratings          *catalog.RatingService
	FavoritesService *catalog.CollectionService
	WatchlistService *catalog.CollectionService

	Movies    *state.Movies
	Favorites *state.Collection
	Watchlist *state.Collection
}

// Open creates a session, opening the credential database when configured
func Open(cfg Config, logger zerolog.Logger) (*Session, error) {
	var store credentials.Store = credentials.NewMemoryStore()
	if cfg.CredentialsPath != "" {
		bolt, err := credentials.OpenBoltStore(cfg.CredentialsPath)
		if err != nil {
			return nil, err
		}
		store = bolt
	}

	s, err := New(cfg, store, logger)
	if err != nil {
		if closer, ok := store.(io.Closer); ok {
			closer.Close()
		}
		return nil, err
	}
	return s, nil
}

// New creates a session around an existing credential store
func New(cfg Config, store credentials.Store, logger zerolog.Logger) (*Session, error) {
	var opts []transport.Option
	if cfg.Timeout > 0 {
		opts = append(opts, transport.WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, transport.WithUserAgent(cfg.UserAgent))
	}

	client, err := transport.NewClient(cfg.APIURL, store, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	s := &Session{
		client:           client,
		store:            store,
		logger:           logger,
		Auth:             catalog.NewAuthService(client, store, logger),
		Browser:          catalog.NewBrowser(client),
		Ratings:          catalog.NewRatingService(client),
		FavoritesService: catalog.NewCollectionService(client, catalog.Favorites),
		WatchlistService: catalog.NewCollectionService(client, catalog.Watchlist),
	}
	s.Movies = state.NewMovies(s.Browser, logger)
	s.Favorites = state.NewCollection(string(catalog.Favorites), s.FavoritesService, logger)
	s.Watchlist = state.NewCollection(string(catalog.Watchlist), s.WatchlistService, logger)

	return s, nil
}

// Client returns the underlying API client
func (s *Session) Client() *transport.Client {
	return s.client
}

// Store returns the credential store
func (s *Session) Store() credentials.Store {
	return s.store
}

// Collection returns the container for kind
func (s *Session) Collection(kind catalog.CollectionKind) *state.Collection {
	if kind == catalog.Watchlist {
		return s.Watchlist
	}
	return s.Favorites
}

// Authenticated reports whether an access credential is present
func (s *Session) Authenticated() bool {
	return s.Auth.Authenticated()
}

// Login signs in and discards data cached for any previous user
func (s *Session) Login(ctx context.Context, username, password string) error {
	if _, err := s.Auth.Login(ctx, username, password); err != nil {
		return err
	}
	s.resetContainers()
	return nil
}

// Register creates an account and signs it in
func (s *Session) Register(ctx context.Context, reg catalog.Registration) (*catalog.AuthResult, error) {
	result, err := s.Auth.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	s.resetContainers()
	return result, nil
}

// Logout forgets the credentials and empties every container
func (s *Session) Logout() error {
	err := s.Auth.Logout()
	s.resetContainers()
	if err != nil {
		return err
	}
	s.logger.Info().Msg("Logged out")
	return nil
}

// RefreshAll fetches favorites and watchlist concurrently. Each container
// settles on its own response; a failure of one does not cancel the other.
func (s *Session) RefreshAll(ctx context.Context) error {
	var g errgroup.Group
	for _, c := range []*state.Collection{s.Favorites, s.Watchlist} {
		g.Go(func() error {
			if err := c.Fetch(ctx).Wait(); err != nil {
				return fmt.Errorf("failed to refresh %s: %w", c.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Close releases the credential store. Credentials persisted to disk are kept.
func (s *Session) Close() error {
	if closer, ok := s.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (s *Session) resetContainers() {
	s.Movies.Reset()
	s.Favorites.Reset()
	s.Watchlist.Reset()
}
