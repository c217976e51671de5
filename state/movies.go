package state

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/catalog"
)

// MoviesState is a snapshot of the Movies container
type MoviesState struct {
	Status
	Results         []catalog.Movie
	Current         *catalog.Movie
	Trending        []catalog.Movie
	Recommendations []catalog.Movie
	Similar         []catalog.Movie
	TotalPages      int
	CurrentPage     int
	// Query is the listing query behind Results
	Query catalog.MovieQuery
}

type moviesData struct {
	results         []catalog.Movie
	current         *catalog.Movie
	trending        []catalog.Movie
	recommendations []catalog.Movie
	similar         []catalog.Movie
	totalPages      int
	currentPage     int
	query           catalog.MovieQuery
}

// Movies caches catalog listings, the movie being viewed, trending movies
// and recommendations
type Movies struct {
	catalog catalog.Catalog
	c       *container[moviesData]
}

// NewMovies creates an empty container backed by cat
func NewMovies(cat catalog.Catalog, logger zerolog.Logger) *Movies {
	return &Movies{
		catalog: cat,
		c:       newContainer[moviesData]("movies", logger),
	}
}

// Fetch replaces Results with the listing for query
func (m *Movies) Fetch(ctx context.Context, query catalog.MovieQuery) *Task {
	return m.c.dispatch(ctx, "fetch", func(ctx context.Context) (func(*moviesData), error) {
		list, err := m.catalog.List(ctx, query)
		if err != nil {
			return nil, err
		}
		return func(d *moviesData) {
			d.results = UniqueMovies(list.Results)
			d.totalPages = list.TotalPages(catalog.DefaultPageSize)
			d.currentPage = max(query.Page, 1)
			d.query = query
		}, nil
	})
}

// Search lists movies matching term from the first page
func (m *Movies) Search(ctx context.Context, term string) *Task {
	return m.Fetch(ctx, catalog.MovieQuery{Search: term})
}

// FilterByGenre lists movies of genre from the first page
func (m *Movies) FilterByGenre(ctx context.Context, genre string) *Task {
	return m.Fetch(ctx, catalog.MovieQuery{Genre: genre})
}

// FetchPage repeats the last listing query at page
func (m *Movies) FetchPage(ctx context.Context, page int) *Task {
	var query catalog.MovieQuery
	m.c.read(func(d *moviesData, _ Status) {
		query = d.query
	})
	query.Page = page
	return m.Fetch(ctx, query)
}

// FetchMovie loads a movie into Current
func (m *Movies) FetchMovie(ctx context.Context, movieID int64) *Task {
	return m.c.dispatch(ctx, "fetch_movie", func(ctx context.Context) (func(*moviesData), error) {
		movie, err := m.catalog.Get(ctx, movieID)
		if err != nil {
			return nil, err
		}
		return func(d *moviesData) {
			d.current = movie
		}, nil
	})
}

// FetchTrending loads Trending
func (m *Movies) FetchTrending(ctx context.Context) *Task {
	return m.c.dispatch(ctx, "fetch_trending", func(ctx context.Context) (func(*moviesData), error) {
		list, err := m.catalog.List(ctx, catalog.MovieQuery{Trending: true})
		if err != nil {
			return nil, err
		}
		return func(d *moviesData) {
			d.trending = UniqueMovies(list.Results)
		}, nil
	})
}

// FetchRecommendations loads Recommendations of the given kind
func (m *Movies) FetchRecommendations(ctx context.Context, kind catalog.RecommendationType) *Task {
	return m.c.dispatch(ctx, "fetch_recommendations", func(ctx context.Context) (func(*moviesData), error) {
		movies, err := m.catalog.Recommendations(ctx, kind)
		if err != nil {
			return nil, err
		}
		return func(d *moviesData) {
			d.recommendations = UniqueMovies(movies)
		}, nil
	})
}

// FetchSimilar loads Similar for movieID
func (m *Movies) FetchSimilar(ctx context.Context, movieID int64) *Task {
	return m.c.dispatch(ctx, "fetch_similar", func(ctx context.Context) (func(*moviesData), error) {
		movies, err := m.catalog.Similar(ctx, movieID)
		if err != nil {
			return nil, err
		}
		return func(d *moviesData) {
			d.similar = UniqueMovies(movies)
		}, nil
	})
}

// SetPage records page as the current page without fetching
func (m *Movies) SetPage(page int) {
	m.c.update(func(d *moviesData) {
		d.currentPage = max(page, 1)
	})
}

// ClearCurrent forgets the movie being viewed
func (m *Movies) ClearCurrent() {
	m.c.update(func(d *moviesData) {
		d.current = nil
	})
}

// ClearError forgets the last error
func (m *Movies) ClearError() {
	m.c.clearError()
}

// Reset empties the container
func (m *Movies) Reset() {
	m.c.reset()
}

// OnChange registers fn to run after every change and returns a function
// that unregisters it
func (m *Movies) OnChange(fn Listener) func() {
	return m.c.onChange(fn)
}

// Snapshot returns a copy of the current state
func (m *Movies) Snapshot() MoviesState {
	var s MoviesState
	m.c.read(func(d *moviesData, status Status) {
		s = MoviesState{
			Status:          status,
			Results:         slices.Clone(d.results),
			Trending:        slices.Clone(d.trending),
			Recommendations: slices.Clone(d.recommendations),
			Similar:         slices.Clone(d.similar),
			TotalPages:      max(d.totalPages, 1),
			CurrentPage:     max(d.currentPage, 1),
			Query:           d.query,
		}
		if d.current != nil {
			current := *d.current
			s.Current = &current
		}
	})
	return s
}
