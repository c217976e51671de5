package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/s0up4200/marquee/transport"
)

// MovieService reads the movie catalog
type MovieService struct {
	doer Doer
}

// NewMovieService creates a new movie service
func NewMovieService(doer Doer) *MovieService {
	return &MovieService{doer: doer}
}

// List retrieves movies matching query
func (s *MovieService) List(ctx context.Context, query MovieQuery) (*MovieList, error) {
	var list MovieList
	if err := get(ctx, s.doer, "/movies/", query.Values(), &list); err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return &list, nil
}

// Trending retrieves movies ordered by recent favorites
func (s *MovieService) Trending(ctx context.Context) (*MovieList, error) {
	return s.List(ctx, MovieQuery{Trending: true})
}

// Search retrieves movies whose title or overview matches term
func (s *MovieService) Search(ctx context.Context, term string) (*MovieList, error) {
	return s.List(ctx, MovieQuery{Search: term})
}

// ByGenre retrieves movies of a genre, matched by name
func (s *MovieService) ByGenre(ctx context.Context, genre string) (*MovieList, error) {
	return s.List(ctx, MovieQuery{Genre: genre})
}

// Get retrieves a single movie
func (s *MovieService) Get(ctx context.Context, movieID int64) (*Movie, error) {
	if movieID <= 0 {
		return nil, ErrInvalidID
	}
	var movie Movie
	if err := get(ctx, s.doer, fmt.Sprintf("/movies/%d/", movieID), nil, &movie); err != nil {
		return nil, fmt.Errorf("failed to get movie %d: %w", movieID, err)
	}
	return &movie, nil
}

// Ratings retrieves every user's rating for a movie
func (s *MovieService) Ratings(ctx context.Context, movieID int64) ([]Rating, error) {
	if movieID <= 0 {
		return nil, ErrInvalidID
	}
	var ratings []Rating
	if err := get(ctx, s.doer, fmt.Sprintf("/movies/%d/ratings/", movieID), nil, &ratings); err != nil {
		return nil, fmt.Errorf("failed to get ratings for movie %d: %w", movieID, err)
	}
	return ratings, nil
}

// Genres retrieves all genres
func (s *MovieService) Genres(ctx context.Context) ([]Genre, error) {
	var genres []Genre
	if err := get(ctx, s.doer, "/genres/", nil, &genres); err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

// get performs a GET and decodes the body into out
func get(ctx context.Context, doer Doer, path string, query url.Values, out any) error {
	resp, err := doer.Do(ctx, &transport.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
	if err != nil {
		return err
	}
	return resp.Decode(out)
}
