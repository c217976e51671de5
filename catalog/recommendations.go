package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// RecommendationService consumes the server's recommendation output
type RecommendationService struct {
	doer Doer
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(doer Doer) *RecommendationService {
	return &RecommendationService{doer: doer}
}

// Recommendations retrieves personal recommendations of the given kind
func (s *RecommendationService) Recommendations(ctx context.Context, kind RecommendationType) ([]Movie, error) {
	if kind == "" {
		kind = RecommendCollaborative
	}
	var movies []Movie
	if err := get(ctx, s.doer, "/recommendations/", url.Values{"type": {string(kind)}}, &movies); err != nil {
		return nil, fmt.Errorf("failed to get %s recommendations: %w", kind, err)
	}
	return movies, nil
}

// Similar retrieves movies similar to movieID
func (s *RecommendationService) Similar(ctx context.Context, movieID int64) ([]Movie, error) {
	if movieID <= 0 {
		return nil, ErrInvalidID
	}
	var movies []Movie
	query := url.Values{"movie_id": {strconv.FormatInt(movieID, 10)}}
	if err := get(ctx, s.doer, "/recommendations/", query, &movies); err != nil {
		return nil, fmt.Errorf("failed to get movies similar to %d: %w", movieID, err)
	}
	return movies, nil
}

// Browser combines listing and recommendations into a Catalog
type Browser struct {
	*MovieService
	*RecommendationService
}

// NewBrowser creates a Catalog backed by doer
func NewBrowser(doer Doer) *Browser {
	return &Browser{
		MovieService:          NewMovieService(doer),
		RecommendationService: NewRecommendationService(doer),
	}
}
