package catalog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/s0up4200/marquee/transport"
)

// RatingService reads and submits the current user's ratings
type RatingService struct {
	doer Doer
}

// NewRatingService creates a new rating service
func NewRatingService(doer Doer) *RatingService {
	return &RatingService{doer: doer}
}

// List retrieves the current user's ratings
func (s *RatingService) List(ctx context.Context) ([]Rating, error) {
	var ratings listing[Rating]
	if err := get(ctx, s.doer, "/ratings/", nil, &ratings); err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}

// Rate submits a score and comment. Rating a movie twice updates the earlier rating.
func (s *RatingService) Rate(ctx context.Context, movieID int64, score int, comment string) (*Rating, error) {
	if movieID <= 0 {
		return nil, ErrInvalidID
	}
	resp, err := s.doer.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		Path:   "/ratings/",
		Body: struct {
			MovieID int64  `json:"movie_id"`
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		}{movieID, score, comment},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rate movie %d: %w", movieID, err)
	}

	var rating Rating
	if err := resp.Decode(&rating); err != nil {
		return nil, fmt.Errorf("failed to rate movie %d: %w", movieID, err)
	}
	return &rating, nil
}
