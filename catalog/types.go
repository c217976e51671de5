package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// DefaultPageSize is the server's page size for paginated movie listings
const DefaultPageSize = 20

// Genre represents a movie genre
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Movie is an immutable snapshot of a catalog movie. Identity is ID.
type Movie struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Overview      string   `json:"overview"`
	ReleaseDate   string   `json:"release_date"`
	PosterPath    string   `json:"poster_path,omitempty"`
	BackdropPath  string   `json:"backdrop_path,omitempty"`
	TMDBID        *int64   `json:"tmdb_id,omitempty"`
	Genres        []Genre  `json:"genres"`
	Popularity    float64  `json:"popularity"`
	VoteAverage   float64  `json:"vote_average"`
	VoteCount     int      `json:"vote_count"`
	IsFavorite    bool     `json:"is_favorite"`
	UserRating    *int     `json:"user_rating,omitempty"`
	AverageRating *float64 `json:"average_rating,omitempty"`
}

// Released parses the release date, returning the zero time when absent or malformed
func (m *Movie) Released() time.Time {
	t, err := time.Parse(time.DateOnly, m.ReleaseDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Year returns the release year, or 0 when unknown
func (m *Movie) Year() int {
	if t := m.Released(); !t.IsZero() {
		return t.Year()
	}
	return 0
}

// GenreNames returns the genre names in server order
func (m *Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

// Entry is a favorites or watchlist record. Its ID identifies the record, not the movie.
type Entry struct {
	ID        int64     `json:"id"`
	Movie     Movie     `json:"movie"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	AddedAt   time.Time `json:"added_at,omitzero"`
}

// Added returns when the entry was recorded
func (e *Entry) Added() time.Time {
	if !e.CreatedAt.IsZero() {
		return e.CreatedAt
	}
	return e.AddedAt
}

// Rating is a user's score and comment for a movie
type Rating struct {
	ID        int64     `json:"id"`
	Movie     *Movie    `json:"movie,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// User represents an API account
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Registration carries the fields submitted to create an account
type Registration struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// AuthResult is the registration response
type AuthResult struct {
	User    User   `json:"user"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// MovieQuery holds the listing filters understood by /movies/
type MovieQuery struct {
	Search   string
	Genre    string
	Year     int
	Trending bool
	Page     int
}

// Values encodes the query parameters, omitting unset fields
func (q MovieQuery) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Genre != "" {
		v.Set("genre", q.Genre)
	}
	if q.Year > 0 {
		v.Set("year", strconv.Itoa(q.Year))
	}
	if q.Trending {
		v.Set("trending", "true")
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

// MovieList is a movie listing. The server answers either with a bare array or
// with a paginated envelope; both decode into MovieList.
type MovieList struct {
	Count     int     `json:"count"`
	Next      string  `json:"next"`
	Previous  string  `json:"previous"`
	Results   []Movie `json:"results"`
	Paginated bool    `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler
func (l *MovieList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var movies []Movie
		if err := json.Unmarshal(data, &movies); err != nil {
			return err
		}
		*l = MovieList{Count: len(movies), Results: movies}
		return nil
	}

	type envelope MovieList
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*l = MovieList(env)
	l.Paginated = true
	return nil
}

// listing decodes either a bare array or the results of a paginated envelope
type listing[T any] []T

// UnmarshalJSON implements json.Unmarshaler
func (l *listing[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var env struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*l = env.Results
	return nil
}

// TotalPages returns the number of pages at the given page size, at least 1
func (l *MovieList) TotalPages(pageSize int) int {
	if !l.Paginated || l.Count == 0 || pageSize <= 0 {
		return 1
	}
	return (l.Count + pageSize - 1) / pageSize
}

// RecommendationType selects the server-side recommendation strategy
type RecommendationType string

const (
	// RecommendCollaborative uses ratings from similar users
	RecommendCollaborative RecommendationType = "collaborative"
	// RecommendContentBased uses genres of movies the user liked
	RecommendContentBased RecommendationType = "content-based"
)

// ParseRecommendationType validates a recommendation type name
func ParseRecommendationType(s string) (RecommendationType, error) {
	switch RecommendationType(s) {
	case RecommendCollaborative, RecommendContentBased:
		return RecommendationType(s), nil
	case "":
		return RecommendCollaborative, nil
	}
	return "", fmt.Errorf("invalid recommendation type: %s (must be 'collaborative' or 'content-based')", s)
}

// ToggleStatus is the outcome declared by the server for a toggle request
type ToggleStatus int

const (
	// ToggleAdded means the movie is now a member
	ToggleAdded ToggleStatus = iota + 1
	// ToggleRemoved means the movie is no longer a member
	ToggleRemoved
)

// String returns the string representation of a ToggleStatus
func (s ToggleStatus) String() string {
	switch s {
	case ToggleAdded:
		return "added"
	case ToggleRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// ToggleResult is the tagged toggle outcome. Entry is set only for ToggleAdded.
type ToggleResult struct {
	Status  ToggleStatus
	Entry   Entry
	MovieID int64
}

// Added creates an added-variant result
func Added(entry Entry) *ToggleResult {
	return &ToggleResult{Status: ToggleAdded, Entry: entry, MovieID: entry.Movie.ID}
}

// Removed creates a removed-variant result
func Removed(movieID int64) *ToggleResult {
	return &ToggleResult{Status: ToggleRemoved, MovieID: movieID}
}
