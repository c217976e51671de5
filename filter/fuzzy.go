package filter

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/s0up4200/marquee/catalog"
)

// titles adapts a movie slice to fuzzy.Source
type titles []catalog.Movie

func (t titles) String(i int) string { return t[i].Title }
func (t titles) Len() int            { return len(t) }

// MatchTitles returns the movies whose title fuzzily matches pattern, best
// match first. An empty pattern matches every movie in input order.
func MatchTitles(pattern string, movies []catalog.Movie) []catalog.Movie {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return movies
	}

	matches := fuzzy.FindFrom(pattern, titles(movies))
	result := make([]catalog.Movie, 0, len(matches))
	for _, match := range matches {
		result = append(result, movies[match.Index])
	}
	return result
}
