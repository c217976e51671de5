package state

import (
	"slices"

	"github.com/s0up4200/marquee/catalog"
)

// The reducers below never modify their input slice. Each keeps the
// invariant that no two entries share a movie id.

// ReplaceEntries returns the fetched entries, keeping the first entry per movie
func ReplaceEntries(fetched []catalog.Entry) []catalog.Entry {
	items := make([]catalog.Entry, 0, len(fetched))
	seen := make(map[int64]struct{}, len(fetched))
	for _, e := range fetched {
		if _, ok := seen[e.Movie.ID]; ok {
			continue
		}
		seen[e.Movie.ID] = struct{}{}
		items = append(items, e)
	}
	return items
}

// UniqueMovies returns movies keeping the first occurrence of each id
func UniqueMovies(movies []catalog.Movie) []catalog.Movie {
	unique := make([]catalog.Movie, 0, len(movies))
	seen := make(map[int64]struct{}, len(movies))
	for _, m := range movies {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		unique = append(unique, m)
	}
	return unique
}

// AppendEntry appends entry unless its movie is already present
func AppendEntry(items []catalog.Entry, entry catalog.Entry) []catalog.Entry {
	if containsMovie(items, entry.Movie.ID) {
		return items
	}
	return append(slices.Clip(items), entry)
}

// RemoveMovie drops every entry for movieID
func RemoveMovie(items []catalog.Entry, movieID int64) []catalog.Entry {
	return slices.DeleteFunc(slices.Clone(items), func(e catalog.Entry) bool {
		return e.Movie.ID == movieID
	})
}

// RemoveEntry drops the entry with entryID
func RemoveEntry(items []catalog.Entry, entryID int64) []catalog.Entry {
	return slices.DeleteFunc(slices.Clone(items), func(e catalog.Entry) bool {
		return e.ID == entryID
	})
}

// ApplyToggle reconciles a toggle outcome into items
func ApplyToggle(items []catalog.Entry, result *catalog.ToggleResult) []catalog.Entry {
	switch result.Status {
	case catalog.ToggleAdded:
		return AppendEntry(items, result.Entry)
	case catalog.ToggleRemoved:
		return RemoveMovie(items, result.MovieID)
	default:
		return items
	}
}

func containsMovie(items []catalog.Entry, movieID int64) bool {
	return slices.ContainsFunc(items, func(e catalog.Entry) bool {
		return e.Movie.ID == movieID
	})
}
