package catalog

import (
	"fmt"
	"strings"
)

// FormatOptions controls how much detail the formatter prints
type FormatOptions struct {
	ShowDetails bool
}

// ConsoleFormatter provides console output formatting for catalog data
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatMovieList formats a list of movies for console display
func (f *ConsoleFormatter) FormatMovieList(movies []Movie, options FormatOptions) string {
	if len(movies) == 0 {
		return "No movies found"
	}

	var sb strings.Builder
	sb.WriteString("\nMovie")
	if len(movies) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(movies))

	for i := range movies {
		isLast := i == len(movies)-1
		f.formatMovie(&sb, &movies[i], isLast, options)
		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatPage formats one page of a listing with its position
func (f *ConsoleFormatter) FormatPage(movies []Movie, page, totalPages int, options FormatOptions) string {
	out := f.FormatMovieList(movies, options)
	if totalPages <= 1 {
		return out
	}
	return out + fmt.Sprintf("Page %d of %d\n", max(page, 1), totalPages)
}

// FormatMovie formats a single movie with all its details
func (f *ConsoleFormatter) FormatMovie(movie *Movie) string {
	var sb strings.Builder
	sb.WriteString("\n")
	f.formatMovie(&sb, movie, true, FormatOptions{ShowDetails: true})
	if movie.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", movie.Overview)
	}
	return sb.String()
}

// FormatEntries formats favorites or watchlist entries
func (f *ConsoleFormatter) FormatEntries(kind CollectionKind, entries []Entry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("Your %s is empty", kind)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", titleCase(string(kind)), len(entries))
	for i, e := range entries {
		prefix := "├"
		if i == len(entries)-1 {
			prefix = "╰"
		}
		fmt.Fprintf(&sb, "%s── [%d] %s", prefix, e.ID, movieLabel(&e.Movie))
		if added := e.Added(); !added.IsZero() {
			fmt.Fprintf(&sb, " (added %s)", added.Format("2006-01-02"))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// FormatRatings formats ratings, labelled by movie when present or by user otherwise
func (f *ConsoleFormatter) FormatRatings(ratings []Rating) string {
	if len(ratings) == 0 {
		return "No ratings found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nRatings (%d):\n\n", len(ratings))
	for i, r := range ratings {
		isLast := i == len(ratings)-1
		prefix, indent := "├", "│   "
		if isLast {
			prefix, indent = "╰", "    "
		}

		label := r.Username
		if r.Movie != nil {
			label = movieLabel(r.Movie)
		}
		fmt.Fprintf(&sb, "%s── %s: %d/10\n", prefix, label, r.Rating)
		if r.Comment != "" {
			fmt.Fprintf(&sb, "%s%q\n", indent, r.Comment)
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

// FormatGenres formats the genre list on one line per genre
func (f *ConsoleFormatter) FormatGenres(genres []Genre) string {
	if len(genres) == 0 {
		return "No genres found"
	}
	var sb strings.Builder
	for _, g := range genres {
		fmt.Fprintf(&sb, "%4d  %s\n", g.ID, g.Name)
	}
	return sb.String()
}

// FormatToggle describes a toggle outcome
func (f *ConsoleFormatter) FormatToggle(kind CollectionKind, result *ToggleResult) string {
	if result.Status == ToggleAdded {
		return fmt.Sprintf("Added %s to %s", movieLabel(&result.Entry.Movie), kind)
	}
	return fmt.Sprintf("Removed movie %d from %s", result.MovieID, kind)
}

func (f *ConsoleFormatter) formatMovie(sb *strings.Builder, movie *Movie, isLast bool, options FormatOptions) {
	prefix := "├"
	if isLast {
		prefix = "╰"
	}
	fmt.Fprintf(sb, "%s── [%d] %s\n", prefix, movie.ID, movieLabel(movie))

	if !options.ShowDetails {
		return
	}

	indent := "│   "
	if isLast {
		indent = "    "
	}

	if len(movie.Genres) > 0 {
		fmt.Fprintf(sb, "%sGenres: %s\n", indent, strings.Join(movie.GenreNames(), ", "))
	}

	var scores []string
	if movie.VoteCount > 0 {
		scores = append(scores, fmt.Sprintf("TMDB: %.1f (%d votes)", movie.VoteAverage, movie.VoteCount))
	}
	if movie.AverageRating != nil {
		scores = append(scores, fmt.Sprintf("Users: %.1f", *movie.AverageRating))
	}
	if movie.UserRating != nil {
		scores = append(scores, fmt.Sprintf("You: %d", *movie.UserRating))
	}
	if len(scores) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(scores, " | "))
	}

	if movie.IsFavorite {
		fmt.Fprintf(sb, "%s★ Favorite\n", indent)
	}
}

func movieLabel(m *Movie) string {
	if year := m.Year(); year > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, year)
	}
	return m.Title
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
