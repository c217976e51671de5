package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/filter"
)

var (
	searchTerm  string
	genreName   string
	releaseYear int
	trending    bool
	page        int
	whereExpr   string
	preset      string
	titleMatch  string
	showRatings bool
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "Browse the movie catalog",
}

var moviesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List movies, optionally filtered",
	Long: `List movies from the catalog.

Server-side filters (--search, --genre, --year, --trending, --page) narrow the
request. Client-side filters then apply to the returned page:

  --where   an expression such as 'hasGenre("Drama") and Year < 1990'
  --preset  a named expression from filter.presets in the config
  --match   a fuzzy title match, best match first`,
	RunE: runMoviesList,
}

var moviesShowCmd = &cobra.Command{
	Use:   "show <movie-id>",
	Short: "Show a movie's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runMoviesShow,
}

var moviesGenresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List all genres",
	RunE: func(cmd *cobra.Command, args []string) error {
		genres, err := sess.Browser.Genres(commandContext(cmd))
		if err != nil {
			return err
		}
		fmt.Print(formatter.FormatGenres(genres))
		return nil
	},
}

func init() {
	moviesListCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "search titles and overviews")
	moviesListCmd.Flags().StringVarP(&genreName, "genre", "g", "", "only movies of this genre")
	moviesListCmd.Flags().IntVar(&releaseYear, "year", 0, "only movies released in this year")
	moviesListCmd.Flags().BoolVarP(&trending, "trending", "t", false, "movies most favorited recently")
	moviesListCmd.Flags().IntVar(&page, "page", 1, "page number")
	moviesListCmd.Flags().StringVarP(&whereExpr, "where", "w", "", "filter expression")
	moviesListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	moviesListCmd.Flags().StringVarP(&titleMatch, "match", "m", "", "fuzzy title match")

	moviesShowCmd.Flags().BoolVar(&showRatings, "ratings", false, "include other users' ratings")

	moviesCmd.AddCommand(moviesListCmd, moviesShowCmd, moviesGenresCmd)
	rootCmd.AddCommand(moviesCmd)
}

func runMoviesList(cmd *cobra.Command, args []string) error {
	if whereExpr != "" && preset != "" {
		return fmt.Errorf("--where and --preset cannot be combined")
	}
	ctx := commandContext(cmd)

	var (
		movies     []catalog.Movie
		totalPages int
	)
	if trending {
		if err := sess.Movies.FetchTrending(ctx).Wait(); err != nil {
			return err
		}
		movies = sess.Movies.Snapshot().Trending
	} else {
		query := catalog.MovieQuery{
			Search: searchTerm,
			Genre:  genreName,
			Year:   releaseYear,
			Page:   page,
		}
		if err := sess.Movies.Fetch(ctx, query).Wait(); err != nil {
			return err
		}
		snapshot := sess.Movies.Snapshot()
		movies = snapshot.Results
		totalPages = snapshot.TotalPages
	}

	filtered, err := applyClientFilters(cmd, movies)
	if err != nil {
		return err
	}

	options := catalog.FormatOptions{ShowDetails: cfg.Display.ShowDetails}
	if totalPages > 0 && len(filtered) == len(movies) && titleMatch == "" {
		fmt.Print(formatter.FormatPage(movies, page, totalPages, options))
		return nil
	}
	fmt.Print(formatter.FormatMovieList(filtered, options))
	return nil
}

// applyClientFilters narrows movies by --where or --preset, then --match
func applyClientFilters(cmd *cobra.Command, movies []catalog.Movie) ([]catalog.Movie, error) {
	ctx := commandContext(cmd)

	switch {
	case whereExpr != "":
		compiled, err := filters.Compile(whereExpr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		logger.Debug().Str("filter", whereExpr).Msg("Applying filter")
		if movies, err = filters.Apply(ctx, compiled, movies); err != nil {
			return nil, err
		}
	case preset != "":
		var err error
		if movies, err = filters.EvaluateFilter(ctx, preset, movies); err != nil {
			return nil, err
		}
	}

	return filter.MatchTitles(titleMatch, movies), nil
}

func runMoviesShow(cmd *cobra.Command, args []string) error {
	movieID, err := parseID(args[0], "movie")
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	if err := sess.Movies.FetchMovie(ctx, movieID).Wait(); err != nil {
		return err
	}
	fmt.Print(formatter.FormatMovie(sess.Movies.Snapshot().Current))

	if showRatings {
		ratings, err := sess.Browser.Ratings(ctx, movieID)
		if err != nil {
			return err
		}
		fmt.Print(formatter.FormatRatings(ratings))
	}
	return nil
}
