package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/catalog"
)

var (
	recommendType string
	similarTo     int64
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get movie recommendations",
	Long: `Get personal recommendations.

collaborative recommendations come from users with similar ratings;
content-based recommendations come from genres of movies you rated highly.
Use --similar to list movies similar to a given movie instead.`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendType, "type", string(catalog.RecommendCollaborative), "collaborative or content-based")
	recommendCmd.Flags().Int64Var(&similarTo, "similar", 0, "list movies similar to this movie id")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	ctx := commandContext(cmd)
	options := catalog.FormatOptions{ShowDetails: cfg.Display.ShowDetails}

	if similarTo != 0 {
		if err := sess.Movies.FetchSimilar(ctx, similarTo).Wait(); err != nil {
			return err
		}
		fmt.Print(formatter.FormatMovieList(sess.Movies.Snapshot().Similar, options))
		return nil
	}

	kind, err := catalog.ParseRecommendationType(recommendType)
	if err != nil {
		return err
	}
	if err := sess.Movies.FetchRecommendations(ctx, kind).Wait(); err != nil {
		return err
	}
	fmt.Print(formatter.FormatMovieList(sess.Movies.Snapshot().Recommendations, options))
	return nil
}
