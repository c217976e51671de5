package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var ratingComment string

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "List and submit your ratings",
}

var ratingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your ratings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		ratings, err := sess.Ratings.List(commandContext(cmd))
		if err != nil {
			return err
		}
		fmt.Print(formatter.FormatRatings(ratings))
		return nil
	},
}

var ratingsRateCmd = &cobra.Command{
	Use:   "rate <movie-id> <1-10>",
	Short: "Rate a movie; rating it again replaces the earlier rating",
	Args:  cobra.ExactArgs(2),
	RunE:  runRate,
}

func init() {
	ratingsRateCmd.Flags().StringVarP(&ratingComment, "comment", "c", "", "optional comment")

	ratingsCmd.AddCommand(ratingsListCmd, ratingsRateCmd)
	rootCmd.AddCommand(ratingsCmd)
}

func runRate(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	movieID, err := parseID(args[0], "movie")
	if err != nil {
		return err
	}
	score, err := strconv.Atoi(args[1])
	if err != nil || score < 1 || score > 10 {
		return fmt.Errorf("rating must be a whole number from 1 to 10: %s", args[1])
	}

	rating, err := sess.Ratings.Rate(commandContext(cmd), movieID, score, ratingComment)
	if err != nil {
		return err
	}
	logger.Debug().Int64("rating_id", rating.ID).Int64("movie_id", movieID).Msg("Rating saved")
	fmt.Printf("Rated movie %d: %d/10\n", movieID, rating.Rating)
	return nil
}
