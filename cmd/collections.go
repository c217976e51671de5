package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/catalog"
)

func init() {
	rootCmd.AddCommand(newCollectionCmd(catalog.Favorites, "Manage your favorite movies"))
	rootCmd.AddCommand(newCollectionCmd(catalog.Watchlist, "Manage the movies you want to watch"))
}

// newCollectionCmd builds the list/toggle/add/remove commands for one collection
func newCollectionCmd(kind catalog.CollectionKind, short string) *cobra.Command {
	parent := &cobra.Command{
		Use:   string(kind),
		Short: short,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeApp(cmd, args); err != nil {
				return err
			}
			return requireLogin()
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List your %s", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			collection := sess.Collection(kind)
			if err := collection.Fetch(commandContext(cmd)).Wait(); err != nil {
				return err
			}
			fmt.Print(formatter.FormatEntries(kind, collection.Snapshot().Items))
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <movie-id>",
		Short: fmt.Sprintf("Add a movie to your %s, or remove it if already there", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, err := parseID(args[0], "movie")
			if err != nil {
				return err
			}
			collection := sess.Collection(kind)
			if err := collection.Toggle(commandContext(cmd), movieID).Wait(); err != nil {
				return err
			}
			if entry, ok := collection.EntryFor(movieID); ok {
				fmt.Println(formatter.FormatToggle(kind, catalog.Added(entry)))
			} else {
				fmt.Println(formatter.FormatToggle(kind, catalog.Removed(movieID)))
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <movie-id>",
		Short: fmt.Sprintf("Add a movie to your %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, err := parseID(args[0], "movie")
			if err != nil {
				return err
			}
			collection := sess.Collection(kind)
			if err := collection.Add(commandContext(cmd), movieID).Wait(); err != nil {
				return err
			}
			entry, _ := collection.EntryFor(movieID)
			fmt.Println(formatter.FormatToggle(kind, catalog.Added(entry)))
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <entry-id>",
		Short: fmt.Sprintf("Remove an entry from your %s by its entry id", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := parseID(args[0], "entry")
			if err != nil {
				return err
			}
			if err := sess.Collection(kind).Remove(commandContext(cmd), entryID).Wait(); err != nil {
				return err
			}
			fmt.Printf("Removed entry %d from %s\n", entryID, kind)
			return nil
		},
	}

	parent.AddCommand(list, toggle, add, remove)
	return parent
}
