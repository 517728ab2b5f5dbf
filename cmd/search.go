package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edupath/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search saved paths and the subject catalog",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		if search.Blank(query) {
			fmt.Println("Try one of:", strings.Join(search.TopicSuggestions(), ", "))
			return nil
		}

		e, err := setup(setupOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		paths, err := e.store.PathRepo().ListPaths(cmd.Context(), 0)
		if err != nil {
			return fmt.Errorf("list paths: %w", err)
		}

		results := search.Search(query, paths, search.Catalog())
		if len(results) == 0 {
			fmt.Printf("No results found for %q.\n", strings.TrimSpace(query))
			fmt.Printf("Generate one with: edupath generate %q\n", strings.TrimSpace(query))
			return nil
		}

		for _, r := range results {
			switch r.Kind {
			case search.KindPath:
				fmt.Printf("[path]     %-40s  %s\n", truncate(r.Title(), 40), r.Path.ID)
			case search.KindSubject:
				fmt.Printf("[subject]  %-40s  %s\n", truncate(r.Title(), 40), r.Subject.Description)
			}
		}
		return nil
	},
}
