package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edupath/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(setupOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		all, err := e.baseServices().PathProgress(cmd.Context())
		if err != nil {
			return fmt.Errorf("list paths: %w", err)
		}
		s := progress.Summarize(all)

		fmt.Println("Learning Statistics")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("%-20s %8d\n", "Total paths", s.TotalPaths)
		fmt.Printf("%-20s %8d\n", "Completed", s.Completed)
		fmt.Printf("%-20s %8d\n", "In progress", s.InProgress)
		fmt.Printf("%-20s %8.1f\n", "Hours planned", s.TotalHours)

		recent := progress.Recent(all, progress.RecentPathsLimit)
		if len(recent) == 0 {
			return nil
		}
		fmt.Println()
		fmt.Println("Recent paths")
		fmt.Println(strings.Repeat("─", 40))
		for _, p := range recent {
			fmt.Printf("%-28s %4d%%  %s\n", truncate(p.Path.Title, 28), p.Completion, p.Status())
		}
		return nil
	},
}
