package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edupath/internal/navigation"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List saved learning paths with their completion",
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
		if len(all) == 0 {
			fmt.Println("No learning paths yet. Create one with: edupath generate <topic>")
			return nil
		}

		fmt.Printf("%-36s  %-32s  %5s  %-12s  %5s  %s\n",
			"ID", "Title", "Days", "Level", "Done", "Status")
		fmt.Println(strings.Repeat("─", 110))
		for _, p := range all {
			fmt.Printf("%-36s  %-32s  %5d  %-12s  %4d%%  %s\n",
				p.Path.ID,
				truncate(p.Path.Title, 32),
				p.Path.DurationDays,
				p.Path.SkillLevel.DisplayName(),
				p.Completion,
				p.Status(),
			)
		}
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open <path-id|link>",
	Short: "Open a learning path in the terminal UI",
	Long: "Open a learning path by id or by a session link such as\n" +
		"edupath://path?id=<id>&day=3. Without a day the first incomplete\n" +
		"day is shown, or the last visited day with --resume.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link, err := parseTarget(args[0])
		if err != nil {
			return err
		}
		if day, _ := cmd.Flags().GetInt("day"); day > 0 {
			link.Day = day
		}
		resume, _ := cmd.Flags().GetBool("resume")
		return runApp(cmd, &link, resume)
	},
}

// parseTarget accepts a bare path id or a session link.
func parseTarget(arg string) (navigation.Link, error) {
	if strings.HasPrefix(arg, navigation.LinkScheme+"://") {
		return navigation.ParseLink(arg)
	}
	if strings.TrimSpace(arg) == "" {
		return navigation.Link{}, fmt.Errorf("path id is required")
	}
	return navigation.Link{PathID: arg}, nil
}

func init() {
	openCmd.Flags().Int("day", 0, "Day to open")
	openCmd.Flags().Bool("resume", false, "Open on the last visited day when no day is given")
}
