package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/generation"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a new learning path with the configured LLM",
	Example: "  edupath generate \"Rust for backend developers\" --days 14 --level intermediate\n" +
		"  edupath generate kubernetes --hours 2 --goals \"pass the CKA\" --open",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		days, _ := flags.GetInt("days")
		levelArg, _ := flags.GetString("level")
		hours, _ := flags.GetFloat64("hours")
		goals, _ := flags.GetString("goals")
		open, _ := flags.GetBool("open")

		level, err := curriculum.ParseSkillLevel(levelArg)
		if err != nil {
			return err
		}
		req := generation.Request{
			Topic:          strings.Join(args, " "),
			DurationDays:   days,
			SkillLevel:     level,
			DailyTimeHours: hours,
			Goals:          goals,
		}
		if err := generation.ValidateRequest(req); err != nil {
			return err
		}

		res, err := generatePath(cmd.Context(), req)
		if err != nil {
			return err
		}

		fmt.Printf("Created %q (%d days) in %s\n", res.Path.Title, res.Path.DurationDays, res.Elapsed.Round(100*time.Millisecond))
		fmt.Println("ID:  ", res.Path.ID)
		fmt.Println("Link:", res.Link)

		if open {
			return runApp(cmd, &res.Link, false)
		}
		return nil
	},
}

func generatePath(ctx context.Context, req generation.Request) (*generation.Result, error) {
	e, err := setup(setupOptions{})
	if err != nil {
		return nil, err
	}
	defer e.Close()

	orch, err := e.orchestrator(ctx)
	if err != nil {
		return nil, err
	}

	ctx = generation.WithStepObserver(ctx, func(s generation.Step) {
		fmt.Fprintln(os.Stderr, s.Message())
	})
	res, err := orch.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate learning path: %w", err)
	}
	return res, nil
}

func init() {
	flags := generateCmd.Flags()
	flags.IntP("days", "d", 7, "Number of days (1-90)")
	flags.StringP("level", "l", string(curriculum.LevelBeginner), "Skill level: beginner, intermediate or advanced")
	flags.Float64P("hours", "H", 1, "Daily time commitment in hours")
	flags.StringP("goals", "g", "", "What you want to achieve")
	flags.Bool("open", false, "Open the new path in the terminal UI")
}
