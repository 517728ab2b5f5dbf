package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edupath/internal/progress"
	"github.com/abhisek/edupath/internal/session"
	"github.com/abhisek/edupath/internal/store"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or update daily progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show <path-id>",
	Short: "Show the day-by-day progress of a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(setupOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		s, err := openSession(cmd, e, args[0], "")
		if err != nil {
			return err
		}

		fmt.Printf("%s  (%d%% complete, %s)\n", s.Path().Title, s.Completion(), progress.StatusFor(s.Completion()))
		fmt.Println(strings.Repeat("─", 72))
		for _, d := range s.Overview() {
			marker := " "
			if d.Active {
				marker = "▸"
			}
			check := "○"
			switch {
			case d.FullyComplete:
				check = "●"
			case d.Complete:
				check = "◐"
			}
			notes := ""
			if d.HasNotes {
				notes = "  ✎"
			}
			fmt.Printf("%s %s Day %-3d %-44s %d/4%s\n", marker, check, d.Day, truncate(d.Title, 44), d.TasksDone, notes)
		}
		fmt.Println()
		fmt.Println("Link:", s.Link())
		return nil
	},
}

var progressSetCmd = &cobra.Command{
	Use:   "set <path-id> <day> <task> [true|false]",
	Short: "Mark a task of a day done or not done",
	Long: "Mark a task done (the default) or not done. task is one of\n" +
		"video, reading, exercise or assessment.",
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := parseTask(args[2])
		if err != nil {
			return err
		}
		done := true
		if len(args) == 4 {
			if done, err = strconv.ParseBool(args[3]); err != nil {
				return fmt.Errorf("invalid value %q: want true or false", args[3])
			}
		}
		day, err := parseDay(args[1])
		if err != nil {
			return err
		}

		e, err := setup(setupOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		s, err := openSession(cmd, e, args[0], args[1])
		if err != nil {
			return err
		}
		rec, err := s.SetTask(cmd.Context(), day, field, done)
		if err != nil {
			return err
		}

		fmt.Printf("Day %d: %s %s (%d/4 tasks). Path is %d%% complete.\n",
			day, field.Label(), doneLabel(done), progress.TasksDone(rec), s.Completion())
		return nil
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes <path-id> <day> [text]",
	Short: "Show or replace the notes of a day",
	Long:  "Without text the current notes are printed. Pass an empty string to clear them.",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := parseDay(args[1]); err != nil {
			return err
		}

		e, err := setup(setupOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		s, err := openSession(cmd, e, args[0], args[1])
		if err != nil {
			return err
		}
		if len(args) == 2 {
			if n := s.Notes().Draft(); n != "" {
				fmt.Println(n)
			} else {
				fmt.Println("(no notes)")
			}
			return nil
		}

		n := s.Notes()
		n.Edit(args[2])
		if err := n.Commit(cmd.Context()); err != nil {
			return fmt.Errorf("save notes: %w", err)
		}
		fmt.Printf("Notes saved for day %d.\n", s.ActiveDay())
		return nil
	},
}

// openSession opens a path on the requested day. An explicit day outside
// the path is an error here rather than a silent fallback.
func openSession(cmd *cobra.Command, e *env, pathID, day string) (*session.Session, error) {
	s, err := session.Open(cmd.Context(), e.baseServices().SessionDeps(), pathID, day)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("learning path %q not found", pathID)
	}
	if err != nil {
		return nil, err
	}
	if day != "" && strconv.Itoa(s.ActiveDay()) != day {
		first, last := s.Bounds()
		return nil, fmt.Errorf("day %s is outside this path (days %d-%d)", day, first, last)
	}
	return s, nil
}

// parseTask accepts the short task names as well as the stored field
// names such as video_completed.
func parseTask(s string) (progress.Field, error) {
	f, err := progress.ParseField(s)
	if err != nil {
		f, err = progress.ParseField(s + "_completed")
	}
	if err != nil || !f.IsTask() {
		return "", fmt.Errorf("unknown task %q: want video, reading, exercise or assessment", s)
	}
	return f, nil
}

func parseDay(s string) (int, error) {
	day, err := strconv.Atoi(s)
	if err != nil || day < 1 {
		return 0, fmt.Errorf("invalid day %q", s)
	}
	return day, nil
}

func doneLabel(done bool) string {
	if done {
		return "done"
	}
	return "not done"
}

func init() {
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressSetCmd)
}
