package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/edupath/internal/progress"
	"github.com/abhisek/edupath/internal/ui/theme"
)

// Checklist renders the four daily tasks of a record with their toggle
// keys.
func Checklist(rec progress.DailyProgress) string {
	var b strings.Builder
	for i, f := range progress.TaskFields() {
		box := theme.Pending.Render("[ ]")
		label := theme.Unselected.Render(f.Label())
		if rec.Task(f) {
			box = theme.Done.Render("[✓]")
			label = theme.Done.Render(f.Label())
		}
		fmt.Fprintf(&b, "%s %s %s\n", theme.Hint.Render(fmt.Sprintf("%d", i+1)), box, label)
	}
	return b.String()
}
