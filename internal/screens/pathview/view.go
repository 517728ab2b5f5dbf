package pathview

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/notes"
	sess "github.com/abhisek/edupath/internal/session"
	"github.com/abhisek/edupath/internal/ui/components"
	"github.com/abhisek/edupath/internal/ui/theme"
)

// dayStripRadius is how many days are shown on each side of the active day.
const dayStripRadius = 7

func (p *PathScreen) View(width, height int) string {
	switch {
	case p.errMsg != "":
		return components.Center(theme.ErrorText.Render(p.errMsg)+"\n\n"+theme.Hint.Render("Press Esc to go back."), width, height)
	case p.sess == nil:
		return components.Center(theme.Hint.Render("Loading your learning path..."), width, height)
	}

	cw := components.ContentWidth(width)
	day := p.sess.ActiveDay()
	first, last := p.sess.Bounds()

	var sections []string

	heading := theme.Title.Render(fmt.Sprintf("Day %d of %d", day, last))
	if day == first {
		heading += theme.Hint.Render("  (first day)")
	} else if day == last {
		heading += theme.Hint.Render("  (last day)")
	}
	sections = append(sections,
		heading,
		components.NewProgressBar("Path", p.sess.Completion(), cw).View(),
		renderDayStrip(p.sess.Overview(), day),
	)

	if m, ok := p.sess.Module(); ok {
		sections = append(sections, components.Card(m.Title, renderModule(m, cw-4), cw, false))
	} else {
		sections = append(sections, components.Card("", theme.Hint.Render("No content planned for this day."), cw, false))
	}

	sections = append(sections,
		components.Card("Today's tasks", strings.TrimRight(components.Checklist(p.sess.Record()), "\n"), cw, false),
		p.renderNotes(cw),
	)

	if flash := p.currentFlash(); flash != "" {
		sections = append(sections, theme.Label.Render(flash))
	}
	sections = append(sections, theme.Hint.Render("Link: "+p.sess.Link().String()))

	content := lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(sections, "\n"))
	return clip(content, height)
}

func renderDayStrip(days []sess.DayOverview, active int) string {
	lo := max(active-dayStripRadius, 1)
	hi := min(active+dayStripRadius, len(days))

	var parts []string
	if lo > 1 {
		parts = append(parts, theme.Hint.Render("…"))
	}
	for _, d := range days[lo-1 : hi] {
		label := strconv.Itoa(d.Day)
		var style lipgloss.Style
		switch {
		case d.FullyComplete:
			style = theme.Done
		case d.Complete:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		case d.TasksDone > 0:
			style = lipgloss.NewStyle().Foreground(theme.Accent)
		default:
			style = theme.Pending
		}
		if d.HasNotes {
			label += "*"
		}
		if d.Active {
			style = style.Reverse(true).Bold(true)
			label = " " + label + " "
		}
		parts = append(parts, style.Render(label))
	}
	if hi < len(days) {
		parts = append(parts, theme.Hint.Render("…"))
	}
	return strings.Join(parts, " ")
}

func renderModule(m curriculum.DailyModule, width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	var b strings.Builder

	if m.Objective != "" {
		b.WriteString(wrap.Render(theme.Body.Render(m.Objective)))
		b.WriteString("\n")
	}
	if m.TimeRequired > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("About %s hours", trimFloat(m.TimeRequired))))
		b.WriteString("\n")
	}

	b.WriteString("\n" + theme.Label.Render("Video") + "  ")
	b.WriteString(theme.Body.Render(m.Video.Title))
	if m.Video.Channel != "" {
		b.WriteString(theme.Hint.Render(" by " + m.Video.Channel))
	}
	if m.Video.Duration > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf(" (%s min)", trimFloat(m.Video.Duration))))
	}
	if len(m.Video.KeyConcepts) > 0 {
		b.WriteString("\n" + wrap.Render(theme.Subtitle.Render("Key concepts: "+strings.Join(m.Video.KeyConcepts, ", "))))
	}

	if len(m.Readings) > 0 {
		b.WriteString("\n" + theme.Label.Render("Reading"))
		for _, r := range m.Readings {
			line := "  • " + r.Title
			if r.Source != "" {
				line += " (" + r.Source + ")"
			}
			b.WriteString("\n" + wrap.Render(theme.Body.Render(line)))
		}
	}

	if m.Exercise.Task != "" {
		b.WriteString("\n" + theme.Label.Render("Exercise") + "  ")
		b.WriteString(wrap.Render(theme.Body.Render(m.Exercise.Task)))
		if m.Exercise.ExpectedOutcome != "" {
			b.WriteString("\n" + wrap.Render(theme.Subtitle.Render("Expected: "+m.Exercise.ExpectedOutcome)))
		}
	}

	if len(m.Assessment) > 0 {
		b.WriteString("\n" + theme.Label.Render("Assessment"))
		for _, q := range m.Assessment {
			b.WriteString("\n" + wrap.Render(theme.Body.Render("  • "+q)))
		}
	}
	return b.String()
}

func (p *PathScreen) renderNotes(cw int) string {
	snap := p.sess.Notes().Snapshot()

	title := "Notes"
	switch {
	case snap.State == notes.Saving:
		title += theme.Hint.Render("  saving...")
	case snap.Status == notes.StatusSaved:
		title += theme.Done.Render("  ✓ saved")
	case snap.Status == notes.StatusError:
		title += theme.ErrorText.Render("  not saved")
	case snap.State == notes.Dirty:
		title += theme.Hint.Render("  unsaved changes")
	}

	var body string
	switch {
	case p.editing:
		p.editor.SetWidth(cw - 4)
		body = p.editor.View()
	case snap.Draft == "":
		body = theme.Hint.Render("No notes yet. Press n to write some.")
	default:
		body = lipgloss.NewStyle().Width(cw - 4).Render(theme.Body.Render(snap.Draft))
	}
	return components.Card(title, body, cw, p.editing)
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// clip keeps the first height lines of s.
func clip(s string, height int) string {
	if height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= height {
		return s
	}
	return strings.Join(lines[:height], "\n")
}
