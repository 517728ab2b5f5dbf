package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edupath/internal/ui/theme"
)

// Choice is a single-line selector cycled with left and right.
type Choice struct {
	Label    string
	Options  []string
	Selected int
	Err      string
}

// NewChoice creates a selector with the given option selected.
func NewChoice(label string, options []string, selected int) Choice {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return Choice{Label: label, Options: options, Selected: selected}
}

// Update handles left/right and h/l.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}
	switch kmsg.String() {
	case "left", "h":
		c.Selected = (c.Selected - 1 + len(c.Options)) % len(c.Options)
	case "right", "l":
		c.Selected = (c.Selected + 1) % len(c.Options)
	}
	return c, nil
}

// View renders the label and the selected option between arrows.
func (c Choice) View(focused bool) string {
	label := theme.Label.Render(c.Label)
	value := theme.Unselected.Render(c.Value())
	if focused {
		label = theme.Selected.Render("▸ " + c.Label)
		value = theme.Selected.Render("◂ " + c.Value() + " ▸")
	}
	view := label + "\n  " + value
	if c.Err != "" {
		view += "\n  " + lipgloss.NewStyle().Foreground(theme.Error).Render(c.Err)
	}
	return view
}

// Value returns the selected option label.
func (c Choice) Value() string {
	if len(c.Options) == 0 {
		return ""
	}
	return c.Options[c.Selected]
}
