package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edupath/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked cards so
// they line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 96)
}

// Card wraps content in a rounded border at the given content width. The
// active card gets the primary border color.
func Card(title, content string, cw int, active bool) string {
	style := theme.Card
	if active {
		style = theme.ActiveCard
	}
	body := content
	if title != "" {
		body = theme.Label.Render(title) + "\n" + content
	}
	return style.Width(cw).Render(body)
}

// Center places content in the middle of the given area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
