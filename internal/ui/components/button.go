package components

import (
	"github.com/abhisek/edupath/internal/ui/theme"
)

// Button is a styled button label.
type Button struct {
	Label    string
	Disabled bool
}

// View renders the button, highlighted when focused.
func (b Button) View(focused bool) string {
	switch {
	case b.Disabled:
		return theme.ButtonInactive.Render(b.Label)
	case focused:
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
