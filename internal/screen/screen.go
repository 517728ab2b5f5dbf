// Package screen defines the contract between the router and the TUI
// screens, and the services screens are built from.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edupath/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that refresh their data when a screen
// pushed above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// InputCapturer is implemented by screens that are editing text. While it
// reports true the app leaves Esc and printable keys to the screen.
type InputCapturer interface {
	CapturingInput() bool
}

// StatusProvider is implemented by screens that show a status on the right
// of the header, e.g. the completion of the open path.
type StatusProvider interface {
	HeaderStatus() string
}
