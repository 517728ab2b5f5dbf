// Package app is the root Bubble Tea model of the EduPath terminal UI.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edupath/internal/navigation"
	"github.com/abhisek/edupath/internal/router"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/screens/home"
	"github.com/abhisek/edupath/internal/screens/pathview"
	"github.com/abhisek/edupath/internal/screens/welcome"
	"github.com/abhisek/edupath/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	screen.Services

	// Open, when set, opens this path on top of the home screen.
	Open *navigation.Link

	// NoSplash skips the welcome screen.
	NoSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	home   screen.Screen
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	root := home.New(opts.Services)
	var first screen.Screen = root
	if opts.Open == nil && !opts.NoSplash {
		first = welcome.New(func() screen.Screen { return root })
	}
	r := router.New(first)
	if opts.Open != nil {
		// Push's Init command is issued from AppModel.Init instead.
		_ = r.Push(pathview.FromLink(opts.Services, *opts.Open))
	}
	return AppModel{router: r, home: root}
}

func (m AppModel) Init() tea.Cmd {
	if m.router.Depth() > 1 {
		return tea.Batch(m.home.Init(), m.router.Active().Init())
	}
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		capturing := false
		if ic, ok := m.router.Active().(screen.InputCapturer); ok {
			capturing = ic.CapturingInput()
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if capturing {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.HeaderStatus()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-6", Description: "Open recent"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
