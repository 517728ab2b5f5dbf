// Package paths lists every saved learning path with its completion.
package paths

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/progress"
	"github.com/abhisek/edupath/internal/router"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/screens/generator"
	"github.com/abhisek/edupath/internal/screens/pathview"
	"github.com/abhisek/edupath/internal/ui/components"
	"github.com/abhisek/edupath/internal/ui/layout"
	"github.com/abhisek/edupath/internal/ui/theme"
)

type loadedMsg struct {
	all []progress.PathProgress
	err error
}

// PathsScreen lists saved paths, newest first.
type PathsScreen struct {
	svc    screen.Services
	all    []progress.PathProgress
	menu   components.Menu
	loaded bool
	errMsg string
}

var _ screen.Screen = (*PathsScreen)(nil)
var _ screen.KeyHintProvider = (*PathsScreen)(nil)

// New creates the list screen.
func New(svc screen.Services) *PathsScreen {
	return &PathsScreen{svc: svc}
}

func (p *PathsScreen) Init() tea.Cmd { return p.load() }

// Resume refreshes completion after returning from a path.
func (p *PathsScreen) Resume() tea.Cmd { return p.load() }

func (p *PathsScreen) load() tea.Cmd {
	svc := p.svc
	return func() tea.Msg {
		all, err := svc.PathProgress(context.Background())
		return loadedMsg{all: all, err: err}
	}
}

func (p *PathsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		p.loaded = true
		if msg.err != nil {
			p.svc.Log().Error("list paths", zap.Error(msg.err))
			p.errMsg = "Could not load your learning paths."
			return p, nil
		}
		p.errMsg = ""
		p.all = msg.all
		selected := p.menu.Selected
		p.menu = components.NewMenu(p.items())
		if selected < len(p.menu.Items) {
			p.menu.Selected = selected
		}
		return p, nil

	case tea.KeyMsg:
		if msg.String() == "g" && p.svc.Generator != nil {
			return p, func() tea.Msg { return router.PushScreenMsg{Screen: generator.New(p.svc, "")} }
		}
	}

	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PathsScreen) items() []components.MenuItem {
	items := make([]components.MenuItem, len(p.all))
	for i, pp := range p.all {
		id := pp.Path.ID
		items[i] = components.MenuItem{
			Label: pp.Path.Title,
			Hint: fmt.Sprintf("%3d%%  %s  %d days  %s", pp.Completion, pp.Status(),
				pp.Path.DurationDays, pp.Path.SkillLevel.DisplayName()),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: pathview.New(p.svc, id, "")}
				}
			},
		}
	}
	return items
}

func (p *PathsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("My Learning Paths"))
	b.WriteString("\n\n")

	switch {
	case p.errMsg != "":
		b.WriteString(theme.ErrorText.Render(p.errMsg))
	case !p.loaded:
		b.WriteString(theme.Hint.Render("Loading..."))
	case len(p.all) == 0:
		b.WriteString(theme.Hint.Render("No learning paths yet. Press g to generate one."))
	default:
		b.WriteString(p.menu.View(max(height-6, 3)))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (p *PathsScreen) Title() string { return "My Paths" }

func (p *PathsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
	}
	if p.svc.Generator != nil {
		hints = append(hints, layout.KeyHint{Key: "g", Description: "Generate"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}
