// Package home is the landing screen: dashboard counters, recent paths
// and the main menu.
package home

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
	"github.com/abhisek/edupath/internal/screens/history"
	"github.com/abhisek/edupath/internal/screens/paths"
	"github.com/abhisek/edupath/internal/screens/pathview"
	"github.com/abhisek/edupath/internal/screens/search"
	"github.com/abhisek/edupath/internal/ui/components"
	"github.com/abhisek/edupath/internal/ui/theme"
)

type dataMsg struct {
	all []progress.PathProgress
	err error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	svc    screen.Services
	menu   components.Menu
	stats  progress.Stats
	recent []progress.PathProgress
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc screen.Services) *HomeScreen {
	h := &HomeScreen{svc: svc}

	generate := components.MenuItem{Label: "Generate a learning path", Action: func() tea.Cmd {
		return push(generator.New(svc, ""))
	}}
	if svc.Generator == nil {
		generate.Disabled = true
		generate.Hint = "no LLM provider configured"
	}

	items := []components.MenuItem{
		generate,
		{Label: "My learning paths", Action: func() tea.Cmd { return push(paths.New(svc)) }},
		{Label: "Search", Action: func() tea.Cmd { return push(search.New(svc)) }},
	}
	if svc.Events != nil {
		items = append(items, components.MenuItem{Label: "LLM history", Action: func() tea.Cmd {
			return push(history.New(svc.Events))
		}})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }})
	h.menu = components.NewMenu(items)
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) Init() tea.Cmd { return h.load() }

// Resume reloads the dashboard after a path was generated or updated.
func (h *HomeScreen) Resume() tea.Cmd { return h.load() }

func (h *HomeScreen) load() tea.Cmd {
	svc := h.svc
	return func() tea.Msg {
		all, err := svc.PathProgress(context.Background())
		return dataMsg{all: all, err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dataMsg:
		h.loaded = true
		if msg.err != nil {
			h.svc.Log().Error("load dashboard", zap.Error(msg.err))
			h.errMsg = "Could not load your learning paths."
			return h, nil
		}
		h.errMsg = ""
		h.stats = progress.Summarize(msg.all)
		h.recent = progress.Recent(msg.all, progress.RecentPathsLimit)
		return h, nil

	case tea.KeyMsg:
		if n := digit(msg.String()); n > 0 && n <= len(h.recent) {
			return h, push(pathview.New(h.svc, h.recent[n-1].Path.ID, ""))
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func digit(key string) int {
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return int(key[0] - '0')
	}
	return 0
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections,
		theme.Title.Render("Welcome to EduPath"),
		theme.Subtitle.Render("AI-generated learning paths, one day at a time."),
	)

	if h.loaded {
		sections = append(sections, renderStats(h.stats, cw))
	}
	sections = append(sections, components.Card("", h.menu.View(0), cw, true))

	switch {
	case h.errMsg != "":
		sections = append(sections, theme.ErrorText.Render(h.errMsg))
	case h.loaded && len(h.recent) == 0:
		sections = append(sections, theme.Hint.Render("No learning paths yet. Generate your first one!"))
	case len(h.recent) > 0:
		sections = append(sections, components.Card("Recent paths", renderRecent(h.recent, cw-4), cw, false))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n\n"))
}

func renderStats(s progress.Stats, cw int) string {
	cell := func(label, value string) string {
		return lipgloss.NewStyle().Width(cw/4 - 1).Render(
			theme.Selected.Render(value) + "\n" + theme.Subtitle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cell("Total paths", fmt.Sprint(s.TotalPaths)),
		cell("Completed", fmt.Sprint(s.Completed)),
		cell("In progress", fmt.Sprint(s.InProgress)),
		cell("Hours planned", fmt.Sprintf("%.1f", s.TotalHours)),
	)
}

func renderRecent(recent []progress.PathProgress, width int) string {
	var b strings.Builder
	for i, p := range recent {
		title := fmt.Sprintf("%d  %s", i+1, p.Path.Title)
		status := theme.StatusColor(string(p.Status())).Render(string(p.Status()))
		b.WriteString(theme.Body.Render(title) + "  " + status + "\n")
		b.WriteString("   " + components.NewProgressBar("", p.Completion, width-3).View() + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (h *HomeScreen) Title() string {
	return "Home"
}
