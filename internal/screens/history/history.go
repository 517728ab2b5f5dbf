// Package history lists recent LLM requests with their token usage.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edupath/internal/llm"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/store"
	"github.com/abhisek/edupath/internal/ui/layout"
	"github.com/abhisek/edupath/internal/ui/theme"
)

// pageSize is the number of events loaded.
const pageSize = 50

type historyLoadedMsg struct {
	Events []store.LLMEvent
	Err    error
}

// HistoryScreen displays recent LLM requests.
type HistoryScreen struct {
	events   screen.EventLog
	items    []store.LLMEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(events screen.EventLog) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		items, err := events.QueryLLMEvents(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Events: items, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "LLM History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.items = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.items)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.items) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No LLM requests yet. Generate a learning path first.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, e := range s.items {
		status := "✓"
		if !e.Success {
			status = "✗"
		}
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %-12s  %6d in  %6d out  %6.1fs",
			prefix, status, e.Timestamp.Local().Format("Jan 02 15:04"), e.Purpose,
			e.InputTokens, e.OutputTokens, float64(e.LatencyMs)/1000)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case !e.Success:
			style = style.Foreground(theme.Error)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range details(e) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+d)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// details are the expanded lines of one event.
func details(e store.LLMEvent) []string {
	lines := []string{fmt.Sprintf("%s / %s", e.Provider, e.Model)}
	if c := llm.LookupCost(e.Model); c != nil {
		lines = append(lines, fmt.Sprintf("estimated cost $%.4f", c.Cost(e.InputTokens, e.OutputTokens)))
	}
	if e.ErrorMessage != "" {
		lines = append(lines, "error: "+e.ErrorMessage)
	}
	return lines
}
