// Package search is the live search screen over saved paths and the
// subject catalog.
package search

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/router"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/screens/generator"
	"github.com/abhisek/edupath/internal/screens/pathview"
	pathsearch "github.com/abhisek/edupath/internal/search"
	"github.com/abhisek/edupath/internal/ui/components"
	"github.com/abhisek/edupath/internal/ui/layout"
	"github.com/abhisek/edupath/internal/ui/theme"
)

type pathsLoadedMsg struct {
	paths []curriculum.LearningPath
	err   error
}

// SearchScreen filters paths and subjects as the query is typed.
type SearchScreen struct {
	svc      screen.Services
	input    components.TextInput
	paths    []curriculum.LearningPath
	results  []pathsearch.Result
	selected int
	errMsg   string
}

var _ screen.Screen = (*SearchScreen)(nil)
var _ screen.KeyHintProvider = (*SearchScreen)(nil)

// New creates the search screen.
func New(svc screen.Services) *SearchScreen {
	return &SearchScreen{
		svc:     svc,
		input:   components.NewTextInput("Search", "Search learning paths and subjects...", 200),
		results: []pathsearch.Result{},
	}
}

func (s *SearchScreen) Init() tea.Cmd {
	svc := s.svc
	load := func() tea.Msg {
		paths, err := svc.Paths.ListPaths(context.Background(), 0)
		return pathsLoadedMsg{paths: paths, err: err}
	}
	return tea.Batch(s.input.Focus(), load)
}

func (s *SearchScreen) Title() string { return "Search" }

func (s *SearchScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// Results returns the current matches.
func (s *SearchScreen) Results() []pathsearch.Result { return s.results }

func (s *SearchScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pathsLoadedMsg:
		if msg.err != nil {
			s.svc.Log().Error("load paths for search", zap.Error(msg.err))
			s.errMsg = "Saved paths could not be loaded; showing subjects only."
		}
		s.paths = msg.paths
		s.refresh()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			s.selected = max(s.selected-1, 0)
			return s, nil
		case "down":
			s.selected = min(s.selected+1, max(len(s.results)-1, 0))
			return s, nil
		case "enter":
			return s, s.open()
		}
	}

	var cmd tea.Cmd
	before := s.input.Value()
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.refresh()
	}
	return s, cmd
}

func (s *SearchScreen) refresh() {
	s.results = pathsearch.Search(s.input.Value(), s.paths, pathsearch.Catalog())
	s.selected = min(s.selected, max(len(s.results)-1, 0))
}

// open opens the selected path, or starts a path on the selected subject.
// With no results the query itself becomes the topic.
func (s *SearchScreen) open() tea.Cmd {
	query := strings.TrimSpace(s.input.Value())

	var next screen.Screen
	switch {
	case len(s.results) > 0:
		r := s.results[s.selected]
		if r.Path != nil {
			next = pathview.New(s.svc, r.Path.ID, "")
		} else if s.svc.Generator != nil {
			next = generator.New(s.svc, r.Subject.Name)
		}
	case query != "" && s.svc.Generator != nil:
		next = generator.New(s.svc, query)
	}
	if next == nil {
		return nil
	}
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *SearchScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString(s.input.View(true))
	b.WriteString("\n\n")

	query := strings.TrimSpace(s.input.Value())
	switch {
	case pathsearch.Blank(query):
		b.WriteString(theme.Hint.Render("Try: " + strings.Join(pathsearch.TopicSuggestions(), ", ")))
	case len(s.results) == 0:
		b.WriteString(theme.Body.Render("No results found for \"" + query + "\"."))
		if s.svc.Generator != nil {
			b.WriteString("\n" + theme.Hint.Render("Press Enter to generate a learning path on this topic."))
		}
	default:
		b.WriteString(s.renderResults(max(height-8, 3)))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.ErrorText.Render(s.errMsg))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(components.Card("", b.String(), cw, false))
}

func (s *SearchScreen) renderResults(height int) string {
	start := 0
	if len(s.results) > height {
		start = min(max(s.selected-height/2, 0), len(s.results)-height)
	}
	end := min(start+height, len(s.results))

	var b strings.Builder
	for i := start; i < end; i++ {
		r := s.results[i]
		tag := theme.Hint.Render("[" + string(r.Kind) + "]")
		line := r.Title()
		if i == s.selected {
			b.WriteString(theme.Selected.Render("▸ "+line) + " " + tag + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+line) + " " + tag + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
