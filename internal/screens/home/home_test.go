package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/progress"
	"github.com/abhisek/edupath/internal/router"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/screens/pathview"
)

type fakePaths []curriculum.LearningPath

func (f fakePaths) GetPath(context.Context, string) (curriculum.LearningPath, error) {
	return curriculum.LearningPath{}, nil
}

func (f fakePaths) ListPaths(context.Context, int) ([]curriculum.LearningPath, error) {
	return f, nil
}

type fakeProgress struct {
	*progress.MemoryPersistence
	completion map[string]int
}

func (f fakeProgress) CompletionByPath(context.Context, map[string]int) (map[string]int, error) {
	return f.completion, nil
}

func services(paths ...curriculum.LearningPath) screen.Services {
	return screen.Services{
		Paths: fakePaths(paths),
		Progress: fakeProgress{
			MemoryPersistence: progress.NewMemoryPersistence(),
			completion:        map[string]int{"a": 50, "b": 100},
		},
	}
}

func TestDashboard(t *testing.T) {
	h := New(services(
		curriculum.LearningPath{ID: "a", Title: "Rust Basics", DurationDays: 10, DailyTimeHours: 1},
		curriculum.LearningPath{ID: "b", Title: "Go Concurrency", DurationDays: 4, DailyTimeHours: 2},
	))
	h.Update(h.Init()())

	assert.Equal(t, 2, h.stats.TotalPaths)
	assert.Equal(t, 1, h.stats.Completed)
	assert.Equal(t, 1, h.stats.InProgress)
	require.Len(t, h.recent, 2)

	view := h.View(100, 40)
	assert.Contains(t, view, "Recent paths")
	assert.Contains(t, view, "Rust Basics")
}

func TestEmptyDashboard(t *testing.T) {
	h := New(services())
	h.Update(h.Init()())
	assert.Contains(t, h.View(100, 40), "No learning paths yet")
}

func TestDigitOpensRecentPath(t *testing.T) {
	h := New(services(curriculum.LearningPath{ID: "a", Title: "Rust Basics", DurationDays: 10}))
	h.Update(h.Init()())

	_, cmd := h.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &pathview.PathScreen{}, msg.Screen)

	_, cmd = h.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	assert.Nil(t, cmd)
}

func TestGenerateDisabledWithoutProvider(t *testing.T) {
	h := New(services())
	assert.True(t, h.menu.Items[0].Disabled)
	assert.Equal(t, "no LLM provider configured", h.menu.Items[0].Hint)
}
