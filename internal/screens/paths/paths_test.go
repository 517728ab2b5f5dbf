package paths

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/generation"
	"github.com/abhisek/edupath/internal/progress"
	"github.com/abhisek/edupath/internal/router"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/screens/generator"
	"github.com/abhisek/edupath/internal/screens/pathview"
)

type fakePaths struct {
	paths []curriculum.LearningPath
	err   error
}

func (f fakePaths) GetPath(context.Context, string) (curriculum.LearningPath, error) {
	return curriculum.LearningPath{}, errors.New("not used")
}

func (f fakePaths) ListPaths(context.Context, int) ([]curriculum.LearningPath, error) {
	return f.paths, f.err
}

type fakeProgress struct {
	*progress.MemoryPersistence
	completion map[string]int
}

func (f fakeProgress) CompletionByPath(context.Context, map[string]int) (map[string]int, error) {
	return f.completion, nil
}

type stubGenerator struct{}

func (stubGenerator) Generate(context.Context, generation.Request) (*generation.Result, error) {
	return nil, nil
}

func services(err error) screen.Services {
	return screen.Services{
		Paths: fakePaths{err: err, paths: []curriculum.LearningPath{
			{ID: "a", Title: "Rust Basics", DurationDays: 7, SkillLevel: curriculum.LevelBeginner},
			{ID: "b", Title: "Go Concurrency", DurationDays: 14, SkillLevel: curriculum.LevelAdvanced},
		}},
		Progress: fakeProgress{
			MemoryPersistence: progress.NewMemoryPersistence(),
			completion:        map[string]int{"a": 100, "b": 0},
		},
	}
}

func load(t *testing.T, p *PathsScreen) {
	t.Helper()
	p.Update(p.Init()())
}

func TestListsPathsWithStatus(t *testing.T) {
	p := New(services(nil))
	assert.Contains(t, p.View(100, 30), "Loading...")

	load(t, p)
	require.Len(t, p.menu.Items, 2)
	assert.Contains(t, p.menu.Items[0].Hint, "Completed")
	assert.Contains(t, p.menu.Items[1].Hint, "Not Started")
	assert.Contains(t, p.menu.Items[1].Hint, "14 days")
}

func TestEnterOpensPath(t *testing.T) {
	p := New(services(nil))
	load(t, p)

	p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &pathview.PathScreen{}, msg.Screen)
}

func TestGenerateShortcut(t *testing.T) {
	svc := services(nil)
	p := New(svc)
	load(t, p)
	_, cmd := p.Update(tea.KeyPressMsg{Code: 'g', Text: "g"})
	assert.Nil(t, cmd, "no generator configured")

	svc.Generator = stubGenerator{}
	p = New(svc)
	load(t, p)
	_, cmd = p.Update(tea.KeyPressMsg{Code: 'g', Text: "g"})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &generator.GeneratorScreen{}, msg.Screen)
}

func TestLoadError(t *testing.T) {
	p := New(services(errors.New("db locked")))
	load(t, p)
	assert.Contains(t, p.View(100, 30), "Could not load your learning paths.")
}

func TestResumeKeepsSelection(t *testing.T) {
	p := New(services(nil))
	load(t, p)
	p.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	p.Update(p.Resume()())
	assert.Equal(t, 1, p.menu.Selected)
}
