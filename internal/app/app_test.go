package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/navigation"
	"github.com/abhisek/edupath/internal/progress"
	"github.com/abhisek/edupath/internal/router"
	"github.com/abhisek/edupath/internal/screen"
)

type fakePaths struct{}

func (fakePaths) GetPath(context.Context, string) (curriculum.LearningPath, error) {
	return curriculum.LearningPath{ID: "p1", Title: "Rust Basics", DurationDays: 2}, nil
}

func (fakePaths) ListPaths(context.Context, int) ([]curriculum.LearningPath, error) {
	return nil, nil
}

type fakeProgress struct {
	*progress.MemoryPersistence
}

func (fakeProgress) CompletionByPath(context.Context, map[string]int) (map[string]int, error) {
	return map[string]int{}, nil
}

func testOptions() Options {
	return Options{NoSplash: true, Services: screen.Services{
		Paths:    fakePaths{},
		Progress: fakeProgress{progress.NewMemoryPersistence()},
	}}
}

func TestStartsOnHome(t *testing.T) {
	m := newAppModel(testOptions())
	assert.Equal(t, 1, m.router.Depth())
	assert.Equal(t, "Home", m.router.Active().Title())
}

func TestSplashHandsOverToHome(t *testing.T) {
	opts := testOptions()
	opts.NoSplash = false
	m := newAppModel(opts)
	require.Equal(t, "", m.router.Active().Title())

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Equal(t, "Home", m.router.Active().Title())
	assert.Equal(t, 1, m.router.Depth())
}

func TestOpenPushesPath(t *testing.T) {
	opts := testOptions()
	opts.Open = &navigation.Link{PathID: "p1", Day: 2}
	m := newAppModel(opts)
	assert.Equal(t, 2, m.router.Depth())
	assert.NotNil(t, m.Init())
}

func TestEscPopsUnlessCapturing(t *testing.T) {
	opts := testOptions()
	opts.Open = &navigation.Link{PathID: "p1"}
	m := newAppModel(opts)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())

	// Esc on the home screen does nothing.
	home := newAppModel(testOptions())
	_, cmd = home.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
}

func TestViewTooSmall(t *testing.T) {
	m := newAppModel(testOptions())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	v := updated.(AppModel).View()
	assert.True(t, v.AltScreen)
}
