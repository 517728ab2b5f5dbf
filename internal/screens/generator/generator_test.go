package generator

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/generation"
	"github.com/abhisek/edupath/internal/navigation"
	"github.com/abhisek/edupath/internal/router"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/screens/pathview"
)

type fakeGenerator struct {
	calls []generation.Request
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, req generation.Request) (*generation.Result, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &generation.Result{Link: navigation.Link{PathID: "p1", Day: 1}}, nil
}

func special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestRequestDefaults(t *testing.T) {
	g := New(screen.Services{Generator: &fakeGenerator{}}, "  Rust  ")
	req := g.Request()

	assert.Equal(t, "Rust", req.Topic)
	assert.Equal(t, 7, req.DurationDays)
	assert.Equal(t, curriculum.LevelBeginner, req.SkillLevel)
	assert.Equal(t, 1.0, req.DailyTimeHours)
}

func TestChoicesCycleWithArrows(t *testing.T) {
	g := New(screen.Services{Generator: &fakeGenerator{}}, "Rust")

	g.Update(special(tea.KeyTab))
	g.Update(special(tea.KeyRight))
	g.Update(special(tea.KeyTab))
	g.Update(special(tea.KeyRight))
	g.Update(special(tea.KeyRight))

	req := g.Request()
	assert.Equal(t, 14, req.DurationDays)
	assert.Equal(t, curriculum.LevelAdvanced, req.SkillLevel)
}

func TestSubmitEmptyTopicShowsFieldError(t *testing.T) {
	gen := &fakeGenerator{}
	g := New(screen.Services{Generator: gen}, "")

	_, cmd := g.Update(special(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.False(t, g.generating)
	assert.Equal(t, "Topic is required", g.topic.Err)
	assert.Equal(t, "Please fill in all required fields.", g.errMsg)
	assert.Empty(t, gen.calls)
}

func TestSubmitRunsGenerator(t *testing.T) {
	gen := &fakeGenerator{}
	g := New(screen.Services{Generator: gen}, "Rust")

	_, cmd := g.Update(special(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, g.generating)
	assert.Equal(t, "Analyzing your learning request...", g.step.Message())

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	// The first command runs the generator.
	msg, ok := batch[0]().(generatedMsg)
	require.True(t, ok)
	require.Len(t, gen.calls, 1)
	assert.Equal(t, "Rust", gen.calls[0].Topic)

	_, next := g.Update(msg)
	assert.False(t, g.generating)
	require.NotNil(t, next)
	replace, ok := next().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &pathview.PathScreen{}, replace.Screen)
}

func TestGenerationFailure(t *testing.T) {
	g := New(screen.Services{Generator: &fakeGenerator{}}, "Rust")
	g.generating = true

	_, cmd := g.Update(generatedMsg{Err: errors.New("provider down")})
	assert.Nil(t, cmd)
	assert.False(t, g.generating)
	assert.Equal(t, "Failed to generate learning path. Please try again.", g.errMsg)
}

func TestKeysIgnoredWhileGenerating(t *testing.T) {
	gen := &fakeGenerator{}
	g := New(screen.Services{Generator: gen}, "Rust")
	g.generating = true

	_, cmd := g.Update(special(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Empty(t, gen.calls)
}

func TestWithoutGenerator(t *testing.T) {
	g := New(screen.Services{}, "Rust")

	assert.True(t, g.submit.Disabled)
	_, cmd := g.Update(special(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Contains(t, g.errMsg, "No LLM provider")
}

func TestStepMessagesUpdateProgress(t *testing.T) {
	g := New(screen.Services{Generator: &fakeGenerator{}}, "Rust")
	steps := make(chan generation.Step, 1)
	g.steps = steps
	g.generating = true

	_, cmd := g.Update(stepMsg(generation.StepSaving))
	assert.Equal(t, generation.StepSaving, g.step)
	require.NotNil(t, cmd)

	close(steps)
	assert.Nil(t, cmd())
}
