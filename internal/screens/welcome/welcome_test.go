package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edupath/internal/router"
	"github.com/abhisek/edupath/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome()

	view := w.View(80, 24)
	assert.NotContains(t, view, "one day at a time", "banner should not be visible at start")

	sendTicks(w, 4)
	assert.Equal(t, phase1End, w.elapsed)

	sendTicks(w, 8)
	assert.Equal(t, phase2End, w.elapsed)

	view = w.View(80, 24)
	assert.Contains(t, view, "one day at a time")
	assert.Contains(t, view, "press any key")
}

func TestCompactBanner(t *testing.T) {
	assert.Contains(t, RenderBanner(40), "E D U P A T H")
	assert.False(t, strings.Contains(RenderBanner(100), "E D U P A T H"))
}

func TestKeypressDuringAnimationSkipsToTransition(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	require.NotNil(t, cmd, "keypress during animation should trigger transition")

	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.NotNil(t, msg.Screen)
	assert.Equal(t, 1, *callCount)
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcome()

	// Ticks keep the marker moving but never hand over on their own.
	sendTicks(w, 45)
	assert.Equal(t, 0, *callCount)
	assert.Equal(t, totalDur, w.elapsed, "elapsed is capped")
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcome()

	sendTicks(w, 45)
	w.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	assert.Nil(t, cmd, "second keypress should not produce a command")
	assert.Equal(t, 1, *callCount)
}

func TestTicksStopAfterTransition(t *testing.T) {
	w, _ := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: 'a'})
	assert.Nil(t, sendTicks(w, 1))
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome()
	assert.Equal(t, "", w.Title())
}
