// Package generator is the form that requests a new learning path and
// waits for it to be generated.
package generator

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/generation"
	"github.com/abhisek/edupath/internal/router"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/screens/pathview"
	"github.com/abhisek/edupath/internal/ui/components"
	"github.com/abhisek/edupath/internal/ui/layout"
	"github.com/abhisek/edupath/internal/ui/theme"
)

// Form fields in focus order.
const (
	fieldTopic = iota
	fieldDuration
	fieldLevel
	fieldDailyTime
	fieldGoals
	fieldSubmit
	fieldCount
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type stepMsg generation.Step

type generatedMsg struct {
	Result *generation.Result
	Err    error
}

type spinnerTickMsg time.Time

// GeneratorScreen collects a generation request.
type GeneratorScreen struct {
	svc screen.Services

	topic     components.TextInput
	duration  components.Choice
	level     components.Choice
	dailyTime components.Choice
	goals     components.TextInput
	submit    components.Button
	focus     int

	generating bool
	steps      chan generation.Step
	step       generation.Step
	frame      int
	errMsg     string
}

var _ screen.Screen = (*GeneratorScreen)(nil)
var _ screen.KeyHintProvider = (*GeneratorScreen)(nil)

// New creates the form. topic pre-fills the topic field.
func New(svc screen.Services, topic string) *GeneratorScreen {
	g := &GeneratorScreen{
		svc:       svc,
		topic:     components.NewTextInput("What do you want to learn?", "e.g. Rust for backend developers", 200),
		duration:  components.NewChoice("Duration", labels(generation.DurationOptions), 0),
		level:     components.NewChoice("Skill level", labels(generation.LevelOptions), 0),
		dailyTime: components.NewChoice("Daily time", labels(generation.DailyTimeOptions), 1),
		goals:     components.NewTextInput("Goals (optional)", "What do you want to be able to do?", 500),
		submit:    components.Button{Label: "Generate learning path"},
	}
	g.topic.SetValue(topic)
	if svc.Generator == nil {
		g.submit.Disabled = true
		g.errMsg = "No LLM provider is configured. Set an API key to generate paths."
	}
	return g
}

func labels[T any](opts []generation.Option[T]) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Label
	}
	return out
}

func (g *GeneratorScreen) Init() tea.Cmd {
	return g.topic.Focus()
}

func (g *GeneratorScreen) Title() string { return "New Learning Path" }

func (g *GeneratorScreen) KeyHints() []layout.KeyHint {
	if g.generating {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

// Request builds the generation request from the form.
func (g *GeneratorScreen) Request() generation.Request {
	return generation.Request{
		Topic:          strings.TrimSpace(g.topic.Value()),
		DurationDays:   generation.DurationOptions[g.duration.Selected].Value,
		SkillLevel:     generation.LevelOptions[g.level.Selected].Value,
		DailyTimeHours: generation.DailyTimeOptions[g.dailyTime.Selected].Value,
		Goals:          strings.TrimSpace(g.goals.Value()),
	}
}

func (g *GeneratorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		g.step = generation.Step(msg)
		return g, waitStep(g.steps)

	case spinnerTickMsg:
		if !g.generating {
			return g, nil
		}
		g.frame = (g.frame + 1) % len(spinnerFrames)
		return g, spinnerTick()

	case generatedMsg:
		return g.handleGenerated(msg)

	case tea.KeyMsg:
		if g.generating {
			return g, nil
		}
		return g.handleKey(msg)
	}

	return g.forward(msg)
}

func (g *GeneratorScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return g, g.setFocus((g.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return g, g.setFocus((g.focus - 1 + fieldCount) % fieldCount)
	case "enter":
		return g, g.start()
	}
	return g.forward(msg)
}

func (g *GeneratorScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch g.focus {
	case fieldTopic:
		g.topic, cmd = g.topic.Update(msg)
	case fieldDuration:
		g.duration, cmd = g.duration.Update(msg)
	case fieldLevel:
		g.level, cmd = g.level.Update(msg)
	case fieldDailyTime:
		g.dailyTime, cmd = g.dailyTime.Update(msg)
	case fieldGoals:
		g.goals, cmd = g.goals.Update(msg)
	}
	return g, cmd
}

func (g *GeneratorScreen) setFocus(f int) tea.Cmd {
	g.topic.Blur()
	g.goals.Blur()
	g.focus = f
	switch f {
	case fieldTopic:
		return g.topic.Focus()
	case fieldGoals:
		return g.goals.Focus()
	}
	return nil
}

// start validates the form and launches generation. Steps reported by
// the orchestrator arrive as stepMsg while it runs.
func (g *GeneratorScreen) start() tea.Cmd {
	if g.svc.Generator == nil {
		return nil
	}
	req := g.Request()
	g.clearErrors()
	if err := generation.ValidateRequest(req); err != nil {
		g.showError(err)
		return nil
	}

	g.generating = true
	g.step = generation.StepAnalyzing

	steps := make(chan generation.Step, 8)
	g.steps = steps
	gen := g.svc.Generator
	run := func() tea.Msg {
		ctx := generation.WithStepObserver(context.Background(), func(s generation.Step) {
			select {
			case steps <- s:
			default:
			}
		})
		res, err := gen.Generate(ctx, req)
		close(steps)
		return generatedMsg{Result: res, Err: err}
	}
	return tea.Batch(run, waitStep(steps), spinnerTick())
}

func waitStep(ch <-chan generation.Step) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return stepMsg(s)
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return spinnerTickMsg(t) })
}

func (g *GeneratorScreen) handleGenerated(msg generatedMsg) (screen.Screen, tea.Cmd) {
	g.generating = false
	if msg.Err != nil {
		g.svc.Log().Warn("generate learning path", zap.Error(msg.Err))
		g.showError(msg.Err)
		return g, nil
	}
	next := pathview.FromLink(g.svc, msg.Result.Link)
	return g, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (g *GeneratorScreen) clearErrors() {
	g.errMsg = ""
	g.topic.Err = ""
	g.duration.Err = ""
	g.level.Err = ""
	g.dailyTime.Err = ""
}

func (g *GeneratorScreen) showError(err error) {
	var verr *generation.ValidationError
	if errors.As(err, &verr) {
		g.topic.Err = verr.Fields["topic"]
		g.duration.Err = verr.Fields["duration"]
		g.level.Err = verr.Fields["skill_level"]
		g.dailyTime.Err = verr.Fields["daily_time"]
		g.errMsg = "Please fill in all required fields."
		return
	}
	g.errMsg = "Failed to generate learning path. Please try again."
}

func (g *GeneratorScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if g.generating {
		body := theme.Selected.Render(spinnerFrames[g.frame]+" "+g.step.Message()) + "\n\n" +
			theme.Hint.Render("This can take a minute for longer paths.")
		return components.Center(components.Card("Generating \""+g.Request().Topic+"\"", body, cw, true), width, height)
	}

	fields := []string{
		g.topic.View(g.focus == fieldTopic),
		g.duration.View(g.focus == fieldDuration),
		g.level.View(g.focus == fieldLevel),
		g.dailyTime.View(g.focus == fieldDailyTime),
		g.goals.View(g.focus == fieldGoals),
		g.submit.View(g.focus == fieldSubmit),
	}
	content := strings.Join(fields, "\n\n")
	if g.errMsg != "" {
		content += "\n\n" + theme.ErrorText.Render(g.errMsg)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(
		theme.Title.Render("Create a learning path") + "\n\n" + components.Card("", content, cw, false))
}
