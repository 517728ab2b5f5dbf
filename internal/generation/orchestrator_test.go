package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/llm"
)

type memPaths struct {
	created []curriculum.LearningPath
	err     error
}

func (m *memPaths) CreatePath(_ context.Context, p curriculum.LearningPath) (curriculum.LearningPath, error) {
	if m.err != nil {
		return curriculum.LearningPath{}, m.err
	}
	p.ID = fmt.Sprintf("path-%d", len(m.created)+1)
	p.CreatedAt = time.Now()
	m.created = append(m.created, p)
	return p, nil
}

func documentJSON(t *testing.T, days ...int) json.RawMessage {
	t.Helper()
	doc := curriculum.Document{
		Title:              "Go in a Week",
		Description:        "Learn Go.",
		Prerequisites:      []string{},
		LearningObjectives: []string{"Write Go"},
		Resources:          curriculum.ResourceBundle{Books: []string{"The Go Programming Language"}},
	}
	for _, d := range days {
		doc.DailyModules = append(doc.DailyModules, curriculum.DailyModule{
			Day:       d,
			Title:     fmt.Sprintf("Day %d topic", d),
			Objective: "Learn something",
		})
	}
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	return b
}

func validRequest() Request {
	return Request{
		Topic:          "Go",
		DurationDays:   3,
		SkillLevel:     curriculum.LevelIntermediate,
		DailyTimeHours: 1,
	}
}

func newOrchestrator(mock *llm.MockProvider, paths *memPaths, opts ...OrchestratorOption) *Orchestrator {
	gen := curriculum.NewLLMGenerator(mock, curriculum.DefaultConfig())
	return NewOrchestrator(gen, paths, opts...)
}

func TestGenerate_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: documentJSON(t, 3, 1, 2)})
	paths := &memPaths{}
	var steps []Step
	o := newOrchestrator(mock, paths, WithObserver(func(s Step) { steps = append(steps, s) }))

	res, err := o.Generate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "path-1", res.Path.ID)
	assert.Equal(t, "Go", res.Path.Topic)
	assert.Equal(t, 3, res.Path.DurationDays)
	require.Len(t, res.Path.DailyModules, 3)
	assert.Equal(t, 1, res.Path.DailyModules[0].Day)
	assert.Equal(t, "path-1", res.Link.PathID)
	assert.Zero(t, res.Link.Day)
	assert.Equal(t, []Step{StepAnalyzing, StepGenerating, StepSaving, StepDone}, steps)
	assert.Len(t, paths.created, 1)
}

func TestGenerate_ContextObserver(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: documentJSON(t, 1, 2)})
	var fromOption, fromCtx []Step
	o := newOrchestrator(mock, &memPaths{}, WithObserver(func(s Step) { fromOption = append(fromOption, s) }))

	ctx := WithStepObserver(context.Background(), func(s Step) { fromCtx = append(fromCtx, s) })
	req := validRequest()
	req.DurationDays = 2
	_, err := o.Generate(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, fromOption, fromCtx)
	assert.Len(t, fromCtx, 4)
}

func TestGenerate_ValidationNeverCallsUpstream(t *testing.T) {
	mock := llm.NewMockProvider()
	paths := &memPaths{}
	o := newOrchestrator(mock, paths)

	_, err := o.Generate(context.Background(), Request{Topic: "  "})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Topic is required", ve.Fields["topic"])
	assert.Equal(t, "Duration is required", ve.Fields["duration"])
	assert.Equal(t, "Skill level is required", ve.Fields["skill_level"])
	assert.Equal(t, "Daily time commitment is required", ve.Fields["daily_time"])
	assert.Zero(t, mock.CallCount())
	assert.Empty(t, paths.created)
}

func TestValidateRequest_Limits(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Request)
		field string
	}{
		{"too long", func(r *Request) { r.DurationDays = MaxDurationDays + 1 }, "duration"},
		{"bad level", func(r *Request) { r.SkillLevel = "expert" }, "skill_level"},
		{"too many hours", func(r *Request) { r.DailyTimeHours = 25 }, "daily_time"},
		{"negative hours", func(r *Request) { r.DailyTimeHours = -1 }, "daily_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mod(&req)
			var ve *ValidationError
			require.ErrorAs(t, ValidateRequest(req), &ve)
			assert.Contains(t, ve.Fields, tt.field)
			assert.Len(t, ve.Fields, 1)
		})
	}
	assert.NoError(t, ValidateRequest(validRequest()))
}

func TestGenerate_GeneratorFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("upstream down")})
	paths := &memPaths{}
	o := newOrchestrator(mock, paths)

	_, err := o.Generate(context.Background(), validRequest())

	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, StageGenerate, ge.Stage)
	assert.Empty(t, paths.created)
}

func TestGenerate_TruncatedCurriculum(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: documentJSON(t, 1, 2, 3)[:40], Truncated: true})
	paths := &memPaths{}
	o := newOrchestrator(mock, paths)

	_, err := o.Generate(context.Background(), validRequest())

	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, StageGenerate, ge.Stage)
	var maxTok *llm.ErrMaxTokensExceeded
	require.ErrorAs(t, err, &maxTok)
	assert.Equal(t, curriculum.DefaultConfig().MaxTokens, maxTok.MaxTokens)
	assert.Empty(t, paths.created)
}

func TestGenerate_MisalignedDocument(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: documentJSON(t, 1, 2)})
	paths := &memPaths{}
	o := newOrchestrator(mock, paths)

	_, err := o.Generate(context.Background(), validRequest())

	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, StageGenerate, ge.Stage)
	var se *curriculum.StructureError
	assert.ErrorAs(t, err, &se)
	assert.Empty(t, paths.created)
}

func TestGenerate_PersistFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: documentJSON(t, 1, 2, 3)})
	paths := &memPaths{err: errors.New("disk full")}
	o := newOrchestrator(mock, paths)

	_, err := o.Generate(context.Background(), validRequest())

	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, StagePersist, ge.Stage)
}
