// Package generation turns a learner's request into a persisted learning path.
package generation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/navigation"
)

// Step is a coarse progress marker reported while generating.
type Step int

const (
	StepAnalyzing Step = iota
	StepGenerating
	StepSaving
	StepDone
)

// Message is the user-facing description of the step.
func (s Step) Message() string {
	switch s {
	case StepAnalyzing:
		return "Analyzing your learning request..."
	case StepGenerating:
		return "Creating comprehensive curriculum structure..."
	case StepSaving:
		return "Saving your personalized learning path..."
	case StepDone:
		return "Opening your learning path..."
	}
	return ""
}

// Stages of a GenerationError.
const (
	StageGenerate = "generate"
	StagePersist  = "persist"
)

// GenerationError reports a failure after the request was accepted.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// PathCreator persists a new learning path, assigning its id and creation
// time.
type PathCreator interface {
	CreatePath(ctx context.Context, p curriculum.LearningPath) (curriculum.LearningPath, error)
}

// Result is a freshly generated path and the link that opens it.
type Result struct {
	Path    curriculum.LearningPath
	Link    navigation.Link
	Elapsed time.Duration
}

// Orchestrator validates requests, generates curricula and persists them.
type Orchestrator struct {
	generator curriculum.Generator
	paths     PathCreator
	logger    *zap.Logger
	observer  func(Step)
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithObserver registers a callback for progress steps.
func WithObserver(fn func(Step)) OrchestratorOption {
	return func(o *Orchestrator) { o.observer = fn }
}

type observerKey struct{}

// WithStepObserver returns a context whose Generate calls also report
// steps to fn, in addition to any observer set with WithObserver. fn must
// not block.
func WithStepObserver(ctx context.Context, fn func(Step)) context.Context {
	return context.WithValue(ctx, observerKey{}, fn)
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) OrchestratorOption {
	return func(o *Orchestrator) { o.logger = l }
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(gen curriculum.Generator, paths PathCreator, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{generator: gen, paths: paths, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Generate runs the whole pipeline. Nothing is persisted unless the
// curriculum was generated and passed the structure check.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	o.step(ctx, StepAnalyzing)

	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	log := o.logger.With(
		zap.String("topic", req.Topic),
		zap.Int("days", req.DurationDays),
		zap.String("level", string(req.SkillLevel)),
	)

	o.step(ctx, StepGenerating)
	doc, err := o.generator.Generate(ctx, req)
	if err != nil {
		log.Error("curriculum generation failed", zap.Error(err))
		return nil, &GenerationError{Stage: StageGenerate, Err: err}
	}
	if err := curriculum.ValidateDocument(doc, req.DurationDays); err != nil {
		log.Error("curriculum rejected", zap.Error(err))
		return nil, &GenerationError{Stage: StageGenerate, Err: err}
	}

	o.step(ctx, StepSaving)
	path, err := o.paths.CreatePath(ctx, curriculum.NewLearningPath(req, doc))
	if err != nil {
		log.Error("persist learning path failed", zap.Error(err))
		return nil, &GenerationError{Stage: StagePersist, Err: err}
	}

	o.step(ctx, StepDone)
	elapsed := time.Since(start)
	log.Info("learning path generated",
		zap.String("path_id", path.ID),
		zap.Duration("elapsed", elapsed))

	return &Result{
		Path:    path,
		Link:    navigation.Link{PathID: path.ID},
		Elapsed: elapsed,
	}, nil
}

func (o *Orchestrator) step(ctx context.Context, s Step) {
	if o.observer != nil {
		o.observer(s)
	}
	if fn, ok := ctx.Value(observerKey{}).(func(Step)); ok && fn != nil {
		fn(s)
	}
}
