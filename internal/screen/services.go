package screen

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/generation"
	"github.com/abhisek/edupath/internal/notes"
	"github.com/abhisek/edupath/internal/progress"
	"github.com/abhisek/edupath/internal/session"
	"github.com/abhisek/edupath/internal/store"
)

// PathStore reads saved learning paths.
type PathStore interface {
	GetPath(ctx context.Context, id string) (curriculum.LearningPath, error)
	ListPaths(ctx context.Context, limit int) ([]curriculum.LearningPath, error)
}

// ProgressStore persists daily progress and aggregates completion.
type ProgressStore interface {
	progress.Persistence
	CompletionByPath(ctx context.Context, totalDays map[string]int) (map[string]int, error)
}

// Generator creates learning paths.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
}

// EventLog reads recorded LLM requests.
type EventLog interface {
	QueryLLMEvents(ctx context.Context, opts store.QueryOpts) ([]store.LLMEvent, error)
}

// Services are shared by every screen. Generator is nil when no LLM
// provider is configured.
type Services struct {
	Paths        PathStore
	Progress     ProgressStore
	Cursors      session.CursorStore
	Generator    Generator
	Events       EventLog
	Logger       *zap.Logger
	NotesOptions []notes.Option
	ExportDir    string
}

// SessionDeps returns the dependencies for opening a path session.
func (s Services) SessionDeps() session.Deps {
	return session.Deps{
		Paths:        s.Paths,
		Progress:     s.Progress,
		Cursors:      s.Cursors,
		Logger:       s.Log(),
		NotesOptions: s.NotesOptions,
	}
}

// Log returns the logger, never nil.
func (s Services) Log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// PathProgress lists every path with its completion, newest first.
func (s Services) PathProgress(ctx context.Context) ([]progress.PathProgress, error) {
	paths, err := s.Paths.ListPaths(ctx, 0)
	if err != nil {
		return nil, err
	}
	days := make(map[string]int, len(paths))
	for _, p := range paths {
		days[p.ID] = p.DurationDays
	}
	completion, err := s.Progress.CompletionByPath(ctx, days)
	if err != nil {
		return nil, err
	}
	out := make([]progress.PathProgress, len(paths))
	for i, p := range paths {
		out[i] = progress.PathProgress{Path: p, Completion: completion[p.ID]}
	}
	return progress.Recent(out, -1), nil
}
