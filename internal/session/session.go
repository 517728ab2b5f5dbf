// Package session ties together the pieces that serve one open learning
// path: its progress record store, the day navigation controller and the
// notes controller. A Session is owned by its caller; nothing is global.
package session

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/navigation"
	"github.com/abhisek/edupath/internal/notes"
	"github.com/abhisek/edupath/internal/progress"
)

// PathSource loads learning paths.
type PathSource interface {
	GetPath(ctx context.Context, id string) (curriculum.LearningPath, error)
}

// CursorStore remembers the last active day of each path.
type CursorStore interface {
	Cursor(ctx context.Context, pathID string) (int, error)
	SaveCursor(ctx context.Context, pathID string, day int) error
}

// Deps are the collaborators a session needs. Cursors and Logger are
// optional.
type Deps struct {
	Paths        PathSource
	Progress     progress.Persistence
	Cursors      CursorStore
	Logger       *zap.Logger
	NotesOptions []notes.Option
}

// Session is one open learning path.
type Session struct {
	path    curriculum.LearningPath
	records *progress.RecordStore
	nav     *navigation.Controller
	notes   *notes.Controller
	link    *navigation.LinkTracker
	cursors CursorStore
	logger  *zap.Logger

	// moved is the day navigated to since the last SaveCursor, 0 if none.
	moved atomic.Int64
}

// Open loads the path and its progress and picks the starting day. A
// requested day that is missing or invalid falls back to the first
// incomplete day. Opening writes nothing; see SaveCursor.
func Open(ctx context.Context, deps Deps, pathID, requested string) (*Session, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("path_id", pathID))

	path, err := deps.Paths.GetPath(ctx, pathID)
	if err != nil {
		return nil, fmt.Errorf("open path %s: %w", pathID, err)
	}

	records := progress.NewRecordStore(deps.Progress, path.ID, path.DurationDays, logger)
	recs, err := records.Load(ctx)
	if err != nil {
		return nil, err
	}

	s := &Session{
		path:    path,
		records: records,
		notes:   notes.NewController(records, deps.NotesOptions...),
		link:    navigation.NewLinkTracker(path.ID),
		cursors: deps.Cursors,
		logger:  logger,
	}
	s.nav = navigation.NewController(s.notes, s.link)

	day := s.nav.Initialize(recs, path.DurationDays, requested)
	if s.cursors != nil {
		s.nav.AddLocator(navigation.LocatorFunc(func(day int) { s.moved.Store(int64(day)) }))
	}
	logger.Debug("session opened", zap.Int("day", day), zap.Int("records", len(recs)))
	return s, nil
}

// ResumeLink fills in the remembered day of a link that names none. The
// link is returned unchanged when nothing was remembered.
func ResumeLink(ctx context.Context, cursors CursorStore, link navigation.Link) (navigation.Link, error) {
	if link.Day > 0 || cursors == nil {
		return link, nil
	}
	day, err := cursors.Cursor(ctx, link.PathID)
	if err != nil {
		return link, fmt.Errorf("load cursor of %s: %w", link.PathID, err)
	}
	if day > 0 {
		link.Day = day
	}
	return link, nil
}

// SaveCursor remembers the day the learner last navigated to. It does
// nothing without a cursor store or when the active day has not moved
// since the last save.
func (s *Session) SaveCursor(ctx context.Context) error {
	day := s.moved.Swap(0)
	if day == 0 || s.cursors == nil {
		return nil
	}
	if err := s.cursors.SaveCursor(ctx, s.path.ID, int(day)); err != nil {
		s.moved.CompareAndSwap(0, day)
		return fmt.Errorf("save cursor: %w", err)
	}
	return nil
}

// OpenLink opens the path a link points at.
func OpenLink(ctx context.Context, deps Deps, link navigation.Link) (*Session, error) {
	return Open(ctx, deps, link.PathID, link.RequestedDay())
}

func (s *Session) Path() curriculum.LearningPath { return s.path }

func (s *Session) Records() *progress.RecordStore { return s.records }

func (s *Session) Notes() *notes.Controller { return s.notes }

// Link points at the active day.
func (s *Session) Link() navigation.Link { return s.link.Link() }

func (s *Session) ActiveDay() int { return s.nav.Active() }

func (s *Session) Bounds() (int, int) { return s.nav.Bounds() }

// Select jumps to day.
func (s *Session) Select(day int) error {
	_, err := s.nav.Select(day)
	return err
}

// Step moves one day forward or back, stopping at the ends.
func (s *Session) Step(dir navigation.Direction) int { return s.nav.Step(dir) }

// Module returns the module of the active day.
func (s *Session) Module() (curriculum.DailyModule, bool) {
	return s.path.Module(s.ActiveDay())
}

// Record returns the progress of the active day. A day without a stored
// record reads as all tasks open and no notes.
func (s *Session) Record() progress.DailyProgress {
	day := s.ActiveDay()
	if rec, ok := s.records.Record(day); ok {
		return rec
	}
	return progress.DailyProgress{LearningPathID: s.path.ID, Day: day}
}

func (s *Session) Completion() int { return s.records.Completion() }

// Toggle flips a task of the active day.
func (s *Session) Toggle(ctx context.Context, field progress.Field) (progress.DailyProgress, error) {
	if !field.IsTask() {
		return progress.DailyProgress{}, fmt.Errorf("%q is not a task", field)
	}
	day := s.ActiveDay()
	current := s.Record().Task(field)
	return s.records.SetField(ctx, day, progress.SetTask(field, !current))
}

// SetTask sets a task of any day.
func (s *Session) SetTask(ctx context.Context, day int, field progress.Field, done bool) (progress.DailyProgress, error) {
	return s.records.SetField(ctx, day, progress.SetTask(field, done))
}
