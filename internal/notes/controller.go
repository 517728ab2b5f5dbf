// Package notes implements the per-day notes draft and its save state machine.
package notes

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/edupath/internal/progress"
)

// SavedDisplayWindow is how long the "saved" status stays visible.
const SavedDisplayWindow = 2 * time.Second

// State is the save state of the draft.
type State int

const (
	Clean State = iota
	Dirty
	Saving
	DirtyError
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	case Saving:
		return "saving"
	case DirtyError:
		return "error"
	}
	return "unknown"
}

// Status is the transient feedback shown next to the notes.
type Status string

const (
	StatusNone  Status = ""
	StatusSaved Status = "saved"
	StatusError Status = "error"
)

// Store is the subset of progress.RecordStore the controller needs.
type Store interface {
	Record(day int) (progress.DailyProgress, bool)
	SetField(ctx context.Context, day int, c progress.Change) (progress.DailyProgress, error)
}

// Snapshot is a consistent view of the controller.
type Snapshot struct {
	Day    int
	Draft  string
	State  State
	Status Status
	Err    error
}

// Controller holds the notes draft of the active day.
type Controller struct {
	store  Store
	now    func() time.Time
	window time.Duration

	mu      sync.Mutex
	day     int
	draft   string
	state   State
	status  Status
	err     error
	savedAt time.Time
	seq     uint64
	edited  bool // draft changed while a save was in flight
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithSavedWindow overrides how long the saved status stays visible.
// Non-positive values keep the default.
func WithSavedWindow(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.window = d
		}
	}
}

// NewController creates a controller with no active day.
func NewController(store Store, opts ...Option) *Controller {
	c := &Controller{store: store, now: time.Now, window: SavedDisplayWindow}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SwitchDay loads the stored notes of day and discards any unsaved draft.
// A save still in flight for the previous day completes against the store
// only.
func (c *Controller) SwitchDay(day int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, _ := c.store.Record(day)
	c.day = day
	c.draft = rec.Notes
	c.state = Clean
	c.status = StatusNone
	c.err = nil
	c.edited = false
	c.seq++
}

// SetActiveDay lets the controller act as a navigation locator.
func (c *Controller) SetActiveDay(day int) { c.SwitchDay(day) }

// Edit replaces the draft.
func (c *Controller) Edit(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft = text
	c.status = StatusNone
	c.err = nil
	if c.state == Saving {
		c.edited = true
		return
	}
	c.state = Dirty
}

// Clear empties the draft.
func (c *Controller) Clear() { c.Edit("") }

// Commit saves the draft when it has unsaved changes. It blocks for the
// duration of the round trip and returns the save error, if any.
func (c *Controller) Commit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != Dirty && c.state != DirtyError {
		c.mu.Unlock()
		return nil
	}
	c.state = Saving
	c.edited = false
	c.seq++
	seq, day, draft := c.seq, c.day, c.draft
	c.mu.Unlock()

	_, err := c.store.SetField(ctx, day, progress.SetNotes(draft))

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		return err
	}

	switch {
	case err != nil:
		c.state = DirtyError
		c.status = StatusError
		c.err = err
	case c.edited:
		c.state = Dirty
	default:
		c.state = Clean
		c.status = StatusSaved
		c.savedAt = c.now()
	}
	c.edited = false
	return err
}

// Snapshot returns the current state. A "saved" status expires after the
// saved window (SavedDisplayWindow unless overridden).
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == StatusSaved && c.now().Sub(c.savedAt) >= c.window {
		c.status = StatusNone
	}
	return Snapshot{
		Day:    c.day,
		Draft:  c.draft,
		State:  c.state,
		Status: c.status,
		Err:    c.err,
	}
}

// Draft returns the current draft.
func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// State returns the current save state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
