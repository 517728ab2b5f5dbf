// Package pathview is the day-by-day view of one learning path: module
// content, task toggles, notes and export.
package pathview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/export"
	"github.com/abhisek/edupath/internal/navigation"
	"github.com/abhisek/edupath/internal/notes"
	"github.com/abhisek/edupath/internal/progress"
	"github.com/abhisek/edupath/internal/screen"
	sess "github.com/abhisek/edupath/internal/session"
	"github.com/abhisek/edupath/internal/store"
	"github.com/abhisek/edupath/internal/ui/layout"
)

// flashDuration is how long action feedback stays in the status line.
const flashDuration = 3 * time.Second

// PathScreen shows one learning path.
type PathScreen struct {
	svc       screen.Services
	pathID    string
	requested string

	sess    *sess.Session
	editor  textarea.Model
	editing bool

	flash   string
	flashAt time.Time
	errMsg  string
	now     func() time.Time
}

var _ screen.Screen = (*PathScreen)(nil)
var _ screen.KeyHintProvider = (*PathScreen)(nil)
var _ screen.InputCapturer = (*PathScreen)(nil)
var _ screen.StatusProvider = (*PathScreen)(nil)

// New creates the screen for pathID. requested is the day to open, or
// empty for the first incomplete day.
func New(svc screen.Services, pathID, requested string) *PathScreen {
	ta := textarea.New()
	ta.Placeholder = "Write your notes for this day..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 10000
	ta.SetHeight(5)

	return &PathScreen{
		svc:       svc,
		pathID:    pathID,
		requested: requested,
		editor:    ta,
		now:       time.Now,
	}
}

// FromLink creates the screen for a parsed session link.
func FromLink(svc screen.Services, link navigation.Link) *PathScreen {
	return New(svc, link.PathID, link.RequestedDay())
}

func (p *PathScreen) Init() tea.Cmd {
	svc, id, requested := p.svc, p.pathID, p.requested
	return func() tea.Msg {
		s, err := sess.Open(context.Background(), svc.SessionDeps(), id, requested)
		return openedMsg{Session: s, Err: err}
	}
}

func (p *PathScreen) Title() string {
	if p.sess == nil {
		return "Learning Path"
	}
	return p.sess.Path().Title
}

// HeaderStatus shows the path completion.
func (p *PathScreen) HeaderStatus() string {
	if p.sess == nil {
		return ""
	}
	return fmt.Sprintf("%d%% complete", p.sess.Completion())
}

// CapturingInput reports whether the notes editor has focus.
func (p *PathScreen) CapturingInput() bool { return p.editing }

func (p *PathScreen) KeyHints() []layout.KeyHint {
	if p.editing {
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Save"},
			{Key: "Esc", Description: "Save & close"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Day"},
		{Key: "1-4", Description: "Toggle task"},
		{Key: "n", Description: "Notes"},
		{Key: "x", Description: "Export"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PathScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case openedMsg:
		if msg.Err != nil {
			p.svc.Log().Error("open learning path", zap.String("path_id", p.pathID), zap.Error(msg.Err))
			p.errMsg = openErrorMessage(msg.Err)
			return p, nil
		}
		p.sess = msg.Session
		p.syncEditor()
		return p, nil

	case notesSavedMsg:
		if msg.Err != nil {
			p.setFlash("Failed to save notes. Your draft is kept; try again.")
			return p, p.expireAfter(flashDuration)
		}
		return p, p.expireAfter(notes.SavedDisplayWindow)

	case taskSavedMsg:
		if msg.Err != nil {
			p.svc.Log().Error("save task", zap.Int("day", msg.Day), zap.String("field", string(msg.Field)), zap.Error(msg.Err))
			p.setFlash("Failed to update progress. Please try again.")
			return p, p.expireAfter(flashDuration)
		}
		return p, nil

	case cursorSavedMsg:
		if msg.Err != nil {
			p.svc.Log().Warn("save cursor", zap.String("path_id", p.pathID), zap.Error(msg.Err))
		}
		return p, nil

	case statusExpiredMsg:
		return p, nil

	case exportedMsg:
		if msg.Err != nil {
			p.svc.Log().Error("export path", zap.Error(msg.Err))
			p.setFlash("Export failed: " + msg.Err.Error())
		} else {
			p.setFlash("Exported to " + msg.File)
		}
		return p, p.expireAfter(flashDuration)

	case tea.KeyMsg:
		if p.sess == nil {
			return p, nil
		}
		if p.editing {
			return p.handleEditingKey(msg)
		}
		return p.handleKey(msg)
	}

	if p.editing {
		var cmd tea.Cmd
		p.editor, cmd = p.editor.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PathScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch key := msg.String(); key {
	case "left", "h":
		return p, p.step(navigation.Prev)
	case "right", "l":
		return p, p.step(navigation.Next)
	case "home", "end":
		first, last := p.sess.Bounds()
		day := first
		if key == "end" {
			day = last
		}
		if err := p.sess.Select(day); err != nil {
			p.svc.Log().Warn("select day", zap.Int("day", day), zap.Error(err))
			p.setFlash(fmt.Sprintf("Day %d is not part of this path.", day))
			return p, p.expireAfter(flashDuration)
		}
		p.syncEditor()
		return p, p.saveCursor()
	case "1", "2", "3", "4":
		return p, p.toggle(progress.TaskFields()[key[0]-'1'])
	case "n":
		p.editing = true
		return p, p.editor.Focus()
	case "x":
		return p, p.export()
	}
	return p, nil
}

func (p *PathScreen) step(dir navigation.Direction) tea.Cmd {
	before := p.sess.ActiveDay()
	if p.sess.Step(dir) == before {
		return nil
	}
	p.syncEditor()
	return p.saveCursor()
}

// toggle flips a task of the active day. The target value is fixed now so
// the write does not depend on when the command runs.
func (p *PathScreen) toggle(field progress.Field) tea.Cmd {
	s := p.sess
	day := s.ActiveDay()
	done := !s.Record().Task(field)
	return func() tea.Msg {
		_, err := s.SetTask(context.Background(), day, field, done)
		return taskSavedMsg{Day: day, Field: field, Err: err}
	}
}

func (p *PathScreen) saveCursor() tea.Cmd {
	s := p.sess
	return func() tea.Msg {
		return cursorSavedMsg{Err: s.SaveCursor(context.Background())}
	}
}

func (p *PathScreen) handleEditingKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.editing = false
		p.editor.Blur()
		return p, p.commitNotes()
	case "ctrl+s":
		return p, p.commitNotes()
	}

	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	if p.editor.Value() != p.sess.Notes().Draft() {
		p.sess.Notes().Edit(p.editor.Value())
	}
	return p, cmd
}

// syncEditor loads the active day's draft into the editor.
func (p *PathScreen) syncEditor() {
	p.editor.SetValue(p.sess.Notes().Draft())
}

func (p *PathScreen) commitNotes() tea.Cmd {
	n := p.sess.Notes()
	if st := n.State(); st != notes.Dirty && st != notes.DirtyError {
		return nil
	}
	return func() tea.Msg {
		return notesSavedMsg{Err: n.Commit(context.Background())}
	}
}

func (p *PathScreen) export() tea.Cmd {
	path := p.sess.Path()
	dir := p.svc.ExportDir
	return func() tea.Msg {
		file := filepath.Join(dir, export.FileName(path))
		if err := os.WriteFile(file, []byte(export.Markdown(path)), 0o644); err != nil {
			return exportedMsg{Err: err}
		}
		return exportedMsg{File: file}
	}
}

func (p *PathScreen) setFlash(msg string) {
	p.flash = msg
	p.flashAt = p.now()
}

func (p *PathScreen) currentFlash() string {
	if p.flash == "" || p.now().Sub(p.flashAt) >= flashDuration {
		return ""
	}
	return p.flash
}

func (p *PathScreen) expireAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return statusExpiredMsg{} })
}

func openErrorMessage(err error) string {
	var le *progress.LoadError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "Learning path not found."
	case errors.As(err, &le):
		return "Could not load your progress for this path."
	}
	return "Could not open this learning path."
}
