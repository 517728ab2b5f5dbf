package pathview

import (
	"github.com/abhisek/edupath/internal/progress"
	sess "github.com/abhisek/edupath/internal/session"
)

// openedMsg is sent when the session finished loading.
type openedMsg struct {
	Session *sess.Session
	Err     error
}

// notesSavedMsg reports the outcome of a notes commit.
type notesSavedMsg struct {
	Err error
}

// statusExpiredMsg re-renders once a transient status may have expired.
type statusExpiredMsg struct{}

// exportedMsg reports the outcome of a Markdown export.
type exportedMsg struct {
	File string
	Err  error
}

// taskSavedMsg reports the outcome of a task toggle.
type taskSavedMsg struct {
	Day   int
	Field progress.Field
	Err   error
}

// cursorSavedMsg reports the outcome of remembering the active day.
type cursorSavedMsg struct {
	Err error
}
