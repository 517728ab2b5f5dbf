// Package progress holds per-day progress records, the completion model
// derived from them, and the path-scoped record store.
package progress

import (
	"context"
	"fmt"
	"time"
)

// DailyProgress is the mutable record of one day of one learning path.
type DailyProgress struct {
	ID                  string    `json:"id"`
	LearningPathID      string    `json:"learning_path_id"`
	Day                 int       `json:"day"`
	VideoCompleted      bool      `json:"video_completed"`
	ReadingCompleted    bool      `json:"reading_completed"`
	ExerciseCompleted   bool      `json:"exercise_completed"`
	AssessmentCompleted bool      `json:"assessment_completed"`
	Notes               string    `json:"notes"`
	CreatedAt           time.Time `json:"created_date"`
	UpdatedAt           time.Time `json:"updated_date"`
}

// Field names one writable attribute of a DailyProgress.
type Field string

const (
	FieldVideo      Field = "video_completed"
	FieldReading    Field = "reading_completed"
	FieldExercise   Field = "exercise_completed"
	FieldAssessment Field = "assessment_completed"
	FieldNotes      Field = "notes"
)

// TaskFields lists the four completion flags in display order.
func TaskFields() []Field {
	return []Field{FieldVideo, FieldReading, FieldExercise, FieldAssessment}
}

// IsTask reports whether f is one of the completion flags.
func (f Field) IsTask() bool {
	switch f {
	case FieldVideo, FieldReading, FieldExercise, FieldAssessment:
		return true
	}
	return false
}

// Valid reports whether f names a writable field.
func (f Field) Valid() bool {
	return f.IsTask() || f == FieldNotes
}

// Label is the human-readable task name.
func (f Field) Label() string {
	switch f {
	case FieldVideo:
		return "Watch video"
	case FieldReading:
		return "Complete reading"
	case FieldExercise:
		return "Finish exercise"
	case FieldAssessment:
		return "Pass assessment"
	case FieldNotes:
		return "Notes"
	}
	return string(f)
}

// ParseField parses a field name.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown progress field %q", s)
	}
	return f, nil
}

// Change is a single-field write. Build one with SetTask or SetNotes.
type Change struct {
	Field Field
	Flag  bool
	Text  string
}

// SetTask sets a completion flag.
func SetTask(f Field, done bool) Change {
	return Change{Field: f, Flag: done}
}

// SetNotes replaces the notes of a day.
func SetNotes(text string) Change {
	return Change{Field: FieldNotes, Text: text}
}

// Validate rejects changes that do not name a valid field.
func (c Change) Validate() error {
	if !c.Field.Valid() {
		return fmt.Errorf("unknown progress field %q", c.Field)
	}
	return nil
}

// Apply writes the change into rec.
func (c Change) Apply(rec *DailyProgress) {
	switch c.Field {
	case FieldVideo:
		rec.VideoCompleted = c.Flag
	case FieldReading:
		rec.ReadingCompleted = c.Flag
	case FieldExercise:
		rec.ExerciseCompleted = c.Flag
	case FieldAssessment:
		rec.AssessmentCompleted = c.Flag
	case FieldNotes:
		rec.Notes = c.Text
	}
}

// Task returns the value of a completion flag.
func (p DailyProgress) Task(f Field) bool {
	switch f {
	case FieldVideo:
		return p.VideoCompleted
	case FieldReading:
		return p.ReadingCompleted
	case FieldExercise:
		return p.ExerciseCompleted
	case FieldAssessment:
		return p.AssessmentCompleted
	}
	return false
}

// Persistence is the progress half of the persistence service.
type Persistence interface {
	// ListProgress returns every record of a path.
	ListProgress(ctx context.Context, pathID string) ([]DailyProgress, error)

	// CreateProgress inserts a record for (pathID, day) carrying only the
	// given change and returns the stored record.
	CreateProgress(ctx context.Context, pathID string, day int, c Change) (DailyProgress, error)

	// UpdateProgress writes only the changed field of record id and
	// returns the stored record.
	UpdateProgress(ctx context.Context, id string, c Change) (DailyProgress, error)
}
