package progress

import "fmt"

// LoadError indicates the records of a path could not be fetched.
type LoadError struct {
	PathID string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load progress for path %s: %v", e.PathID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError indicates a single field write failed. The cached record is
// left at its pre-attempt value.
type SaveError struct {
	Day   int
	Field Field
	Err   error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s for day %d: %v", e.Field, e.Day, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
