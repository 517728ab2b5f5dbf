package progress

import (
	"sort"

	"github.com/abhisek/edupath/internal/curriculum"
)

// RecentPathsLimit is the number of paths shown as "recent".
const RecentPathsLimit = 6

// PathProgress pairs a path with its derived completion.
type PathProgress struct {
	Path       curriculum.LearningPath `json:"path"`
	Completion int                     `json:"completion"`
}

// Status is the coarse state of the path.
func (p PathProgress) Status() Status { return StatusFor(p.Completion) }

// Stats are the dashboard counters over every saved path.
type Stats struct {
	TotalPaths int     `json:"total_paths"`
	Completed  int     `json:"completed"`
	InProgress int     `json:"in_progress"`
	TotalHours float64 `json:"total_hours"`
}

// Summarize computes dashboard counters. Total hours is the planned time of
// every path, finished or not.
func Summarize(paths []PathProgress) Stats {
	s := Stats{TotalPaths: len(paths)}
	for _, p := range paths {
		switch p.Status() {
		case StatusCompleted:
			s.Completed++
		case StatusInProgress:
			s.InProgress++
		}
		s.TotalHours += p.Path.TotalHours()
	}
	return s
}

// Recent returns up to limit paths, newest first.
func Recent(paths []PathProgress, limit int) []PathProgress {
	out := make([]PathProgress, len(paths))
	copy(out, paths)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Path.CreatedAt.After(out[j].Path.CreatedAt)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
