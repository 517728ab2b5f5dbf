package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/edupath/internal/curriculum"
)

func pathAt(title string, created time.Time, days int, hours float64) curriculum.LearningPath {
	return curriculum.LearningPath{Title: title, CreatedAt: created, DurationDays: days, DailyTimeHours: hours}
}

func TestSummarize(t *testing.T) {
	now := time.Now()
	paths := []PathProgress{
		{Path: pathAt("a", now, 10, 1), Completion: 0},
		{Path: pathAt("b", now, 5, 2), Completion: 40},
		{Path: pathAt("c", now, 3, 0.5), Completion: 100},
	}

	s := Summarize(paths)
	assert.Equal(t, 3, s.TotalPaths)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.InProgress)
	assert.InDelta(t, 21.5, s.TotalHours, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Summarize(nil))
}

func TestRecent(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var paths []PathProgress
	for i := range 8 {
		paths = append(paths, PathProgress{Path: pathAt(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour), 1, 1)})
	}

	got := Recent(paths, RecentPathsLimit)
	assert.Len(t, got, 6)
	assert.Equal(t, "h", got[0].Path.Title)
	assert.Equal(t, "c", got[5].Path.Title)
	assert.Equal(t, "a", paths[0].Path.Title, "input must not be reordered")
}
