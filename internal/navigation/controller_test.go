package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edupath/internal/progress"
)

func done(day int, n int) progress.DailyProgress {
	r := progress.DailyProgress{Day: day}
	for i, f := range progress.TaskFields() {
		if i < n {
			progress.SetTask(f, true).Apply(&r)
		}
	}
	return r
}

type recorder struct{ days []int }

func (r *recorder) SetActiveDay(day int) { r.days = append(r.days, day) }

func TestInitialize(t *testing.T) {
	tests := []struct {
		name      string
		records   []progress.DailyProgress
		total     int
		requested string
		want      int
	}{
		{"no progress", nil, 5, "", 1},
		{"day one done", []progress.DailyProgress{done(1, 4)}, 5, "", 2},
		{"three of four is not fully done", []progress.DailyProgress{done(1, 3)}, 5, "", 1},
		{"gap in records", []progress.DailyProgress{done(1, 4), done(3, 4)}, 5, "", 2},
		{"all done", []progress.DailyProgress{done(1, 4), done(2, 4)}, 2, "", 1},
		{"requested wins", []progress.DailyProgress{done(1, 4)}, 5, "4", 4},
		{"requested trimmed", nil, 5, " 3 ", 3},
		{"requested too large", []progress.DailyProgress{done(1, 4)}, 5, "9", 2},
		{"requested zero", nil, 5, "0", 1},
		{"requested garbage", []progress.DailyProgress{done(1, 4)}, 5, "abc", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			assert.Equal(t, tt.want, c.Initialize(tt.records, tt.total, tt.requested))
			assert.Equal(t, tt.want, c.Active())
		})
	}
}

func TestStep_Clamps(t *testing.T) {
	c := NewController()
	c.Initialize(nil, 3, "1")

	assert.Equal(t, 1, c.Step(Prev))
	assert.Equal(t, 2, c.Step(Next))
	assert.Equal(t, 3, c.Step(Next))
	assert.Equal(t, 3, c.Step(Next))
	assert.Equal(t, 2, c.Step(Prev))
}

func TestSelect(t *testing.T) {
	c := NewController()
	c.Initialize(nil, 5, "")

	day, err := c.Select(4)
	require.NoError(t, err)
	assert.Equal(t, 4, day)

	_, err = c.Select(6)
	var oor *DayOutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 5, oor.Max)
	assert.Equal(t, 4, c.Active(), "rejected select must not move")

	_, err = c.Select(0)
	require.Error(t, err)

	lo, hi := c.Bounds()
	assert.Equal(t, 1, lo)
	assert.Equal(t, 5, hi)
}

func TestLocatorsReceiveEveryChange(t *testing.T) {
	rec := &recorder{}
	tracker := NewLinkTracker("p1")
	c := NewController(rec)
	c.AddLocator(tracker)

	c.Initialize(nil, 3, "2")
	c.Step(Next)
	c.Step(Next) // clamped, no change
	_, _ = c.Select(1)

	assert.Equal(t, []int{2, 3, 1}, rec.days)
	assert.Equal(t, Link{PathID: "p1", Day: 1}, tracker.Link())
}

func TestUseBeforeInitializePanics(t *testing.T) {
	c := NewController()
	assert.False(t, c.Initialized())
	assert.Panics(t, func() { c.Active() })
	assert.Panics(t, func() { c.Step(Next) })
	assert.Panics(t, func() { _, _ = c.Select(1) })
}
