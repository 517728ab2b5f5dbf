package progress

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPath = "path-1"

func newTestStore(t *testing.T, totalDays int, seed ...DailyProgress) (*RecordStore, *MemoryPersistence) {
	t.Helper()
	mem := NewMemoryPersistence(seed...)
	s := NewRecordStore(mem, testPath, totalDays, nil)
	_, err := s.Load(context.Background())
	require.NoError(t, err)
	return s, mem
}

func TestRecordStore_Load(t *testing.T) {
	other := full(1)
	other.LearningPathID = "other"
	mine := rec(2, true)
	mine.LearningPathID = testPath

	s, _ := newTestStore(t, 5, other, mine)

	recs := s.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].Day)
	assert.Equal(t, 0, s.Completion())
}

func TestRecordStore_LoadError(t *testing.T) {
	mem := NewMemoryPersistence()
	mem.FailList(errors.New("db down"))
	s := NewRecordStore(mem, testPath, 5, nil)

	_, err := s.Load(context.Background())
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, testPath, le.PathID)
}

func TestRecordStore_CreateThenUpdate(t *testing.T) {
	s, mem := newTestStore(t, 5)
	ctx := context.Background()

	r1, err := s.SetField(ctx, 3, SetNotes("x"))
	require.NoError(t, err)
	r2, err := s.SetField(ctx, 3, SetNotes("x"))
	require.NoError(t, err)

	assert.Equal(t, r1.ID, r2.ID)
	assert.Equal(t, 1, mem.Creates)
	assert.Equal(t, 1, mem.Updates)
	assert.Equal(t, 1, mem.Count(testPath))

	got, ok := s.Record(3)
	require.True(t, ok)
	assert.Equal(t, "x", got.Notes)
	assert.Equal(t, testPath, got.LearningPathID)
}

func TestRecordStore_UpdateOnlyTouchesField(t *testing.T) {
	s, _ := newTestStore(t, 5)
	ctx := context.Background()

	_, err := s.SetField(ctx, 1, SetTask(FieldVideo, true))
	require.NoError(t, err)
	_, err = s.SetField(ctx, 1, SetNotes("done"))
	require.NoError(t, err)

	r, _ := s.Record(1)
	assert.True(t, r.VideoCompleted)
	assert.Equal(t, "done", r.Notes)
	assert.False(t, r.ReadingCompleted)
}

func TestRecordStore_SaveErrorKeepsCache(t *testing.T) {
	s, mem := newTestStore(t, 5)
	ctx := context.Background()

	_, err := s.SetField(ctx, 2, SetTask(FieldReading, true))
	require.NoError(t, err)

	mem.FailNext(errors.New("timeout"))
	_, err = s.SetField(ctx, 2, SetTask(FieldReading, false))

	var se *SaveError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Day)
	assert.Equal(t, FieldReading, se.Field)

	r, _ := s.Record(2)
	assert.True(t, r.ReadingCompleted)
}

func TestRecordStore_FailedCreateLeavesNoRecord(t *testing.T) {
	s, mem := newTestStore(t, 5)
	mem.FailNext(errors.New("timeout"))

	_, err := s.SetField(context.Background(), 4, SetNotes("a"))
	require.Error(t, err)

	_, ok := s.Record(4)
	assert.False(t, ok)
}

func TestRecordStore_RejectsBadInput(t *testing.T) {
	s, mem := newTestStore(t, 5)
	ctx := context.Background()

	_, err := s.SetField(ctx, 1, Change{Field: "bogus"})
	require.Error(t, err)

	_, err = s.SetField(ctx, 6, SetNotes("late"))
	require.ErrorIs(t, err, ErrDayOutOfRange)

	_, err = s.SetField(ctx, 0, SetNotes("early"))
	require.ErrorIs(t, err, ErrDayOutOfRange)

	assert.Zero(t, mem.Creates)
}

func TestRecordStore_ConcurrentSameDay(t *testing.T) {
	s, mem := newTestStore(t, 5)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, f := range TaskFields() {
		wg.Add(1)
		go func(f Field) {
			defer wg.Done()
			_, err := s.SetField(ctx, 1, SetTask(f, true))
			assert.NoError(t, err)
		}(f)
	}
	wg.Wait()

	assert.Equal(t, 1, mem.Count(testPath))
	assert.Equal(t, 1, mem.Creates)
	assert.Equal(t, 3, mem.Updates)

	r, _ := s.Record(1)
	assert.True(t, IsDayFullyComplete(r))
}

func TestRecordStore_EndToEndCompletion(t *testing.T) {
	s, _ := newTestStore(t, 7)
	ctx := context.Background()

	for day := 1; day <= 2; day++ {
		for _, f := range TaskFields() {
			_, err := s.SetField(ctx, day, SetTask(f, true))
			require.NoError(t, err)
		}
	}
	assert.Equal(t, 29, s.Completion())
}

// slowList holds ListProgress open after taking its snapshot until
// release is closed.
type slowList struct {
	*MemoryPersistence
	taken   chan struct{}
	release chan struct{}
}

func (l *slowList) ListProgress(ctx context.Context, pathID string) ([]DailyProgress, error) {
	recs, err := l.MemoryPersistence.ListProgress(ctx, pathID)
	close(l.taken)
	<-l.release
	return recs, err
}

func TestRecordStore_LoadKeepsConcurrentCreate(t *testing.T) {
	mem := NewMemoryPersistence()
	list := &slowList{MemoryPersistence: mem, taken: make(chan struct{}), release: make(chan struct{})}
	s := NewRecordStore(list, testPath, 5, nil)
	ctx := context.Background()

	loaded := make(chan error, 1)
	go func() {
		_, err := s.Load(ctx)
		loaded <- err
	}()

	<-list.taken
	_, err := s.SetField(ctx, 3, SetNotes("a"))
	require.NoError(t, err)
	close(list.release)
	require.NoError(t, <-loaded)

	got, ok := s.Record(3)
	require.True(t, ok, "the record created during Load stays cached")
	assert.Equal(t, "a", got.Notes)

	_, err = s.SetField(ctx, 3, SetNotes("b"))
	require.NoError(t, err)

	assert.Equal(t, 1, mem.Creates)
	assert.Equal(t, 1, mem.Updates)
	assert.Equal(t, 1, mem.Count(testPath))
	got, _ = s.Record(3)
	assert.Equal(t, "b", got.Notes)
}

func TestRecordStore_ReloadPicksUpOutsideWrites(t *testing.T) {
	s, mem := newTestStore(t, 5)
	ctx := context.Background()

	_, err := s.SetField(ctx, 1, SetNotes("mine"))
	require.NoError(t, err)
	_, err = mem.CreateProgress(ctx, testPath, 2, SetTask(FieldVideo, true))
	require.NoError(t, err)

	recs, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "mine", recs[0].Notes)
	assert.True(t, recs[1].VideoCompleted)
}
