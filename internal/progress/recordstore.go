package progress

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// ErrDayOutOfRange is wrapped by SaveError when a write targets a day
// outside the path.
var ErrDayOutOfRange = errors.New("day out of range")

// RecordStore caches the progress records of one learning path and writes
// changes through to the persistence service. It is safe for concurrent
// use. Writes to the same day are serialized, writes to different days
// are not.
type RecordStore struct {
	persist   Persistence
	pathID    string
	totalDays int
	logger    *zap.Logger

	mu       sync.Mutex
	records  map[int]DailyProgress
	dayLocks map[int]*sync.Mutex
	// seq counts successful writes; written holds the seq of each day's
	// last write so Load can tell cached records newer than its snapshot.
	seq     uint64
	written map[int]uint64
}

// NewRecordStore creates an empty store for a path. Call Load to populate it.
func NewRecordStore(persist Persistence, pathID string, totalDays int, logger *zap.Logger) *RecordStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordStore{
		persist:   persist,
		pathID:    pathID,
		totalDays: totalDays,
		logger:    logger.With(zap.String("path_id", pathID)),
		records:   make(map[int]DailyProgress),
		dayLocks:  make(map[int]*sync.Mutex),
		written:   make(map[int]uint64),
	}
}

// PathID returns the path this store is scoped to.
func (s *RecordStore) PathID() string { return s.pathID }

// TotalDays returns the duration of the path.
func (s *RecordStore) TotalDays() int { return s.totalDays }

// Load refreshes the cache from the persistence service. Days written
// through this store after the fetch started keep their cached record, so
// a concurrent first write is never forgotten and recreated.
func (s *RecordStore) Load(ctx context.Context) ([]DailyProgress, error) {
	s.mu.Lock()
	start := s.seq
	s.mu.Unlock()

	recs, err := s.persist.ListProgress(ctx, s.pathID)
	if err != nil {
		s.logger.Warn("progress load failed", zap.Error(err))
		return nil, &LoadError{PathID: s.pathID, Err: err}
	}

	byDay := make(map[int]DailyProgress, len(recs))
	for _, r := range recs {
		if _, dup := byDay[r.Day]; dup {
			s.logger.Warn("duplicate progress record", zap.Int("day", r.Day), zap.String("id", r.ID))
		}
		byDay[r.Day] = r
	}

	s.mu.Lock()
	for day, at := range s.written {
		if at > start {
			byDay[day] = s.records[day]
		}
	}
	s.records = byDay
	s.mu.Unlock()

	return s.Records(), nil
}

// SetField writes one field of a day. The first write of a day creates its
// record, later writes update the existing record by id.
func (s *RecordStore) SetField(ctx context.Context, day int, c Change) (DailyProgress, error) {
	if err := c.Validate(); err != nil {
		return DailyProgress{}, &SaveError{Day: day, Field: c.Field, Err: err}
	}
	if day < 1 || day > s.totalDays {
		return DailyProgress{}, &SaveError{
			Day:   day,
			Field: c.Field,
			Err:   fmt.Errorf("%w: %d not in [1, %d]", ErrDayOutOfRange, day, s.totalDays),
		}
	}

	lock := s.dayLock(day)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	existing, ok := s.records[day]
	s.mu.Unlock()

	var (
		rec DailyProgress
		err error
	)
	if ok {
		rec, err = s.persist.UpdateProgress(ctx, existing.ID, c)
	} else {
		rec, err = s.persist.CreateProgress(ctx, s.pathID, day, c)
	}
	if err != nil {
		s.logger.Warn("progress save failed",
			zap.Int("day", day),
			zap.String("field", string(c.Field)),
			zap.Error(err))
		return DailyProgress{}, &SaveError{Day: day, Field: c.Field, Err: err}
	}

	s.mu.Lock()
	s.records[day] = rec
	s.seq++
	s.written[day] = s.seq
	s.mu.Unlock()

	s.logger.Debug("progress saved",
		zap.Int("day", day),
		zap.String("field", string(c.Field)),
		zap.Bool("created", !ok))
	return rec, nil
}

// Records returns a snapshot of the cached records ordered by day.
func (s *RecordStore) Records() []DailyProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]DailyProgress, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// Record returns the cached record of a day.
func (s *RecordStore) Record(day int) (DailyProgress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[day]
	return r, ok
}

// Completion is the completion percentage of the cached records.
func (s *RecordStore) Completion() int {
	return Completion(s.Records(), s.totalDays)
}

func (s *RecordStore) dayLock(day int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.dayLocks[day]
	if !ok {
		l = &sync.Mutex{}
		s.dayLocks[day] = l
	}
	return l
}
