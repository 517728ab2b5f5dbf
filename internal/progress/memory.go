package progress

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryPersistence is an in-memory Persistence for tests and dry runs.
// Errors queued with FailNext are returned by the next write, in order.
type MemoryPersistence struct {
	mu       sync.Mutex
	records  map[string]DailyProgress
	order    []string
	failures []error
	listErr  error

	Creates int
	Updates int
}

// NewMemoryPersistence creates an empty MemoryPersistence, optionally
// seeded with records.
func NewMemoryPersistence(seed ...DailyProgress) *MemoryPersistence {
	m := &MemoryPersistence{records: make(map[string]DailyProgress)}
	for _, r := range seed {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		m.records[r.ID] = r
		m.order = append(m.order, r.ID)
	}
	return m
}

// FailNext queues an error for the next create or update.
func (m *MemoryPersistence) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, err)
}

// FailList makes ListProgress return err until cleared with nil.
func (m *MemoryPersistence) FailList(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErr = err
}

func (m *MemoryPersistence) ListProgress(_ context.Context, pathID string) ([]DailyProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []DailyProgress
	for _, id := range m.order {
		if r := m.records[id]; r.LearningPathID == pathID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryPersistence) CreateProgress(_ context.Context, pathID string, day int, c Change) (DailyProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.popFailure(); err != nil {
		return DailyProgress{}, err
	}
	now := time.Now()
	rec := DailyProgress{
		ID:             uuid.NewString(),
		LearningPathID: pathID,
		Day:            day,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	c.Apply(&rec)
	m.records[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	m.Creates++
	return rec, nil
}

func (m *MemoryPersistence) UpdateProgress(_ context.Context, id string, c Change) (DailyProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.popFailure(); err != nil {
		return DailyProgress{}, err
	}
	rec, ok := m.records[id]
	if !ok {
		return DailyProgress{}, errors.New("progress record not found")
	}
	c.Apply(&rec)
	rec.UpdatedAt = time.Now()
	m.records[id] = rec
	m.Updates++
	return rec, nil
}

// Count returns the number of stored records of a path.
func (m *MemoryPersistence) Count(pathID string) int {
	recs, _ := m.ListProgress(context.Background(), pathID)
	return len(recs)
}

func (m *MemoryPersistence) popFailure() error {
	if len(m.failures) == 0 {
		return nil
	}
	err := m.failures[0]
	m.failures = m.failures[1:]
	return err
}
