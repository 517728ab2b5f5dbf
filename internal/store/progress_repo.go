package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/edupath/internal/progress"
)

// ProgressRepo persists daily progress records. It implements
// progress.Persistence.
type ProgressRepo struct {
	db *sql.DB
}

var _ progress.Persistence = (*ProgressRepo)(nil)

var progressColumns = []string{
	"id", "learning_path_id", "day", "video_completed", "reading_completed",
	"exercise_completed", "assessment_completed", "notes", "created_at", "updated_at",
}

// ListProgress returns the records of a path ordered by day.
func (r *ProgressRepo) ListProgress(ctx context.Context, pathID string) ([]progress.DailyProgress, error) {
	b := builder()
	query, args := b.Select(progressColumns...).
		From(b.Table(tableDailyProgresses)).
		Where(entsql.EQ("learning_path_id", pathID)).
		OrderBy("day").
		Query()
	return r.query(ctx, query, args)
}

// CreateProgress inserts the record of (pathID, day) with only the changed
// field set.
func (r *ProgressRepo) CreateProgress(ctx context.Context, pathID string, day int, c progress.Change) (progress.DailyProgress, error) {
	if err := c.Validate(); err != nil {
		return progress.DailyProgress{}, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	rec := progress.DailyProgress{
		ID:             uuid.NewString(),
		LearningPathID: pathID,
		Day:            day,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	c.Apply(&rec)

	query, args := builder().Insert(tableDailyProgresses).
		Columns(progressColumns...).
		Values(rec.ID, rec.LearningPathID, rec.Day, rec.VideoCompleted, rec.ReadingCompleted,
			rec.ExerciseCompleted, rec.AssessmentCompleted, rec.Notes, toMillis(now), toMillis(now)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return progress.DailyProgress{}, fmt.Errorf("insert progress day %d: %w", day, err)
	}
	return rec, nil
}

// UpdateProgress writes the changed field of record id and returns the
// stored record.
func (r *ProgressRepo) UpdateProgress(ctx context.Context, id string, c progress.Change) (progress.DailyProgress, error) {
	if err := c.Validate(); err != nil {
		return progress.DailyProgress{}, err
	}

	var value any = c.Flag
	if c.Field == progress.FieldNotes {
		value = c.Text
	}

	query, args := builder().Update(tableDailyProgresses).
		Set(string(c.Field), value).
		Set("updated_at", toMillis(time.Now())).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return progress.DailyProgress{}, fmt.Errorf("update progress %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return progress.DailyProgress{}, fmt.Errorf("progress %s: %w", id, ErrNotFound)
	}

	return r.get(ctx, id)
}

func (r *ProgressRepo) get(ctx context.Context, id string) (progress.DailyProgress, error) {
	b := builder()
	query, args := b.Select(progressColumns...).
		From(b.Table(tableDailyProgresses)).
		Where(entsql.EQ("id", id)).
		Query()
	recs, err := r.query(ctx, query, args)
	if err != nil {
		return progress.DailyProgress{}, err
	}
	if len(recs) == 0 {
		return progress.DailyProgress{}, fmt.Errorf("progress %s: %w", id, ErrNotFound)
	}
	return recs[0], nil
}

// CompletionByPath returns the completion of every path in one pass,
// keyed by path id. totalDays maps path id to duration.
func (r *ProgressRepo) CompletionByPath(ctx context.Context, totalDays map[string]int) (map[string]int, error) {
	b := builder()
	query, args := b.Select(progressColumns...).
		From(b.Table(tableDailyProgresses)).
		OrderBy("learning_path_id", "day").
		Query()
	recs, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]progress.DailyProgress)
	for _, rec := range recs {
		grouped[rec.LearningPathID] = append(grouped[rec.LearningPathID], rec)
	}

	out := make(map[string]int, len(totalDays))
	for id, days := range totalDays {
		out[id] = progress.Completion(grouped[id], days)
	}
	return out, nil
}

func (r *ProgressRepo) query(ctx context.Context, query string, args []any) ([]progress.DailyProgress, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var out []progress.DailyProgress
	for rows.Next() {
		var rec progress.DailyProgress
		var createdAt, updatedAt int64
		if err := rows.Scan(&rec.ID, &rec.LearningPathID, &rec.Day, &rec.VideoCompleted,
			&rec.ReadingCompleted, &rec.ExerciseCompleted, &rec.AssessmentCompleted, &rec.Notes,
			&createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		rec.CreatedAt = fromMillis(createdAt)
		rec.UpdatedAt = fromMillis(updatedAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}
