package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// CursorRepo remembers the last active day of each path.
type CursorRepo struct {
	db *sql.DB
}

// SaveCursor records day as the last active day of pathID.
func (r *CursorRepo) SaveCursor(ctx context.Context, pathID string, day int) error {
	now := toMillis(time.Now())
	query, args := builder().Insert(tablePathCursors).
		Columns("learning_path_id", "day", "updated_at").
		Values(pathID, day, now).
		OnConflict(
			entsql.ConflictColumns("learning_path_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save cursor for %s: %w", pathID, err)
	}
	return nil
}

// Cursor returns the last active day of pathID, or 0 if none was saved.
func (r *CursorRepo) Cursor(ctx context.Context, pathID string) (int, error) {
	b := builder()
	query, args := b.Select("day").
		From(b.Table(tablePathCursors)).
		Where(entsql.EQ("learning_path_id", pathID)).
		Query()

	var day int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&day)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load cursor for %s: %w", pathID, err)
	}
	return day, nil
}
