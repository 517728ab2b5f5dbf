package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/edupath/internal/curriculum"
)

// PathRepo persists learning paths.
type PathRepo struct {
	db *sql.DB
}

var pathColumns = []string{
	"id", "created_at", "topic", "title", "description", "duration_days",
	"daily_time_hours", "skill_level", "prerequisites", "learning_objectives",
	"daily_modules", "resources",
}

// CreatePath inserts p in one statement, assigning its id and creation time.
func (r *PathRepo) CreatePath(ctx context.Context, p curriculum.LearningPath) (curriculum.LearningPath, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	blobs, err := marshalAll(p.Prerequisites, p.LearningObjectives, p.DailyModules, p.Resources)
	if err != nil {
		return curriculum.LearningPath{}, fmt.Errorf("encode learning path: %w", err)
	}

	query, args := builder().Insert(tableLearningPaths).
		Columns(pathColumns...).
		Values(p.ID, toMillis(p.CreatedAt), p.Topic, p.Title, p.Description, p.DurationDays,
			p.DailyTimeHours, string(p.SkillLevel), blobs[0], blobs[1], blobs[2], blobs[3]).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return curriculum.LearningPath{}, fmt.Errorf("insert learning path: %w", err)
	}
	return p, nil
}

// GetPath returns the path with id, or ErrNotFound.
func (r *PathRepo) GetPath(ctx context.Context, id string) (curriculum.LearningPath, error) {
	b := builder()
	query, args := b.Select(pathColumns...).
		From(b.Table(tableLearningPaths)).
		Where(entsql.EQ("id", id)).
		Query()

	paths, err := r.query(ctx, query, args)
	if err != nil {
		return curriculum.LearningPath{}, err
	}
	if len(paths) == 0 {
		return curriculum.LearningPath{}, fmt.Errorf("learning path %s: %w", id, ErrNotFound)
	}
	return paths[0], nil
}

// ListPaths returns every path, newest first. A positive limit caps the
// result.
func (r *PathRepo) ListPaths(ctx context.Context, limit int) ([]curriculum.LearningPath, error) {
	b := builder()
	sel := b.Select(pathColumns...).
		From(b.Table(tableLearningPaths)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()
	return r.query(ctx, query, args)
}

func (r *PathRepo) query(ctx context.Context, query string, args []any) ([]curriculum.LearningPath, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query learning paths: %w", err)
	}
	defer rows.Close()

	var out []curriculum.LearningPath
	for rows.Next() {
		var p curriculum.LearningPath
		var createdAt int64
		var level string
		var prereqs, objectives, modules, res []byte
		if err := rows.Scan(&p.ID, &createdAt, &p.Topic, &p.Title, &p.Description, &p.DurationDays,
			&p.DailyTimeHours, &level, &prereqs, &objectives, &modules, &res); err != nil {
			return nil, fmt.Errorf("scan learning path: %w", err)
		}
		p.CreatedAt = fromMillis(createdAt)
		p.SkillLevel = curriculum.SkillLevel(level)
		if err := unmarshalAll(
			decodeTarget{prereqs, &p.Prerequisites},
			decodeTarget{objectives, &p.LearningObjectives},
			decodeTarget{modules, &p.DailyModules},
			decodeTarget{res, &p.Resources},
		); err != nil {
			return nil, fmt.Errorf("decode learning path %s: %w", p.ID, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func marshalAll(values ...any) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out[i] = string(b)
	}
	return out, nil
}

type decodeTarget struct {
	raw []byte
	dst any
}

func unmarshalAll(targets ...decodeTarget) error {
	var errs []error
	for _, t := range targets {
		if len(t.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(t.raw, t.dst); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
