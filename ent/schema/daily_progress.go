package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// DailyProgress is the completion state of one day of a path. There is at
// most one row per path and day.
type DailyProgress struct {
	ent.Schema
}

func (DailyProgress) Mixin() []ent.Mixin {
	return []ent.Mixin{TimeMixin{}}
}

func (DailyProgress) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable(),
		field.String("learning_path_id").
			Immutable(),
		field.Int("day").
			Positive().
			Immutable(),
		field.Bool("video_completed").
			Default(false),
		field.Bool("reading_completed").
			Default(false),
		field.Bool("exercise_completed").
			Default(false),
		field.Bool("assessment_completed").
			Default(false),
		field.Text("notes").
			Default(""),
	}
}

func (DailyProgress) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("learning_path", LearningPath.Type).
			Ref("progress").
			Field("learning_path_id").
			Unique().
			Required().
			Immutable(),
	}
}

func (DailyProgress) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("learning_path_id", "day").
			Unique(),
	}
}
