package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LearningPath is a generated curriculum. Nested content is stored as JSON
// since it is only ever read and written as a whole.
type LearningPath struct {
	ent.Schema
}

func (LearningPath) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable().
			Comment("UUID"),
		field.Int64("created_at").
			Immutable(),
		field.String("topic"),
		field.String("title"),
		field.Text("description").
			Default(""),
		field.Int("duration_days").
			Positive(),
		field.Float("daily_time_hours"),
		field.Enum("skill_level").
			Values("beginner", "intermediate", "advanced"),
		field.JSON("prerequisites", []string{}),
		field.JSON("learning_objectives", []string{}),
		field.JSON("daily_modules", []map[string]any{}).
			Comment("One module per day, ordered by day"),
		field.JSON("resources", map[string]any{}),
	}
}

func (LearningPath) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("progress", DailyProgress.Type),
		edge.To("cursor", PathCursor.Type).
			Unique(),
	}
}

func (LearningPath) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_at"),
	}
}
