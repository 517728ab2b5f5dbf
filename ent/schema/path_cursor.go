package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// PathCursor remembers the last day shown for a path.
type PathCursor struct {
	ent.Schema
}

func (PathCursor) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("learning_path_id").
			Immutable(),
		field.Int("day").
			Positive(),
		field.Int64("updated_at"),
	}
}

func (PathCursor) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("learning_path", LearningPath.Type).
			Ref("cursor").
			Field("id").
			Unique().
			Required().
			Immutable(),
	}
}
