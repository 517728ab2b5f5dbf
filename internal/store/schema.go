package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions, laid out as ent's migrate package declares them.

const (
	tableLearningPaths    = "learning_paths"
	tableDailyProgresses  = "daily_progresses"
	tablePathCursors      = "path_cursors"
	tableLLMRequestEvents = "llm_request_events"
)

var (
	learningPathsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "topic", Type: field.TypeString},
		{Name: "title", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "duration_days", Type: field.TypeInt},
		{Name: "daily_time_hours", Type: field.TypeFloat64},
		{Name: "skill_level", Type: field.TypeEnum, Enums: []string{"beginner", "intermediate", "advanced"}},
		{Name: "prerequisites", Type: field.TypeJSON},
		{Name: "learning_objectives", Type: field.TypeJSON},
		{Name: "daily_modules", Type: field.TypeJSON},
		{Name: "resources", Type: field.TypeJSON},
	}
	learningPathsTable = &schema.Table{
		Name:       tableLearningPaths,
		Columns:    learningPathsColumns,
		PrimaryKey: []*schema.Column{learningPathsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "learningpath_created_at", Columns: []*schema.Column{learningPathsColumns[1]}},
		},
	}

	dailyProgressesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "day", Type: field.TypeInt},
		{Name: "video_completed", Type: field.TypeBool, Default: false},
		{Name: "reading_completed", Type: field.TypeBool, Default: false},
		{Name: "exercise_completed", Type: field.TypeBool, Default: false},
		{Name: "assessment_completed", Type: field.TypeBool, Default: false},
		{Name: "notes", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "updated_at", Type: field.TypeInt64},
		{Name: "learning_path_id", Type: field.TypeString},
	}
	dailyProgressesTable = &schema.Table{
		Name:       tableDailyProgresses,
		Columns:    dailyProgressesColumns,
		PrimaryKey: []*schema.Column{dailyProgressesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "daily_progresses_learning_paths_progress",
				Columns:    []*schema.Column{dailyProgressesColumns[9]},
				RefColumns: []*schema.Column{learningPathsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "dailyprogress_learning_path_id_day",
				Unique:  true,
				Columns: []*schema.Column{dailyProgressesColumns[9], dailyProgressesColumns[1]},
			},
		},
	}

	pathCursorsColumns = []*schema.Column{
		{Name: "learning_path_id", Type: field.TypeString, Unique: true},
		{Name: "day", Type: field.TypeInt},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	pathCursorsTable = &schema.Table{
		Name:       tablePathCursors,
		Columns:    pathCursorsColumns,
		PrimaryKey: []*schema.Column{pathCursorsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "path_cursors_learning_paths_cursor",
				Columns:    []*schema.Column{pathCursorsColumns[0]},
				RefColumns: []*schema.Column{learningPathsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	llmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmRequestEventsTable = &schema.Table{
		Name:       tableLLMRequestEvents,
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventsColumns[4]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{llmRequestEventsColumns[8]}},
		},
	}

	tables = []*schema.Table{
		learningPathsTable,
		dailyProgressesTable,
		pathCursorsTable,
		llmRequestEventsTable,
	}
)

func init() {
	dailyProgressesTable.ForeignKeys[0].RefTable = learningPathsTable
	pathCursorsTable.ForeignKeys[0].RefTable = learningPathsTable
}
