package curriculum

import "github.com/abhisek/edupath/internal/llm"

func stringArray(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

var videoSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":        map[string]any{"type": "string", "description": "Realistic YouTube video title"},
		"channel":      map[string]any{"type": "string", "description": "Popular channel in the field"},
		"duration":     map[string]any{"type": "number", "description": "Video length in minutes"},
		"key_concepts": stringArray("Concepts the video covers"),
	},
	"required":             []any{"title", "channel", "duration", "key_concepts"},
	"additionalProperties": false,
}

var readingSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":  map[string]any{"type": "string"},
		"source": map[string]any{"type": "string"},
		"type": map[string]any{
			"type":        "string",
			"description": "article, documentation, book or tutorial",
		},
	},
	"required":             []any{"title", "source", "type"},
	"additionalProperties": false,
}

var exerciseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"task":             map[string]any{"type": "string"},
		"expected_outcome": map[string]any{"type": "string"},
		"duration":         map[string]any{"type": "number", "description": "Minutes"},
	},
	"required":             []any{"task", "expected_outcome", "duration"},
	"additionalProperties": false,
}

var moduleSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":              map[string]any{"type": "string"},
		"objective":          map[string]any{"type": "string"},
		"time_required":      map[string]any{"type": "number", "description": "Hours"},
		"video_learning":     videoSchema,
		"reading_materials":  map[string]any{"type": "array", "items": readingSchema},
		"practical_exercise": exerciseSchema,
		"assessment":         stringArray("3-4 assessment questions"),
	},
	"required": []any{
		"day", "title", "objective", "time_required", "video_learning",
		"reading_materials", "practical_exercise", "assessment",
	},
	"additionalProperties": false,
}

// Schema is the JSON schema a generated curriculum must satisfy.
var Schema = &llm.Schema{
	Name:        "learning-path",
	Description: "A multi-day learning path with daily modules and a resource library",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":               map[string]any{"type": "string", "description": "Short title for the path"},
			"description":         map[string]any{"type": "string", "description": "2-3 sentence overview"},
			"prerequisites":       stringArray("What the learner should know beforehand"),
			"learning_objectives": stringArray("3-5 overall learning objectives"),
			"daily_modules": map[string]any{
				"type":  "array",
				"items": moduleSchema,
			},
			"resources": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"youtube_channels": stringArray("Popular channels for the topic"),
					"books":            stringArray("Essential books and documentation"),
					"websites":         stringArray("Useful websites"),
					"tools":            stringArray("Tools used along the path"),
				},
				"required":             []any{"youtube_channels", "books", "websites", "tools"},
				"additionalProperties": false,
			},
		},
		"required": []any{
			"title", "description", "prerequisites", "learning_objectives",
			"daily_modules", "resources",
		},
		"additionalProperties": false,
	},
}
