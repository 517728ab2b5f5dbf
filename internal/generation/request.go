package generation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/edupath/internal/curriculum"
)

const (
	// MaxDurationDays is the longest path that can be generated.
	MaxDurationDays = 90

	// MaxDailyHours is the largest daily time commitment.
	MaxDailyHours = 24.0
)

// Option is a preset choice offered by the generator form.
type Option[T any] struct {
	Value T
	Label string
}

// DurationOptions are the preset path lengths.
var DurationOptions = []Option[int]{
	{7, "1 Week (7 days)"},
	{14, "2 Weeks (14 days)"},
	{21, "3 Weeks (21 days)"},
	{30, "1 Month (30 days)"},
	{60, "2 Months (60 days)"},
	{90, "3 Months (90 days)"},
}

// LevelOptions are the skill levels with their descriptions.
var LevelOptions = []Option[curriculum.SkillLevel]{
	{curriculum.LevelBeginner, "Beginner - New to this topic"},
	{curriculum.LevelIntermediate, "Intermediate - Some experience"},
	{curriculum.LevelAdvanced, "Advanced - Significant experience"},
}

// DailyTimeOptions are the preset daily time commitments in hours.
var DailyTimeOptions = []Option[float64]{
	{0.5, "30 minutes per day"},
	{1, "1 hour per day"},
	{1.5, "1.5 hours per day"},
	{2, "2 hours per day"},
	{3, "3 hours per day"},
	{4, "4+ hours per day"},
}

// Request is the learner's generation form.
type Request = curriculum.Request

// ValidationError lists the fields of a request that need correcting,
// keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// ValidateRequest checks a request without contacting the generator.
func ValidateRequest(req Request) error {
	fields := map[string]string{}

	if strings.TrimSpace(req.Topic) == "" {
		fields["topic"] = "Topic is required"
	}
	switch {
	case req.DurationDays <= 0:
		fields["duration"] = "Duration is required"
	case req.DurationDays > MaxDurationDays:
		fields["duration"] = fmt.Sprintf("Duration must be at most %d days", MaxDurationDays)
	}
	switch {
	case req.SkillLevel == "":
		fields["skill_level"] = "Skill level is required"
	case !req.SkillLevel.Valid():
		fields["skill_level"] = fmt.Sprintf("Unknown skill level %q", req.SkillLevel)
	}
	switch {
	case req.DailyTimeHours <= 0:
		fields["daily_time"] = "Daily time commitment is required"
	case req.DailyTimeHours > MaxDailyHours:
		fields["daily_time"] = "Daily time commitment must be at most 24 hours"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
