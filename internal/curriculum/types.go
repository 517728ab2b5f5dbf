package curriculum

import (
	"fmt"
	"strings"
	"time"
)

// SkillLevel is the learner's self-reported starting level.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
)

// AllLevels lists the skill levels in ascending order.
func AllLevels() []SkillLevel {
	return []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// Valid reports whether l is one of the known levels.
func (l SkillLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// DisplayName returns the capitalized level name.
func (l SkillLevel) DisplayName() string {
	if l == "" {
		return ""
	}
	s := string(l)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseSkillLevel parses a level name case-insensitively.
func ParseSkillLevel(s string) (SkillLevel, error) {
	l := SkillLevel(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown skill level %q", s)
	}
	return l, nil
}

// Request describes the curriculum a learner asked for.
type Request struct {
	Topic          string
	DurationDays   int
	SkillLevel     SkillLevel
	DailyTimeHours float64
	Goals          string // optional
}

// Video is the single video reference of a daily module.
type Video struct {
	Title       string   `json:"title"`
	Channel     string   `json:"channel"`
	Duration    float64  `json:"duration"` // minutes
	KeyConcepts []string `json:"key_concepts,omitempty"`
}

// Reading is one reading reference of a daily module.
type Reading struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

// Exercise is the practical exercise of a daily module.
type Exercise struct {
	Task            string  `json:"task"`
	ExpectedOutcome string  `json:"expected_outcome"`
	Duration        float64 `json:"duration"`
}

// DailyModule is the planned content for one day of a path.
type DailyModule struct {
	Day          int       `json:"day"`
	Title        string    `json:"title"`
	Objective    string    `json:"objective"`
	TimeRequired float64   `json:"time_required"`
	Video        Video     `json:"video_learning"`
	Readings     []Reading `json:"reading_materials,omitempty"`
	Exercise     Exercise  `json:"practical_exercise"`
	Assessment   []string  `json:"assessment,omitempty"`
}

// ResourceBundle groups the path-wide resources. Every list is optional.
type ResourceBundle struct {
	YouTubeChannels []string `json:"youtube_channels,omitempty"`
	Books           []string `json:"books,omitempty"`
	Websites        []string `json:"websites,omitempty"`
	Tools           []string `json:"tools,omitempty"`
}

// Document is the curriculum returned by a Generator before it is persisted.
type Document struct {
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Prerequisites      []string       `json:"prerequisites"`
	LearningObjectives []string       `json:"learning_objectives"`
	DailyModules       []DailyModule  `json:"daily_modules"`
	Resources          ResourceBundle `json:"resources"`
}

// LearningPath is a persisted curriculum.
type LearningPath struct {
	ID                 string         `json:"id"`
	CreatedAt          time.Time      `json:"created_date"`
	Topic              string         `json:"topic"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	DurationDays       int            `json:"duration_days"`
	DailyTimeHours     float64        `json:"daily_time_hours"`
	SkillLevel         SkillLevel     `json:"skill_level"`
	Prerequisites      []string       `json:"prerequisites"`
	LearningObjectives []string       `json:"learning_objectives"`
	DailyModules       []DailyModule  `json:"daily_modules"`
	Resources          ResourceBundle `json:"resources"`
}

// NewLearningPath combines a request and a generated document into an
// unsaved path. ID and CreatedAt are assigned by the store.
func NewLearningPath(req Request, doc *Document) LearningPath {
	return LearningPath{
		Topic:              strings.TrimSpace(req.Topic),
		Title:              doc.Title,
		Description:        doc.Description,
		DurationDays:       req.DurationDays,
		DailyTimeHours:     req.DailyTimeHours,
		SkillLevel:         req.SkillLevel,
		Prerequisites:      doc.Prerequisites,
		LearningObjectives: doc.LearningObjectives,
		DailyModules:       doc.DailyModules,
		Resources:          doc.Resources,
	}
}

// Module returns the module planned for day. Modules are matched on their
// day number, never on slice position.
func (p *LearningPath) Module(day int) (DailyModule, bool) {
	for _, m := range p.DailyModules {
		if m.Day == day {
			return m, true
		}
	}
	return DailyModule{}, false
}

// TotalHours is the planned time investment of the whole path.
func (p *LearningPath) TotalHours() float64 {
	return float64(p.DurationDays) * p.DailyTimeHours
}
