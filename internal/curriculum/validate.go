package curriculum

import (
	"fmt"
	"sort"
	"strings"
)

// StructureError describes why a generated document cannot become a path.
type StructureError struct {
	Field   string
	Message string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("invalid curriculum %s: %s", e.Field, e.Message)
}

// ValidateDocument sorts the modules by day and checks that the document
// covers exactly days 1..durationDays with titled modules.
func ValidateDocument(doc *Document, durationDays int) error {
	if doc == nil {
		return &StructureError{Field: "document", Message: "empty"}
	}
	if strings.TrimSpace(doc.Title) == "" {
		return &StructureError{Field: "title", Message: "is empty"}
	}

	sort.SliceStable(doc.DailyModules, func(i, j int) bool {
		return doc.DailyModules[i].Day < doc.DailyModules[j].Day
	})

	if len(doc.DailyModules) != durationDays {
		return &StructureError{
			Field:   "daily_modules",
			Message: fmt.Sprintf("got %d modules, want %d", len(doc.DailyModules), durationDays),
		}
	}
	for i, m := range doc.DailyModules {
		if m.Day != i+1 {
			return &StructureError{
				Field:   "daily_modules",
				Message: fmt.Sprintf("module at position %d has day %d, want %d", i+1, m.Day, i+1),
			}
		}
		if strings.TrimSpace(m.Title) == "" {
			return &StructureError{
				Field:   "daily_modules",
				Message: fmt.Sprintf("day %d has no title", m.Day),
			}
		}
	}
	return nil
}
