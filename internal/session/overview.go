package session

import "github.com/abhisek/edupath/internal/progress"

// DayOverview summarizes one day for the day list.
type DayOverview struct {
	Day           int    `json:"day"`
	Title         string `json:"title"`
	TasksDone     int    `json:"tasks_done"`
	Percent       int    `json:"percent"`
	Complete      bool   `json:"complete"` // at least the completion threshold of tasks
	FullyComplete bool   `json:"fully_complete"`
	Active        bool   `json:"active"`
	HasNotes      bool   `json:"has_notes"`
}

// Overview lists every day of the path in order.
func (s *Session) Overview() []DayOverview {
	active := s.ActiveDay()
	out := make([]DayOverview, 0, s.path.DurationDays)
	for day := 1; day <= s.path.DurationDays; day++ {
		ov := DayOverview{Day: day, Active: day == active}
		if m, ok := s.path.Module(day); ok {
			ov.Title = m.Title
		}
		if rec, ok := s.records.Record(day); ok {
			ov.TasksDone = progress.TasksDone(rec)
			ov.Percent = progress.DayPercent(rec)
			ov.Complete = progress.IsDayComplete(rec)
			ov.FullyComplete = progress.IsDayFullyComplete(rec)
			ov.HasNotes = rec.Notes != ""
		}
		out = append(out, ov)
	}
	return out
}
