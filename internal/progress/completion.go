package progress

import "math"

// CompleteTaskThreshold is the number of finished tasks (out of four) that
// makes a day count as complete.
const CompleteTaskThreshold = 3

// TasksPerDay is the number of completion flags on a record.
const TasksPerDay = 4

// TasksDone counts the true flags of rec.
func TasksDone(rec DailyProgress) int {
	n := 0
	for _, f := range TaskFields() {
		if rec.Task(f) {
			n++
		}
	}
	return n
}

// IsDayComplete reports whether rec counts toward path completion.
func IsDayComplete(rec DailyProgress) bool {
	return TasksDone(rec) >= CompleteTaskThreshold
}

// IsDayFullyComplete reports whether every task of rec is done.
func IsDayFullyComplete(rec DailyProgress) bool {
	return TasksDone(rec) == TasksPerDay
}

// DayPercent is the share of finished tasks of a single day.
func DayPercent(rec DailyProgress) int {
	return TasksDone(rec) * 100 / TasksPerDay
}

// Completion returns the rounded percentage of complete days over
// totalDays. When a day has several records the last one wins. Records
// outside 1..totalDays are ignored.
func Completion(records []DailyProgress, totalDays int) int {
	if totalDays <= 0 || len(records) == 0 {
		return 0
	}

	byDay := make(map[int]DailyProgress, len(records))
	for _, r := range records {
		if r.Day < 1 || r.Day > totalDays {
			continue
		}
		byDay[r.Day] = r
	}

	complete := 0
	for _, r := range byDay {
		if IsDayComplete(r) {
			complete++
		}
	}

	pct := int(math.Round(float64(complete) * 100 / float64(totalDays)))
	return max(0, min(100, pct))
}

// Status is the coarse state of a path derived from its completion.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// StatusFor maps a completion percentage to a Status.
func StatusFor(percent int) Status {
	switch {
	case percent <= 0:
		return StatusNotStarted
	case percent >= 100:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}
